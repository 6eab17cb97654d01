// internal/app/features/auth/emailcheck.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/inputval"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

type emailCheckResponse struct {
	Exists bool                `json:"exists"`
	User   *models.UserSummary `json:"user,omitempty"`
}

// ServeEmailCheck handles GET /api/email-check?email=…, used when
// adding board members by address. Signed-in callers only; the user
// summary is included when the address resolves.
func (h *Handler) ServeEmailCheck(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	var v inputval.Result
	v.Require("email", email, "email is required")
	v.Email("email", email, "email is not a valid address")
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpjson.Respond(w, http.StatusOK, emailCheckResponse{Exists: false})
			return
		}
		h.errs.LogServerError(w, r, "look up email", err)
		return
	}

	summary := models.ToUserSummary(user)
	httpjson.Respond(w, http.StatusOK, emailCheckResponse{Exists: true, User: &summary})
}
