// internal/app/features/auth/login.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/inputval"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// HandleLogin handles POST /api/login.
//
// Unknown address and wrong password produce the same response so the
// endpoint cannot be used to enumerate accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.errs.LogBadRequest(w, r, "decode login", err, "body", "malformed request body")
		return
	}

	email := strings.TrimSpace(req.Email)

	var v inputval.Result
	v.Require("email", email, "email is required")
	v.Require("password", req.Password, "password is required")
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			apierr.Validation(w, map[string]string{"email": "email or password is incorrect"})
			return
		}
		h.errs.LogServerError(w, r, "load user by email", err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		apierr.Validation(w, map[string]string{"email": "email or password is incorrect"})
		return
	}

	token, err := h.sessions.IssueCredentials(ctx, w, r, user.ID)
	if err != nil {
		h.errs.LogServerError(w, r, "issue credentials", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, credentialResponse{
		Token:    token,
		FullName: user.FullName,
		Email:    user.Email,
		UserID:   user.ID,
	})
}
