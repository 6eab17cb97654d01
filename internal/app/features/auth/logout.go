// internal/app/features/auth/logout.go
package auth

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
)

// HandleLogout handles POST /api/logout: revokes the presented bearer
// token and expires the session cookie. Idempotent; logging out
// without a credential is still a 204.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.sessions.ClearCredentials(ctx, w, r); err != nil {
		h.errs.LogServerError(w, r, "clear credentials", err)
		return
	}
	httpjson.NoContent(w)
}
