// internal/app/features/boards/boardlist.go
package boards

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
)

// ServeBoardList handles GET /api/boards: every board where the actor
// is the owner or a member, each with live task counters.
func (h *Handler) ServeBoardList(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	boards, err := h.boards.ListForUser(ctx, userID)
	if err != nil {
		h.errs.LogServerError(w, r, "list boards", err)
		return
	}

	views := make([]summaryView, 0, len(boards))
	for _, b := range boards {
		view, err := h.buildSummary(ctx, b)
		if err != nil {
			h.errs.LogServerError(w, r, "build board summary", err)
			return
		}
		views = append(views, view)
	}
	httpjson.Respond(w, http.StatusOK, views)
}
