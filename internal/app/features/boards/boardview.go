// internal/app/features/boards/boardview.go
package boards

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/features/tasks"
	"github.com/dalemusser/kanbanhub/internal/app/policy/boardpolicy"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeBoardView handles GET /api/boards/{id}.
//
// Existence is checked before visibility: an unknown id is 404 even
// for an outsider, a known id the actor cannot view is 403.
func (h *Handler) ServeBoardView(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	boardID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.NotFound(w, "board not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	board, err := h.boards.GetByID(ctx, boardID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			apierr.NotFound(w, "board not found")
			return
		}
		h.errs.LogServerError(w, r, "load board", err)
		return
	}
	if !boardpolicy.CanView(userID, board) {
		apierr.Forbidden(w, "you are not a member of this board")
		return
	}

	owner, members, err := h.buildRoster(ctx, board)
	if err != nil {
		h.errs.LogServerError(w, r, "resolve board roster", err)
		return
	}

	boardTasks, err := h.tasks.ListByBoard(ctx, board.ID)
	if err != nil {
		h.errs.LogServerError(w, r, "list board tasks", err)
		return
	}
	taskViews, err := tasks.BuildViews(ctx, h.users, h.comments, boardTasks)
	if err != nil {
		h.errs.LogServerError(w, r, "build task views", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, detailView{
		ID:      board.ID,
		Title:   board.Title,
		OwnerID: board.OwnerID,
		Owner:   owner,
		Members: members,
		Tasks:   taskViews,
	})
}
