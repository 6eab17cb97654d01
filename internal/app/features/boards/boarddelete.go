// internal/app/features/boards/boarddelete.go
package boards

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/policy/boardpolicy"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/kanbanhub/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDeleteBoard handles DELETE /api/boards/{id}.
//
// Owner only; membership is not enough. The cascade removes the
// board's comments, then its tasks, then the board itself, inside a
// transaction where the deployment supports one. A second delete of
// the same id is 404.
func (h *Handler) HandleDeleteBoard(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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
	if !boardpolicy.CanDelete(userID, board) {
		apierr.Forbidden(w, "only the board owner can delete a board")
		return
	}

	err = txn.WithTransaction(ctx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		taskIDs, err := h.tasks.IDsByBoard(ctx, board.ID)
		if err != nil {
			return fmt.Errorf("collect task ids: %w", err)
		}
		if _, err := h.comments.DeleteByTasks(ctx, taskIDs); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if _, err := h.tasks.DeleteByBoard(ctx, board.ID); err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}
		n, err := h.boards.Delete(ctx, board.ID)
		if err != nil {
			return fmt.Errorf("delete board: %w", err)
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost a race with a concurrent delete.
			apierr.NotFound(w, "board not found")
			return
		}
		h.errs.LogServerError(w, r, "delete board cascade", err)
		return
	}

	httpjson.NoContent(w)
}
