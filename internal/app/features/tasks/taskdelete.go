// internal/app/features/tasks/taskdelete.go
package tasks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/policy/taskpolicy"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/kanbanhub/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDeleteTask handles DELETE /api/tasks/{id}.
//
// Only the task's creator or the board owner may delete. The task's
// comments go with it; the cascade runs comments-first so a partial
// failure can never orphan comments.
func (h *Handler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.NotFound(w, "task not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, err := h.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			apierr.NotFound(w, "task not found")
			return
		}
		h.errs.LogServerError(w, r, "load task", err)
		return
	}
	board, err := h.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		h.errs.LogServerError(w, r, "load task's board", err)
		return
	}
	if !taskpolicy.CanDelete(userID, task, board) {
		apierr.Forbidden(w, "only the task creator or the board owner can delete a task")
		return
	}

	err = txn.WithTransaction(ctx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		if _, err := h.comments.DeleteByTask(ctx, task.ID); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		n, err := h.tasks.Delete(ctx, task.ID)
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		if n == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Lost a race with a concurrent delete.
			apierr.NotFound(w, "task not found")
			return
		}
		h.errs.LogServerError(w, r, "delete task cascade", err)
		return
	}

	httpjson.NoContent(w)
}
