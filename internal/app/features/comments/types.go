// internal/app/features/comments/types.go
package comments

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/kanbanhub/internal/app/policy/boardpolicy"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

// view is the wire shape of a comment. The author renders as a display
// name; "(deleted user)" when the account is gone.
type view struct {
	ID        primitive.ObjectID `json:"id"`
	Task      primitive.ObjectID `json:"task"`
	Author    string             `json:"author"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
}

const deletedAuthorName = "(deleted user)"

func toView(c models.Comment, authors map[primitive.ObjectID]models.User) view {
	name := deletedAuthorName
	if u, ok := authors[c.AuthorID]; ok {
		name = u.FullName
	}
	return view{
		ID:        c.ID,
		Task:      c.TaskID,
		Author:    name,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// loadVisibleTask resolves {taskID} from the URL to a task the user may
// view along with its board. It writes the error response itself and
// reports ok=false when the caller should stop: unknown task is 404,
// known task on a board the actor cannot see is 403.
func (h *Handler) loadVisibleTask(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (models.Task, models.Board, bool) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskID"))
	if err != nil {
		apierr.NotFound(w, "task not found")
		return models.Task{}, models.Board{}, false
	}

	task, err := h.tasks.GetByID(ctx, taskID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			apierr.NotFound(w, "task not found")
			return models.Task{}, models.Board{}, false
		}
		h.errs.LogServerError(w, r, "load task", err)
		return models.Task{}, models.Board{}, false
	}

	board, err := h.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		h.errs.LogServerError(w, r, "load task's board", err)
		return models.Task{}, models.Board{}, false
	}
	if !boardpolicy.CanView(userID, board) {
		apierr.Forbidden(w, "you are not a member of this board")
		return models.Task{}, models.Board{}, false
	}
	return task, board, true
}
