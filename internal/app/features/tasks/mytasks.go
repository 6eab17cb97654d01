// internal/app/features/tasks/mytasks.go
package tasks

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeAssignedToMe handles GET /api/tasks/assigned-to-me: every task
// where the actor is the assignee, regardless of board.
func (h *Handler) ServeAssignedToMe(w http.ResponseWriter, r *http.Request) {
	h.serveRoleList(w, r, func(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
		return h.tasks.ListByAssignee(ctx, userID)
	})
}

// ServeReviewing handles GET /api/tasks/reviewing: every task where
// the actor is the reviewer.
func (h *Handler) ServeReviewing(w http.ResponseWriter, r *http.Request) {
	h.serveRoleList(w, r, func(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
		return h.tasks.ListByReviewer(ctx, userID)
	})
}

func (h *Handler) serveRoleList(w http.ResponseWriter, r *http.Request, list func(context.Context, primitive.ObjectID) ([]models.Task, error)) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := list(ctx, userID)
	if err != nil {
		h.errs.LogServerError(w, r, "list tasks by role", err)
		return
	}

	views, err := BuildViews(ctx, h.users, h.comments, tasks)
	if err != nil {
		h.errs.LogServerError(w, r, "build task views", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, views)
}
