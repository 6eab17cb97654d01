// internal/app/features/comments/commentlist.go
package comments

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeCommentList handles GET /api/tasks/{taskID}/comments, oldest
// first.
func (h *Handler) ServeCommentList(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, _, ok := h.loadVisibleTask(ctx, w, r, userID)
	if !ok {
		return
	}

	list, err := h.comments.ListByTask(ctx, task.ID)
	if err != nil {
		h.errs.LogServerError(w, r, "list comments", err)
		return
	}

	authorIDs := make([]primitive.ObjectID, 0, len(list))
	seen := make(map[primitive.ObjectID]struct{}, len(list))
	for _, c := range list {
		if _, dup := seen[c.AuthorID]; dup {
			continue
		}
		seen[c.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := h.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		h.errs.LogServerError(w, r, "resolve comment authors", err)
		return
	}

	views := make([]view, 0, len(list))
	for _, c := range list {
		views = append(views, toView(c, authors))
	}
	httpjson.Respond(w, http.StatusOK, views)
}
