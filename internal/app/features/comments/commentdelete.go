// internal/app/features/comments/commentdelete.go
package comments

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/policy/commentpolicy"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleDeleteComment handles
// DELETE /api/tasks/{taskID}/comments/{commentID}.
//
// Author only; neither the board owner nor the task creator can remove
// someone else's comment. A comment id that exists but belongs to a
// different task than the URL names is treated as not found.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
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

	commentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "commentID"))
	if err != nil {
		apierr.NotFound(w, "comment not found")
		return
	}

	comment, err := h.comments.GetByID(ctx, commentID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			apierr.NotFound(w, "comment not found")
			return
		}
		h.errs.LogServerError(w, r, "load comment", err)
		return
	}
	if comment.TaskID != task.ID {
		apierr.NotFound(w, "comment not found")
		return
	}
	if !commentpolicy.CanDelete(userID, comment) {
		apierr.Forbidden(w, "only the comment author can delete a comment")
		return
	}

	n, err := h.comments.Delete(ctx, comment.ID)
	if err != nil {
		h.errs.LogServerError(w, r, "delete comment", err)
		return
	}
	if n == 0 {
		apierr.NotFound(w, "comment not found")
		return
	}
	httpjson.NoContent(w)
}
