// internal/app/features/comments/commentcreate.go
package comments

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/inputval"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
)

// HandleCreateComment handles POST /api/tasks/{taskID}/comments.
// Anyone who can view the task's board may comment; the actor becomes
// the author.
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	userID, _, fullName, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	var req createCommentRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.errs.LogBadRequest(w, r, "decode create comment", err, "body", "malformed request body")
		return
	}

	content := htmlsanitize.Clean(req.Content)

	var v inputval.Result
	v.Require("content", content, "content cannot be empty")
	v.MaxLen("content", content, 4000, "content is too long")
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	task, _, ok := h.loadVisibleTask(ctx, w, r, userID)
	if !ok {
		return
	}

	created, err := h.comments.Create(ctx, models.Comment{
		TaskID:   task.ID,
		AuthorID: userID,
		Content:  content,
	})
	if err != nil {
		h.errs.LogServerError(w, r, "create comment", err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, view{
		ID:        created.ID,
		Task:      created.TaskID,
		Author:    fullName,
		Content:   created.Content,
		CreatedAt: created.CreatedAt,
	})
}
