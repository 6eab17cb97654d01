// internal/app/features/tasks/taskedit.go
package tasks

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/policy/taskpolicy"
	taskstore "github.com/dalemusser/kanbanhub/internal/app/store/tasks"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/inputval"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleEditTask handles PATCH /api/tasks/{id}.
//
// Partial-update contract: a field absent from the body is left
// unchanged; assignee_id/reviewer_id given as JSON null clear the role;
// a non-null role id is re-validated against the board roster exactly
// like on create. Concurrent updates are last-write-wins per field set.
func (h *Handler) HandleEditTask(w http.ResponseWriter, r *http.Request) {
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

	var req updateTaskRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.errs.LogBadRequest(w, r, "decode edit task", err, "body", "malformed request body")
		return
	}

	var v inputval.Result
	if req.Title.set {
		if req.Title.value == nil {
			v.Fail("title", "title cannot be null")
		} else {
			v.Require("title", *req.Title.value, "title cannot be empty")
			v.MaxLen("title", *req.Title.value, 200, "title is too long")
		}
	}
	if req.Description.set && req.Description.value == nil {
		v.Fail("description", "description cannot be null")
	}
	if req.Status.set {
		if req.Status.value == nil {
			v.Fail("status", "status cannot be null")
		} else {
			v.MaxLen("status", *req.Status.value, maxLabelLen, "status is too long")
		}
	}
	if req.Priority.set {
		if req.Priority.value == nil {
			v.Fail("priority", "priority cannot be null")
		} else {
			v.MaxLen("priority", *req.Priority.value, maxLabelLen, "priority is too long")
		}
	}
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
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
	if !taskpolicy.CanEdit(userID, board) {
		apierr.Forbidden(w, "you are not a member of this board")
		return
	}

	var updates taskstore.FieldUpdates
	if req.Title.set {
		clean := htmlsanitize.Clean(*req.Title.value)
		updates.Title = &clean
	}
	if req.Description.set {
		clean := htmlsanitize.Clean(*req.Description.value)
		updates.Description = &clean
	}
	if req.Status.set {
		clean := htmlsanitize.Clean(*req.Status.value)
		updates.Status = &clean
	}
	if req.Priority.set {
		clean := htmlsanitize.Clean(*req.Priority.value)
		updates.Priority = &clean
	}
	if req.DueDate.set {
		if req.DueDate.value == nil {
			updates.ClearDue = true
		} else {
			updates.DueDate = req.DueDate.value
		}
	}
	if req.AssigneeID.set {
		if req.AssigneeID.value == nil {
			updates.ClearAssignee = true
		} else {
			id, ok := h.resolveRole(ctx, w, board, "assignee_id", req.AssigneeID.value)
			if !ok {
				return
			}
			updates.AssigneeID = id
		}
	}
	if req.ReviewerID.set {
		if req.ReviewerID.value == nil {
			updates.ClearReviewer = true
		} else {
			id, ok := h.resolveRole(ctx, w, board, "reviewer_id", req.ReviewerID.value)
			if !ok {
				return
			}
			updates.ReviewerID = id
		}
	}

	if err := h.tasks.UpdateFields(ctx, task.ID, updates); err != nil {
		h.errs.LogServerError(w, r, "update task", err)
		return
	}

	updated, err := h.tasks.GetByID(ctx, task.ID)
	if err != nil {
		h.errs.LogServerError(w, r, "reload task", err)
		return
	}
	view, err := BuildView(ctx, h.users, h.comments, updated)
	if err != nil {
		h.errs.LogServerError(w, r, "build task view", err)
		return
	}
	httpjson.Respond(w, http.StatusOK, view)
}
