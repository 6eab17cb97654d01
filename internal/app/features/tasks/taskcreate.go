// internal/app/features/tasks/taskcreate.go
package tasks

import (
	"context"
	"net/http"

	"github.com/dalemusser/kanbanhub/internal/app/policy/boardpolicy"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/authz"
	"github.com/dalemusser/kanbanhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/inputval"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleCreateTask handles POST /api/tasks.
//
// The board must exist and the actor must be its owner or a member.
// Assignee and reviewer, when given, must resolve to existing users
// (invalid_reference) who are the board owner or board members
// (invalid_role). All checks run before anything is written.
func (h *Handler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	var req createTaskRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.errs.LogBadRequest(w, r, "decode create task", err, "body", "malformed request body")
		return
	}

	var v inputval.Result
	v.Require("board", req.Board, "board is required")
	v.Require("title", req.Title, "title is required")
	v.MaxLen("title", req.Title, 200, "title is too long")
	if req.Status != nil {
		v.MaxLen("status", *req.Status, maxLabelLen, "status is too long")
	}
	if req.Priority != nil {
		v.MaxLen("priority", *req.Priority, maxLabelLen, "priority is too long")
	}
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
		return
	}

	boardID, err := primitive.ObjectIDFromHex(req.Board)
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
	if !boardpolicy.CanCreateTask(userID, board) {
		apierr.Forbidden(w, "you are not a member of this board")
		return
	}

	assigneeID, ok := h.resolveRole(ctx, w, board, "assignee_id", req.AssigneeID)
	if !ok {
		return
	}
	reviewerID, ok := h.resolveRole(ctx, w, board, "reviewer_id", req.ReviewerID)
	if !ok {
		return
	}

	task := models.Task{
		BoardID:     board.ID,
		Title:       htmlsanitize.Clean(req.Title),
		Description: htmlsanitize.Clean(req.Description),
		Status:      models.StatusToDo,
		Priority:    models.PriorityMedium,
		AssigneeID:  assigneeID,
		ReviewerID:  reviewerID,
		DueDate:     req.DueDate,
		CreatorID:   userID,
	}
	if req.Status != nil {
		task.Status = htmlsanitize.Clean(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = htmlsanitize.Clean(*req.Priority)
	}

	created, err := h.tasks.Create(ctx, task)
	if err != nil {
		h.errs.LogServerError(w, r, "create task", err)
		return
	}

	view, err := BuildView(ctx, h.users, h.comments, created)
	if err != nil {
		h.errs.LogServerError(w, r, "build task view", err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, view)
}

// resolveRole maps an optional user-id string to a validated role
// holder. It writes the error response itself and reports ok=false
// when the caller should bail out. An empty string is not an id and is
// rejected like any other unresolvable reference; clearing a role is
// spelled with JSON null, not "".
func (h *Handler) resolveRole(ctx context.Context, w http.ResponseWriter, board models.Board, field string, raw *string) (*primitive.ObjectID, bool) {
	if raw == nil {
		return nil, true
	}

	id, err := primitive.ObjectIDFromHex(*raw)
	if err != nil {
		apierr.InvalidReference(w, field, field+" does not reference an existing user")
		return nil, false
	}
	if _, err := h.users.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			apierr.InvalidReference(w, field, field+" does not reference an existing user")
			return nil, false
		}
		apierr.Internal(w)
		return nil, false
	}
	if !boardpolicy.CanAssignRole(id, board) {
		apierr.InvalidRole(w, field, field+" must be the board owner or a board member")
		return nil, false
	}
	return &id, true
}
