// internal/app/features/boards/boardedit.go
package boards

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
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HandleEditBoard handles PATCH /api/boards/{id}.
//
// Title and members are each optional. A members list is a full
// replacement of the member set, validated in its entirety before the
// single-document write: one bad id rejects the whole list and leaves
// the old roster intact. The owner reference never changes here.
func (h *Handler) HandleEditBoard(w http.ResponseWriter, r *http.Request) {
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

	var req updateBoardRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.errs.LogBadRequest(w, r, "decode edit board", err, "body", "malformed request body")
		return
	}

	var v inputval.Result
	if req.Title != nil {
		v.Require("title", *req.Title, "title cannot be empty")
		v.MaxLen("title", *req.Title, 200, "title is too long")
	}
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
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
	if !boardpolicy.CanEdit(userID, board) {
		apierr.Forbidden(w, "you are not a member of this board")
		return
	}

	if req.Members != nil {
		memberIDs, ok := h.resolveMembers(ctx, w, *req.Members)
		if !ok {
			return
		}
		if err := h.boards.ReplaceMembers(ctx, board.ID, memberIDs); err != nil {
			h.errs.LogServerError(w, r, "replace board members", err)
			return
		}
	}
	if req.Title != nil {
		if err := h.boards.UpdateTitle(ctx, board.ID, htmlsanitize.Clean(*req.Title)); err != nil {
			h.errs.LogServerError(w, r, "update board title", err)
			return
		}
	}

	updated, err := h.boards.GetByID(ctx, board.ID)
	if err != nil {
		h.errs.LogServerError(w, r, "reload board", err)
		return
	}
	owner, members, err := h.buildRoster(ctx, updated)
	if err != nil {
		h.errs.LogServerError(w, r, "resolve board roster", err)
		return
	}

	httpjson.Respond(w, http.StatusOK, rosterView{
		ID:      updated.ID,
		Title:   updated.Title,
		OwnerID: updated.OwnerID,
		Owner:   owner,
		Members: members,
	})
}
