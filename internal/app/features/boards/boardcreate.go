// internal/app/features/boards/boardcreate.go
package boards

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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleCreateBoard handles POST /api/boards.
//
// The actor becomes the owner and is not added to the member set;
// ownership alone grants full access. Every member id must resolve to
// an existing user or the whole request fails before any write.
func (h *Handler) HandleCreateBoard(w http.ResponseWriter, r *http.Request) {
	userID, _, _, ok := authz.UserCtx(r)
	if !ok {
		apierr.Unauthorized(w, "authentication required")
		return
	}

	var req createBoardRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.errs.LogBadRequest(w, r, "decode create board", err, "body", "malformed request body")
		return
	}

	var v inputval.Result
	v.Require("title", req.Title, "title is required")
	v.MaxLen("title", req.Title, 200, "title is too long")
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	memberIDs, ok := h.resolveMembers(ctx, w, req.Members)
	if !ok {
		return
	}

	created, err := h.boards.Create(ctx, models.Board{
		Title:     htmlsanitize.Clean(req.Title),
		OwnerID:   userID,
		MemberIDs: memberIDs,
	})
	if err != nil {
		h.errs.LogServerError(w, r, "create board", err)
		return
	}

	view, err := h.buildSummary(ctx, created)
	if err != nil {
		h.errs.LogServerError(w, r, "build board summary", err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, view)
}

// resolveMembers validates a member-id list against the users
// collection. Any id that is malformed or does not resolve fails the
// whole list; duplicates collapse to one entry. Writes the error
// response itself and reports ok=false when the caller should stop.
func (h *Handler) resolveMembers(ctx context.Context, w http.ResponseWriter, raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	seen := make(map[primitive.ObjectID]struct{}, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			apierr.InvalidReference(w, "members", "members contains an id that does not reference an existing user")
			return nil, false
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	resolved, err := h.users.GetByIDs(ctx, ids)
	if err != nil {
		apierr.Internal(w)
		return nil, false
	}
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			apierr.InvalidReference(w, "members", "members contains an id that does not reference an existing user")
			return nil, false
		}
	}
	return ids, true
}
