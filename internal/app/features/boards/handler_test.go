package boards_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/kanbanhub/internal/app/features/boards"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"github.com/dalemusser/kanbanhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*boards.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := boards.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleCreateBoard_Success(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@test.com")
	member := fixtures.CreateUser(ctx, "Member", "member@test.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/boards", map[string]any{
		"title":   "Sprint 12",
		"members": []string{member.ID.Hex()},
	})
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleCreateBoard(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID          primitive.ObjectID `json:"id"`
		Title       string             `json:"title"`
		MemberCount int                `json:"member_count"`
		TicketCount int64              `json:"ticket_count"`
		OwnerID     primitive.ObjectID `json:"owner_id"`
	}
	testutil.DecodeBody(t, rec, &resp)

	if resp.Title != "Sprint 12" {
		t.Errorf("title: got %q", resp.Title)
	}
	if resp.MemberCount != 1 {
		t.Errorf("member_count: got %d, want 1", resp.MemberCount)
	}
	if resp.OwnerID != owner.ID {
		t.Errorf("owner_id: got %v, want %v", resp.OwnerID, owner.ID)
	}

	// The owner must not have been folded into the member set.
	var doc struct {
		MemberIDs []primitive.ObjectID `bson:"member_ids"`
	}
	if err := fixtures.DB().Collection("boards").FindOne(ctx, bson.M{"_id": resp.ID}).Decode(&doc); err != nil {
		t.Fatalf("load created board: %v", err)
	}
	if len(doc.MemberIDs) != 1 || doc.MemberIDs[0] != member.ID {
		t.Errorf("member_ids: got %v, want just the member", doc.MemberIDs)
	}
}

func TestHandleCreateBoard_UnknownMember(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@test.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/boards", map[string]any{
		"title":   "Sprint 12",
		"members": []string{primitive.NewObjectID().Hex()},
	})
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleCreateBoard(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := testutil.ErrorCode(t, rec); code != apierr.CodeInvalidReference {
		t.Errorf("error code: got %q, want %q", code, apierr.CodeInvalidReference)
	}

	// Nothing was written.
	n, err := fixtures.DB().Collection("boards").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count boards: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no boards, got %d", n)
	}
}

func TestHandleCreateBoard_EmptyTitle(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@test.com")

	req := testutil.NewJSONRequest(t, "POST", "/api/boards", map[string]any{"title": "   "})
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleCreateBoard(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if code := testutil.ErrorCode(t, rec); code != apierr.CodeValidation {
		t.Errorf("error code: got %q, want %q", code, apierr.CodeValidation)
	}
}

func TestServeBoardView_Access(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@test.com")
	member := fixtures.CreateUser(ctx, "Member", "member@test.com")
	outsider := fixtures.CreateUser(ctx, "Outsider", "outsider@test.com")
	board := fixtures.CreateBoard(ctx, "Visible", owner.ID, member.ID)

	serve := func(u models.User, boardID string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewJSONRequest(t, "GET", "/api/boards/"+boardID, nil)
		req = testutil.WithChiURLParam(req, "id", boardID)
		req = testutil.WithUser(req, u)
		rec := httptest.NewRecorder()
		handler.ServeBoardView(rec, req)
		return rec
	}

	if rec := serve(owner, board.ID.Hex()); rec.Code != http.StatusOK {
		t.Errorf("owner view: expected 200, got %d", rec.Code)
	}
	if rec := serve(member, board.ID.Hex()); rec.Code != http.StatusOK {
		t.Errorf("member view: expected 200, got %d", rec.Code)
	}
	if rec := serve(outsider, board.ID.Hex()); rec.Code != http.StatusForbidden {
		t.Errorf("outsider view: expected 403, got %d", rec.Code)
	}
	// Unknown board is 404 before any visibility check.
	if rec := serve(outsider, primitive.NewObjectID().Hex()); rec.Code != http.StatusNotFound {
		t.Errorf("unknown board: expected 404, got %d", rec.Code)
	}
}

func TestHandleEditBoard_MemberReplacementAllOrNothing(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@test.com")
	member := fixtures.CreateUser(ctx, "Member", "member@test.com")
	newMember := fixtures.CreateUser(ctx, "New", "new@test.com")
	board := fixtures.CreateBoard(ctx, "Team", owner.ID, member.ID)

	// One good id and one bad id: the whole replacement must fail and
	// the old roster must survive.
	req := testutil.NewJSONRequest(t, "PATCH", "/api/boards/"+board.ID.Hex(), map[string]any{
		"members": []string{newMember.ID.Hex(), primitive.NewObjectID().Hex()},
	})
	req = testutil.WithChiURLParam(req, "id", board.ID.Hex())
	req = testutil.WithUser(req, owner)

	rec := httptest.NewRecorder()
	handler.HandleEditBoard(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var doc struct {
		MemberIDs []primitive.ObjectID `bson:"member_ids"`
	}
	if err := fixtures.DB().Collection("boards").FindOne(ctx, bson.M{"_id": board.ID}).Decode(&doc); err != nil {
		t.Fatalf("reload board: %v", err)
	}
	if len(doc.MemberIDs) != 1 || doc.MemberIDs[0] != member.ID {
		t.Errorf("roster should be untouched, got %v", doc.MemberIDs)
	}
}

func TestHandleEditBoard_MemberCanRename(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@test.com")
	member := fixtures.CreateUser(ctx, "Member", "member@test.com")
	board := fixtures.CreateBoard(ctx, "Before", owner.ID, member.ID)

	req := testutil.NewJSONRequest(t, "PATCH", "/api/boards/"+board.ID.Hex(), map[string]any{
		"title": "After",
	})
	req = testutil.WithChiURLParam(req, "id", board.ID.Hex())
	req = testutil.WithUser(req, member)

	rec := httptest.NewRecorder()
	handler.HandleEditBoard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Title string `json:"title"`
	}
	testutil.DecodeBody(t, rec, &resp)
	if resp.Title != "After" {
		t.Errorf("title: got %q, want %q", resp.Title, "After")
	}
}

func TestHandleDeleteBoard_OwnerOnlyWithCascade(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@test.com")
	member := fixtures.CreateUser(ctx, "Member", "member@test.com")
	board := fixtures.CreateBoard(ctx, "Doomed", owner.ID, member.ID)
	task := fixtures.CreateTask(ctx, "Task", board.ID, member.ID)
	fixtures.CreateComment(ctx, task.ID, member.ID, "a comment")

	del := func(u models.User, id string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewJSONRequest(t, "DELETE", "/api/boards/"+id, nil)
		req = testutil.WithChiURLParam(req, "id", id)
		req = testutil.WithUser(req, u)
		rec := httptest.NewRecorder()
		handler.HandleDeleteBoard(rec, req)
		return rec
	}

	// Membership is not enough.
	if rec := del(member, board.ID.Hex()); rec.Code != http.StatusForbidden {
		t.Fatalf("member delete: expected 403, got %d", rec.Code)
	}

	if rec := del(owner, board.ID.Hex()); rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete: expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	for _, coll := range []string{"boards", "tasks", "comments"} {
		n, err := fixtures.DB().Collection(coll).CountDocuments(ctx, bson.M{})
		if err != nil {
			t.Fatalf("count %s: %v", coll, err)
		}
		if n != 0 {
			t.Errorf("expected %s to be empty after cascade, got %d", coll, n)
		}
	}

	// Second delete of the same id is 404.
	if rec := del(owner, board.ID.Hex()); rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete: expected 404, got %d", rec.Code)
	}
}
