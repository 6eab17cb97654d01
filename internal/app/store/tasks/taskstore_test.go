package taskstore_test

import (
	"testing"
	"time"

	taskstore "github.com/dalemusser/kanbanhub/internal/app/store/tasks"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"github.com/dalemusser/kanbanhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	board := fixtures.CreateBoard(ctx, "Board", creator.ID)

	created, err := store.Create(ctx, models.Task{
		BoardID:   board.ID,
		Title:     "Write the report",
		Status:    models.StatusToDo,
		Priority:  models.PriorityMedium,
		CreatorID: creator.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.AssigneeID != nil || created.ReviewerID != nil {
		t.Error("roles should start unset")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_UpdateFields_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	assignee := fixtures.CreateUser(ctx, "Assignee", "assignee@example.com")
	board := fixtures.CreateBoard(ctx, "Board", creator.ID, assignee.ID)
	task := fixtures.CreateTask(ctx, "Original", board.ID, creator.ID)

	status := models.StatusInProgress
	if err := store.UpdateFields(ctx, task.ID, taskstore.FieldUpdates{
		Status:     &status,
		AssigneeID: &assignee.ID,
	}); err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	updated, err := store.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("Status: got %q", updated.Status)
	}
	if updated.AssigneeID == nil || *updated.AssigneeID != assignee.ID {
		t.Errorf("AssigneeID: got %v, want %v", updated.AssigneeID, assignee.ID)
	}
	// Untouched fields are preserved.
	if updated.Title != "Original" {
		t.Errorf("Title should be unchanged, got %q", updated.Title)
	}
	if updated.Priority != models.PriorityMedium {
		t.Errorf("Priority should be unchanged, got %q", updated.Priority)
	}
}

func TestStore_UpdateFields_ClearRoles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "Creator", "creator@example.com")
	helper := fixtures.CreateUser(ctx, "Helper", "helper@example.com")
	board := fixtures.CreateBoard(ctx, "Board", creator.ID, helper.ID)
	task := fixtures.CreateTask(ctx, "Task", board.ID, creator.ID)

	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Millisecond)
	if err := store.UpdateFields(ctx, task.ID, taskstore.FieldUpdates{
		AssigneeID: &helper.ID,
		ReviewerID: &helper.ID,
		DueDate:    &due,
	}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}

	if err := store.UpdateFields(ctx, task.ID, taskstore.FieldUpdates{
		ClearAssignee: true,
		ClearDue:      true,
	}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	updated, err := store.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if updated.AssigneeID != nil {
		t.Errorf("assignee should be cleared, got %v", updated.AssigneeID)
	}
	if updated.DueDate != nil {
		t.Errorf("due date should be cleared, got %v", updated.DueDate)
	}
	// Reviewer survives an update that only clears the assignee.
	if updated.ReviewerID == nil || *updated.ReviewerID != helper.ID {
		t.Errorf("reviewer should be untouched, got %v", updated.ReviewerID)
	}
}

func TestStore_ListByAssigneeAndReviewer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	worker := fixtures.CreateUser(ctx, "Worker", "worker@example.com")
	boardA := fixtures.CreateBoard(ctx, "A", owner.ID, worker.ID)
	boardB := fixtures.CreateBoard(ctx, "B", owner.ID, worker.ID)

	assigned := fixtures.CreateTask(ctx, "Assigned", boardA.ID, owner.ID)
	reviewing := fixtures.CreateTask(ctx, "Reviewing", boardB.ID, owner.ID)
	fixtures.CreateTask(ctx, "Unrelated", boardA.ID, owner.ID)

	if err := store.UpdateFields(ctx, assigned.ID, taskstore.FieldUpdates{AssigneeID: &worker.ID}); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := store.UpdateFields(ctx, reviewing.ID, taskstore.FieldUpdates{ReviewerID: &worker.ID}); err != nil {
		t.Fatalf("set reviewer failed: %v", err)
	}

	byAssignee, err := store.ListByAssignee(ctx, worker.ID)
	if err != nil {
		t.Fatalf("ListByAssignee failed: %v", err)
	}
	if len(byAssignee) != 1 || byAssignee[0].ID != assigned.ID {
		t.Errorf("ListByAssignee: got %d tasks", len(byAssignee))
	}

	byReviewer, err := store.ListByReviewer(ctx, worker.ID)
	if err != nil {
		t.Fatalf("ListByReviewer failed: %v", err)
	}
	if len(byReviewer) != 1 || byReviewer[0].ID != reviewing.ID {
		t.Errorf("ListByReviewer: got %d tasks", len(byReviewer))
	}
}

func TestStore_BoardCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	board := fixtures.CreateBoard(ctx, "Board", owner.ID)
	other := fixtures.CreateBoard(ctx, "Other", owner.ID)

	t1 := fixtures.CreateTask(ctx, "One", board.ID, owner.ID)
	fixtures.CreateTask(ctx, "Two", board.ID, owner.ID)
	fixtures.CreateTask(ctx, "Elsewhere", other.ID, owner.ID)

	high := models.PriorityHigh
	done := models.StatusDone
	if err := store.UpdateFields(ctx, t1.ID, taskstore.FieldUpdates{Priority: &high, Status: &done}); err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	total, err := store.CountByBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("CountByBoard failed: %v", err)
	}
	if total != 2 {
		t.Errorf("CountByBoard: got %d, want 2", total)
	}

	todo, err := store.CountByBoardStatus(ctx, board.ID, models.StatusToDo)
	if err != nil {
		t.Fatalf("CountByBoardStatus failed: %v", err)
	}
	if todo != 1 {
		t.Errorf("to-do count: got %d, want 1", todo)
	}

	highCount, err := store.CountByBoardPriority(ctx, board.ID, models.PriorityHigh)
	if err != nil {
		t.Fatalf("CountByBoardPriority failed: %v", err)
	}
	if highCount != 1 {
		t.Errorf("high priority count: got %d, want 1", highCount)
	}
}

func TestStore_DeleteByBoard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "Owner", "owner@example.com")
	board := fixtures.CreateBoard(ctx, "Board", owner.ID)
	survivorBoard := fixtures.CreateBoard(ctx, "Survivor", owner.ID)

	fixtures.CreateTask(ctx, "One", board.ID, owner.ID)
	fixtures.CreateTask(ctx, "Two", board.ID, owner.ID)
	keep := fixtures.CreateTask(ctx, "Keep", survivorBoard.ID, owner.ID)

	ids, err := store.IDsByBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("IDsByBoard failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("IDsByBoard: got %d ids, want 2", len(ids))
	}

	deleted, err := store.DeleteByBoard(ctx, board.ID)
	if err != nil {
		t.Fatalf("DeleteByBoard failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteByBoard: got %d, want 2", deleted)
	}

	if _, err := store.GetByID(ctx, keep.ID); err != nil {
		t.Errorf("task on another board should survive: %v", err)
	}
}
