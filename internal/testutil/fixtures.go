package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given name and email.
// The password hash is a placeholder; use the identity endpoints to
// exercise real credential flows.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		EmailCI:      text.Fold(email),
		FullName:     fullName,
		PasswordHash: "$2a$10$testfixturehashnotausablecredential000000000000000000",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateBoard creates a test board owned by ownerID with the given
// members. The owner is not added to the member set.
func (f *Fixtures) CreateBoard(ctx context.Context, title string, ownerID primitive.ObjectID, memberIDs ...primitive.ObjectID) models.Board {
	f.t.Helper()

	if memberIDs == nil {
		memberIDs = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	board := models.Board{
		ID:        primitive.NewObjectID(),
		Title:     title,
		OwnerID:   ownerID,
		MemberIDs: memberIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("boards").InsertOne(ctx, board); err != nil {
		f.t.Fatalf("failed to create test board: %v", err)
	}
	return board
}

// CreateTask creates a test task on the board with creatorID as the
// creator and "to-do"/"medium" defaults.
func (f *Fixtures) CreateTask(ctx context.Context, title string, boardID, creatorID primitive.ObjectID) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:        primitive.NewObjectID(),
		BoardID:   boardID,
		Title:     title,
		Status:    models.StatusToDo,
		Priority:  models.PriorityMedium,
		CreatorID: creatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	return task
}

// CreateComment creates a test comment on the task.
func (f *Fixtures) CreateComment(ctx context.Context, taskID, authorID primitive.ObjectID, content string) models.Comment {
	f.t.Helper()

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("comments").InsertOne(ctx, comment); err != nil {
		f.t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
