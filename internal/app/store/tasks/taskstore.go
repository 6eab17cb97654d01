// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"time"

	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) ListByBoard(ctx context.Context, boardID primitive.ObjectID) ([]models.Task, error) {
	return s.list(ctx, bson.M{"board_id": boardID})
}

// ListByAssignee returns every task where the user is the assignee.
func (s *Store) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.list(ctx, bson.M{"assignee_id": userID})
}

// ListByReviewer returns every task where the user is the reviewer.
func (s *Store) ListByReviewer(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.list(ctx, bson.M{"reviewer_id": userID})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// FieldUpdates carries a partial task update. Nil pointers mean "leave
// unchanged". ClearAssignee/ClearReviewer remove the role outright and
// take precedence over the corresponding ID field.
type FieldUpdates struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
	ClearDue    bool

	AssigneeID    *primitive.ObjectID
	ClearAssignee bool
	ReviewerID    *primitive.ObjectID
	ClearReviewer bool
}

// UpdateFields applies a partial update in one document write. Fields
// absent from the update are untouched; cleared roles are $unset.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, f FieldUpdates) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if f.Title != nil {
		set["title"] = *f.Title
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}
	if f.Status != nil {
		set["status"] = *f.Status
	}
	if f.Priority != nil {
		set["priority"] = *f.Priority
	}
	switch {
	case f.ClearDue:
		unset["due_date"] = ""
	case f.DueDate != nil:
		set["due_date"] = *f.DueDate
	}
	switch {
	case f.ClearAssignee:
		unset["assignee_id"] = ""
	case f.AssigneeID != nil:
		set["assignee_id"] = *f.AssigneeID
	}
	switch {
	case f.ClearReviewer:
		unset["reviewer_id"] = ""
	case f.ReviewerID != nil:
		set["reviewer_id"] = *f.ReviewerID
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := s.c.UpdateByID(ctx, id, update)
	return err
}

// Delete removes a task by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByBoard removes all tasks on a board. Part of the board
// cascade; run inside the same transaction as the comment cleanup.
func (s *Store) DeleteByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"board_id": boardID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// IDsByBoard returns the ids of all tasks on a board, used to scope the
// comment cascade before the tasks themselves are removed.
func (s *Store) IDsByBoard(ctx context.Context, boardID primitive.ObjectID) ([]primitive.ObjectID, error) {
	proj := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"board_id": boardID}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// CountByBoard returns the number of tasks on a board.
func (s *Store) CountByBoard(ctx context.Context, boardID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"board_id": boardID})
}

// CountByBoardStatus returns the number of tasks on a board with the
// given status.
func (s *Store) CountByBoardStatus(ctx context.Context, boardID primitive.ObjectID, status string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"board_id": boardID, "status": status})
}

// CountByBoardPriority returns the number of tasks on a board with the
// given priority.
func (s *Store) CountByBoardPriority(ctx context.Context, boardID primitive.ObjectID, priority string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"board_id": boardID, "priority": priority})
}
