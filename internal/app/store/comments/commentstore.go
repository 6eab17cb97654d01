// internal/app/store/comments/commentstore.go
package commentstore

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
	return &Store{c: db.Collection("comments")}
}

func (s *Store) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Comment, error) {
	var c models.Comment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// ListByTask returns a task's comments in ascending creation order,
// with _id as a stable tiebreak for comments created in the same
// millisecond.
func (s *Store) ListByTask(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []models.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByTask returns the number of comments on a task.
func (s *Store) CountByTask(ctx context.Context, taskID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"task_id": taskID})
}

// Delete removes a comment by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByTask removes all comments on one task (task-delete cascade).
func (s *Store) DeleteByTask(ctx context.Context, taskID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"task_id": taskID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByTasks removes all comments on the given tasks (board-delete
// cascade; run before the tasks themselves are removed).
func (s *Store) DeleteByTasks(ctx context.Context, taskIDs []primitive.ObjectID) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"task_id": bson.M{"$in": taskIDs}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
