// internal/app/store/boards/boardstore.go
package boardstore

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
	return &Store{c: db.Collection("boards")}
}

// Create inserts a new board. The member set is stored as given; the
// owner is never auto-added to it.
func (s *Store) Create(ctx context.Context, b models.Board) (models.Board, error) {
	now := time.Now().UTC()
	b.ID = primitive.NewObjectID()
	if b.MemberIDs == nil {
		b.MemberIDs = []primitive.ObjectID{}
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, b); err != nil {
		return models.Board{}, err
	}
	return b, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Board, error) {
	var b models.Board
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return models.Board{}, err
	}
	return b, nil
}

// ListForUser returns every board where the user is the owner or in the
// member set, newest first. Matching by _id makes the result free of
// duplicates even if a user somehow appears as both owner and member.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Board, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"owner_id": userID},
		bson.M{"member_ids": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var boards []models.Board
	if err := cur.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// UpdateTitle sets the board title.
func (s *Store) UpdateTitle(ctx context.Context, id primitive.ObjectID, title string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":      title,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ReplaceMembers swaps the entire member set in a single document write,
// so callers observe either the old set or the new one, never a mix.
func (s *Store) ReplaceMembers(ctx context.Context, id primitive.ObjectID, memberIDs []primitive.ObjectID) error {
	if memberIDs == nil {
		memberIDs = []primitive.ObjectID{}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"member_ids": memberIDs,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Delete removes a board by ID. Returns the number of documents deleted
// (0 or 1); callers use 0 to report NotFound on repeated deletes.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
