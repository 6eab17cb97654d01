// internal/app/store/tokens/tokenstore.go
package tokenstore

// Opaque bearer tokens. A token is 32 bytes of CSPRNG output, hex
// encoded; nothing about the user is derivable from it. Expiry is
// enforced both in UserIDForToken and by a TTL index on expires_at.

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrInvalidToken = errors.New("token is unknown or expired")
)

type Store struct {
	c   *mongo.Collection
	ttl time.Duration
}

// New creates a token Store. ttl bounds how long an issued token stays
// valid without being refreshed.
func New(db *mongo.Database, ttl time.Duration) *Store {
	return &Store{c: db.Collection("auth_tokens"), ttl: ttl}
}

// Issue creates and persists a fresh opaque token for the user.
func (s *Store) Issue(ctx context.Context, userID primitive.ObjectID) (models.AuthToken, error) {
	raw := securecookie.GenerateRandomKey(32)
	if raw == nil {
		return models.AuthToken{}, errors.New("random source unavailable")
	}

	now := time.Now().UTC()
	tok := models.AuthToken{
		ID:         primitive.NewObjectID(),
		TokenID:    uuid.NewString(),
		Token:      hex.EncodeToString(raw),
		UserID:     userID,
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if _, err := s.c.InsertOne(ctx, tok); err != nil {
		return models.AuthToken{}, err
	}
	return tok, nil
}

// UserIDForToken resolves an opaque token to the user it was issued to.
// Unknown and expired tokens both surface as ErrInvalidToken; the
// last_used_at stamp is refreshed on every successful resolution.
func (s *Store) UserIDForToken(ctx context.Context, token string) (primitive.ObjectID, error) {
	now := time.Now().UTC()

	var tok models.AuthToken
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"token": token, "expires_at": bson.M{"$gt": now}},
		bson.M{"$set": bson.M{"last_used_at": now}},
	).Decode(&tok)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, ErrInvalidToken
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return tok.UserID, nil
}

// Revoke invalidates a single token (logout).
func (s *Store) Revoke(ctx context.Context, token string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"token": token})
	return err
}

// RevokeAllForUser invalidates every token a user holds.
func (s *Store) RevokeAllForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
