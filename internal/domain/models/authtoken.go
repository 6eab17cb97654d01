// internal/domain/models/authtoken.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthToken is an opaque bearer token mapped to a user identity.
// Tokens are random strings (never derived from user data) and expire
// via a TTL index on expires_at.
type AuthToken struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	TokenID string             `bson:"token_id"` // stable identifier for audit/revocation logs
	Token   string             `bson:"token"`    // the opaque bearer credential
	UserID  primitive.ObjectID `bson:"user_id"`

	CreatedAt  time.Time `bson:"created_at"`
	LastUsedAt time.Time `bson:"last_used_at"`
	ExpiresAt  time.Time `bson:"expires_at"`
}
