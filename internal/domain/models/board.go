// internal/domain/models/board.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board groups tasks and the users allowed to work on them.
//
// Invariants:
//   - Exactly one owner, set at creation, immutable afterward.
//   - The owner is implicitly privileged and is NOT auto-added to the
//     member set; a board with an empty member set is still fully
//     visible and editable by its owner.
type Board struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	OwnerID   primitive.ObjectID   `bson:"owner_id" json:"owner_id"`
	MemberIDs []primitive.ObjectID `bson:"member_ids" json:"member_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether id is in the board's member set.
// The owner is not a member unless explicitly added.
func (b Board) HasMember(id primitive.ObjectID) bool {
	for _, m := range b.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}
