// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account. The email address doubles as the login
// handle and is unique across the system (enforced by a unique index on
// the folded email_ci field).
//
// NOTE:
//   - Board membership is not embedded on User. Boards carry an owner
//     reference and an explicit member-id set; query the boards
//     collection to discover a user's boards.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	FullName     string             `bson:"full_name" json:"fullname"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the projection of a User embedded wherever a nested
// user view is needed (board members, task assignee/reviewer/creator,
// comment authors).
type UserSummary struct {
	ID       primitive.ObjectID `json:"id"`
	Email    string             `json:"email"`
	FullName string             `json:"fullname"`
}

// ToUserSummary projects a User to its embeddable summary form.
func ToUserSummary(u User) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
	}
}
