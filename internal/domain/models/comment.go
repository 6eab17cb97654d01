// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a remark on a task. The author is immutable and is the
// only user allowed to delete the comment.
type Comment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID   primitive.ObjectID `bson:"task_id" json:"task_id"`
	AuthorID primitive.ObjectID `bson:"author_id" json:"author_id"`
	Content  string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
