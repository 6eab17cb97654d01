// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Well-known task status and priority values. Status and priority are
// stored as free-form short strings; these constants cover the values
// the board summaries aggregate on.
const (
	StatusToDo       = "to-do"
	StatusInProgress = "in-progress"
	StatusDone       = "done"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a ticket on a board.
//
// Assignee and reviewer, when set, must be the board owner or a board
// member at the time of assignment. That is validated at write time
// only: removing a member later leaves any stale assignee/reviewer
// reference in place.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	BoardID     primitive.ObjectID  `bson:"board_id" json:"board"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description"`
	Status      string              `bson:"status,omitempty" json:"status"`
	Priority    string              `bson:"priority,omitempty" json:"priority"`
	AssigneeID  *primitive.ObjectID `bson:"assignee_id,omitempty" json:"-"`
	ReviewerID  *primitive.ObjectID `bson:"reviewer_id,omitempty" json:"-"`
	DueDate     *time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatorID   primitive.ObjectID  `bson:"creator_id" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
