// Package taskpolicy decides who may view, edit, and delete tasks.
//
// Authorization rules:
//   - The board owner and board members can view and edit any task on
//     the board (including commenting on it).
//   - Only the task's creator or the board owner can delete a task.
//
// Predicates are pure: the caller loads the task and its board (the
// board carries the member set) and passes both in.
package taskpolicy

import (
	"github.com/dalemusser/kanbanhub/internal/app/policy/boardpolicy"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanView reports whether the user may see the task. Visibility follows
// the task's board: owner or member.
func CanView(userID primitive.ObjectID, board models.Board) bool {
	return boardpolicy.CanView(userID, board)
}

// CanEdit reports whether the user may modify the task's fields.
// Same population as CanView: board owner or member.
func CanEdit(userID primitive.ObjectID, board models.Board) bool {
	return boardpolicy.CanView(userID, board)
}

// CanDelete reports whether the user may delete the task: the task's
// creator or the board owner. A plain member who did not create the
// task cannot delete it, even though they can edit it.
func CanDelete(userID primitive.ObjectID, task models.Task, board models.Board) bool {
	return userID == task.CreatorID || userID == board.OwnerID
}
