// Package boardpolicy decides who may view, edit, and delete boards and
// who may create tasks or hold task roles on them.
//
// Authorization rules:
//   - The owner and every member can view and edit a board and create
//     tasks on it.
//   - Only the owner can delete a board.
//   - Only the owner or a member is eligible for a task role
//     (assignee/reviewer) on the board.
//
// All predicates are pure functions over loaded entities: they perform
// no I/O, never fail, and return a result for any well-formed input.
// Callers load the board (with its member set) first and translate a
// false result into a forbidden outcome.
package boardpolicy

import (
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanView reports whether the user may see the board and its contents.
// True iff the user is the owner or in the member set. The owner does
// not need to be a member.
func CanView(userID primitive.ObjectID, board models.Board) bool {
	return userID == board.OwnerID || board.HasMember(userID)
}

// CanEdit reports whether the user may change the board's title or
// member set. Same predicate as CanView: owner or member.
func CanEdit(userID primitive.ObjectID, board models.Board) bool {
	return CanView(userID, board)
}

// CanDelete reports whether the user may delete the board. Strictly
// narrower than CanEdit: owner only. A member can edit but not delete.
func CanDelete(userID primitive.ObjectID, board models.Board) bool {
	return userID == board.OwnerID
}

// CanCreateTask reports whether the user may create tasks on the board.
func CanCreateTask(userID primitive.ObjectID, board models.Board) bool {
	return CanView(userID, board)
}

// CanAssignRole reports whether candidateID is eligible to hold a task
// role (assignee or reviewer) on the board. The candidate must be the
// board owner or a board member at assignment time; this is not
// re-checked when the member set changes later.
func CanAssignRole(candidateID primitive.ObjectID, board models.Board) bool {
	return candidateID == board.OwnerID || board.HasMember(candidateID)
}
