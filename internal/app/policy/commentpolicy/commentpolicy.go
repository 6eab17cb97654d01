// Package commentpolicy decides who may delete comments.
//
// Authorization rules:
//   - Only the comment's author can delete it. Board ownership grants
//     no authority over other users' comments.
//
// Comment creation and listing follow task visibility and are covered
// by taskpolicy.CanView on the task's board.
package commentpolicy

import (
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanDelete reports whether the user may delete the comment.
// Author-exclusive.
func CanDelete(userID primitive.ObjectID, comment models.Comment) bool {
	return userID == comment.AuthorID
}
