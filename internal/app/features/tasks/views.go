// internal/app/features/tasks/views.go
package tasks

import (
	"context"
	"time"

	commentstore "github.com/dalemusser/kanbanhub/internal/app/store/comments"
	userstore "github.com/dalemusser/kanbanhub/internal/app/store/users"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// View is the full task representation on the wire: role references are
// expanded to user summaries and the comment count is attached. The
// boards feature nests these in its board detail response.
type View struct {
	ID            primitive.ObjectID  `json:"id"`
	Board         primitive.ObjectID  `json:"board"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        string              `json:"status"`
	Priority      string              `json:"priority"`
	DueDate       *time.Time          `json:"due_date"`
	Assignee      *models.UserSummary `json:"assignee"`
	Reviewer      *models.UserSummary `json:"reviewer"`
	Creator       *models.UserSummary `json:"creator"`
	CommentsCount int64               `json:"comments_count"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// BuildViews expands a task list into wire views with one user lookup
// for the whole batch. A role reference that no longer resolves (its
// user was deleted) renders as null rather than failing the request.
func BuildViews(ctx context.Context, users *userstore.Store, comments *commentstore.Store, tasks []models.Task) ([]View, error) {
	idSet := make(map[primitive.ObjectID]struct{})
	for _, t := range tasks {
		idSet[t.CreatorID] = struct{}{}
		if t.AssigneeID != nil {
			idSet[*t.AssigneeID] = struct{}{}
		}
		if t.ReviewerID != nil {
			idSet[*t.ReviewerID] = struct{}{}
		}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	resolved, err := users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(tasks))
	for _, t := range tasks {
		n, err := comments.CountByTask(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, assemble(t, resolved, n))
	}
	return views, nil
}

// BuildView expands a single task.
func BuildView(ctx context.Context, users *userstore.Store, comments *commentstore.Store, t models.Task) (View, error) {
	views, err := BuildViews(ctx, users, comments, []models.Task{t})
	if err != nil {
		return View{}, err
	}
	return views[0], nil
}

func assemble(t models.Task, resolved map[primitive.ObjectID]models.User, commentCount int64) View {
	summary := func(id *primitive.ObjectID) *models.UserSummary {
		if id == nil {
			return nil
		}
		u, ok := resolved[*id]
		if !ok {
			return nil
		}
		s := models.ToUserSummary(u)
		return &s
	}

	return View{
		ID:            t.ID,
		Board:         t.BoardID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		Priority:      t.Priority,
		DueDate:       t.DueDate,
		Assignee:      summary(t.AssigneeID),
		Reviewer:      summary(t.ReviewerID),
		Creator:       summary(&t.CreatorID),
		CommentsCount: commentCount,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
