// internal/app/features/boards/types.go
package boards

import (
	"context"

	"github.com/dalemusser/kanbanhub/internal/app/features/tasks"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createBoardRequest struct {
	Title   string   `json:"title"`
	Members []string `json:"members"`
}

type updateBoardRequest struct {
	Title   *string   `json:"title"`
	Members *[]string `json:"members"`
}

// summaryView is the board list/creation shape: live task counters
// instead of nested tasks.
type summaryView struct {
	ID                 primitive.ObjectID `json:"id"`
	Title              string             `json:"title"`
	MemberCount        int                `json:"member_count"`
	TicketCount        int64              `json:"ticket_count"`
	TasksToDoCount     int64              `json:"tasks_to_do_count"`
	TasksHighPrioCount int64              `json:"tasks_high_prio_count"`
	OwnerID            primitive.ObjectID `json:"owner_id"`
}

// detailView is the single-board shape: member roster expanded to user
// summaries plus the board's tasks in full view form.
type detailView struct {
	ID      primitive.ObjectID   `json:"id"`
	Title   string               `json:"title"`
	OwnerID primitive.ObjectID   `json:"owner_id"`
	Owner   models.UserSummary   `json:"owner_data"`
	Members []models.UserSummary `json:"users"`
	Tasks   []tasks.View         `json:"tasks"`
}

// rosterView is the PATCH response shape: no tasks, just the updated
// title and roster.
type rosterView struct {
	ID      primitive.ObjectID   `json:"id"`
	Title   string               `json:"title"`
	OwnerID primitive.ObjectID   `json:"owner_id"`
	Owner   models.UserSummary   `json:"owner_data"`
	Members []models.UserSummary `json:"users"`
}

// buildSummary computes a board's live task counters.
func (h *Handler) buildSummary(ctx context.Context, b models.Board) (summaryView, error) {
	total, err := h.tasks.CountByBoard(ctx, b.ID)
	if err != nil {
		return summaryView{}, err
	}
	todo, err := h.tasks.CountByBoardStatus(ctx, b.ID, models.StatusToDo)
	if err != nil {
		return summaryView{}, err
	}
	highPrio, err := h.tasks.CountByBoardPriority(ctx, b.ID, models.PriorityHigh)
	if err != nil {
		return summaryView{}, err
	}

	return summaryView{
		ID:                 b.ID,
		Title:              b.Title,
		MemberCount:        len(b.MemberIDs),
		TicketCount:        total,
		TasksToDoCount:     todo,
		TasksHighPrioCount: highPrio,
		OwnerID:            b.OwnerID,
	}, nil
}

// buildRoster expands the owner and member references to summaries.
// A member whose account was deleted is dropped from the roster view.
func (h *Handler) buildRoster(ctx context.Context, b models.Board) (models.UserSummary, []models.UserSummary, error) {
	ids := append([]primitive.ObjectID{b.OwnerID}, b.MemberIDs...)
	resolved, err := h.users.GetByIDs(ctx, ids)
	if err != nil {
		return models.UserSummary{}, nil, err
	}

	owner := models.ToUserSummary(resolved[b.OwnerID])
	members := make([]models.UserSummary, 0, len(b.MemberIDs))
	for _, id := range b.MemberIDs {
		if u, ok := resolved[id]; ok {
			members = append(members, models.ToUserSummary(u))
		}
	}
	return owner, members, nil
}
