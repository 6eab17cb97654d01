// internal/app/features/tasks/types.go
package tasks

import (
	"encoding/json"
	"time"
)

type createTaskRequest struct {
	Board       string     `json:"board"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	AssigneeID  *string    `json:"assignee_id"`
	ReviewerID  *string    `json:"reviewer_id"`
}

// optional distinguishes "field absent" (set=false) from "field present
// as JSON null" (set=true, value=nil), which partial updates need for
// the null-clears-the-role contract.
type optional[T any] struct {
	set   bool
	value *T
}

func (o *optional[T]) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		o.value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.value = &v
	return nil
}

type updateTaskRequest struct {
	Title       optional[string]    `json:"title"`
	Description optional[string]    `json:"description"`
	Status      optional[string]    `json:"status"`
	Priority    optional[string]    `json:"priority"`
	DueDate     optional[time.Time] `json:"due_date"`
	AssigneeID  optional[string]    `json:"assignee_id"`
	ReviewerID  optional[string]    `json:"reviewer_id"`
}

// Status and priority are free-form short strings; maxLabelLen matches
// the storage cap and is the only constraint placed on them.
const maxLabelLen = 50
