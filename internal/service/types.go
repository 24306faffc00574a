// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Task represents a single task item.
type Task struct {
	ID          string     `json:"id"`
	ListID      string     `json:"list_id"`
	Title       string     `json:"title"`
	IsCompleted bool       `json:"is_completed"`
	IsImportant bool       `json:"is_important"`
	Position    int        `json:"position"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskList represents a task list.
type TaskList struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// TaskPatch describes a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	IsImportant *bool   `json:"is_important,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.IsCompleted == nil && p.IsImportant == nil
}

// TaskOrder is one entry of a reorder batch: a task and its new position.
type TaskOrder struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}
