package service

import "context"

// Service defines the interface for task backend operations.
// All REST API calls go through this interface.
// Commands and the collection manager never speak HTTP directly.
type Service interface {
	// ListLists returns all of the user's task lists in server order.
	// Exactly one list is marked default.
	ListLists(ctx context.Context) ([]TaskList, error)

	// CreateList creates a new task list. Names are unique per user.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// RenameList changes a list's name.
	RenameList(ctx context.Context, listID, name string) (TaskList, error)

	// DeleteList deletes a task list by ID, cascading its tasks.
	DeleteList(ctx context.Context, listID string) error

	// ListTasks returns a list's tasks: incomplete tasks by ascending
	// position, then completed tasks in server-defined order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// ListImportant returns all important tasks across the user's lists.
	// No ordering is guaranteed across lists.
	ListImportant(ctx context.Context) ([]Task, error)

	// CreateTask creates a task in the given list. The server assigns the
	// position (current max among incomplete tasks, plus one).
	CreateTask(ctx context.Context, listID, title string) (Task, error)

	// UpdateTask applies a partial update and returns the server's row.
	// Toggling completion never changes the task's position.
	UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, taskID string) error

	// ReorderTasks atomically replaces the positions of a list's incomplete
	// tasks. The batch must be a dense, duplicate-free assignment.
	ReorderTasks(ctx context.Context, listID string, orders []TaskOrder) error
}
