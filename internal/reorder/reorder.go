// Package reorder computes position assignments for drag-style moves of a
// task within a list's incomplete ordering. Completed tasks are excluded
// from the position space and never move.
package reorder

import (
	"errors"
	"fmt"

	"daylist/internal/service"
)

// ErrTaskCompleted is returned when the moved task is in the completed
// section, which has no drag surface.
var ErrTaskCompleted = errors.New("completed tasks cannot be reordered")

// Plan is the outcome of a move: the full cache order to display and the
// position batch to persist.
type Plan struct {
	// Tasks is the new cache order: incomplete tasks in their post-move
	// order, followed by the untouched completed tasks.
	Tasks []service.Task

	// Orders is the dense (id, position) batch for the incomplete set.
	Orders []service.TaskOrder

	// NoOp is set when the move lands on the task's current index.
	// A no-op plan must not be persisted.
	NoOp bool
}

// Move computes the plan for moving taskID to targetIndex within the
// incomplete subset of tasks. Standard single-element splice semantics:
// the task is removed from its current index and inserted at targetIndex.
// Positions are re-densified to 0..n-1 regardless of prior values.
func Move(tasks []service.Task, taskID string, targetIndex int) (Plan, error) {
	incomplete, completed := partition(tasks)

	source := -1
	for i, t := range incomplete {
		if t.ID == taskID {
			source = i
			break
		}
	}
	if source < 0 {
		for _, t := range completed {
			if t.ID == taskID {
				return Plan{}, ErrTaskCompleted
			}
		}
		return Plan{}, fmt.Errorf("task %s: %w", taskID, service.ErrNotFound)
	}

	if targetIndex < 0 || targetIndex >= len(incomplete) {
		return Plan{}, fmt.Errorf("target index out of range: %d: %w", targetIndex, service.ErrValidation)
	}

	if targetIndex == source {
		return Plan{Tasks: tasks, NoOp: true}, nil
	}

	moved := splice(incomplete, source, targetIndex)
	orders := Densify(moved)
	for i := range moved {
		moved[i].Position = i
	}

	return Plan{
		Tasks:  append(moved, completed...),
		Orders: orders,
	}, nil
}

// Densify assigns positions 0..n-1 to tasks by array order, independent of
// any prior position values.
func Densify(tasks []service.Task) []service.TaskOrder {
	orders := make([]service.TaskOrder, len(tasks))
	for i, t := range tasks {
		orders[i] = service.TaskOrder{ID: t.ID, Position: i}
	}
	return orders
}

// partition splits tasks into incomplete (order preserved) and completed.
func partition(tasks []service.Task) (incomplete, completed []service.Task) {
	for _, t := range tasks {
		if t.IsCompleted {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, completed
}

// splice returns a copy of tasks with the element at source removed and
// reinserted at target.
func splice(tasks []service.Task, source, target int) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	out = append(out, tasks[:source]...)
	out = append(out, tasks[source+1:]...)

	out = append(out, service.Task{})
	copy(out[target+1:], out[target:])
	out[target] = tasks[source]
	return out
}
