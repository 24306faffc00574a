// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"daylist/internal/service"
)

// FakeService is an in-memory implementation of service.Service for tests.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks
	seq   int

	// Calls counts invocations per method name, for asserting that an
	// operation never reached the backend.
	Calls map[string]int

	// LastReorder records the most recent ReorderTasks batch.
	LastReorder []service.TaskOrder

	// Error injection for testing.
	ListListsErr     error
	CreateListErr    error
	RenameListErr    error
	DeleteListErr    error
	ListTasksErr     map[string]error // listID -> error
	ListImportantErr error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
	ReorderTasksErr  error
}

// NewFakeService creates a FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks:        make(map[string][]service.Task),
		ListTasksErr: make(map[string]error),
		Calls:        make(map[string]int),
	}
	fs.lists = []service.TaskList{
		{ID: "default", Name: "My Day", IsDefault: true},
	}
	fs.tasks["default"] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Name: name})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask adds an incomplete task at the end of a list's ordering.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:       taskID,
		ListID:   listID,
		Title:    title,
		Position: f.nextPosition(listID),
	})
}

// AddImportantTask adds an incomplete important task to a list.
func (f *FakeService) AddImportantTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:          taskID,
		ListID:      listID,
		Title:       title,
		IsImportant: true,
		Position:    f.nextPosition(listID),
	})
}

// TasksIn returns a list's stored tasks, for assertions.
func (f *FakeService) TasksIn(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks[listID]))
	copy(out, f.tasks[listID])
	return out
}

func (f *FakeService) nextPosition(listID string) int {
	max := -1
	for _, t := range f.tasks[listID] {
		if !t.IsCompleted && t.Position > max {
			max = t.Position
		}
	}
	return max + 1
}

func (f *FakeService) count(method string) {
	f.mu.Lock()
	f.Calls[method]++
	f.mu.Unlock()
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	f.count("ListLists")
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	f.count("CreateList")
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.lists {
		if strings.EqualFold(l.Name, name) {
			return service.TaskList{}, fmt.Errorf("list name taken: %w", service.ErrValidation)
		}
	}
	id := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	list := service.TaskList{ID: id, Name: name}
	f.lists = append(f.lists, list)
	f.tasks[id] = nil
	return list, nil
}

// RenameList implements service.Service.
func (f *FakeService) RenameList(ctx context.Context, listID, name string) (service.TaskList, error) {
	f.count("RenameList")
	if f.RenameListErr != nil {
		return service.TaskList{}, f.RenameListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, l := range f.lists {
		if l.ID == listID {
			f.lists[i].Name = name
			return f.lists[i], nil
		}
	}
	return service.TaskList{}, service.ErrNotFound
}

// DeleteList implements service.Service.
func (f *FakeService) DeleteList(ctx context.Context, listID string) error {
	f.count("DeleteList")
	if f.DeleteListErr != nil {
		return f.DeleteListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, l := range f.lists {
		if l.ID == listID {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			delete(f.tasks, listID)
			return nil
		}
	}
	return service.ErrNotFound
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	f.count("ListTasks")
	if err, ok := f.ListTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}

	// Incomplete by position, then completed.
	var incomplete, completed []service.Task
	for _, t := range tasks {
		if t.IsCompleted {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	for i := 1; i < len(incomplete); i++ {
		for j := i; j > 0 && incomplete[j-1].Position > incomplete[j].Position; j-- {
			incomplete[j-1], incomplete[j] = incomplete[j], incomplete[j-1]
		}
	}
	return append(incomplete, completed...), nil
}

// ListImportant implements service.Service.
func (f *FakeService) ListImportant(ctx context.Context) ([]service.Task, error) {
	f.count("ListImportant")
	if f.ListImportantErr != nil {
		return nil, f.ListImportantErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []service.Task
	for _, l := range f.lists {
		for _, t := range f.tasks[l.ID] {
			if t.IsImportant {
				result = append(result, t)
			}
		}
	}
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	f.count("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, service.ErrNotFound
	}

	f.seq++
	now := time.Now()
	task := service.Task{
		ID:        fmt.Sprintf("t%d", f.seq),
		ListID:    listID,
		Title:     title,
		Position:  f.nextPosition(listID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.tasks[listID] = append(f.tasks[listID], task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, taskID string, patch service.TaskPatch) (service.Task, error) {
	f.count("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for listID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID != taskID {
				continue
			}
			if patch.Title != nil {
				t.Title = *patch.Title
			}
			if patch.IsCompleted != nil {
				t.IsCompleted = *patch.IsCompleted
				if *patch.IsCompleted {
					now := time.Now()
					t.CompletedAt = &now
				} else {
					t.CompletedAt = nil
				}
			}
			if patch.IsImportant != nil {
				t.IsImportant = *patch.IsImportant
			}
			t.UpdatedAt = time.Now()
			f.tasks[listID][i] = t
			return t, nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, taskID string) error {
	f.count("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for listID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == taskID {
				f.tasks[listID] = append(tasks[:i], tasks[i+1:]...)
				return nil
			}
		}
	}
	return service.ErrNotFound
}

// ReorderTasks implements service.Service.
func (f *FakeService) ReorderTasks(ctx context.Context, listID string, orders []service.TaskOrder) error {
	f.count("ReorderTasks")
	if f.ReorderTasksErr != nil {
		return f.ReorderTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return service.ErrNotFound
	}

	seen := make(map[int]bool)
	byID := make(map[string]int)
	for _, o := range orders {
		if seen[o.Position] {
			return fmt.Errorf("duplicate position %d: %w", o.Position, service.ErrConflict)
		}
		seen[o.Position] = true
		byID[o.ID] = o.Position
	}
	for i, t := range tasks {
		if pos, ok := byID[t.ID]; ok {
			if t.ListID != listID {
				return service.ErrForbidden
			}
			tasks[i].Position = pos
		}
	}
	f.LastReorder = orders
	return nil
}
