// Package collection owns the client-visible task set for the active view.
// A Manager is one session's cache: it applies optimistic mutations for
// responsiveness and reconciles them with server-confirmed rows. The cache
// is never authoritative; the server is.
package collection

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"daylist/internal/reorder"
	"daylist/internal/service"
	"daylist/internal/view"
)

// Manager holds the task cache for the currently selected view. Construct
// one per session and pass it explicitly; it is not a singleton.
//
// Failed persists do not roll the optimistic state back: rollback would
// need the stale server value, which the manager does not keep. Dirty
// reports when the cache may have diverged so callers can force a Load.
type Manager struct {
	svc service.Service

	mu    sync.Mutex
	sel   view.Selector
	lists []service.TaskList
	tasks []service.Task
	dirty bool
}

// NewManager creates a manager with the My Day view selected.
func NewManager(svc service.Service) *Manager {
	return &Manager{svc: svc, sel: view.MyDay()}
}

// LoadLists fetches the user's lists. My Day cannot resolve until this has
// succeeded once.
func (m *Manager) LoadLists(ctx context.Context) error {
	lists, err := m.svc.ListLists(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.lists = lists
	m.mu.Unlock()
	return nil
}

// Lists returns the known lists.
func (m *Manager) Lists() []service.TaskList {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.TaskList, len(m.lists))
	copy(out, m.lists)
	return out
}

// Select switches the active view. The cache keeps showing the previous
// view's tasks until Load replaces it.
func (m *Manager) Select(sel view.Selector) {
	m.mu.Lock()
	m.sel = sel
	m.mu.Unlock()
}

// Selector returns the active view selector.
func (m *Manager) Selector() view.Selector {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sel
}

// Dirty reports whether a failed or unreconciled persist may have left the
// cache out of sync with the server.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// Tasks returns the cached tasks in display order.
func (m *Manager) Tasks() []service.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Load replaces the cache with the server's task set for the active view.
// Server order is authoritative: incomplete by ascending position, then
// completed.
func (m *Manager) Load(ctx context.Context) error {
	target, err := m.resolve()
	if err != nil {
		return err
	}

	var tasks []service.Task
	if target.IsImportantQuery() {
		tasks, err = m.svc.ListImportant(ctx)
	} else {
		var listID string
		if listID, err = target.ListID(); err == nil {
			tasks, err = m.svc.ListTasks(ctx, listID)
		}
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.tasks = tasks
	m.dirty = false
	m.mu.Unlock()
	return nil
}

// Create makes a new task in the active view's list and appends the
// server-assigned row to the cache. No optimistic row is inserted: the
// position is server-assigned. Rejected before any network call when the
// Important view is active or the title is empty.
func (m *Manager) Create(ctx context.Context, title string) (service.Task, error) {
	if strings.TrimSpace(title) == "" {
		return service.Task{}, fmt.Errorf("title required: %w", service.ErrValidation)
	}

	target, err := m.resolve()
	if err != nil {
		return service.Task{}, err
	}
	listID, err := target.ListID()
	if err != nil {
		return service.Task{}, err
	}

	task, err := m.svc.CreateTask(ctx, listID, title)
	if err != nil {
		return service.Task{}, err
	}

	m.mu.Lock()
	m.tasks = append(m.tasks, task)
	m.mu.Unlock()
	return task, nil
}

// Update applies the patch optimistically, persists it, and on success
// replaces the cached row with the server's (authoritative updated_at and
// recomputed fields). On failure the optimistic state stays visible.
func (m *Manager) Update(ctx context.Context, taskID string, patch service.TaskPatch) (service.Task, error) {
	m.applyOptimistic(taskID, patch)

	task, err := m.svc.UpdateTask(ctx, taskID, patch)
	if err != nil {
		m.markDirty()
		return service.Task{}, err
	}

	m.confirm(task)
	return task, nil
}

// ToggleComplete flips the cached completion flag and persists the new
// value. The task's position is untouched either way.
func (m *Manager) ToggleComplete(ctx context.Context, taskID string) (service.Task, error) {
	cur, ok := m.get(taskID)
	if !ok {
		return service.Task{}, fmt.Errorf("task %s: %w", taskID, service.ErrNotFound)
	}
	next := !cur.IsCompleted
	return m.Update(ctx, taskID, service.TaskPatch{IsCompleted: &next})
}

// ToggleImportant flips the cached importance flag and persists the new
// value. When the Important view is active and the task was unmarked, the
// row no longer matches the view's query: it is dropped from the cache,
// but only after the server confirms.
func (m *Manager) ToggleImportant(ctx context.Context, taskID string) (service.Task, error) {
	cur, ok := m.get(taskID)
	if !ok {
		return service.Task{}, fmt.Errorf("task %s: %w", taskID, service.ErrNotFound)
	}
	next := !cur.IsImportant

	task, err := m.Update(ctx, taskID, service.TaskPatch{IsImportant: &next})
	if err != nil {
		return service.Task{}, err
	}

	m.mu.Lock()
	if m.sel.Kind() == view.KindImportant && !task.IsImportant {
		m.remove(taskID)
	}
	m.mu.Unlock()
	return task, nil
}

// Delete removes the task on the server, then from the cache. Removal is
// not optimistic: a row that failed to delete must not flash out and back.
func (m *Manager) Delete(ctx context.Context, taskID string) error {
	if err := m.svc.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	m.mu.Lock()
	m.remove(taskID)
	m.mu.Unlock()
	return nil
}

// Move drags the task to targetIndex within the view's incomplete subset,
// applies the new order optimistically, and persists the dense position
// batch atomically. On success the view is re-fetched to reconcile with
// the committed state. A move to the task's own index makes no call at
// all. Rejected for the Important view, whose members span lists.
func (m *Manager) Move(ctx context.Context, taskID string, targetIndex int) error {
	target, err := m.resolve()
	if err != nil {
		return err
	}
	listID, err := target.ListID()
	if err != nil {
		return err
	}

	m.mu.Lock()
	plan, err := reorder.Move(m.tasks, taskID, targetIndex)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	if plan.NoOp {
		m.mu.Unlock()
		return nil
	}
	m.tasks = plan.Tasks
	m.mu.Unlock()

	if err := m.svc.ReorderTasks(ctx, listID, plan.Orders); err != nil {
		m.markDirty()
		return err
	}

	// Reconcile: guards against lost updates from concurrent edits.
	return m.Load(ctx)
}

func (m *Manager) resolve() (view.Target, error) {
	m.mu.Lock()
	sel, lists := m.sel, m.lists
	m.mu.Unlock()
	return view.Resolve(sel, lists)
}

func (m *Manager) get(taskID string) (service.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return service.Task{}, false
}

func (m *Manager) applyOptimistic(taskID string, patch service.TaskPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID != taskID {
			continue
		}
		if patch.Title != nil {
			m.tasks[i].Title = *patch.Title
		}
		if patch.IsCompleted != nil {
			m.tasks[i].IsCompleted = *patch.IsCompleted
		}
		if patch.IsImportant != nil {
			m.tasks[i].IsImportant = *patch.IsImportant
		}
		return
	}
}

// confirm replaces the cached row with the server's. The last response to
// arrive wins; concurrent edits to the same task are not sequenced.
func (m *Manager) confirm(task service.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = task
			return
		}
	}
}

func (m *Manager) remove(taskID string) {
	for i, t := range m.tasks {
		if t.ID == taskID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return
		}
	}
}

func (m *Manager) markDirty() {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
}
