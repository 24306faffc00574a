package collection_test

import (
	"context"
	"errors"
	"testing"

	"daylist/internal/collection"
	"daylist/internal/service"
	"daylist/internal/testutil"
	"daylist/internal/view"
)

func newLoadedManager(t *testing.T, svc *testutil.FakeService, sel view.Selector) *collection.Manager {
	t.Helper()
	m := collection.NewManager(svc)
	ctx := context.Background()
	if err := m.LoadLists(ctx); err != nil {
		t.Fatalf("LoadLists: %v", err)
	}
	m.Select(sel)
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestLoadMyDayResolvesDefaultList(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "t1", "water plants")

	m := newLoadedManager(t, svc, view.MyDay())

	tasks := m.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Fatalf("expected [t1], got %v", tasks)
	}
}

func TestLoadMyDayBeforeListFetch(t *testing.T) {
	svc := testutil.NewFakeService()
	m := collection.NewManager(svc)

	err := m.Load(context.Background())
	if !errors.Is(err, view.ErrDefaultListUnknown) {
		t.Fatalf("expected ErrDefaultListUnknown, got %v", err)
	}
	if svc.Calls["ListTasks"] != 0 {
		t.Error("unresolved view must not hit the backend")
	}
}

func TestCreateAppendsServerRow(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "t1", "existing")
	m := newLoadedManager(t, svc, view.MyDay())

	task, err := m.Create(context.Background(), "new task")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Position != 1 {
		t.Errorf("expected server-assigned position 1, got %d", task.Position)
	}

	tasks := m.Tasks()
	if len(tasks) != 2 || tasks[1].ID != task.ID {
		t.Errorf("expected server row appended to cache, got %v", tasks)
	}
}

func TestCreateEmptyTitleRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newLoadedManager(t, svc, view.MyDay())

	_, err := m.Create(context.Background(), "   ")
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if svc.Calls["CreateTask"] != 0 {
		t.Error("invalid title must be rejected before any backend call")
	}
}

func TestCreateOnImportantViewRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddImportantTask("default", "t1", "starred")
	m := newLoadedManager(t, svc, view.Important())

	_, err := m.Create(context.Background(), "title")
	if !errors.Is(err, view.ErrViewNotSupported) {
		t.Fatalf("expected ErrViewNotSupported, got %v", err)
	}
	if svc.Calls["CreateTask"] != 0 {
		t.Error("important view create must never reach the backend")
	}
}

func TestUpdateReplacesRowWithServerResponse(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "t1", "old title")
	m := newLoadedManager(t, svc, view.MyDay())

	title := "new title"
	task, err := m.Update(context.Background(), "t1", service.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if task.UpdatedAt.IsZero() {
		t.Error("expected the server row with its timestamps")
	}
	if got := m.Tasks()[0]; got.Title != "new title" || got.UpdatedAt != task.UpdatedAt {
		t.Errorf("cache not reconciled with server row: %+v", got)
	}
}

func TestUpdateFailureKeepsOptimisticState(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "t1", "old title")
	m := newLoadedManager(t, svc, view.MyDay())

	svc.UpdateTaskErr = errors.New("boom")
	title := "optimistic"
	if _, err := m.Update(context.Background(), "t1", service.TaskPatch{Title: &title}); err == nil {
		t.Fatal("expected error")
	}

	// No rollback: the optimistic title stays visible and the cache is
	// flagged as diverged.
	if got := m.Tasks()[0].Title; got != "optimistic" {
		t.Errorf("expected optimistic title to remain, got %q", got)
	}
	if !m.Dirty() {
		t.Error("expected dirty cache after failed persist")
	}
}

func TestToggleCompleteKeepsPosition(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "t1", "a")
	svc.AddTask("default", "t2", "b")
	m := newLoadedManager(t, svc, view.MyDay())

	task, err := m.ToggleComplete(context.Background(), "t2")
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !task.IsCompleted || task.CompletedAt == nil {
		t.Errorf("expected completed task with timestamp, got %+v", task)
	}
	if task.Position != 1 {
		t.Errorf("completion must not alter position, got %d", task.Position)
	}
}

func TestDeleteIsNotOptimistic(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "t1", "a")
	m := newLoadedManager(t, svc, view.MyDay())

	svc.DeleteTaskErr = errors.New("boom")
	if err := m.Delete(context.Background(), "t1"); err == nil {
		t.Fatal("expected error")
	}
	if len(m.Tasks()) != 1 {
		t.Error("failed delete must leave the row in the cache")
	}

	svc.DeleteTaskErr = nil
	if err := m.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(m.Tasks()) != 0 {
		t.Error("confirmed delete must remove the row")
	}
}

func TestUnstarOnImportantViewRemovesAfterConfirmation(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("work", "Work")
	svc.AddImportantTask("default", "x", "from list 1")
	svc.AddImportantTask("work", "y", "from list 2")
	m := newLoadedManager(t, svc, view.Important())

	if len(m.Tasks()) != 2 {
		t.Fatalf("expected both important tasks, got %v", m.Tasks())
	}

	// Failed unstar: row must stay (no premature removal).
	svc.UpdateTaskErr = errors.New("boom")
	if _, err := m.ToggleImportant(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
	if len(m.Tasks()) != 2 {
		t.Error("row removed before server confirmation")
	}

	// Confirmed unstar: row leaves the view's cache.
	svc.UpdateTaskErr = nil
	if _, err := m.ToggleImportant(context.Background(), "x"); err != nil {
		t.Fatalf("ToggleImportant: %v", err)
	}
	tasks := m.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "y" {
		t.Errorf("expected only y to remain, got %v", tasks)
	}

	// And a fresh fetch agrees.
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	tasks = m.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "y" {
		t.Errorf("expected server to return only y, got %v", tasks)
	}
}

func TestUnstarOnListViewKeepsRow(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddImportantTask("default", "t1", "starred")
	m := newLoadedManager(t, svc, view.MyDay())

	task, err := m.ToggleImportant(context.Background(), "t1")
	if err != nil {
		t.Fatalf("ToggleImportant: %v", err)
	}
	if task.IsImportant {
		t.Error("expected unstarred task")
	}
	if len(m.Tasks()) != 1 {
		t.Error("unstarring on a list view must not remove the row")
	}
}

func TestMovePersistsDenseBatchAndReloads(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "A", "a")
	svc.AddTask("default", "B", "b")
	svc.AddTask("default", "C", "c")
	m := newLoadedManager(t, svc, view.MyDay())

	if err := m.Move(context.Background(), "A", 2); err != nil {
		t.Fatalf("Move: %v", err)
	}

	want := []service.TaskOrder{{ID: "B", Position: 0}, {ID: "C", Position: 1}, {ID: "A", Position: 2}}
	if len(svc.LastReorder) != len(want) {
		t.Fatalf("expected %d orders, got %d", len(want), len(svc.LastReorder))
	}
	for i, o := range svc.LastReorder {
		if o != want[i] {
			t.Errorf("order %d: expected %+v, got %+v", i, want[i], o)
		}
	}

	// Successful move re-fetches the list.
	if svc.Calls["ListTasks"] != 2 {
		t.Errorf("expected reconciling fetch after move, got %d fetches", svc.Calls["ListTasks"])
	}
	tasks := m.Tasks()
	if tasks[0].ID != "B" || tasks[1].ID != "C" || tasks[2].ID != "A" {
		t.Errorf("unexpected cache order: %v", tasks)
	}
}

func TestMoveToOwnIndexMakesNoCall(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "A", "a")
	svc.AddTask("default", "B", "b")
	m := newLoadedManager(t, svc, view.MyDay())

	if err := m.Move(context.Background(), "B", 1); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if svc.Calls["ReorderTasks"] != 0 {
		t.Error("same-index move must not issue a network call")
	}
}

func TestMoveOnImportantViewRejected(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddImportantTask("default", "x", "starred")
	m := newLoadedManager(t, svc, view.Important())

	err := m.Move(context.Background(), "x", 0)
	if !errors.Is(err, view.ErrViewNotSupported) {
		t.Fatalf("expected ErrViewNotSupported, got %v", err)
	}
	if svc.Calls["ReorderTasks"] != 0 {
		t.Error("important view reorder must never reach the backend")
	}
}

func TestMoveFailureKeepsOptimisticOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("default", "A", "a")
	svc.AddTask("default", "B", "b")
	m := newLoadedManager(t, svc, view.MyDay())

	svc.ReorderTasksErr = errors.New("boom")
	if err := m.Move(context.Background(), "A", 1); err == nil {
		t.Fatal("expected error")
	}

	tasks := m.Tasks()
	if tasks[0].ID != "B" || tasks[1].ID != "A" {
		t.Errorf("expected optimistic order [B A] to remain, got %v", tasks)
	}
	if !m.Dirty() {
		t.Error("expected dirty cache after failed reorder")
	}
}

func TestRoundTripMatchesServerState(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newLoadedManager(t, svc, view.MyDay())
	ctx := context.Background()

	a, err := m.Create(ctx, "alpha")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := m.Create(ctx, "beta")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.ToggleComplete(ctx, a.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if _, err := m.ToggleImportant(ctx, b.ID); err != nil {
		t.Fatalf("ToggleImportant: %v", err)
	}

	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := make(map[string]service.Task)
	for _, tk := range m.Tasks() {
		got[tk.ID] = tk
	}
	if tk := got[a.ID]; tk.Title != "alpha" || !tk.IsCompleted || tk.IsImportant {
		t.Errorf("task a diverged: %+v", tk)
	}
	if tk := got[b.ID]; tk.Title != "beta" || tk.IsCompleted || !tk.IsImportant {
		t.Errorf("task b diverged: %+v", tk)
	}
}
