package reorder

import (
	"errors"
	"testing"

	"daylist/internal/service"
)

func task(id string, pos int, completed bool) service.Task {
	return service.Task{ID: id, Title: id, Position: pos, IsCompleted: completed}
}

func orderOf(tasks []service.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMoveDownwards(t *testing.T) {
	// [A:0, B:1, C:2]; drag A to index 2 -> [B:0, C:1, A:2].
	tasks := []service.Task{task("A", 0, false), task("B", 1, false), task("C", 2, false)}

	plan, err := Move(tasks, "A", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.NoOp {
		t.Fatal("expected a real move, got no-op")
	}

	if !equalIDs(orderOf(plan.Tasks), "B", "C", "A") {
		t.Errorf("expected order [B C A], got %v", orderOf(plan.Tasks))
	}
	want := []service.TaskOrder{{ID: "B", Position: 0}, {ID: "C", Position: 1}, {ID: "A", Position: 2}}
	if len(plan.Orders) != len(want) {
		t.Fatalf("expected %d orders, got %d", len(want), len(plan.Orders))
	}
	for i, o := range plan.Orders {
		if o != want[i] {
			t.Errorf("order %d: expected %+v, got %+v", i, want[i], o)
		}
	}
}

func TestMoveUpwards(t *testing.T) {
	tasks := []service.Task{task("A", 0, false), task("B", 1, false), task("C", 2, false)}

	plan, err := Move(tasks, "C", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(orderOf(plan.Tasks), "C", "A", "B") {
		t.Errorf("expected order [C A B], got %v", orderOf(plan.Tasks))
	}
}

func TestMoveDensifiesDriftedPositions(t *testing.T) {
	// Prior positions are sparse; the plan must come out dense regardless.
	tasks := []service.Task{task("A", 3, false), task("B", 10, false), task("C", 11, false)}

	plan, err := Move(tasks, "B", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]bool)
	for i, o := range plan.Orders {
		if o.Position != i {
			t.Errorf("expected dense positions 0..n-1, got %d at index %d", o.Position, i)
		}
		if seen[o.Position] {
			t.Errorf("duplicate position %d", o.Position)
		}
		seen[o.Position] = true
	}
	for i, tk := range plan.Tasks[:3] {
		if tk.Position != i {
			t.Errorf("cache task %s: expected position %d, got %d", tk.ID, i, tk.Position)
		}
	}
}

func TestMoveToOwnIndexIsNoOp(t *testing.T) {
	tasks := []service.Task{task("A", 0, false), task("B", 1, false)}

	plan, err := Move(tasks, "B", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.NoOp {
		t.Error("expected no-op plan")
	}
	if plan.Orders != nil {
		t.Error("no-op plan must carry no orders")
	}
}

func TestMoveExcludesCompleted(t *testing.T) {
	// Completed tasks are not part of the position space: indices address
	// the incomplete subset only, and completed tasks stay at the tail.
	tasks := []service.Task{
		task("A", 0, false),
		task("done1", 0, true),
		task("B", 1, false),
		task("C", 2, false),
		task("done2", 0, true),
	}

	plan, err := Move(tasks, "A", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalIDs(orderOf(plan.Tasks), "B", "C", "A", "done1", "done2") {
		t.Errorf("unexpected order %v", orderOf(plan.Tasks))
	}
	if len(plan.Orders) != 3 {
		t.Errorf("expected orders for incomplete tasks only, got %d", len(plan.Orders))
	}
}

func TestMoveCompletedTaskRejected(t *testing.T) {
	tasks := []service.Task{task("A", 0, false), task("done", 0, true)}

	if _, err := Move(tasks, "done", 0); !errors.Is(err, ErrTaskCompleted) {
		t.Errorf("expected ErrTaskCompleted, got %v", err)
	}
}

func TestMoveUnknownTask(t *testing.T) {
	tasks := []service.Task{task("A", 0, false)}

	if _, err := Move(tasks, "ghost", 0); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMoveIndexOutOfRange(t *testing.T) {
	tasks := []service.Task{task("A", 0, false), task("B", 1, false)}

	for _, idx := range []int{-1, 2, 99} {
		if _, err := Move(tasks, "A", idx); !errors.Is(err, service.ErrValidation) {
			t.Errorf("index %d: expected ErrValidation, got %v", idx, err)
		}
	}
}

func TestDensify(t *testing.T) {
	tasks := []service.Task{task("x", 7, false), task("y", 2, false), task("z", 2, false)}

	orders := Densify(tasks)
	want := []service.TaskOrder{{ID: "x", Position: 0}, {ID: "y", Position: 1}, {ID: "z", Position: 2}}
	for i, o := range orders {
		if o != want[i] {
			t.Errorf("order %d: expected %+v, got %+v", i, want[i], o)
		}
	}
}
