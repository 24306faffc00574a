package view

import (
	"errors"
	"testing"

	"daylist/internal/service"
)

func TestResolveConcreteList(t *testing.T) {
	// Existence is not checked at resolve time, so no lists are needed.
	target, err := Resolve(List("abc"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := target.ListID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "abc" {
		t.Errorf("expected list id abc, got %q", id)
	}
	if target.IsImportantQuery() {
		t.Error("concrete list should not resolve to the important query")
	}
}

func TestResolveMyDay(t *testing.T) {
	lists := []service.TaskList{
		{ID: "l1", Name: "Groceries"},
		{ID: "l2", Name: "My Day", IsDefault: true},
	}

	target, err := Resolve(MyDay(), lists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, err := target.ListID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "l2" {
		t.Errorf("expected default list id l2, got %q", id)
	}
}

func TestResolveMyDayBeforeListFetch(t *testing.T) {
	if _, err := Resolve(MyDay(), nil); !errors.Is(err, ErrDefaultListUnknown) {
		t.Errorf("expected ErrDefaultListUnknown, got %v", err)
	}

	// A list fetch that somehow carries no default is equally unresolved.
	lists := []service.TaskList{{ID: "l1", Name: "Groceries"}}
	if _, err := Resolve(MyDay(), lists); !errors.Is(err, ErrDefaultListUnknown) {
		t.Errorf("expected ErrDefaultListUnknown, got %v", err)
	}
}

func TestResolveMyDayAfterListFetch(t *testing.T) {
	// The selector itself carries no resolved id: the same selector value
	// resolves differently once lists are known.
	sel := MyDay()

	if _, err := Resolve(sel, nil); !errors.Is(err, ErrDefaultListUnknown) {
		t.Fatalf("expected ErrDefaultListUnknown, got %v", err)
	}

	lists := []service.TaskList{{ID: "home", Name: "My Day", IsDefault: true}}
	target, err := Resolve(sel, lists)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, _ := target.ListID(); id != "home" {
		t.Errorf("expected home, got %q", id)
	}
}

func TestResolveImportant(t *testing.T) {
	target, err := Resolve(Important(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !target.IsImportantQuery() {
		t.Error("expected the important query target")
	}
	if _, err := target.ListID(); !errors.Is(err, ErrViewNotSupported) {
		t.Errorf("expected ErrViewNotSupported, got %v", err)
	}
}

func TestSelectorString(t *testing.T) {
	cases := []struct {
		sel  Selector
		want string
	}{
		{MyDay(), "my-day"},
		{Important(), "important"},
		{List("l9"), "list:l9"},
	}
	for _, c := range cases {
		if got := c.sel.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}
