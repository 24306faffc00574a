// Package view models the client's "current view": a concrete list or one
// of the virtual views (My Day, Important), and resolves it to the storage
// identity tasks are fetched and written against.
package view

import (
	"errors"
	"fmt"

	"daylist/internal/service"
)

// Kind discriminates the selector union.
type Kind int

const (
	// KindList selects one concrete list by id.
	KindList Kind = iota

	// KindMyDay selects the user's default list.
	KindMyDay

	// KindImportant selects the cross-list important-tasks query.
	KindImportant
)

var (
	// ErrDefaultListUnknown is returned when resolving My Day before the
	// initial list fetch has completed.
	ErrDefaultListUnknown = errors.New("default list not loaded")

	// ErrViewNotSupported is returned when an operation that needs a single
	// list id (create, reorder) targets the Important view.
	ErrViewNotSupported = errors.New("operation not supported for this view")
)

// Selector identifies what the user is looking at. The zero value selects
// an empty concrete list id and is not valid; use the constructors.
type Selector struct {
	kind   Kind
	listID string
}

// List selects a concrete list. Existence is not verified here; the store
// verifies it on write.
func List(id string) Selector { return Selector{kind: KindList, listID: id} }

// MyDay selects the user's default list.
func MyDay() Selector { return Selector{kind: KindMyDay} }

// Important selects the cross-list important-tasks query.
func Important() Selector { return Selector{kind: KindImportant} }

// Kind returns the selector's variant.
func (s Selector) Kind() Kind { return s.kind }

func (s Selector) String() string {
	switch s.kind {
	case KindMyDay:
		return "my-day"
	case KindImportant:
		return "important"
	default:
		return fmt.Sprintf("list:%s", s.listID)
	}
}

// Target is the storage identity a selector resolves to: either a single
// concrete list, or the important query spanning all lists.
type Target struct {
	listID    string
	important bool
}

// IsImportantQuery reports whether the target is the cross-list query.
func (t Target) IsImportantQuery() bool { return t.important }

// ListID returns the concrete list id, or ErrViewNotSupported for the
// important query, which has no single position space to write into.
func (t Target) ListID() (string, error) {
	if t.important {
		return "", ErrViewNotSupported
	}
	return t.listID, nil
}

// Resolve maps a selector to its target given the currently known lists.
// It is a pure function of its inputs: callers must re-resolve whenever the
// known lists change, since the selector does not carry the resolved id.
func Resolve(sel Selector, lists []service.TaskList) (Target, error) {
	switch sel.Kind() {
	case KindList:
		return Target{listID: sel.listID}, nil
	case KindMyDay:
		for _, l := range lists {
			if l.IsDefault {
				return Target{listID: l.ID}, nil
			}
		}
		return Target{}, ErrDefaultListUnknown
	case KindImportant:
		return Target{important: true}, nil
	default:
		return Target{}, fmt.Errorf("unknown selector kind: %d", sel.Kind())
	}
}
