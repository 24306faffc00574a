package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"daylist/internal/collection"
	"daylist/internal/exitcode"
	"daylist/internal/service"
	"daylist/internal/view"
)

// openView builds a collection manager for the given selector, loading
// lists and the selected view's tasks.
func openView(ctx context.Context, svc service.Service, sel view.Selector) (*collection.Manager, error) {
	m := collection.NewManager(svc)
	if err := m.LoadLists(ctx); err != nil {
		return nil, err
	}
	m.Select(sel)
	if err := m.Load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// selectorForRef resolves a parsed task reference plus an optional --list
// flag into a view selector. The flag and the letter are mutually exclusive;
// callers check that before calling.
func selectorForRef(m *collection.Manager, listName string, ref TaskRef) (view.Selector, error) {
	if listName != "" {
		list, err := resolveListByName(m.Lists(), listName)
		if err != nil {
			return view.Selector{}, err
		}
		return view.List(list.ID), nil
	}
	if ref.HasLetter {
		list, err := ListByLetter(m.Lists(), ref.Letter)
		if err != nil {
			return view.Selector{}, err
		}
		return view.List(list.ID), nil
	}
	return view.MyDay(), nil
}

// resolveListByName finds a list by case-insensitive name match.
func resolveListByName(lists []service.TaskList, name string) (service.TaskList, error) {
	var found []service.TaskList
	for _, list := range lists {
		if strings.EqualFold(list.Name, name) {
			found = append(found, list)
		}
	}
	switch len(found) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return found[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
	}
}

// openTasks returns the view's open tasks in position order.
func openTasks(m *collection.Manager) []service.Task {
	var open []service.Task
	for _, task := range m.Tasks() {
		if !task.IsCompleted {
			open = append(open, task)
		}
	}
	return open
}

// completedTasks returns the view's completed tasks.
func completedTasks(m *collection.Manager) []service.Task {
	var done []service.Task
	for _, task := range m.Tasks() {
		if task.IsCompleted {
			done = append(done, task)
		}
	}
	return done
}

// taskByNumber finds an open task by its 1-based display number.
func taskByNumber(m *collection.Manager, num int) (service.Task, error) {
	open := openTasks(m)
	if num < 1 || num > len(open) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return open[num-1], nil
}

// openNamedView opens the view named by the --list flag, or the default
// view when the flag is empty. On failure it prints the error to errOut
// and returns ok=false with an exit code.
func openNamedView(ctx context.Context, svc service.Service, listName string, errOut io.Writer) (*collection.Manager, int, bool) {
	m := collection.NewManager(svc)
	if err := m.LoadLists(ctx); err != nil {
		return nil, reportError(errOut, err), false
	}
	if listName != "" {
		list, err := resolveListByName(m.Lists(), listName)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return nil, exitcode.UserError, false
		}
		m.Select(view.List(list.ID))
	}
	if err := m.Load(ctx); err != nil {
		return nil, reportError(errOut, err), false
	}
	return m, 0, true
}

// joinTitle joins positional args into a trimmed title.
func joinTitle(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// resolveRef parses a task reference, opens the view it names (default,
// --list flag, or letter), and finds the referenced open task. On failure
// it prints the error to errOut and returns ok=false with an exit code.
func resolveRef(ctx context.Context, svc service.Service, listName string, args []string, errOut io.Writer) (*collection.Manager, service.Task, int, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return nil, service.Task{}, exitcode.UserError, false
	}

	if listName != "" && ref.HasLetter {
		fmt.Fprintln(errOut, "error: cannot use both --list and list letter")
		return nil, service.Task{}, exitcode.UserError, false
	}
	if ref.TaskNum < 1 {
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.TaskNum)
		return nil, service.Task{}, exitcode.UserError, false
	}

	m := collection.NewManager(svc)
	if err := m.LoadLists(ctx); err != nil {
		return nil, service.Task{}, reportError(errOut, err), false
	}

	sel, err := selectorForRef(m, listName, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, service.Task{}, exitcode.UserError, false
	}
	m.Select(sel)
	if err := m.Load(ctx); err != nil {
		return nil, service.Task{}, reportError(errOut, err), false
	}

	task, err := taskByNumber(m, ref.TaskNum)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, service.Task{}, exitcode.UserError, false
	}
	return m, task, 0, true
}

// reportError prints err and returns the matching exit code.
// Validation, lookup, and permission failures are the user's to fix;
// expired tokens point at login; everything else is the backend's fault.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, view.ErrViewNotSupported),
		errors.Is(err, view.ErrDefaultListUnknown):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintln(errOut, "error: token rejected (run: daylist login)")
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
