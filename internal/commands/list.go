package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"daylist/internal/collection"
	"daylist/internal/config"
	"daylist/internal/exitcode"
	"daylist/internal/output"
	"daylist/internal/service"
	"daylist/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles `daylist` (no args), `daylist list <list-name>`, and the
// --important flag for the starred view.
type ListCmd struct {
	important bool
	all       bool
}

// SetImportant selects the starred view (for testing).
func (c *ListCmd) SetImportant(v bool) {
	c.important = v
}

// SetAll includes completed tasks (for testing).
func (c *ListCmd) SetAll(v bool) {
	c.all = v
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "daylist list [--important] [--all] [<list-name>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.important, "important", false, "")
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.important {
		if len(args) > 0 {
			fmt.Fprintln(errOut, "error: cannot combine --important with a list name")
			return exitcode.UserError
		}
		return c.listImportant(ctx, cfg, svc, out, errOut)
	}

	if len(args) == 0 {
		return c.listAll(ctx, cfg, svc, out, errOut)
	}

	listName := strings.Join(args, " ")
	return c.listOne(ctx, cfg, svc, listName, out, errOut)
}

// listAll lists open tasks from every list (daylist with no args).
// The default view prints first without a header; named lists follow as
// lettered sections. Empty named lists keep their letter but are not shown.
func (c *ListCmd) listAll(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) int {
	m, err := openView(ctx, svc, view.MyDay())
	if err != nil {
		return reportError(errOut, err)
	}

	hasAnyTasks := false
	for i, task := range openTasks(m) {
		output.FormatTask(out, i+1, task)
		hasAnyTasks = true
	}

	letter := 'a'
	for _, list := range m.Lists() {
		if list.IsDefault {
			continue
		}
		if letter > 'z' {
			fmt.Fprintln(errOut, "error: too many lists (max 26)")
			return exitcode.UserError
		}

		m.Select(view.List(list.ID))
		if err := m.Load(ctx); err != nil {
			fmt.Fprintf(errOut, "error: failed to fetch list: %s: %v\n", list.Name, err)
			return exitcode.BackendError
		}

		if open := openTasks(m); len(open) > 0 {
			output.FormatListHeader(out, list.Name, false)
			for i, task := range open {
				output.FormatTaskWithLetter(out, letter, i+1, task)
			}
			hasAnyTasks = true
		}
		letter++
	}

	if !hasAnyTasks && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}

	return exitcode.Success
}

// listOne lists tasks from a specific list (daylist list <name>).
func (c *ListCmd) listOne(ctx context.Context, cfg *config.Config, svc service.Service, listName string, out, errOut io.Writer) int {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	m := collection.NewManager(svc)
	if err := m.LoadLists(ctx); err != nil {
		return reportError(errOut, err)
	}

	list, err := resolveListByName(m.Lists(), listName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	m.Select(view.List(list.ID))
	if err := m.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	output.FormatListHeader(out, list.Name, list.IsDefault)
	for i, task := range openTasks(m) {
		output.FormatTaskIndented(out, i+1, task)
	}

	if c.all {
		if done := completedTasks(m); len(done) > 0 {
			fmt.Fprintln(out, output.CompletedHeader)
			for _, task := range done {
				output.FormatCompletedTask(out, task)
			}
		}
	}

	return exitcode.Success
}

// listImportant lists starred tasks across all lists.
func (c *ListCmd) listImportant(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) int {
	m, err := openView(ctx, svc, view.Important())
	if err != nil {
		return reportError(errOut, err)
	}

	tasks := openTasks(m)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	return exitcode.Success
}
