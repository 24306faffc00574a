package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"daylist/internal/config"
	"daylist/internal/exitcode"
	"daylist/internal/service"
)

func init() {
	Register(&RmListCmd{})
}

// RmListCmd implements the rmlist command.
type RmListCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmListCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmListCmd) Name() string      { return "rmlist" }
func (c *RmListCmd) Aliases() []string { return nil }
func (c *RmListCmd) Synopsis() string  { return "Delete a list" }
func (c *RmListCmd) Usage() string     { return "daylist rmlist [--force] <list-name>" }
func (c *RmListCmd) NeedsAuth() bool   { return true }

func (c *RmListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	name := joinTitle(args)
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	lists, err := svc.ListLists(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	list, err := resolveListByName(lists, name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if list.IsDefault {
		fmt.Fprintln(errOut, "error: cannot delete default list")
		return exitcode.UserError
	}

	// Deleting a list drops its tasks with it, so refuse while open
	// tasks remain unless --force.
	if !c.force {
		tasks, err := svc.ListTasks(ctx, list.ID)
		if err != nil {
			return reportError(errOut, err)
		}
		for _, task := range tasks {
			if !task.IsCompleted {
				fmt.Fprintln(errOut, "error: list not empty (use --force)")
				return exitcode.UserError
			}
		}
	}

	if err := svc.DeleteList(ctx, list.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
