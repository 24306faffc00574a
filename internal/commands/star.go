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
	Register(&StarCmd{})
	Register(&UnstarCmd{})
}

// StarCmd marks a task important.
type StarCmd struct {
	listName string
}

func (c *StarCmd) Name() string      { return "star" }
func (c *StarCmd) Aliases() []string { return nil }
func (c *StarCmd) Synopsis() string  { return "Mark a task important" }
func (c *StarCmd) Usage() string     { return "daylist star [--list <list-name>] <ref>" }
func (c *StarCmd) NeedsAuth() bool   { return true }

func (c *StarCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *StarCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runStar(ctx, cfg, svc, c.listName, args, true, out, errOut)
}

// UnstarCmd clears the important flag on a task.
type UnstarCmd struct {
	listName string
}

func (c *UnstarCmd) Name() string      { return "unstar" }
func (c *UnstarCmd) Aliases() []string { return nil }
func (c *UnstarCmd) Synopsis() string  { return "Clear the important flag" }
func (c *UnstarCmd) Usage() string     { return "daylist unstar [--list <list-name>] <ref>" }
func (c *UnstarCmd) NeedsAuth() bool   { return true }

func (c *UnstarCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *UnstarCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runStar(ctx, cfg, svc, c.listName, args, false, out, errOut)
}

// runStar is the shared implementation for star and unstar.
// Setting the flag to its current value is a no-op that still prints ok.
func runStar(ctx context.Context, cfg *config.Config, svc service.Service, listName string, args []string, want bool, out, errOut io.Writer) int {
	m, task, code, ok := resolveRef(ctx, svc, listName, args, errOut)
	if !ok {
		return code
	}

	if task.IsImportant != want {
		if _, err := m.ToggleImportant(ctx, task.ID); err != nil {
			return reportError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
