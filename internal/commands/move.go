package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"daylist/internal/config"
	"daylist/internal/exitcode"
	"daylist/internal/service"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd implements the move command. The target is the 1-based display
// position the task should land on within its view.
type MoveCmd struct {
	listName string
}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a task to a new position" }
func (c *MoveCmd) Usage() string     { return "daylist move [--list <list-name>] <ref> <position>" }
func (c *MoveCmd) NeedsAuth() bool   { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task reference and position required")
		return exitcode.UserError
	}

	// The last arg is the target position; everything before it is the
	// task reference (one token, or two for the separated letter form).
	target, err := strconv.Atoi(args[len(args)-1])
	if err != nil || target < 1 {
		fmt.Fprintf(errOut, "error: invalid position: %s\n", args[len(args)-1])
		return exitcode.UserError
	}

	m, task, code, ok := resolveRef(ctx, svc, c.listName, args[:len(args)-1], errOut)
	if !ok {
		return code
	}

	open := openTasks(m)
	if target > len(open) {
		fmt.Fprintf(errOut, "error: position out of range: %d\n", target)
		return exitcode.UserError
	}

	if err := m.Move(ctx, task.ID, target-1); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
