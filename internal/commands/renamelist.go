package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"daylist/internal/config"
	"daylist/internal/exitcode"
	"daylist/internal/service"
)

func init() {
	Register(&RenameListCmd{})
}

// RenameListCmd implements the renamelist command.
type RenameListCmd struct{}

func (c *RenameListCmd) Name() string      { return "renamelist" }
func (c *RenameListCmd) Aliases() []string { return nil }
func (c *RenameListCmd) Synopsis() string  { return "Rename a list" }
func (c *RenameListCmd) Usage() string     { return "daylist renamelist [common flags] <old-name> <new-name>" }
func (c *RenameListCmd) NeedsAuth() bool   { return true }

func (c *RenameListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: old and new list names required")
		return exitcode.UserError
	}

	oldName := strings.TrimSpace(args[0])
	newName := joinTitle(args[1:])
	if oldName == "" || newName == "" {
		fmt.Fprintln(errOut, "error: old and new list names required")
		return exitcode.UserError
	}

	lists, err := svc.ListLists(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	list, err := resolveListByName(lists, oldName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, err := svc.RenameList(ctx, list.ID, newName); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
