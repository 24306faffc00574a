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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "daylist help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  daylist                                            List all open tasks
  daylist list [common flags] [--important] [--all] [<list-name>]
  daylist add [common flags] [--list <list-name>] <title...>
  daylist done [common flags] [--list <list-name>] <ref>
  daylist undone [common flags] [--list <list-name>] <title...>
  daylist star [common flags] [--list <list-name>] <ref>
  daylist unstar [common flags] [--list <list-name>] <ref>
  daylist move [common flags] [--list <list-name>] <ref> <position>
  daylist rm [common flags] [--list <list-name>] <ref>
  daylist lists [common flags]
  daylist createlist [common flags] <list-name>
  daylist renamelist [common flags] <old-name> <new-name>
  daylist rmlist [common flags] [--force] <list-name>
  daylist login --server <url> --token <token>
  daylist logout [common flags]
  daylist help
  daylist version

Task references:
  3     task 3 in the default view
  b2    task 2 in the second named list
  b 2   same, written as two arguments

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
