package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                          List tasks by status column
  taskboard list [common flags]
  taskboard add [common flags] [--desc <text>] <title...>
  taskboard move [common flags] <n> <todo|in_progress|done>
  taskboard edit [common flags] [--title <text>] [--desc <text>] <n>
  taskboard rm [common flags] [--yes] <n>
  taskboard watch [common flags]                     Live board view
  taskboard login [common flags] [--password <pw>] <email>
  taskboard logout [common flags]
  taskboard register [common flags] [--password <pw>] <email>
  taskboard whoami [common flags]
  taskboard help
  taskboard version

Task numbers <n> are the ones printed by the list command.

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override board server URL (or set TASKBOARD_SERVER)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
