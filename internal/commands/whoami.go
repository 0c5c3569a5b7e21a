package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the authenticated user" }
func (c *WhoamiCmd) Usage() string     { return "taskboard whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	mgr := newSession(cfg, svc, errOut)
	mgr.Bootstrap(ctx)

	identity, ok := mgr.Identity()
	if !ok {
		// Bootstrap cleared a rejected or unusable credential.
		fmt.Fprintln(errOut, "error: not logged in (run: taskboard login)")
		return exitcode.AuthError
	}

	output.FormatUser(out, identity)
	return exitcode.Success
}
