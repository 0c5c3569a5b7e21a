package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command. Registration does not log the
// user in; a separate login is required afterwards.
type RegisterCmd struct {
	password string
	in       io.Reader
}

// SetInput overrides the prompt input (for testing).
func (c *RegisterCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create a new account" }
func (c *RegisterCmd) Usage() string {
	return "taskboard register [common flags] [--password <pw>] <email>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: email required")
		return exitcode.UserError
	}
	email := args[0]

	password := c.password
	if password == "" {
		in := c.in
		if in == nil {
			in = os.Stdin
		}
		var err error
		password, err = readPassword(in, errOut, "Password: ")
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	ok, msg := newSession(cfg, svc, errOut).Register(ctx, email, password)
	if !ok {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "registered %s (now run: taskboard login %s)\n", email, email)
	}
	return exitcode.Success
}
