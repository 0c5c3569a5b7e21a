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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	password string
	in       io.Reader
}

// SetInput overrides the prompt input (for testing).
func (c *LoginCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with the board server" }
func (c *LoginCmd) Usage() string     { return "taskboard login [common flags] [--password <pw>] <email>" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	mgr := newSession(cfg, svc, errOut)
	ok, msg := mgr.Login(ctx, email, password)
	if !ok {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		identity, _ := mgr.Identity()
		fmt.Fprintf(out, "logged in as %s\n", identity.Email)
	}
	return exitcode.Success
}
