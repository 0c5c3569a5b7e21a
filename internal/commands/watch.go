package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/tui"
)

func init() {
	Register(&WatchCmd{})
}

// WatchCmd implements the watch command: a live board view that stays
// current via the push channel.
type WatchCmd struct {
	poll time.Duration
}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Live board view" }
func (c *WatchCmd) Usage() string     { return "taskboard watch [common flags] [--poll <interval>]" }
func (c *WatchCmd) NeedsAuth() bool   { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.poll, "poll", 0, "")
}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// The push handshake reuses the stored access token. A missing slot
	// was already caught by the dispatcher pre-flight; an unreadable one
	// degrades to polling inside the channel, so it is not fatal here.
	var accessToken string
	if token, err := newCredStore(cfg).Get(); err == nil {
		accessToken = token.AccessToken
	}

	err := tui.Run(ctx, tui.Options{
		Service:      svc,
		ServerURL:    cfg.ServerURL,
		Token:        accessToken,
		Logger:       newLogger(cfg, errOut),
		PollInterval: c.poll,
	})
	if err != nil {
		return reportError(errOut, err, "Board view failed")
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "bye")
	}
	return exitcode.Success
}
