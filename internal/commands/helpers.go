package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"taskboard/internal/api"
	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/credstore"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// newLogger builds the command logger. Debug mode prints everything to
// stderr; otherwise only warnings and errors surface.
func newLogger(cfg *config.Config, errOut io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}

// newCredStore returns the credential store for the configured directory.
func newCredStore(cfg *config.Config) *credstore.Store {
	return credstore.New(cfg.TokenPath())
}

// newSession builds a session manager wired to the configured credential
// slot.
func newSession(cfg *config.Config, svc service.Service, errOut io.Writer) *session.Manager {
	return session.NewManager(svc, newCredStore(cfg), newLogger(cfg, errOut))
}

// reportError prints err and maps it onto an exit code.
//
// Only Unauthenticated crosses operations as a global effect: the gateway
// already cleared the credential slot, so the user is pointed back at login.
// Validation errors are user errors; everything else surfaces the server's
// detail (or the scoped fallback message) as a backend error.
func reportError(errOut io.Writer, err error, fallback string) int {
	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		fmt.Fprintln(errOut, "error: session expired (run: taskboard login)")
		return exitcode.AuthError
	case errors.Is(err, board.ErrTitleRequired), errors.Is(err, board.ErrEmptyPatch):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %s\n", api.Detail(err, fallback))
		return exitcode.BackendError
	}
}
