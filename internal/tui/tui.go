// Package tui implements the live board view for the watch command.
//
// The view keeps a task board current from two directions: push events
// arriving on the notification channel and the user's own mutations. Both
// funnel into the same full refresh, so the columns always reflect the
// server's ordering.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/channel"
	"taskboard/internal/service"
)

// Options configures the live board view.
type Options struct {
	Service      service.Service
	ServerURL    string
	Token        string
	Logger       *slog.Logger
	PollInterval time.Duration
}

// Run starts the live view and blocks until the user quits or the session
// expires. The returned error is nil on a normal quit; an expired session
// surfaces as the underlying unauthenticated error so the caller can point
// the user back at login.
func Run(ctx context.Context, opts Options) error {
	b := board.New(opts.Service, opts.Logger)
	defer b.Dispose()

	// Push events cross from the channel's callback goroutine into the
	// bubbletea loop through a buffered queue. The callback must not
	// block, so a full queue drops the event; the next one triggers the
	// same full refresh anyway.
	events := make(chan channel.Event, 16)
	ch := channel.Dial(ctx, channel.Config{
		ServerURL: opts.ServerURL,
		Token:     opts.Token,
		Logger:    opts.Logger,
		Handler: func(ev channel.Event) {
			select {
			case events <- ev:
			default:
			}
		},
		PollInterval: opts.PollInterval,
	})
	defer ch.Close()

	m := newModel(ctx, b, events)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.fatal != nil {
		return fm.fatal
	}
	return nil
}
