// Package channel maintains the push connection delivering task-change
// notifications.
//
// A channel is bound 1:1 to a credential value: it authenticates once at
// connect time via a handshake query parameter and must be torn down and
// re-dialed whenever the credential changes. Events carry no payload beyond
// the identity of the change; consumers treat every event as a cue to
// refetch, never as a diff to apply. Delivery order is not guaranteed and
// events may be dropped silently; REST remains the fallback source of truth.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types.
const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// DefaultPollInterval is the cue interval of the fallback polling transport.
const DefaultPollInterval = 15 * time.Second

// Event is a task-change notification. Transient: consumed once, never
// stored.
type Event struct {
	Type      string `json:"type"`
	TaskID    string `json:"taskId"`
	Timestamp int64  `json:"timestamp"`
}

// Config configures a channel connection.
type Config struct {
	// ServerURL is the board server base URL (http or https scheme).
	ServerURL string

	// Token is the bearer credential presented at connect time.
	// Empty means the channel stays inert.
	Token string

	// Handler receives events. Exactly one handler per channel. It is
	// invoked under the channel's internal lock so that Close can
	// guarantee no invocation after it returns; the handler must not
	// block and must not call Close.
	Handler func(Event)

	// Logger receives connection diagnostics. Defaults to slog.Default.
	Logger *slog.Logger

	// PollInterval overrides the fallback polling cadence. Zero means
	// DefaultPollInterval.
	PollInterval time.Duration
}

// Channel is a single long-lived push connection.
type Channel struct {
	handler func(Event)
	log     *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	stop   chan struct{}
	closed bool
}

// Dial opens the push connection and starts delivering events to the
// configured handler.
//
// Transport preference: websocket first; if negotiation fails for network
// reasons the channel degrades to a polling ticker that delivers a synthetic
// refetch cue. If the server rejects the auth handshake the failure is only
// logged and the channel stays disconnected; clearing the credential is the
// request gateway's duty, not the channel's. Dial never returns an error;
// the returned channel is always safe to Close.
func Dial(ctx context.Context, cfg Config) *Channel {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	c := &Channel{
		handler: cfg.Handler,
		log:     log,
		stop:    make(chan struct{}),
	}

	if cfg.Token == "" {
		// No credential at mount time: inert, no connection attempt.
		return c
	}

	wsURL, err := pushURL(cfg.ServerURL, cfg.Token)
	if err != nil {
		log.Warn("push channel unavailable", "error", err)
		return c
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			// Auth handshake rejected: log and stay disconnected.
			log.Warn("push channel auth rejected", "status", resp.StatusCode)
			return c
		}
		log.Debug("websocket negotiation failed, falling back to polling", "error", err)
		interval := cfg.PollInterval
		if interval == 0 {
			interval = DefaultPollInterval
		}
		go c.pollLoop(interval)
		return c
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	go c.readLoop(conn)
	return c
}

// Close tears the connection down. Idempotent and safe to call multiple
// times; once it returns, the handler is never invoked again.
func (c *Channel) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.stop)
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
}

// deliver invokes the handler unless the channel has been closed. The check
// and the call happen under the lock so no delivery can race Close.
func (c *Channel) deliver(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.handler == nil {
		return
	}
	c.handler(ev)
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			select {
			case <-c.stop:
			default:
				c.log.Debug("push channel read failed", "error", err)
			}
			return
		}
		c.deliver(ev)
	}
}

// pollLoop is the fallback transport: a fixed-interval synthetic cue.
// The event contract is "refetch on any event", so a periodic cue is a
// conforming, if cruder, transport.
func (c *Channel) pollLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.deliver(Event{Type: TaskUpdated, Timestamp: time.Now().UnixMilli()})
		}
	}
}

// pushURL derives the websocket endpoint from the server base URL and
// attaches the handshake token.
func pushURL(serverURL, token string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
