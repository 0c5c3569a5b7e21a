// Package session owns the authenticated-user identity.
//
// The manager derives identity from the stored credential via a self-lookup,
// and exposes login/register/logout as state transitions. Identity is never
// set without a previously accepted credential, and is cleared whenever the
// credential is cleared through this manager.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"taskboard/internal/api"
	"taskboard/internal/credstore"
	"taskboard/internal/service"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnknown is the initial state before Bootstrap runs.
	StateUnknown State = iota

	// StateLoading means a self-lookup is in flight.
	StateLoading

	// StateAuthenticated means the server confirmed the credential.
	StateAuthenticated

	// StateAnonymous means there is no accepted credential.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Fallback messages when the server provides no detail.
const (
	loginFailedMsg    = "Login failed"
	registerFailedMsg = "Registration failed"
)

// Manager tracks the current session.
type Manager struct {
	svc   service.Service
	creds *credstore.Store
	log   *slog.Logger

	mu       sync.Mutex
	state    State
	identity service.User
	lastErr  string
}

// NewManager creates a Manager in StateUnknown. Call Bootstrap to resolve
// the stored credential into a session.
func NewManager(svc service.Service, creds *credstore.Store, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{svc: svc, creds: creds, log: log, state: StateUnknown}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the confirmed identity snapshot. ok is false unless the
// session is authenticated.
func (m *Manager) Identity() (service.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity, m.state == StateAuthenticated
}

// LastError returns the message from the most recent failed login/register,
// "" when the last attempt succeeded.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Bootstrap resolves the stored credential into a session state.
//
// With no credential it transitions straight to anonymous without a network
// call. Otherwise it runs a self-lookup: success authenticates, any failure
// clears the credential and lands anonymous. Idempotent and safe to invoke
// repeatedly.
func (m *Manager) Bootstrap(ctx context.Context) {
	if _, err := m.creds.Get(); err != nil {
		if !errors.Is(err, credstore.ErrNoCredential) {
			m.log.Warn("unreadable credential, clearing", "error", err)
			_ = m.creds.Clear()
		}
		m.setAnonymous()
		return
	}

	m.setState(StateLoading)

	identity, err := m.svc.Me(ctx)
	if err != nil {
		// The gateway already cleared the slot on 401; clear for every
		// other failure too so a bad credential cannot linger.
		if !errors.Is(err, api.ErrUnauthenticated) {
			_ = m.creds.Clear()
		}
		m.log.Debug("self-lookup failed", "error", err)
		m.setAnonymous()
		return
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = identity
	m.mu.Unlock()
}

// Login authenticates with the server. On success the returned credential is
// stored and the identity re-derived. On failure the existing session is left
// untouched and a readable message is returned; Login never panics and
// returns no error type.
func (m *Manager) Login(ctx context.Context, email, password string) (bool, string) {
	token, err := m.svc.Login(ctx, email, password)
	if err != nil {
		msg := api.Detail(err, loginFailedMsg)
		m.setLastError(msg)
		return false, msg
	}

	if err := m.creds.Set(token); err != nil {
		msg := "Login failed: could not store credential"
		m.log.Error("store credential", "error", err)
		m.setLastError(msg)
		return false, msg
	}

	m.Bootstrap(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		m.lastErr = loginFailedMsg
		return false, loginFailedMsg
	}
	m.lastErr = ""
	return true, ""
}

// Register creates a new account. It has no credential side effect even on
// success; the caller must separately log in.
func (m *Manager) Register(ctx context.Context, email, password string) (bool, string) {
	if _, err := m.svc.Register(ctx, email, password); err != nil {
		msg := api.Detail(err, registerFailedMsg)
		m.setLastError(msg)
		return false, msg
	}
	m.setLastError("")
	return true, ""
}

// Logout clears the credential and resets identity. Purely local, no network
// call, cannot fail.
func (m *Manager) Logout() {
	_ = m.creds.Clear()
	m.setAnonymous()
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	m.state = StateAnonymous
	m.identity = service.User{}
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) setLastError(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}
