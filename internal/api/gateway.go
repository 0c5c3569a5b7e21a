// Package api is the single choke point for REST calls to the board server.
//
// Every outbound request goes through Gateway.Do, which attaches the stored
// bearer credential when one exists and centralizes the reaction to a
// rejected credential: on any 401 the credential slot is cleared and an
// error matching ErrUnauthenticated is returned. No other component may
// clear the slot automatically. The gateway performs no navigation; callers
// decide how to route the user back to login.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"taskboard/internal/credstore"
)

// Prefix is the common path prefix for all REST endpoints.
const Prefix = "/api"

// Gateway executes JSON requests against the board server.
type Gateway struct {
	base  *url.URL
	http  *http.Client
	creds *credstore.Store
	log   *slog.Logger
}

// New creates a Gateway for the given server base URL.
func New(serverURL string, creds *credstore.Store, log *slog.Logger) (*Gateway, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		base:  base,
		http:  &http.Client{},
		creds: creds,
		log:   log,
	}, nil
}

// Do sends a JSON request and decodes a JSON response into out.
//
// path is relative to the API prefix (e.g. "/tasks"). body, when non-nil, is
// marshalled as the JSON request body. out, when non-nil, receives the
// decoded response body; pass nil for empty responses.
//
// A 401 clears the credential slot and returns an error matching
// ErrUnauthenticated. Every non-2xx status returns a *RequestError carrying
// the server's detail message.
func (g *Gateway) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	u := *g.base
	u.Path = strings.TrimRight(u.Path, "/") + Prefix + path

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Absent credential is not an error: register and login pass through
	// unauthenticated.
	token, err := g.creds.Get()
	if err == nil {
		token.SetAuthHeader(req)
	} else if !errors.Is(err, credstore.ErrNoCredential) {
		return err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global side effect, independent of which call triggered it.
		if err := g.creds.Clear(); err != nil {
			g.log.Warn("failed to clear rejected credential", "error", err)
		}
		g.log.Debug("credential rejected, slot cleared", "method", method, "path", path)
		// Matches ErrUnauthenticated while keeping the server's detail
		// readable, e.g. "Invalid email or password" on a failed login.
		return &RequestError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readDetail extracts the human-readable detail field from an error body.
// Returns "" when the body carries no usable detail.
func readDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Detail)
}
