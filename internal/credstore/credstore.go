// Package credstore holds the single durable bearer credential slot.
//
// The credential is stored as an oauth2.Token JSON file (mode 0600) under the
// config directory. Exactly one credential exists at a time: it is written on
// successful login, and cleared on logout or when the server rejects it.
// Automatic invalidation is the request gateway's duty alone; everything else
// only reads the slot.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrNoCredential is returned by Get when the slot is empty.
var ErrNoCredential = errors.New("no stored credential")

// Store is a single-slot credential store backed by a file.
// Readers must tolerate the slot being cleared between calls.
type Store struct {
	path string
}

// New creates a Store persisting to the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get reads the stored credential.
// Returns ErrNoCredential if the slot is empty.
func (s *Store) Get() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("read credential: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse credential: %w", err)
	}
	if token.AccessToken == "" {
		return nil, ErrNoCredential
	}
	return &token, nil
}

// Set writes the credential, replacing any previous one.
// The file is created with mode 0600.
func (s *Store) Set(token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Clear removes the stored credential. Clearing an empty slot is not an
// error, so Clear is safe to call from any state.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
