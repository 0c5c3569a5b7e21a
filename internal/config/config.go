// Package config handles XDG configuration directory and server settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// TokenFile is the stored credential filename.
	TokenFile = "token.json"

	// DefaultServerURL is used when neither --server nor the environment
	// variable provides one.
	DefaultServerURL = "http://localhost:8000"

	// ServerEnvVar overrides the default server URL.
	ServerEnvVar = "TASKBOARD_SERVER"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// ServerURL is the base URL of the task board server (no trailing slash).
	ServerURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and server URL. Empty arguments fall back to defaults.
// Server URL precedence: argument, then TASKBOARD_SERVER, then the default.
func New(configDir, serverURL string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	server := serverURL
	if server == "" {
		server = os.Getenv(ServerEnvVar)
	}
	if server == "" {
		server = DefaultServerURL
	}
	server = strings.TrimRight(server, "/")
	return &Config{Dir: dir, ServerURL: server}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the credential file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
