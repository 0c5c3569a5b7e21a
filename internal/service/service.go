// Package service defines the backend-agnostic interface for board operations.
package service

import (
	"context"

	"golang.org/x/oauth2"
)

// Service defines the interface for board backend operations.
// All REST calls go through this interface; commands and the TUI never
// import the transport directly.
type Service interface {
	// Login exchanges email/password for a bearer credential.
	// It does not store the credential; that is the session manager's duty.
	Login(ctx context.Context, email, password string) (*oauth2.Token, error)

	// Register creates a new user. It establishes no session even on
	// success; the caller must separately log in.
	Register(ctx context.Context, email, password string) (User, error)

	// Me returns the identity bound to the current credential.
	Me(ctx context.Context) (User, error)

	// ListTasks returns all tasks in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task. Status defaults to todo server-side.
	CreateTask(ctx context.Context, title, description string) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
