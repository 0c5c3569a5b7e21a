// Package service defines the backend-agnostic interface for board operations.
package service

import "time"

// Task statuses. The server accepts any transition between them.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Statuses lists the valid task statuses in column order.
var Statuses = []string{StatusTodo, StatusInProgress, StatusDone}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// User is the confirmed identity derived from a credential via self-lookup.
// Immutable snapshot; replaced wholesale on refresh, never patched.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Task represents a single board task.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch is a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}
