// Package board owns the authoritative local task list and keeps it
// consistent with server state.
//
// The reconciliation policy is deliberately simple: server responses are
// never applied as incremental patches. Every successful mutation and every
// push event triggers a full refetch which atomically replaces the held
// list, so the client never merges partial updates or resolves ordering
// conflicts between its own view and concurrent remote changes. Duplicate
// refreshes are expected and harmless.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"taskboard/internal/channel"
	"taskboard/internal/service"
)

// ErrTitleRequired is returned by Create when the title is empty.
// Client-side validation: no request is issued.
var ErrTitleRequired = errors.New("title required")

// ErrEmptyPatch is returned by Update when the patch changes nothing.
var ErrEmptyPatch = errors.New("nothing to update")

// Columns groups tasks by status for rendering. It is a pure projection over
// the current list, recomputed on every call and never stored, so it cannot
// drift from the source list.
type Columns struct {
	Todo       []service.Task
	InProgress []service.Task
	Done       []service.Task
}

// Board is the task view reconciler.
type Board struct {
	svc service.Service
	log *slog.Logger

	mu       sync.Mutex
	tasks    []service.Task
	disposed bool
}

// New creates an empty Board. Call Refresh to load the initial list.
func New(svc service.Service, log *slog.Logger) *Board {
	if log == nil {
		log = slog.Default()
	}
	return &Board{svc: svc, log: log}
}

// Refresh fetches the full task list and atomically replaces the held set.
// Idempotent; a refresh landing after Dispose is silently dropped.
func (b *Board) Refresh(ctx context.Context) error {
	tasks, err := b.svc.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("refresh tasks: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		// Last write to a disposed view is dropped, not an error.
		return nil
	}
	b.tasks = tasks
	return nil
}

// Tasks returns a copy of the current list in arrival order.
func (b *Board) Tasks() []service.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]service.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Columns groups the current list into status columns.
func (b *Board) Columns() Columns {
	var cols Columns
	for _, t := range b.Tasks() {
		switch t.Status {
		case service.StatusInProgress:
			cols.InProgress = append(cols.InProgress, t)
		case service.StatusDone:
			cols.Done = append(cols.Done, t)
		default:
			cols.Todo = append(cols.Todo, t)
		}
	}
	return cols
}

// Create validates and creates a task, then refreshes. A failed create
// leaves the displayed list unchanged.
func (b *Board) Create(ctx context.Context, title, description string) (service.Task, error) {
	if strings.TrimSpace(title) == "" {
		return service.Task{}, ErrTitleRequired
	}

	task, err := b.svc.CreateTask(ctx, title, description)
	if err != nil {
		return service.Task{}, fmt.Errorf("create task: %w", err)
	}
	b.refreshAfterMutation(ctx)
	return task, nil
}

// Update applies a partial update, then refreshes. A failed update leaves
// the displayed list unchanged.
func (b *Board) Update(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	if patch.IsEmpty() {
		return service.Task{}, ErrEmptyPatch
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return service.Task{}, ErrTitleRequired
	}

	task, err := b.svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return service.Task{}, fmt.Errorf("update task: %w", err)
	}
	b.refreshAfterMutation(ctx)
	return task, nil
}

// Remove deletes a task, then refreshes. Confirmation of destructive deletes
// is the caller's responsibility; Remove issues the request unconditionally.
func (b *Board) Remove(ctx context.Context, id string) error {
	if err := b.svc.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	b.refreshAfterMutation(ctx)
	return nil
}

// HandleEvent reconciles after a push notification: every event is a cue for
// exactly one full refetch, never a diff to apply. Events may arrive in any
// order relative to the mutations they describe.
func (b *Board) HandleEvent(ctx context.Context, ev channel.Event) {
	if err := b.Refresh(ctx); err != nil {
		b.log.Debug("refresh after push event failed", "type", ev.Type, "error", err)
	}
}

// Dispose detaches the board from its consumers. In-flight refreshes may
// complete but will not write state afterwards.
func (b *Board) Dispose() {
	b.mu.Lock()
	b.disposed = true
	b.mu.Unlock()
}

// refreshAfterMutation runs the post-mutation refetch. The mutation already
// succeeded, so a failed refresh only logs; the previous list stays visible
// until the next successful refresh or push cue.
func (b *Board) refreshAfterMutation(ctx context.Context) {
	if err := b.Refresh(ctx); err != nil {
		b.log.Debug("refresh after mutation failed", "error", err)
	}
}
