// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskboard/internal/api"
	"taskboard/internal/service"
)

// FakeToken is the access token FakeService issues on successful login.
const FakeToken = "fake-token"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	users map[string]string // email -> password
	tasks []service.Task

	// Call counters.
	MeCalls         int
	ListTasksCalls  int
	DeleteTaskCalls int

	// Error injection for testing.
	LoginErr      error
	RegisterErr   error
	MeErr         error
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{users: make(map[string]string)}
}

// AddUser registers a user the fake will accept on Login.
func (f *FakeService) AddUser(email, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = password
}

// AddTask appends a task and returns its generated ID.
func (f *FakeService) AddTask(title, status string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.tasks = append(f.tasks, service.Task{
		ID:        id,
		OwnerID:   "u1",
		Title:     title,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	return id
}

// Tasks returns a copy of the held tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (*oauth2.Token, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if pw, ok := f.users[email]; !ok || pw != password {
		// Mirrors the server: a 401 with the login failure detail.
		return nil, &api.RequestError{Status: 401, Detail: "Invalid email or password"}
	}
	return &oauth2.Token{AccessToken: FakeToken, TokenType: "bearer"}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, email, password string) (service.User, error) {
	if f.RegisterErr != nil {
		return service.User{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return service.User{}, &api.RequestError{Status: 400, Detail: "Email already registered"}
	}
	f.users[email] = password
	return service.User{ID: uuid.NewString(), Email: email, CreatedAt: time.Now()}, nil
}

// Me implements service.Service.
func (f *FakeService) Me(ctx context.Context) (service.User, error) {
	f.mu.Lock()
	f.MeCalls++
	f.mu.Unlock()
	if f.MeErr != nil {
		return service.User{}, f.MeErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for email := range f.users {
		return service.User{ID: "u1", Email: email, CreatedAt: time.Now()}, nil
	}
	return service.User{ID: "u1", Email: "user@example.com", CreatedAt: time.Now()}, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.ListTasksCalls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title, description string) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{
		ID:          uuid.NewString(),
		OwnerID:     "u1",
		Title:       title,
		Description: description,
		Status:      service.StatusTodo,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.Status != nil {
			f.tasks[i].Status = *patch.Status
		}
		f.tasks[i].UpdatedAt = time.Now()
		return f.tasks[i], nil
	}
	return service.Task{}, &api.RequestError{Status: 404, Detail: "Task not found"}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	f.DeleteTaskCalls++
	f.mu.Unlock()
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &api.RequestError{Status: 404, Detail: "Task not found"}
}
