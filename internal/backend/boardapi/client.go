// Package boardapi implements the service.Service interface over the board
// server's REST contract, routed through the request gateway.
package boardapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"taskboard/internal/api"
	"taskboard/internal/service"
)

// APITimeout is the timeout for API calls.
const APITimeout = 10 * time.Second

// Client implements service.Service against the board REST API.
type Client struct {
	gw *api.Gateway
}

// New creates a board API client on top of the given gateway.
func New(gw *api.Gateway) *Client {
	return &Client{gw: gw}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type taskListResponse struct {
	Tasks []service.Task `json:"tasks"`
	Count int            `json:"count"`
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, email, password string) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var resp loginResponse
	err := c.gw.Do(ctx, http.MethodPost, "/auth/login", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login: server returned no access token")
	}
	return &oauth2.Token{AccessToken: resp.AccessToken, TokenType: resp.TokenType}, nil
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, email, password string) (service.User, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var user service.User
	err := c.gw.Do(ctx, http.MethodPost, "/auth/register", credentials{Email: email, Password: password}, &user)
	if err != nil {
		return service.User{}, err
	}
	return user, nil
}

// Me implements service.Service.
func (c *Client) Me(ctx context.Context) (service.User, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var user service.User
	if err := c.gw.Do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return service.User{}, err
	}
	return user, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var resp taskListResponse
	if err := c.gw.Do(ctx, http.MethodGet, "/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, title, description string) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var task service.Task
	err := c.gw.Do(ctx, http.MethodPost, "/tasks", createTaskRequest{Title: title, Description: description}, &task)
	if err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id string, patch service.TaskPatch) (service.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var task service.Task
	err := c.gw.Do(ctx, http.MethodPatch, "/tasks/"+id, patch, &task)
	if err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	return c.gw.Do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}
