// Package client is a Go client for the TodoList API. It owns the session
// token and keeps a local view of the caller's active and completed todos,
// refreshed from the server after every mutation; it is the same cache the
// browser frontend maintains.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/samir9187/todolist-backend/internal/dto"
)

// Client talks to a TodoList backend. The session token is injected at
// login time and attached to every request; there is no global auth state.
type Client struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	token     string
	userID    string
	active    []dto.TodoResponse
	completed []dto.TodoResponse
}

// New creates a Client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// APIError is a non-2xx response translated into a Go error.
type APIError struct {
	StatusCode int
	Response   dto.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Response.Message != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.Response.Error, e.Response.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Response.Error, e.StatusCode)
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the session token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.userID = resp.User.ID
	c.mu.Unlock()
	return nil
}

// UserID returns the id of the logged-in user, empty before login.
func (c *Client) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// CreateTodo creates a todo, appends it to the local active view and then
// re-syncs both views from the server.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (*dto.TodoResponse, error) {
	var todo dto.TodoResponse
	err := c.do(ctx, http.MethodPost, "/api/todos", dto.CreateTodoRequest{
		Title:       title,
		Description: description,
	}, &todo)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.active = append(c.active, todo)
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &todo, nil
}

// Todo fetches a single todo by id.
func (c *Client) Todo(ctx context.Context, id string) (*dto.TodoResponse, error) {
	var todo dto.TodoResponse
	if err := c.do(ctx, http.MethodGet, "/api/todos/"+id, nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo replaces the todo's fields and re-syncs the local views.
func (c *Client) UpdateTodo(ctx context.Context, id, title, description string, isCompleted bool) (*dto.TodoResponse, error) {
	var todo dto.TodoResponse
	err := c.do(ctx, http.MethodPut, "/api/todos/"+id, dto.UpdateTodoRequest{
		Title:       title,
		Description: description,
		IsCompleted: isCompleted,
	}, &todo)
	if err != nil {
		return nil, err
	}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &todo, nil
}

// MarkComplete marks the todo completed and re-syncs the local views.
func (c *Client) MarkComplete(ctx context.Context, id string) (*dto.TodoResponse, error) {
	var todo dto.TodoResponse
	if err := c.do(ctx, http.MethodPut, "/api/todos/complete/"+id, nil, &todo); err != nil {
		return nil, err
	}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo deletes the todo, drops it from the local views and re-syncs.
func (c *Client) DeleteTodo(ctx context.Context, id string) (*dto.TodoResponse, error) {
	var todo dto.TodoResponse
	if err := c.do(ctx, http.MethodDelete, "/api/todos/"+id, nil, &todo); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.active = dropTodo(c.active, id)
	c.completed = dropTodo(c.completed, id)
	c.mu.Unlock()

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &todo, nil
}

// Refresh re-fetches the active and completed lists from the server.
func (c *Client) Refresh(ctx context.Context) error {
	var active []dto.TodoResponse
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &active); err != nil {
		return err
	}

	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()

	var completed []dto.TodoResponse
	if err := c.do(ctx, http.MethodGet, "/api/todos/complete/"+userID, nil, &completed); err != nil {
		return err
	}

	c.mu.Lock()
	c.active = active
	c.completed = completed
	c.mu.Unlock()
	return nil
}

// Active returns the cached active todos.
func (c *Client) Active() []dto.TodoResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]dto.TodoResponse(nil), c.active...)
}

// Completed returns the cached completed todos.
func (c *Client) Completed() []dto.TodoResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]dto.TodoResponse(nil), c.completed...)
}

// FilterActive returns the cached active todos whose title or description
// contains q, case-insensitively. The filter is a pure view transform;
// nothing is sent to the server.
func (c *Client) FilterActive(q string) []dto.TodoResponse {
	return filterTodos(c.Active(), q)
}

// FilterCompleted is FilterActive for the completed view.
func (c *Client) FilterCompleted(q string) []dto.TodoResponse {
	return filterTodos(c.Completed(), q)
}

func filterTodos(todos []dto.TodoResponse, q string) []dto.TodoResponse {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return todos
	}
	out := make([]dto.TodoResponse, 0, len(todos))
	for _, t := range todos {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

func dropTodo(todos []dto.TodoResponse, id string) []dto.TodoResponse {
	out := todos[:0]
	for _, t := range todos {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Response)
		return apiErr
	}

	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
