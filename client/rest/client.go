// Package rest implements the HTTP client for the TaskFlow REST API.
// It owns the wire mapping between API todo records and domain tasks:
// id=_id, name=title, status=completed, ownerId=user.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/taskflow/domain/task"
	"github.com/example/taskflow/domain/user"
)

// Sentinel errors for API failures.
var (
	// ErrUnauthorized is returned on 401 responses (bad credentials or token).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict is returned when registering an already-taken email.
	ErrConflict = errors.New("email already registered")
	// ErrNotFound is returned when the requested todo does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest is returned when the server rejects the request payload.
	ErrBadRequest = errors.New("bad request")
)

// Client talks to a TaskFlow API server.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient creates a Client for the given base URL, e.g.
// "http://localhost:5000/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken sets the Bearer token attached to authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// todoRecord is the API wire shape for a task.
type todoRecord struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	User      string    `json:"user"`
}

func (r todoRecord) toTask() task.Task {
	status := task.StatusIncomplete
	if r.Completed {
		status = task.StatusComplete
	}
	return task.Task{
		ID:        r.ID,
		Name:      r.Title,
		Status:    status,
		CreatedAt: r.CreatedAt,
		OwnerID:   r.User,
	}
}

// AuthResult is the successful response of register and login.
type AuthResult struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

// Register creates a new account and returns the new user plus a token.
func (c *Client) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &result, false); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

// Login authenticates and returns the user plus a token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result, false); err != nil {
		return AuthResult{}, err
	}
	return result, nil
}

// Me validates the given token and returns the current user.
func (c *Client) Me(ctx context.Context, token string) (user.User, error) {
	prev := c.token
	c.token = token
	defer func() { c.token = prev }()

	var result struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &result, true); err != nil {
		return user.User{}, err
	}
	return result.User, nil
}

// ListTodos returns all tasks owned by the authenticated user. The server
// scopes the result by the token; no client-side filtering happens here.
func (c *Client) ListTodos(ctx context.Context) ([]task.Task, error) {
	var records []todoRecord
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &records, true); err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

// CreateTodo creates a task and returns the created record.
func (c *Client) CreateTodo(ctx context.Context, title string, completed bool) (task.Task, error) {
	body := map[string]any{"title": title, "completed": completed}
	var record todoRecord
	if err := c.do(ctx, http.MethodPost, "/todos", body, &record, true); err != nil {
		return task.Task{}, err
	}
	return record.toTask(), nil
}

// TodoPatch holds the optional fields of a PATCH request. Nil fields are
// omitted and left unchanged server-side.
type TodoPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// PatchTodo updates the given fields of a task and returns the updated record.
func (c *Client) PatchTodo(ctx context.Context, id string, patch TodoPatch) (task.Task, error) {
	var record todoRecord
	if err := c.do(ctx, http.MethodPatch, "/todos/"+id, patch, &record, true); err != nil {
		return task.Task{}, err
	}
	return record.toTask(), nil
}

// DeleteTodo deletes a task.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil, true)
}

// do performs a JSON request against the API and decodes the response into
// out (when non-nil). Non-2xx statuses are mapped to sentinel errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func statusError(resp *http.Response) error {
	var apiErr struct {
		Message string `json:"message"`
	}
	// Best effort; failures leave Message empty.
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	var base error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = ErrUnauthorized
	case http.StatusNotFound:
		base = ErrNotFound
	case http.StatusConflict:
		base = ErrConflict
	case http.StatusBadRequest:
		base = ErrBadRequest
	default:
		base = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if apiErr.Message != "" {
		return fmt.Errorf("%s: %w", apiErr.Message, base)
	}
	return base
}
