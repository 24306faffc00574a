// Package resthttp implements the service.Service interface against the
// daylist REST API.
package resthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"daylist/internal/config"
	"daylist/internal/service"
)

// APITimeout is the timeout for API calls.
const APITimeout = 5 * time.Second

// Client implements service.Service over HTTP/JSON with a bearer token.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client from stored configuration. Requires server.json
// and token.json to exist (run: daylist login).
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	baseURL, err := cfg.ServerURL()
	if err != nil {
		return nil, err
	}
	token, err := cfg.Token()
	if err != nil {
		return nil, err
	}
	return NewWithToken(ctx, baseURL, token), nil
}

// NewWithToken creates a client against baseURL with a fixed bearer token
// (also used by tests against an httptest server).
func NewWithToken(ctx context.Context, baseURL, token string) *Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &Client{
		baseURL: baseURL,
		http:    oauth2.NewClient(ctx, source),
	}
}

// ListLists implements service.Service.
func (c *Client) ListLists(ctx context.Context) ([]service.TaskList, error) {
	var lists []service.TaskList
	if err := c.do(ctx, http.MethodGet, "/lists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateList implements service.Service.
func (c *Client) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	var list service.TaskList
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/lists", body, &list); err != nil {
		return service.TaskList{}, err
	}
	return list, nil
}

// RenameList implements service.Service.
func (c *Client) RenameList(ctx context.Context, listID, name string) (service.TaskList, error) {
	var list service.TaskList
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPatch, "/lists/"+listID, body, &list); err != nil {
		return service.TaskList{}, err
	}
	return list, nil
}

// DeleteList implements service.Service.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	return c.do(ctx, http.MethodDelete, "/lists/"+listID, nil, nil)
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/lists/"+listID+"/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListImportant implements service.Service.
func (c *Client) ListImportant(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/important", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	var task service.Task
	body := map[string]string{"title": title}
	if err := c.do(ctx, http.MethodPost, "/lists/"+listID+"/tasks", body, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, taskID string, patch service.TaskPatch) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+taskID, patch, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil)
}

// ReorderTasks implements service.Service.
func (c *Client) ReorderTasks(ctx context.Context, listID string, orders []service.TaskOrder) error {
	body := map[string]any{"taskOrders": orders}
	return c.do(ctx, http.MethodPatch, "/lists/"+listID+"/tasks/reorder", body, nil)
}

// do executes one API call: marshal body, send, map the status, decode
// into out (which may be nil for 204 responses).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response body: %w", err)
	}
	return nil
}

// statusError maps an error response onto the service error taxonomy,
// carrying the server's message where one is present.
func statusError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}

	var kind error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		kind = service.ErrValidation
	case http.StatusUnauthorized:
		kind = service.ErrUnauthorized
	case http.StatusForbidden:
		kind = service.ErrForbidden
	case http.StatusNotFound:
		kind = service.ErrNotFound
	case http.StatusConflict:
		kind = service.ErrConflict
	default:
		return fmt.Errorf("server error: %s", msg)
	}
	return fmt.Errorf("%s: %w", msg, kind)
}

func wrapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return err
}
