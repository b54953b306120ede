package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// StatusChange is the body of PUT /api/tasks/{id}/status.
type StatusChange struct {
	Status  taskstore.TaskStatus `json:"status"`
	Comment string               `json:"comment"`
}

// TasksResponse is the body of GET /api/tasks.
type TasksResponse struct {
	Tasks      []taskstore.Task `json:"tasks"`
	TotalCount int              `json:"totalCount"`
}

// APIError is a non-2xx response from the task API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("task api: %d %s", e.StatusCode, e.Message)
}

// HTTPClient implements Provider against the taskdesk JSON API.
type HTTPClient struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPClient creates a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, client *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url: %q", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{base: u, client: client}, nil
}

// FetchTasks calls GET /api/tasks.
func (c *HTTPClient) FetchTasks(ctx context.Context, sort *query.Sort, page query.Page, filters query.Filters) (Result, error) {
	values := url.Values{}
	query.EncodeSort(values, sort)
	if page.Size > 0 {
		query.EncodePage(values, page)
	}
	query.EncodeFilters(values, filters)

	var body TasksResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks", values, nil, &body); err != nil {
		return Result{}, err
	}
	if body.Tasks == nil {
		body.Tasks = []taskstore.Task{}
	}
	return Result{Tasks: body.Tasks, TotalCount: body.TotalCount}, nil
}

// FetchTaskCounts calls GET /api/tasks/counts.
func (c *HTTPClient) FetchTaskCounts(ctx context.Context) (Counts, error) {
	var counts Counts
	err := c.do(ctx, http.MethodGet, "/api/tasks/counts", nil, nil, &counts)
	return counts, err
}

// UpdateStatus calls PUT /api/tasks/{id}/status.
func (c *HTTPClient) UpdateStatus(ctx context.Context, id string, status taskstore.TaskStatus, comment string) (taskstore.Task, error) {
	if err := ValidateStatusChange(status, comment); err != nil {
		return taskstore.Task{}, err
	}

	var task taskstore.Task
	path := "/api/tasks/" + url.PathEscape(id) + "/status"
	err := c.do(ctx, http.MethodPut, path, nil, StatusChange{Status: status, Comment: comment}, &task)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return taskstore.Task{}, &taskstore.NotFoundError{ID: id}
		}
		return taskstore.Task{}, err
	}
	return task, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, values url.Values, in, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = values.Encode()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("task api request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
