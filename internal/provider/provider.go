// Package provider defines the asynchronous task data provider consumed by the
// fetch orchestrator, with a latency-simulating mock and an HTTP client.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Provider kinds.
const (
	Mock   = "mock"
	Remote = "remote"
)

// ErrInvalidStatus is returned when an update carries an unknown status.
var ErrInvalidStatus = errors.New("invalid task status")

// ErrCommentRequired is returned when a status change has a blank comment.
var ErrCommentRequired = errors.New("status change comment is required")

// Result is one page of tasks plus the filtered total.
type Result = query.Result

// Counts are the per-status aggregates of the whole dataset.
type Counts struct {
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Closed     int `json:"closed"`
}

// Total returns the sum of all statuses.
func (c Counts) Total() int {
	return c.Open + c.InProgress + c.Closed
}

// Of returns the count for a status.
func (c Counts) Of(s taskstore.TaskStatus) int {
	switch s {
	case taskstore.StatusOpen:
		return c.Open
	case taskstore.StatusInProgress:
		return c.InProgress
	case taskstore.StatusClosed:
		return c.Closed
	default:
		return 0
	}
}

// Provider is the task data source.
type Provider interface {
	// FetchTasks returns the requested page of tasks matching filters, sorted by sort.
	FetchTasks(ctx context.Context, sort *query.Sort, page query.Page, filters query.Filters) (Result, error)

	// FetchTaskCounts returns per-status counts of the whole dataset.
	FetchTaskCounts(ctx context.Context) (Counts, error)

	// UpdateStatus changes the status of a task, recording comment.
	UpdateStatus(ctx context.Context, id string, status taskstore.TaskStatus, comment string) (taskstore.Task, error)
}

// ValidateStatusChange checks the arguments of an UpdateStatus call.
func ValidateStatusChange(status taskstore.TaskStatus, comment string) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if strings.TrimSpace(comment) == "" {
		return ErrCommentRequired
	}
	return nil
}

// Normalize validates a provider kind; empty means mock.
func Normalize(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return Mock, nil
	}

	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case Mock, Remote:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported provider: %s", value)
	}
}

// Resolve picks the provider kind from the CLI value, falling back to config.
func Resolve(cliValue, configValue string) (string, error) {
	if strings.TrimSpace(cliValue) != "" {
		return Normalize(cliValue)
	}
	return Normalize(configValue)
}
