package taskstore

import (
	"errors"
	"fmt"
)

// Error types for Store operations.
var (
	// ErrNotFound is returned when a task with the given ID does not exist.
	ErrNotFound = errors.New("task not found")

	// ErrValidation is returned when a task fails validation.
	ErrValidation = errors.New("task validation failed")
)

// NotFoundError wraps ErrNotFound with the task ID that was not found.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError wraps ErrValidation with details about the validation failure.
type ValidationError struct {
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("task validation failed for %s: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("task validation failed: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Store defines the interface for the task dataset.
type Store interface {
	// Get retrieves a task by its ID.
	// Returns NotFoundError if the task does not exist.
	Get(id string) (Task, error)

	// List returns all tasks in natural (insertion) order.
	List() ([]Task, error)

	// Save replaces the whole record with the same ID, or appends a new one.
	// Returns ValidationError if the task fails validation.
	Save(task Task) error

	// UpdateStatus sets the status and comment of an existing task.
	// Returns NotFoundError if the task does not exist.
	UpdateStatus(id string, status TaskStatus, comment string) (Task, error)

	// CountByStatus returns the number of tasks per status.
	CountByStatus() (map[TaskStatus]int, error)
}
