// Package taskstore provides the task model and the in-memory dataset that backs the data provider.
package taskstore

import (
	"fmt"
	"time"
)

// TaskStatus represents the current state of a task.
type TaskStatus string

// Valid task status values.
const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusClosed     TaskStatus = "closed"
)

// validStatuses contains all valid status values for quick lookup.
var validStatuses = map[TaskStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusClosed:     true,
}

// Statuses lists the statuses in tab order.
var Statuses = []TaskStatus{StatusOpen, StatusInProgress, StatusClosed}

// IsValid returns true if the status is a valid TaskStatus value.
func (s TaskStatus) IsValid() bool {
	return validStatuses[s]
}

// Priority is the urgency of a task.
type Priority string

// Valid priority values.
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
}

// IsValid returns true if the priority is a valid Priority value.
func (p Priority) IsValid() bool {
	return priorityRank[p] > 0
}

// Rank orders priorities from Low (1) to High (3). Unknown priorities rank 0.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Task is a single record of the dataset.
type Task struct {
	// ID is the unique identifier for the task.
	ID string `json:"id" yaml:"id"`

	// Priority is one of Low, Medium or High.
	Priority Priority `json:"priority" yaml:"priority"`

	// Status is the current state of the task.
	Status TaskStatus `json:"status" yaml:"status"`

	// Labels are free-form tags.
	Labels []string `json:"labels" yaml:"labels,omitempty"`

	// Name is the short summary of the task.
	Name string `json:"name" yaml:"name"`

	// DueDate is when the task is due.
	DueDate time.Time `json:"dueDate" yaml:"dueDate"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	// Assignee is the person responsible for the task.
	Assignee string `json:"assignee" yaml:"assignee"`

	// Comment is the audit comment left by the last status change.
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Validate checks that the task has all required fields and valid values.
// Returns an error describing the first validation failure, or nil if valid.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}

	if t.Name == "" {
		return fmt.Errorf("task name is required")
	}

	if !t.Priority.IsValid() {
		return fmt.Errorf("task priority is invalid: %q", t.Priority)
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("task status is invalid: %q", t.Status)
	}

	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task createdAt is required")
	}

	return nil
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	if t.Labels != nil {
		t.Labels = append([]string(nil), t.Labels...)
	}
	return t
}
