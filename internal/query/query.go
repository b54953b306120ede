// Package query implements the sort, filter and pagination rules the data
// provider applies to the task dataset.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Direction is a sort direction.
type Direction string

// Sort directions, matching the sort-order query parameter.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid returns true for asc and desc.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// Sort is a single-column sort. A nil *Sort means natural order.
type Sort struct {
	Column    string
	Direction Direction
}

func (s *Sort) String() string {
	if s == nil {
		return "none"
	}
	return s.Column + " " + string(s.Direction)
}

// Equal reports whether two sorts (either may be nil) are the same.
func (s *Sort) Equal(o *Sort) bool {
	if s == nil || o == nil {
		return s == o
	}
	return *s == *o
}

// Page is a 1-based pagination window. Size <= 0 disables pagination.
type Page struct {
	Number int
	Size   int
}

// Offset returns the index of the first record in the window.
func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Stale reports whether the window reaches past total, which happens when the
// dataset shrank after the window was computed.
func (p Page) Stale(total int) bool {
	return p.Number*p.Size > total
}

// PageSizes is the fixed set of selectable page sizes.
var PageSizes = []int{5, 10, 20, 30, 50}

// Field names understood by filters and sorts.
const (
	FieldID        = "id"
	FieldPriority  = "priority"
	FieldStatus    = "status"
	FieldLabels    = "labels"
	FieldName      = "name"
	FieldDueDate   = "dueDate"
	FieldCreatedAt = "createdAt"
	FieldAssignee  = "assignee"
	FieldComment   = "comment"
)

// fields maps a field name to its string form on a task.
var fields = map[string]func(t *taskstore.Task) string{
	FieldID:        func(t *taskstore.Task) string { return t.ID },
	FieldPriority:  func(t *taskstore.Task) string { return string(t.Priority) },
	FieldStatus:    func(t *taskstore.Task) string { return string(t.Status) },
	FieldLabels:    func(t *taskstore.Task) string { return strings.Join(t.Labels, ", ") },
	FieldName:      func(t *taskstore.Task) string { return t.Name },
	FieldDueDate:   func(t *taskstore.Task) string { return formatTime(t.DueDate) },
	FieldCreatedAt: func(t *taskstore.Task) string { return formatTime(t.CreatedAt) },
	FieldAssignee:  func(t *taskstore.Task) string { return t.Assignee },
	FieldComment:   func(t *taskstore.Task) string { return t.Comment },
}

// HasField reports whether name is a known task field.
func HasField(name string) bool {
	_, ok := fields[name]
	return ok
}

// FieldValue returns the string form of a task field, or false for unknown fields.
func FieldValue(t *taskstore.Task, name string) (string, bool) {
	fn, ok := fields[name]
	if !ok {
		return "", false
	}
	return fn(t), true
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// Result is one page of records plus the size of the full filtered set.
type Result struct {
	Tasks      []taskstore.Task
	TotalCount int
}

// Apply filters, sorts and paginates tasks in that order. The input slice is not modified.
// TotalCount is the filtered count before pagination.
func Apply(tasks []taskstore.Task, sort *Sort, page Page, filters Filters) Result {
	filtered := Filter(tasks, filters)
	total := len(filtered)

	SortTasks(filtered, sort)

	return Result{Tasks: Paginate(filtered, page), TotalCount: total}
}

// Paginate returns the window of tasks selected by page. An out-of-range
// window yields an empty, non-nil slice.
func Paginate(tasks []taskstore.Task, page Page) []taskstore.Task {
	if page.Size <= 0 {
		return tasks
	}

	start := page.Offset()
	if start >= len(tasks) {
		return []taskstore.Task{}
	}
	end := start + page.Size
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end]
}

// ParseDirection parses asc/desc case-insensitively.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid sort direction: %q", s)
	}
	return d, nil
}
