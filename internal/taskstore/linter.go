package taskstore

import (
	"fmt"
	"sort"
	"strings"
)

// LintError represents a validation error for a specific task.
type LintError struct {
	TaskID string
	Error  string
}

// String returns a formatted string representation of the lint error.
func (e LintError) String() string {
	return fmt.Sprintf("%s: %s", e.TaskID, e.Error)
}

// LintWarning represents a non-fatal validation warning for a specific task.
type LintWarning struct {
	TaskID  string
	Warning string
}

// String returns a formatted string representation of the lint warning.
func (w LintWarning) String() string {
	return fmt.Sprintf("%s: %s", w.TaskID, w.Warning)
}

// LintResult contains the results of linting a dataset.
type LintResult struct {
	Valid    bool
	Errors   []LintError
	Warnings []LintWarning
}

// Error returns an error if the lint result is invalid, or nil if valid.
func (r *LintResult) Error() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}

	var errMsgs []string
	for _, lintErr := range r.Errors {
		errMsgs = append(errMsgs, lintErr.String())
	}

	return fmt.Errorf("%d validation errors:\n%s", len(r.Errors), strings.Join(errMsgs, "\n"))
}

// LintTaskWithWarnings validates a single task and returns both errors and warnings.
// Warnings are non-fatal issues that don't prevent the task from being listed.
func LintTaskWithWarnings(task *Task) ([]string, error) {
	var warnings []string

	if err := task.Validate(); err != nil {
		return warnings, err
	}

	if strings.TrimSpace(task.Assignee) == "" {
		warnings = append(warnings, "assignee missing")
	}

	if task.DueDate.IsZero() {
		warnings = append(warnings, "due date missing (sorts first by dueDate)")
	} else if task.DueDate.Before(task.CreatedAt) {
		warnings = append(warnings, "due date is before creation date")
	}

	for _, label := range task.Labels {
		if strings.TrimSpace(label) == "" {
			warnings = append(warnings, "empty label")
			break
		}
	}

	return warnings, nil
}

// LintTaskSet validates an entire dataset.
// It checks for:
// - Individual task validity
// - Duplicate IDs
func LintTaskSet(tasks []Task) *LintResult {
	result := &LintResult{
		Valid:    true,
		Errors:   []LintError{},
		Warnings: []LintWarning{},
	}

	seen := make(map[string]int, len(tasks))
	for i := range tasks {
		task := &tasks[i]

		warnings, err := LintTaskWithWarnings(task)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, LintError{
				TaskID: task.ID,
				Error:  err.Error(),
			})
		}

		for _, warning := range warnings {
			result.Warnings = append(result.Warnings, LintWarning{
				TaskID:  task.ID,
				Warning: warning,
			})
		}

		if task.ID != "" {
			seen[task.ID]++
		}
	}

	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	for _, id := range dups {
		result.Valid = false
		result.Errors = append(result.Errors, LintError{
			TaskID: id,
			Error:  fmt.Sprintf("duplicate task id (%d occurrences)", seen[id]),
		})
	}

	return result
}
