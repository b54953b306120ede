package taskstore

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// YAMLTask represents a task as defined in a dataset YAML file.
// Dates accept RFC 3339 timestamps or plain YYYY-MM-DD dates.
type YAMLTask struct {
	ID        string   `yaml:"id,omitempty"`
	Priority  string   `yaml:"priority"`
	Status    string   `yaml:"status,omitempty"`
	Labels    []string `yaml:"labels,omitempty"`
	Name      string   `yaml:"name"`
	DueDate   string   `yaml:"dueDate,omitempty"`
	CreatedAt string   `yaml:"createdAt,omitempty"`
	Assignee  string   `yaml:"assignee,omitempty"`
	Comment   string   `yaml:"comment,omitempty"`
}

// YAMLFile represents the structure of a dataset YAML file.
type YAMLFile struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// ImportError represents an error that occurred during import of a specific task.
type ImportError struct {
	ID     string
	Reason string
}

// ImportResult contains the results of a YAML import operation.
type ImportResult struct {
	Imported int
	Errors   []ImportError
}

// dateLayouts are tried in order when parsing dataset dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ReadYAMLFile reads and parses a dataset file without converting it.
func ReadYAMLFile(path string) (*YAMLFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}

	var yamlFile YAMLFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &yamlFile, nil
}

// ImportFromYAML reads tasks from a YAML file and imports them into the store.
// Tasks that fail validation are skipped and reported in the result.
// Existing tasks with matching IDs are replaced.
func ImportFromYAML(store Store, path string) (*ImportResult, error) {
	yamlFile, err := ReadYAMLFile(path)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	for _, yt := range yamlFile.Tasks {
		task, err := ConvertYAMLTask(yt)
		if err != nil {
			result.Errors = append(result.Errors, ImportError{
				ID:     yt.ID,
				Reason: err.Error(),
			})
			continue
		}

		if err := store.Save(task); err != nil {
			result.Errors = append(result.Errors, ImportError{
				ID:     task.ID,
				Reason: err.Error(),
			})
			continue
		}

		result.Imported++
	}

	return result, nil
}

// ConvertYAMLTask converts a YAMLTask to a Task, applying defaults and validation.
// A missing ID gets a generated one; a missing status defaults to open and a
// missing createdAt to now.
func ConvertYAMLTask(yt YAMLTask) (Task, error) {
	task := Task{
		ID:       strings.TrimSpace(yt.ID),
		Priority: Priority(yt.Priority),
		Status:   TaskStatus(yt.Status),
		Labels:   yt.Labels,
		Name:     yt.Name,
		Assignee: yt.Assignee,
		Comment:  yt.Comment,
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	if yt.Status == "" {
		task.Status = StatusOpen
	}

	var err error
	if yt.DueDate != "" {
		if task.DueDate, err = parseDate(yt.DueDate); err != nil {
			return Task{}, fmt.Errorf("invalid dueDate: %w", err)
		}
	}

	if yt.CreatedAt != "" {
		if task.CreatedAt, err = parseDate(yt.CreatedAt); err != nil {
			return Task{}, fmt.Errorf("invalid createdAt: %w", err)
		}
	} else {
		task.CreatedAt = time.Now().Truncate(time.Second)
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// WriteYAMLFile writes the tasks as a dataset YAML file.
func WriteYAMLFile(path string, tasks []Task) error {
	file := YAMLFile{Tasks: make([]YAMLTask, 0, len(tasks))}
	for _, t := range tasks {
		yt := YAMLTask{
			ID:        t.ID,
			Priority:  string(t.Priority),
			Status:    string(t.Status),
			Labels:    t.Labels,
			Name:      t.Name,
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
			Assignee:  t.Assignee,
			Comment:   t.Comment,
		}
		if !t.DueDate.IsZero() {
			yt.DueDate = t.DueDate.Format(time.RFC3339)
		}
		file.Tasks = append(file.Tasks, yt)
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
