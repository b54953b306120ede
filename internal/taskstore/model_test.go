package taskstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTask(id string) Task {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return Task{
		ID:        id,
		Priority:  PriorityMedium,
		Status:    StatusOpen,
		Labels:    []string{"backend"},
		Name:      "Test Task " + id,
		DueDate:   now.Add(72 * time.Hour),
		CreatedAt: now,
		Assignee:  "Meera",
	}
}

func TestTaskStatus_ValidValues(t *testing.T) {
	for _, status := range Statuses {
		assert.True(t, status.IsValid(), "status %q should be valid", status)
	}
	assert.False(t, TaskStatus("completed").IsValid())
}

func TestTaskStatus_WireValues(t *testing.T) {
	assert.Equal(t, "open", string(StatusOpen))
	assert.Equal(t, "in_progress", string(StatusInProgress))
	assert.Equal(t, "closed", string(StatusClosed))
}

func TestPriority_Rank(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	assert.Equal(t, 0, Priority("Urgent").Rank())
	assert.False(t, Priority("low").IsValid())
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr string
	}{
		{name: "valid", mutate: func(*Task) {}},
		{name: "missing id", mutate: func(t *Task) { t.ID = "" }, wantErr: "id is required"},
		{name: "missing name", mutate: func(t *Task) { t.Name = "" }, wantErr: "name is required"},
		{name: "bad priority", mutate: func(t *Task) { t.Priority = "Urgent" }, wantErr: "priority is invalid"},
		{name: "bad status", mutate: func(t *Task) { t.Status = "done" }, wantErr: "status is invalid"},
		{name: "missing createdAt", mutate: func(t *Task) { t.CreatedAt = time.Time{} }, wantErr: "createdAt is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := newTestTask("task-1")
			tt.mutate(&task)
			err := task.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTask_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(newTestTask("task-1"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "priority", "status", "labels", "name", "dueDate", "createdAt", "assignee"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "comment", "empty comment is omitted")
}

func TestTask_CloneCopiesLabels(t *testing.T) {
	task := newTestTask("task-1")
	clone := task.Clone()
	clone.Labels[0] = "changed"
	assert.Equal(t, "backend", task.Labels[0])
}
