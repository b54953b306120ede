package provider

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

func newTestStore(t *testing.T, n int) *taskstore.MemoryStore {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := make([]taskstore.Task, n)
	for i := range tasks {
		tasks[i] = taskstore.Task{
			ID:        fmt.Sprintf("T-%02d", i+1),
			Priority:  taskstore.PriorityLow,
			Status:    taskstore.Statuses[i%3],
			Name:      fmt.Sprintf("Task %02d", i+1),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	store, err := taskstore.NewMemoryStore(tasks)
	require.NoError(t, err)
	return store
}

func newTestMock(t *testing.T, n int) *MockProvider {
	return NewMock(newTestStore(t, n), WithLatency(Latency{}))
}

func TestMock_FetchTasksScenario(t *testing.T) {
	p := newTestMock(t, 25)
	ctx := context.Background()

	res, err := p.FetchTasks(ctx, nil, query.Page{Number: 1, Size: 10}, nil)
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 10)
	assert.Equal(t, 25, res.TotalCount)

	res, err = p.FetchTasks(ctx, nil, query.Page{Number: 3, Size: 10}, nil)
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 5)
}

func TestMock_FetchTasksFiltersByStatus(t *testing.T) {
	p := newTestMock(t, 9)

	res, err := p.FetchTasks(context.Background(),
		&query.Sort{Column: query.FieldCreatedAt, Direction: query.Desc},
		query.Page{Number: 1, Size: 2},
		query.Filters{query.FieldStatus: query.Match(string(taskstore.StatusOpen))})
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalCount)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, "T-07", res.Tasks[0].ID)
	assert.Equal(t, "T-04", res.Tasks[1].ID)
}

func TestMock_Counts(t *testing.T) {
	p := newTestMock(t, 10)

	counts, err := p.FetchTaskCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Counts{Open: 4, InProgress: 3, Closed: 3}, counts)
	assert.Equal(t, 10, counts.Total())
	assert.Equal(t, 3, counts.Of(taskstore.StatusClosed))
	assert.Equal(t, 0, counts.Of("nope"))
}

func TestMock_UpdateStatus(t *testing.T) {
	p := newTestMock(t, 3)
	ctx := context.Background()

	task, err := p.UpdateStatus(ctx, "T-01", taskstore.StatusClosed, "done and dusted")
	require.NoError(t, err)
	assert.Equal(t, taskstore.StatusClosed, task.Status)
	assert.Equal(t, "done and dusted", task.Comment)

	counts, err := p.FetchTaskCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Open)
	assert.Equal(t, 2, counts.Closed)

	_, err = p.UpdateStatus(ctx, "T-01", taskstore.StatusOpen, "  ")
	assert.ErrorIs(t, err, ErrCommentRequired)

	_, err = p.UpdateStatus(ctx, "T-01", "done", "x")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = p.UpdateStatus(ctx, "T-99", taskstore.StatusOpen, "x")
	assert.ErrorIs(t, err, taskstore.ErrNotFound)
}

func TestMock_LatencyHonorsContext(t *testing.T) {
	p := NewMock(newTestStore(t, 3), WithLatency(Latency{Tasks: time.Hour}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.FetchTasks(ctx, nil, query.Page{Number: 1, Size: 10}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMock_LatencyDelays(t *testing.T) {
	p := NewMock(newTestStore(t, 3), WithLatency(Latency{Counts: 30 * time.Millisecond}))

	start := time.Now()
	_, err := p.FetchTaskCounts(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
