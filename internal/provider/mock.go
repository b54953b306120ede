package provider

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Default simulated latencies.
const (
	DefaultTasksLatency  = 1500 * time.Millisecond
	DefaultCountsLatency = 1000 * time.Millisecond
	DefaultUpdateLatency = 300 * time.Millisecond
)

// Latency holds the simulated delay of each call. Zero means no delay.
type Latency struct {
	Tasks  time.Duration
	Counts time.Duration
	Update time.Duration
}

// DefaultLatency returns the latencies of the original mock backend.
func DefaultLatency() Latency {
	return Latency{
		Tasks:  DefaultTasksLatency,
		Counts: DefaultCountsLatency,
		Update: DefaultUpdateLatency,
	}
}

// MockProvider serves a taskstore.Store with simulated network latency.
type MockProvider struct {
	store   taskstore.Store
	latency Latency
	log     lgr.L
}

// MockOption configures a MockProvider.
type MockOption func(*MockProvider)

// WithLatency overrides the simulated latencies.
func WithLatency(l Latency) MockOption {
	return func(p *MockProvider) { p.latency = l }
}

// WithLogger sets the logger.
func WithLogger(l lgr.L) MockOption {
	return func(p *MockProvider) { p.log = l }
}

// NewMock creates a provider over store with the default latencies.
func NewMock(store taskstore.Store, opts ...MockOption) *MockProvider {
	p := &MockProvider{store: store, latency: DefaultLatency(), log: lgr.NoOp}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchTasks filters, sorts and paginates the whole dataset.
func (p *MockProvider) FetchTasks(ctx context.Context, sort *query.Sort, page query.Page, filters query.Filters) (Result, error) {
	tasks, err := p.store.List()
	if err != nil {
		return Result{}, err
	}

	res := query.Apply(tasks, sort, page, filters)
	p.log.Logf("[DEBUG] fetch tasks sort=%s page=%d size=%d got=%d total=%d",
		sort, page.Number, page.Size, len(res.Tasks), res.TotalCount)

	if err := wait(ctx, p.latency.Tasks); err != nil {
		return Result{}, err
	}
	return res, nil
}

// FetchTaskCounts counts tasks per status.
func (p *MockProvider) FetchTaskCounts(ctx context.Context) (Counts, error) {
	byStatus, err := p.store.CountByStatus()
	if err != nil {
		return Counts{}, err
	}

	if err := wait(ctx, p.latency.Counts); err != nil {
		return Counts{}, err
	}
	return Counts{
		Open:       byStatus[taskstore.StatusOpen],
		InProgress: byStatus[taskstore.StatusInProgress],
		Closed:     byStatus[taskstore.StatusClosed],
	}, nil
}

// UpdateStatus writes the status change back to the store.
func (p *MockProvider) UpdateStatus(ctx context.Context, id string, status taskstore.TaskStatus, comment string) (taskstore.Task, error) {
	if err := ValidateStatusChange(status, comment); err != nil {
		return taskstore.Task{}, err
	}

	if err := wait(ctx, p.latency.Update); err != nil {
		return taskstore.Task{}, err
	}

	task, err := p.store.UpdateStatus(id, status, comment)
	if err != nil {
		return taskstore.Task{}, err
	}
	p.log.Logf("[INFO] task %s moved to %s", id, status)
	return task, nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
