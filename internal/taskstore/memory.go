package taskstore

import (
	"sync"
)

// MemoryStore implements the Store interface over an in-memory slice.
// Natural order is insertion order; Save on an existing ID keeps its position.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []Task
	index map[string]int
}

// NewMemoryStore creates a MemoryStore holding the given tasks.
// Invalid tasks and duplicate IDs are rejected with the first error encountered.
func NewMemoryStore(tasks []Task) (*MemoryStore, error) {
	s := &MemoryStore{index: make(map[string]int, len(tasks))}
	for _, t := range tasks {
		if _, dup := s.index[t.ID]; dup {
			return nil, &ValidationError{ID: t.ID, Reason: "duplicate task id"}
		}
		if err := s.Save(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get retrieves a task by its ID.
func (s *MemoryStore) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Task{}, &NotFoundError{ID: id}
	}
	return s.tasks[i].Clone(), nil
}

// List returns a copy of all tasks in natural order.
func (s *MemoryStore) List() ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out, nil
}

// Save validates and stores the task.
func (s *MemoryStore) Save(task Task) error {
	if err := task.Validate(); err != nil {
		return &ValidationError{ID: task.ID, Reason: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[task.ID]; ok {
		s.tasks[i] = task.Clone()
		return nil
	}
	s.index[task.ID] = len(s.tasks)
	s.tasks = append(s.tasks, task.Clone())
	return nil
}

// UpdateStatus sets the status and comment of an existing task and returns the updated record.
func (s *MemoryStore) UpdateStatus(id string, status TaskStatus, comment string) (Task, error) {
	if !status.IsValid() {
		return Task{}, &ValidationError{ID: id, Reason: "task status is invalid: " + string(status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Task{}, &NotFoundError{ID: id}
	}
	s.tasks[i].Status = status
	s.tasks[i].Comment = comment
	return s.tasks[i].Clone(), nil
}

// CountByStatus returns the number of tasks per status.
func (s *MemoryStore) CountByStatus() (map[TaskStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[TaskStatus]int, len(validStatuses))
	for _, t := range s.tasks {
		counts[t.Status]++
	}
	return counts, nil
}

// Len returns the number of tasks in the store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
