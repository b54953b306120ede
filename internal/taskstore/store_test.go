package taskstore

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ids ...string) *MemoryStore {
	t.Helper()
	tasks := make([]Task, 0, len(ids))
	for _, id := range ids {
		tasks = append(tasks, newTestTask(id))
	}
	store, err := NewMemoryStore(tasks)
	require.NoError(t, err)
	return store
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{ID: "task-9"}
	assert.Equal(t, "task not found: task-9", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{ID: "task-1", Reason: "bad"}
	assert.Equal(t, "task validation failed for task-1: bad", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))

	anon := &ValidationError{Reason: "bad"}
	assert.Equal(t, "task validation failed: bad", anon.Error())
}

func TestMemoryStore_ImplementsStore(t *testing.T) {
	var _ Store = (*MemoryStore)(nil)
}

func TestNewMemoryStore(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		store := newTestStore(t, "c", "a", "b")
		tasks, err := store.List()
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, []string{"c", "a", "b"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewMemoryStore([]Task{newTestTask("a"), newTestTask("a")})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects invalid task", func(t *testing.T) {
		bad := newTestTask("a")
		bad.Priority = ""
		_, err := NewMemoryStore([]Task{bad})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestMemoryStore_GetAndSave(t *testing.T) {
	store := newTestStore(t, "a", "b")

	got, err := store.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	_, err = store.Get("zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	updated := newTestTask("a")
	updated.Name = "Renamed"
	require.NoError(t, store.Save(updated))

	tasks, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, "Renamed", tasks[0].Name, "replace keeps position")
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := newTestStore(t, "a")
	got, err := store.Get("a")
	require.NoError(t, err)
	got.Labels[0] = "mutated"

	again, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "backend", again.Labels[0])
}

func TestMemoryStore_UpdateStatus(t *testing.T) {
	store := newTestStore(t, "a", "b")

	task, err := store.UpdateStatus("a", StatusClosed, "shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, task.Status)
	assert.Equal(t, "shipped", task.Comment)

	_, err = store.UpdateStatus("zzz", StatusClosed, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.UpdateStatus("a", "done", "x")
	assert.ErrorIs(t, err, ErrValidation)

	counts, err := store.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, counts[StatusOpen])
	assert.Equal(t, 1, counts[StatusClosed])
	assert.Equal(t, 0, counts[StatusInProgress])
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t, "a", "b", "c")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			status := Statuses[i%len(Statuses)]
			_, _ = store.UpdateStatus("b", status, "c")
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.List()
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, store.Len())
}
