package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

func TestTriggers(t *testing.T) {
	t.Run("sort change refetches once", func(t *testing.T) {
		o, _, _ := setup(t, 5, true, 10)
		s := &query.Sort{Column: query.FieldName, Direction: query.Asc}
		assert.NotNil(t, o.OnSortChange(s))
		assert.Nil(t, o.OnSortChange(&query.Sort{Column: query.FieldName, Direction: query.Asc}))
		assert.NotNil(t, o.OnSortChange(nil))
	})

	t.Run("tab change resets page", func(t *testing.T) {
		o, _, _ := setup(t, 5, false, 10)
		o.State().SetPage(query.Page{Number: 4, Size: 10})

		require.NotNil(t, o.OnTabChange(taskstore.StatusClosed))
		assert.Equal(t, 1, o.State().Page().Number)
		assert.Nil(t, o.OnTabChange(taskstore.StatusClosed))
	})

	t.Run("search resets page", func(t *testing.T) {
		o, _, _ := setup(t, 5, false, 10)
		o.State().SetPage(query.Page{Number: 2, Size: 10})

		require.NotNil(t, o.OnSearch(query.FieldName, "task"))
		assert.Equal(t, 1, o.State().Page().Number)
	})

	t.Run("page change refetches only when paginated", func(t *testing.T) {
		o, _, _ := setup(t, 5, false, 10)
		assert.NotNil(t, o.OnPageChange(query.Page{Number: 2, Size: 10}))
		assert.Nil(t, o.OnPageChange(query.Page{Number: 2, Size: 10}))

		inf, _, _ := setup(t, 5, true, 10)
		assert.Nil(t, inf.OnPageChange(query.Page{Number: 2, Size: 10}))
		assert.Equal(t, 2, inf.State().Page().Number)
	})

	t.Run("toggle infinite refetches", func(t *testing.T) {
		o, _, _ := setup(t, 5, false, 10)
		require.NotNil(t, o.ToggleInfinite())
		assert.True(t, o.State().InfiniteScroll())
		assert.True(t, o.State().Loading().Initial)
	})

	t.Run("toggle to pagination after appends starts at page 1", func(t *testing.T) {
		o, rec, _ := setup(t, 30, true, 10)
		run(t, o, o.Replace())
		run(t, o, o.Append(false))
		run(t, o, o.Append(false))
		require.Equal(t, 3, o.State().Page().Number)

		run(t, o, o.ToggleInfinite())
		assert.False(t, o.State().InfiniteScroll())
		assert.Equal(t, 1, o.State().Page().Number)
		assert.Equal(t, 1, rec.pages[len(rec.pages)-1].Number)
		assert.Equal(t, "T-01", o.State().Tasks()[0].ID)
	})
}

// Clearing the search query restores the tab-filtered dataset.
func TestSearch_EmptyQueryClearsFilter(t *testing.T) {
	o, _, _ := setup(t, 12, false, 50)
	run(t, o, o.Replace())
	require.Equal(t, 12, o.State().TotalCount())

	run(t, o, o.OnSearch(query.FieldName, "Task 0"))
	assert.Equal(t, 9, o.State().TotalCount())

	run(t, o, o.OnSearch(query.FieldName, ""))
	assert.Equal(t, 12, o.State().TotalCount())
	col, q := o.State().Search()
	assert.Empty(t, col)
	assert.Empty(t, q)
}
