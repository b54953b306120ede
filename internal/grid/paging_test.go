package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/taskdesk/internal/query"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{25, 10, 3},
		{12, 5, 3},
	}
	for _, tt := range tests {
		c := New[item]()
		c.Configure(columns(), nil, Options{Manual: true, Page: 1, PageSize: tt.size, TotalRows: tt.total})
		assert.Equal(t, tt.want, c.PageCount(), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPaging(t *testing.T) {
	c := New[item]()
	var pages []query.Page
	c.OnPageChange(func(p query.Page) { pages = append(pages, p) })
	c.Configure(columns(), nil, Options{Manual: true, Page: 1, PageSize: 10, TotalRows: 25})

	assert.False(t, c.CanPrev())
	assert.False(t, c.PrevPage())
	assert.True(t, c.NextPage())
	assert.True(t, c.NextPage())
	assert.False(t, c.CanNext())
	assert.False(t, c.NextPage())
	assert.Equal(t, "Page 3 of 3", c.PageLabel())
	assert.True(t, c.PrevPage())

	assert.Equal(t, []query.Page{{Number: 2, Size: 10}, {Number: 3, Size: 10}, {Number: 2, Size: 10}}, pages)
}

func TestSetPageSize(t *testing.T) {
	c := New[item]()
	var last query.Page
	c.OnPageChange(func(p query.Page) { last = p })
	c.Configure(columns(), nil, Options{Manual: true, Page: 3, PageSize: 10, TotalRows: 100})

	require.NoError(t, c.SetPageSize(50))
	assert.Equal(t, query.Page{Number: 1, Size: 50}, last)
	assert.Equal(t, 2, c.PageCount())

	assert.Error(t, c.SetPageSize(7))
	assert.Equal(t, 50, c.Page().Size)
}

func TestStepPageSize(t *testing.T) {
	c := New[item]()
	c.Configure(columns(), nil, Options{Manual: true, PageSize: 5, TotalRows: 100})

	assert.False(t, c.StepPageSize(-1))
	assert.True(t, c.StepPageSize(1))
	assert.Equal(t, 10, c.Page().Size)
	for c.StepPageSize(1) {
	}
	assert.Equal(t, 50, c.Page().Size)
}

func TestConfigureDefaults(t *testing.T) {
	c := New[item]()
	c.Configure(columns(), nil, Options{})
	assert.Equal(t, query.Page{Number: 1, Size: 10}, c.Page())
}
