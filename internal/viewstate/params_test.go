package viewstate

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

func TestDecodeParams_Defaults(t *testing.T) {
	p := DecodeParams(url.Values{})
	assert.Equal(t, DefaultParams(), p)
	assert.Equal(t, taskstore.StatusOpen, p.Tab)
	assert.Equal(t, query.Page{Number: 1, Size: 20}, p.Page)
	assert.Nil(t, p.Sort)
}

func TestDecodeParams(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Params
	}{
		{
			name: "full",
			raw:  "tab=closed&sort-column=dueDate&sort-order=desc&column=assignee&query=diya&page=3&pageSize=50",
			want: Params{
				Tab:    taskstore.StatusClosed,
				Sort:   &query.Sort{Column: "dueDate", Direction: query.Desc},
				Column: "assignee",
				Query:  "diya",
				Page:   query.Page{Number: 3, Size: 50},
			},
		},
		{
			name: "invalid values fall back",
			raw:  "tab=archived&sort-column=bogus&page=-1&pageSize=abc&column=nope&query=x",
			want: DefaultParams(),
		},
		{
			name: "search needs both parts",
			raw:  "column=name",
			want: DefaultParams(),
		},
		{
			name: "missing order is ascending",
			raw:  "?sort-column=name",
			want: Params{
				Tab:  taskstore.StatusOpen,
				Sort: &query.Sort{Column: "name", Direction: query.Asc},
				Page: query.Page{Number: 1, Size: 20},
			},
		},
		{
			name: "page size outside the menu is kept",
			raw:  "pageSize=7",
			want: Params{Tab: taskstore.StatusOpen, Page: query.Page{Number: 1, Size: 7}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParams(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParams_Invalid(t *testing.T) {
	_, err := ParseParams("tab=%zz")
	assert.Error(t, err)
}

func TestEncode_PageOnlyInPaginationMode(t *testing.T) {
	p := Params{
		Tab:    taskstore.StatusInProgress,
		Sort:   &query.Sort{Column: "name", Direction: query.Desc},
		Column: "name",
		Query:  "report",
		Page:   query.Page{Number: 2, Size: 10},
	}

	paged := p.Encode(false)
	assert.Equal(t, "2", paged.Get("page"))
	assert.Equal(t, "10", paged.Get("pageSize"))

	infinite := p.Encode(true)
	assert.Empty(t, infinite.Get("page"))
	assert.Empty(t, infinite.Get("pageSize"))
	assert.Equal(t, "in_progress", infinite.Get("tab"))
	assert.Equal(t, "desc", infinite.Get("sort-order"))

	back, err := ParseParams(p.String(false))
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestStoreParams(t *testing.T) {
	p := DefaultParams()
	p.Tab = taskstore.StatusClosed
	st := New(p, false)
	st.SetSearch("name", "x")

	got := st.Params()
	assert.Equal(t, taskstore.StatusClosed, got.Tab)
	assert.Equal(t, "name", got.Column)
	assert.Equal(t, "x", got.Query)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		fallback     bool
		wantInfinite bool
		wantPage     query.Page
	}{
		{"empty keeps fallback", "", true, true, query.Page{Number: 1, Size: 30}},
		{"page params force pagination", "page=2&pageSize=10", true, false, query.Page{Number: 2, Size: 10}},
		{"no page params in pagination config", "tab=closed", false, false, query.Page{Number: 1, Size: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, infinite, err := ParseView(tt.raw, 30, tt.fallback)
			require.NoError(t, err)
			assert.Equal(t, tt.wantInfinite, infinite)
			assert.Equal(t, tt.wantPage, p.Page)
		})
	}

	_, infinite, err := ParseView("%zz", 30, true)
	assert.Error(t, err)
	assert.True(t, infinite)
}
