// Package grid is the view-state controller behind the task table. It holds
// declarative column, sort and pagination state and reports changes through
// callbacks. It never sorts or pages data itself: the rows it is given are
// already the server-selected window.
package grid

import (
	"github.com/yarlson/taskdesk/internal/format"
	"github.com/yarlson/taskdesk/internal/query"
)

// NoResults is the text of the sentinel row shown when there is no data.
const NoResults = "No results."

// Placeholder is the text of a cell while loading.
const Placeholder = "░░░░░░░░"

// Indicator is the sort state of one column.
type Indicator int

const (
	None Indicator = iota
	Asc
	Desc
)

// Glyph returns the header marker for the indicator.
func (i Indicator) Glyph() string {
	switch i {
	case Asc:
		return "↑"
	case Desc:
		return "↓"
	default:
		return "↕"
	}
}

// ValueFunc extracts the display value of a column from a record.
type ValueFunc[T any] func(row T) string

// RenderFunc renders a cell from the column value and the record.
type RenderFunc[T any] func(value string, row T) string

// HeaderFunc renders a column header from its title and sort state.
type HeaderFunc func(title string, ind Indicator, sortable bool) string

// Column describes one table column.
type Column[T any] struct {
	Key        string
	Title      string
	Sortable   bool
	Filterable bool
	// MaxLength truncates the default rendering. Zero means no limit.
	MaxLength int
	Value     ValueFunc[T]
	Render    RenderFunc[T]
	Header    HeaderFunc
}

// NewColumn returns a sortable column reading its value through fn.
func NewColumn[T any](key, title string, fn ValueFunc[T]) Column[T] {
	return Column[T]{Key: key, Title: title, Sortable: true, Value: fn}
}

// Cell is one rendered body cell.
type Cell struct {
	Key         string
	Text        string
	Placeholder bool
}

// Row is one rendered body row. A sentinel row carries no record and spans
// all columns.
type Row[T any] struct {
	Index    int
	Record   T
	Cells    []Cell
	Sentinel bool
}

// Options controls how the grid treats its rows.
type Options struct {
	// Manual selects page controls; otherwise rows accumulate (infinite scroll).
	Manual    bool
	Page      int
	PageSize  int
	TotalRows int
	// DefaultSort is applied and emitted once, on the first Configure.
	DefaultSort *query.Sort
	Loading     bool
}

// Controller is the grid view-state controller.
type Controller[T any] struct {
	columns []Column[T]
	rows    []T
	opts    Options
	sort    *query.Sort

	configured bool
	syncNeeded bool
	widths     []int
	width      int
	bodyX      int
	headerX    int

	onSort     func(*query.Sort)
	onPage     func(query.Page)
	onActivate func(T)
}

// New creates an empty controller.
func New[T any]() *Controller[T] {
	return &Controller[T]{}
}

// OnSortChange sets the sort callback. It receives nil when sorting is cleared.
func (c *Controller[T]) OnSortChange(fn func(*query.Sort)) { c.onSort = fn }

// OnPageChange sets the pagination callback.
func (c *Controller[T]) OnPageChange(fn func(query.Page)) { c.onPage = fn }

// OnRowActivate sets the row activation callback.
func (c *Controller[T]) OnRowActivate(fn func(T)) { c.onActivate = fn }

// Configure replaces columns, rows and options and schedules a width sync.
func (c *Controller[T]) Configure(columns []Column[T], rows []T, opts Options) {
	c.columns = columns
	c.rows = rows
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	c.opts = opts
	c.syncNeeded = true

	if !c.configured {
		c.configured = true
		if opts.DefaultSort != nil {
			s := *opts.DefaultSort
			c.sort = &s
			c.emitSort()
		}
	}
}

// SetRows replaces the rows, keeping columns and options.
func (c *Controller[T]) SetRows(rows []T, total int) {
	c.rows = rows
	c.opts.TotalRows = total
	c.syncNeeded = true
}

// SetLoading toggles the loading projection.
func (c *Controller[T]) SetLoading(loading bool) {
	c.opts.Loading = loading
}

// Columns returns the configured columns.
func (c *Controller[T]) Columns() []Column[T] { return c.columns }

// Options returns the current options.
func (c *Controller[T]) Options() Options { return c.opts }

// Len returns the number of data rows.
func (c *Controller[T]) Len() int { return len(c.rows) }

// Column returns the column with key.
func (c *Controller[T]) Column(key string) (Column[T], bool) {
	for _, col := range c.columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column[T]{}, false
}

// Sort returns the current sort, or nil.
func (c *Controller[T]) Sort() *query.Sort {
	if c.sort == nil {
		return nil
	}
	s := *c.sort
	return &s
}

// SetSort sets the sort without emitting, for state restored from elsewhere.
func (c *Controller[T]) SetSort(s *query.Sort) {
	if s == nil {
		c.sort = nil
		return
	}
	cp := *s
	c.sort = &cp
}

// ToggleSort cycles a column through ascending, descending and unsorted.
// Choosing another column replaces the previous sort. Unsortable or unknown
// columns are ignored.
func (c *Controller[T]) ToggleSort(key string) {
	col, ok := c.Column(key)
	if !ok || !col.Sortable {
		return
	}

	switch c.SortIndicator(key) {
	case None:
		c.sort = &query.Sort{Column: key, Direction: query.Asc}
	case Asc:
		c.sort = &query.Sort{Column: key, Direction: query.Desc}
	case Desc:
		c.sort = nil
	}
	c.emitSort()
}

// SortIndicator returns the sort state of a column.
func (c *Controller[T]) SortIndicator(key string) Indicator {
	if c.sort == nil || c.sort.Column != key {
		return None
	}
	if c.sort.Direction == query.Desc {
		return Desc
	}
	return Asc
}

func (c *Controller[T]) emitSort() {
	if c.onSort != nil {
		c.onSort(c.Sort())
	}
}

// HeaderText renders the header of a column.
func (c *Controller[T]) HeaderText(col Column[T]) string {
	ind := c.SortIndicator(col.Key)
	if col.Header != nil {
		return col.Header(col.Title, ind, col.Sortable)
	}
	if !col.Sortable {
		return col.Title
	}
	return col.Title + " " + ind.Glyph()
}

// Rows projects the data into display rows. No data yields one sentinel row;
// loading replaces every cell with a placeholder without changing row count.
func (c *Controller[T]) Rows() []Row[T] {
	if len(c.rows) == 0 {
		return []Row[T]{{
			Index:    -1,
			Sentinel: true,
			Cells:    []Cell{{Text: NoResults}},
		}}
	}

	out := make([]Row[T], len(c.rows))
	for i, rec := range c.rows {
		cells := make([]Cell, len(c.columns))
		for j, col := range c.columns {
			if c.opts.Loading {
				cells[j] = Cell{Key: col.Key, Text: Placeholder, Placeholder: true}
				continue
			}
			cells[j] = Cell{Key: col.Key, Text: c.cellText(col, rec)}
		}
		out[i] = Row[T]{Index: i, Record: rec, Cells: cells}
	}
	return out
}

func (c *Controller[T]) cellText(col Column[T], rec T) string {
	var value string
	if col.Value != nil {
		value = col.Value(rec)
	}
	if col.Render != nil {
		return col.Render(value, rec)
	}
	if col.MaxLength > 0 {
		return format.Truncate(value, col.MaxLength)
	}
	return value
}

// Activate emits the record at index. Returns false for out-of-range indexes.
func (c *Controller[T]) Activate(index int) bool {
	if index < 0 || index >= len(c.rows) {
		return false
	}
	if c.onActivate != nil {
		c.onActivate(c.rows[index])
	}
	return true
}

// HandleKey activates the row at index on enter or space.
func (c *Controller[T]) HandleKey(index int, key string) bool {
	switch key {
	case "enter", " ", "space":
		return c.Activate(index)
	}
	return false
}
