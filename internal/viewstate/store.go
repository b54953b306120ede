// Package viewstate holds the canonical UI state of the task browser. The
// Store is owned by one controller and mutated only through its named
// operations, all of which run on the UI goroutine.
package viewstate

import (
	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// LoadKind distinguishes a replace fetch from an append fetch.
type LoadKind int

const (
	// LoadInitial marks a replace fetch.
	LoadInitial LoadKind = iota + 1
	// LoadMore marks an append fetch.
	LoadMore
)

func (k LoadKind) String() string {
	switch k {
	case LoadInitial:
		return "replace"
	case LoadMore:
		return "append"
	default:
		return "none"
	}
}

// Loading flags. At most one is set at a time.
type Loading struct {
	Initial bool
	More    bool
}

// Busy reports whether any fetch is in flight.
func (l Loading) Busy() bool {
	return l.Initial || l.More
}

// State is a snapshot of the view state.
type State struct {
	Tab            taskstore.TaskStatus
	Sort           *query.Sort
	SearchColumn   string
	SearchQuery    string
	Page           query.Page
	InfiniteScroll bool

	Tasks      []taskstore.Task
	TotalCount int
	Counts     provider.Counts
	Loading    Loading

	SelectedIndex int
	Selected      *taskstore.Task
}

// Store owns the view state.
type Store struct {
	s State
}

// New creates a store from persisted parameters. Loading starts as initial,
// since the first replace fetch is issued at mount.
func New(p Params, infinite bool) *Store {
	return &Store{s: State{
		Tab:            p.Tab,
		Sort:           p.Sort,
		SearchColumn:   p.Column,
		SearchQuery:    p.Query,
		Page:           p.Page,
		InfiniteScroll: infinite,
		Tasks:          []taskstore.Task{},
		Loading:        Loading{Initial: true},
	}}
}

// Snapshot returns a copy of the state. The task slice is shared and must not be modified.
func (st *Store) Snapshot() State {
	s := st.s
	if s.Selected != nil {
		sel := *s.Selected
		s.Selected = &sel
	}
	if s.Sort != nil {
		sort := *s.Sort
		s.Sort = &sort
	}
	return s
}

// Params returns the persisted subset of the state.
func (st *Store) Params() Params {
	return Params{
		Tab:    st.s.Tab,
		Sort:   st.s.Sort,
		Column: st.s.SearchColumn,
		Query:  st.s.SearchQuery,
		Page:   st.s.Page,
	}
}

// Tab returns the active status tab.
func (st *Store) Tab() taskstore.TaskStatus { return st.s.Tab }

// Sort returns the active sort, or nil.
func (st *Store) Sort() *query.Sort { return st.s.Sort }

// Page returns the pagination window.
func (st *Store) Page() query.Page { return st.s.Page }

// InfiniteScroll reports whether rows accumulate instead of paging.
func (st *Store) InfiniteScroll() bool { return st.s.InfiniteScroll }

// Loading returns the loading flags.
func (st *Store) Loading() Loading { return st.s.Loading }

// Tasks returns the loaded rows. The slice must not be modified.
func (st *Store) Tasks() []taskstore.Task { return st.s.Tasks }

// TotalCount returns the size of the filtered dataset.
func (st *Store) TotalCount() int { return st.s.TotalCount }

// Counts returns the per-status aggregates.
func (st *Store) Counts() provider.Counts { return st.s.Counts }

// Selected returns the selected task and its index, or nil.
func (st *Store) Selected() (*taskstore.Task, int) {
	return st.s.Selected, st.s.SelectedIndex
}

// SelectedIndex returns the keyboard cursor row, which is kept even when no
// task is open in the detail view.
func (st *Store) SelectedIndex() int { return st.s.SelectedIndex }

// Filters builds the provider filters: the tab's status plus the column search.
func (st *Store) Filters() query.Filters {
	f := query.Filters{query.FieldStatus: query.Match(string(st.s.Tab))}
	if st.s.SearchColumn != "" {
		f[st.s.SearchColumn] = query.Match(st.s.SearchQuery)
	}
	return f
}

// SetTab switches the status tab. Returns false when nothing changed.
func (st *Store) SetTab(tab taskstore.TaskStatus) bool {
	if !tab.IsValid() || tab == st.s.Tab {
		return false
	}
	st.s.Tab = tab
	return true
}

// SetSort replaces the sort. Returns false when nothing changed.
func (st *Store) SetSort(s *query.Sort) bool {
	if st.s.Sort.Equal(s) {
		return false
	}
	if s != nil {
		cp := *s
		s = &cp
	}
	st.s.Sort = s
	return true
}

// SetSearch sets the column search. A blank query clears the search entirely.
// Returns false when nothing changed.
func (st *Store) SetSearch(column, q string) bool {
	if q == "" {
		column = ""
	}
	if column == st.s.SearchColumn && q == st.s.SearchQuery {
		return false
	}
	st.s.SearchColumn, st.s.SearchQuery = column, q
	return true
}

// Search returns the column search.
func (st *Store) Search() (column, q string) {
	return st.s.SearchColumn, st.s.SearchQuery
}

// SetPage sets the pagination window. Returns false when nothing changed.
func (st *Store) SetPage(p query.Page) bool {
	if p.Number < 1 {
		p.Number = 1
	}
	if p == st.s.Page {
		return false
	}
	st.s.Page = p
	return true
}

// SetInfiniteScroll switches between accumulating and paged rows.
func (st *Store) SetInfiniteScroll(on bool) {
	st.s.InfiniteScroll = on
}

// BeginLoad sets exactly one loading flag for the given kind.
func (st *Store) BeginLoad(kind LoadKind) {
	st.s.Loading = Loading{Initial: kind == LoadInitial, More: kind == LoadMore}
}

// EndLoad clears both loading flags.
func (st *Store) EndLoad() {
	st.s.Loading = Loading{}
}

// ReplaceTasks replaces the rows and the total, dropping a selection that no longer fits.
func (st *Store) ReplaceTasks(tasks []taskstore.Task, total int) {
	if tasks == nil {
		tasks = []taskstore.Task{}
	}
	st.s.Tasks = tasks
	st.s.TotalCount = total
	st.trim()
	st.clampSelection()
}

// AppendTasks concatenates a fetched page onto the rows in fetch order.
func (st *Store) AppendTasks(tasks []taskstore.Task, total int) {
	merged := make([]taskstore.Task, 0, len(st.s.Tasks)+len(tasks))
	merged = append(merged, st.s.Tasks...)
	merged = append(merged, tasks...)
	st.s.Tasks = merged
	st.s.TotalCount = total
	st.trim()
	st.clampSelection()
}

// trim keeps len(Tasks) <= TotalCount.
func (st *Store) trim() {
	if st.s.TotalCount >= 0 && len(st.s.Tasks) > st.s.TotalCount {
		st.s.Tasks = st.s.Tasks[:st.s.TotalCount]
	}
}

// ReplaceTask swaps the record with the same ID in the rows and the
// selection. Returns false when the task is not loaded.
func (st *Store) ReplaceTask(task taskstore.Task) bool {
	found := false
	for i := range st.s.Tasks {
		if st.s.Tasks[i].ID == task.ID {
			tasks := make([]taskstore.Task, len(st.s.Tasks))
			copy(tasks, st.s.Tasks)
			tasks[i] = task
			st.s.Tasks = tasks
			found = true
			break
		}
	}
	if st.s.Selected != nil && st.s.Selected.ID == task.ID {
		t := task
		st.s.Selected = &t
	}
	return found
}

// SetCounts stores the per-status aggregates.
func (st *Store) SetCounts(c provider.Counts) {
	st.s.Counts = c
}

// MoveCursor moves the keyboard cursor by delta without opening a task.
// Returns false when the move would leave [0, len(Tasks)).
func (st *Store) MoveCursor(delta int) bool {
	i := st.s.SelectedIndex + delta
	if i < 0 || i >= len(st.s.Tasks) {
		return false
	}
	st.s.SelectedIndex = i
	return true
}

// SetCursor places the keyboard cursor. Returns false when out of range.
func (st *Store) SetCursor(i int) bool {
	if i < 0 || i >= len(st.s.Tasks) {
		return false
	}
	st.s.SelectedIndex = i
	return true
}

// Open selects the task at index i for the detail view.
func (st *Store) Open(i int) bool {
	if i < 0 || i >= len(st.s.Tasks) {
		return false
	}
	t := st.s.Tasks[i]
	st.s.SelectedIndex = i
	st.s.Selected = &t
	return true
}

// OpenByID selects the loaded task with the given ID.
func (st *Store) OpenByID(id string) bool {
	for i := range st.s.Tasks {
		if st.s.Tasks[i].ID == id {
			return st.Open(i)
		}
	}
	return false
}

// Step moves the open task by delta. Returns false when there is no open task
// or the move would leave the loaded rows.
func (st *Store) Step(delta int) bool {
	if st.s.Selected == nil {
		return false
	}
	return st.Open(st.s.SelectedIndex + delta)
}

// Close closes the detail view, keeping the cursor.
func (st *Store) Close() {
	st.s.Selected = nil
}

func (st *Store) clampSelection() {
	n := len(st.s.Tasks)
	if st.s.Selected != nil && (st.s.SelectedIndex >= n || st.s.Tasks[st.s.SelectedIndex].ID != st.s.Selected.ID) {
		st.s.Selected = nil
	}
	if st.s.SelectedIndex >= n {
		st.s.SelectedIndex = n - 1
	}
	if st.s.SelectedIndex < 0 {
		st.s.SelectedIndex = 0
	}
}
