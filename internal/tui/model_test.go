package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/taskdesk/internal/fetch"
	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/scroll"
	"github.com/yarlson/taskdesk/internal/taskstore"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

func newDataset(t *testing.T, n int) *taskstore.MemoryStore {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := make([]taskstore.Task, n)
	for i := range tasks {
		tasks[i] = taskstore.Task{
			ID:        fmt.Sprintf("T-%02d", i+1),
			Priority:  taskstore.PriorityMedium,
			Status:    taskstore.StatusOpen,
			Name:      fmt.Sprintf("Task %02d", i+1),
			Assignee:  "alice",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	store, err := taskstore.NewMemoryStore(tasks)
	require.NoError(t, err)
	return store
}

// newModel mounts a model over n tasks in a 120x16 window (10 body rows).
// The scroll detector only fires at the absolute end.
func newModel(t *testing.T, n int, infinite bool) (*Model, *taskstore.MemoryStore) {
	t.Helper()
	data := newDataset(t, n)
	m := New(context.Background(), Options{
		Provider:       provider.NewMock(data, provider.WithLatency(provider.Latency{})),
		Params:         viewstate.DefaultParams(),
		InfiniteScroll: infinite,
		Scroll:         scroll.Options{LoadBefore: 1, StripeHeight: 1, Cooldown: -1},
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 16})
	drain(t, m, m.Init())
	return m, data
}

// drain runs cmd and feeds every fetch result back into the model until no
// work is left.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "fetch loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case fetch.Msg:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		drain(t, m, cmd)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		drain(t, m, cmd)
	}
}

func TestModel_MountLoadsFirstPageWithDefaultSort(t *testing.T) {
	m, _ := newModel(t, 50, true)

	tasks := m.state.Tasks()
	require.Len(t, tasks, 20)
	assert.Equal(t, "T-50", tasks[0].ID)
	assert.Equal(t, 50, m.state.TotalCount())
	assert.Equal(t, 50, m.state.Counts().Open)
	assert.False(t, m.state.Loading().Busy())
	assert.Equal(t, &DefaultSort, m.state.Sort())

	view := m.View()
	assert.Contains(t, view, "Open (50)")
	assert.Contains(t, view, "In Progress (0)")
	assert.Contains(t, view, "20 of 50 loaded")
	assert.Contains(t, view, "Created At ↓")
}

func TestModel_PersistedSortWins(t *testing.T) {
	data := newDataset(t, 5)
	params := viewstate.DefaultParams()
	params.Sort = &query.Sort{Column: query.FieldName, Direction: query.Asc}
	m := New(context.Background(), Options{
		Provider: provider.NewMock(data, provider.WithLatency(provider.Latency{})),
		Params:   params,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 16})
	drain(t, m, m.Init())

	assert.Equal(t, "T-01", m.state.Tasks()[0].ID)
	assert.Equal(t, query.Asc, m.grid.Sort().Direction)
	assert.Equal(t, query.FieldName, m.grid.Sort().Column)
}

func TestModel_InitialLoadShowsPlaceholders(t *testing.T) {
	data := newDataset(t, 5)
	m := New(context.Background(), Options{
		Provider:       provider.NewMock(data, provider.WithLatency(provider.Latency{})),
		Params:         viewstate.DefaultParams(),
		InfiniteScroll: true,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 16})

	assert.True(t, m.state.Loading().Initial)
	assert.Contains(t, m.View(), "Open (...)")

	drain(t, m, m.Init())
	assert.Contains(t, m.View(), "Open (5)")
}

func TestModel_ScrollToEndAppendsNextPage(t *testing.T) {
	m, _ := newModel(t, 50, true)

	_, cmd := m.Update(keyMsg("G"))
	assert.Equal(t, 19, m.state.SelectedIndex())
	assert.True(t, m.state.Loading().More)
	assert.Contains(t, m.View(), loadingText)

	drain(t, m, cmd)
	assert.Len(t, m.state.Tasks(), 40)
	assert.Equal(t, 2, m.state.Page().Number)
	assert.NotContains(t, m.View(), loadingText)
}

func TestModel_DoesNotAppendPastTotal(t *testing.T) {
	m, _ := newModel(t, 15, true)

	press(t, m, "G")
	assert.Len(t, m.state.Tasks(), 15)
	assert.Equal(t, 1, m.state.Page().Number)
}

func TestModel_TabSwitchRefetches(t *testing.T) {
	m, _ := newModel(t, 10, true)

	press(t, m, "t")
	assert.Equal(t, taskstore.StatusInProgress, m.state.Tab())
	assert.Empty(t, m.state.Tasks())
	assert.Contains(t, m.View(), "No results.")

	press(t, m, "T")
	assert.Equal(t, taskstore.StatusOpen, m.state.Tab())
	assert.Len(t, m.state.Tasks(), 10)
}

func TestModel_SearchFiltersByColumn(t *testing.T) {
	m, _ := newModel(t, 50, true)

	press(t, m, "/")
	require.Equal(t, modeSearch, m.mode)
	typeText(t, m, "Task 0")
	press(t, m, "enter")

	assert.Equal(t, modeTable, m.mode)
	col, q := m.state.Search()
	assert.Equal(t, query.FieldName, col)
	assert.Equal(t, "Task 0", q)
	assert.Equal(t, 9, m.state.TotalCount())

	// Tab cycles the column; clearing the query restores every row.
	press(t, m, "/", "tab")
	assert.Equal(t, query.FieldPriority, SearchColumns[m.searchCol])
	m.search.SetValue("   ")
	press(t, m, "enter")
	col, _ = m.state.Search()
	assert.Empty(t, col)
	assert.Equal(t, 50, m.state.TotalCount())
}

func TestModel_SearchEscapeKeepsFilter(t *testing.T) {
	m, _ := newModel(t, 10, true)

	press(t, m, "/")
	typeText(t, m, "zzz")
	press(t, m, "esc")

	assert.Equal(t, modeTable, m.mode)
	col, _ := m.state.Search()
	assert.Empty(t, col)
	assert.Len(t, m.state.Tasks(), 10)
}

func TestModel_SortToggle(t *testing.T) {
	m, _ := newModel(t, 10, true)

	press(t, m, "s")
	require.NotNil(t, m.state.Sort())
	assert.Equal(t, query.FieldPriority, m.state.Sort().Column)
	assert.Equal(t, query.Asc, m.state.Sort().Direction)

	press(t, m, "l", "s")
	assert.Equal(t, "ID is not sortable", m.notice)
	assert.Equal(t, query.FieldPriority, m.state.Sort().Column)
}

func TestModel_OpenDetailsAndStep(t *testing.T) {
	m, _ := newModel(t, 50, true)

	press(t, m, "enter")
	require.Equal(t, modeDetails, m.mode)
	task, idx := m.state.Selected()
	require.NotNil(t, task)
	assert.Equal(t, 0, idx)
	assert.Contains(t, m.View(), "No comment")

	press(t, m, "left")
	_, idx = m.state.Selected()
	assert.Equal(t, 0, idx)

	for range 16 {
		press(t, m, "right")
	}
	_, idx = m.state.Selected()
	assert.Equal(t, 16, idx)
	assert.Len(t, m.state.Tasks(), 20)

	press(t, m, "right")
	_, idx = m.state.Selected()
	assert.Equal(t, 17, idx)
	assert.Len(t, m.state.Tasks(), 40, "stepping three rows from the end loads the next page")

	press(t, m, "esc")
	assert.Equal(t, modeTable, m.mode)
	assert.Equal(t, 17, m.state.SelectedIndex())
}

func TestModel_StatusChangeRequiresComment(t *testing.T) {
	m, data := newModel(t, 10, true)

	press(t, m, "enter", "3")
	require.Equal(t, modeStatus, m.mode)
	assert.Equal(t, taskstore.StatusClosed, m.pendingStatus)

	press(t, m, "enter")
	assert.Equal(t, modeStatus, m.mode)
	assert.Equal(t, "a comment is required", m.notice)

	typeText(t, m, "done")
	press(t, m, "enter")
	assert.Equal(t, modeDetails, m.mode)

	task, _ := m.state.Selected()
	require.NotNil(t, task)
	assert.Equal(t, taskstore.StatusClosed, task.Status)
	assert.Equal(t, "done", task.Comment)
	assert.Equal(t, 1, m.state.Counts().Closed)
	assert.Equal(t, 9, m.state.Counts().Open)

	stored, err := data.Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, taskstore.StatusClosed, stored.Status)

	assert.Contains(t, m.View(), "done")
}

func TestModel_StatusDialogPrefillsComment(t *testing.T) {
	m, data := newModel(t, 3, true)
	_, err := data.UpdateStatus("T-03", taskstore.StatusOpen, "triaged")
	require.NoError(t, err)
	press(t, m, "r")

	press(t, m, "enter", "2")
	assert.Equal(t, "triaged", m.comment.Value())

	press(t, m, "esc")
	assert.Equal(t, modeDetails, m.mode)
	task, _ := m.state.Selected()
	assert.Equal(t, taskstore.StatusOpen, task.Status)
}

func TestModel_PaginationMode(t *testing.T) {
	m, _ := newModel(t, 50, true)

	press(t, m, "m")
	assert.False(t, m.InfiniteScroll())
	assert.Contains(t, m.View(), "Page 1 of 3")

	press(t, m, "]")
	assert.Equal(t, 2, m.state.Page().Number)
	assert.Equal(t, "T-30", m.state.Tasks()[0].ID)
	assert.Contains(t, m.View(), "Page 2 of 3")

	press(t, m, "+")
	assert.Equal(t, query.Page{Number: 1, Size: 30}, m.state.Page())
	assert.Len(t, m.state.Tasks(), 30)
	assert.Contains(t, m.View(), "Page 1 of 2")

	press(t, m, "[")
	assert.Equal(t, 1, m.state.Page().Number)

	assert.Equal(t, "page=1&pageSize=30&sort-column=createdAt&sort-order=desc&tab=open", m.ViewQuery())
}

func TestModel_HorizontalScrollMirrorsHeader(t *testing.T) {
	m, _ := newModel(t, 5, true)

	press(t, m, ">")
	assert.Equal(t, 8, m.grid.BodyOffset())
	assert.Equal(t, 8, m.grid.HeaderOffset())

	press(t, m, "<", "<")
	assert.Equal(t, 0, m.grid.BodyOffset())
}

func TestModel_HeaderWidthsFollowBody(t *testing.T) {
	m, _ := newModel(t, 5, true)

	widths := m.grid.HeaderWidths()
	require.Len(t, widths, len(m.columns))
	assert.Equal(t, m.widths, widths)
	for _, line := range strings.Split(m.body.View(), "\n")[:5] {
		assert.Contains(t, line, "T-0")
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t, 1, true)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
