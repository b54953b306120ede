// Package tui is the interactive task table.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-pkgz/lgr"

	"github.com/yarlson/taskdesk/internal/fetch"
	"github.com/yarlson/taskdesk/internal/grid"
	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/scroll"
	"github.com/yarlson/taskdesk/internal/taskstore"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

// rowPixels is the logical height of one table row for the scroll detector,
// so that pixel thresholds such as the 650 stripe height map onto rows.
const rowPixels = 50

// chromeLines is the number of lines drawn around the table body.
const chromeLines = 6

type mode int

const (
	modeTable mode = iota
	modeSearch
	modeDetails
	modeStatus
)

// Options configures a Model.
type Options struct {
	Provider       provider.Provider
	Params         viewstate.Params
	InfiniteScroll bool
	Scroll         scroll.Options
	Log            lgr.L
}

// Model is the bubbletea model of the task table.
type Model struct {
	ctx      context.Context
	state    *viewstate.Store
	fetch    *fetch.Orchestrator
	grid     *grid.Controller[taskstore.Task]
	detector *scroll.Detector
	log      lgr.L

	columns   []grid.Column[taskstore.Task]
	widths    []int
	focusCol  int
	searchCol int

	keys       keyMap
	detailKeys detailKeyMap
	dialogKeys dialogKeyMap
	help       help.Model
	search     textinput.Model
	comment    textinput.Model
	body       viewport.Model

	mode          mode
	pendingStatus taskstore.TaskStatus
	pending       []fetch.Job
	err           error
	notice        string
	width         int
	height        int
	ready         bool
}

// New creates the model. Jobs run with ctx.
func New(ctx context.Context, opts Options) *Model {
	log := opts.Log
	if log == nil {
		log = lgr.NoOp
	}

	st := viewstate.New(opts.Params, opts.InfiniteScroll)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 120

	comment := textinput.New()
	comment.Prompt = "> "
	comment.Placeholder = "Enter a comment for this status change"
	comment.CharLimit = 500

	m := &Model{
		ctx:        ctx,
		state:      st,
		fetch:      fetch.New(st, opts.Provider, log),
		grid:       grid.New[taskstore.Task](),
		detector:   scroll.New(opts.Scroll),
		log:        log,
		columns:    Columns(true),
		keys:       newKeyMap(),
		detailKeys: newDetailKeyMap(),
		dialogKeys: newDialogKeyMap(),
		help:       help.New(),
		search:     search,
		comment:    comment,
		body:       viewport.New(0, 0),
	}

	m.grid.OnSortChange(func(s *query.Sort) { m.queue(m.fetch.OnSortChange(s)) })
	m.grid.OnPageChange(func(p query.Page) { m.queue(m.fetch.OnPageChange(p)) })
	m.grid.OnRowActivate(func(t taskstore.Task) {
		if m.state.OpenByID(t.ID) {
			m.mode = modeDetails
		}
	})
	m.detector.SetOnScrolledEnd(func() { m.queue(m.fetch.Append(true)) })
	m.detector.SetOnNearEnd(func() { m.queue(m.fetch.Append(false)) })

	def := DefaultSort
	if opts.Params.Sort != nil {
		def = *opts.Params.Sort
	}
	opt := m.gridOptions()
	opt.DefaultSort = &def
	m.grid.Configure(m.columns, st.Tasks(), opt)
	// The mount fetch in Init already carries the default sort.
	m.pending = nil

	return m
}

// Params returns the current view parameters, for persistence.
func (m *Model) Params() viewstate.Params {
	return m.state.Params()
}

// InfiniteScroll reports the current loading mode.
func (m *Model) InfiniteScroll() bool {
	return m.state.InfiniteScroll()
}

// ViewQuery encodes the current view as a query string.
func (m *Model) ViewQuery() string {
	return m.state.Params().String(m.state.InfiniteScroll())
}

// Init issues the mount fetches.
func (m *Model) Init() tea.Cmd {
	return m.run(m.fetch.Mount()...)
}

func (m *Model) queue(job fetch.Job) {
	if job != nil {
		m.pending = append(m.pending, job)
	}
}

func (m *Model) flush() tea.Cmd {
	cmd := m.run(m.pending...)
	m.pending = nil
	return cmd
}

func (m *Model) run(jobs ...fetch.Job) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(jobs))
	for _, job := range jobs {
		if job == nil {
			continue
		}
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg { return job(ctx) })
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.observe()
		return m, m.flush()
	case fetch.Msg:
		m.applyFetch(msg)
		return m, m.flush()
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.sync()
		if jobs := m.flush(); jobs != nil {
			cmd = tea.Batch(cmd, jobs)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeStatus:
		m.comment, cmd = m.comment.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.ready = true
	m.grid.Resize(width)
	m.body.Width = width
	m.body.Height = max(1, height-chromeLines)
	m.help.Width = width
	m.search.Width = max(10, width/2)
	m.comment.Width = max(10, min(60, width-10))
	m.sync()
	m.ensureVisible()
}

func (m *Model) applyFetch(msg fetch.Msg) {
	out := m.fetch.Apply(msg)
	if out.Stale {
		return
	}
	m.queue(out.Next)

	switch {
	case out.Err != nil && !errors.Is(out.Err, context.Canceled):
		m.err = out.Err
	case out.Err == nil && msg.Kind != fetch.KindCounts:
		m.err = nil
	}

	if msg.Kind == fetch.KindReplace && out.Err == nil {
		m.body.GotoTop()
	}
	m.sync()

	if out.Err != nil {
		return
	}
	if msg.ScrollBack {
		m.scrollBack()
	}
	if msg.Kind == fetch.KindReplace || msg.Kind == fetch.KindAppend {
		m.observe()
	}
}

// scrollBack nudges the viewport off the absolute end after an end-triggered
// load, keeping the cursor row visible.
func (m *Model) scrollBack() {
	y := m.body.YOffset - 1
	if y < 0 || m.state.SelectedIndex() >= y+m.body.Height {
		return
	}
	m.body.SetYOffset(y)
}

func (m *Model) observe() {
	if !m.ready || !m.state.InfiniteScroll() || m.mode != modeTable {
		return
	}
	m.detector.Observe(scroll.Metrics{
		Offset:   m.body.YOffset * rowPixels,
		Viewport: m.body.Height * rowPixels,
		Content:  m.body.TotalLineCount() * rowPixels,
		Sentinel: len(m.state.Tasks()) * rowPixels,
	})
}

func (m *Model) gridOptions() grid.Options {
	p := m.state.Page()
	return grid.Options{
		Manual:    !m.state.InfiniteScroll(),
		Page:      p.Number,
		PageSize:  p.Size,
		TotalRows: m.state.TotalCount(),
		Loading:   m.state.Loading().Initial,
	}
}

// sync pushes the view state into the grid and rerenders the body.
func (m *Model) sync() {
	m.grid.Configure(m.columns, m.state.Tasks(), m.gridOptions())
	m.grid.SetSort(m.state.Sort())
	if (m.mode == modeDetails || m.mode == modeStatus) && !m.hasSelection() {
		m.mode = modeTable
		m.comment.Blur()
	}
	m.refreshBody()
}

func (m *Model) hasSelection() bool {
	t, _ := m.state.Selected()
	return t != nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeDetails:
		m.handleDetailKey(msg)
		return nil
	case modeStatus:
		return m.handleStatusKey(msg)
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.body.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.body.Height)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.state.Tasks()))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.state.Tasks()))
	case key.Matches(msg, m.keys.Open):
		if !m.state.Loading().Initial {
			m.grid.HandleKey(m.state.SelectedIndex(), msg.String())
		}
	case key.Matches(msg, m.keys.ColPrev):
		m.focusColumn(m.focusCol - 1)
	case key.Matches(msg, m.keys.ColNext):
		m.focusColumn(m.focusCol + 1)
	case key.Matches(msg, m.keys.ScrollLeft):
		m.grid.ScrollBy(-8)
	case key.Matches(msg, m.keys.ScrollRight):
		m.grid.ScrollBy(8)
	case key.Matches(msg, m.keys.Sort):
		col := m.columns[m.focusCol]
		if !col.Sortable {
			m.notice = col.Title + " is not sortable"
			break
		}
		m.grid.ToggleSort(col.Key)
	case key.Matches(msg, m.keys.NextTab):
		m.stepTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.stepTab(-1)
	case key.Matches(msg, m.keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.keys.NextPage):
		if m.grid.Options().Manual {
			m.grid.NextPage()
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.grid.Options().Manual {
			m.grid.PrevPage()
		}
	case key.Matches(msg, m.keys.Bigger):
		if m.grid.Options().Manual {
			m.grid.StepPageSize(1)
		}
	case key.Matches(msg, m.keys.Smaller):
		if m.grid.Options().Manual {
			m.grid.StepPageSize(-1)
		}
	case key.Matches(msg, m.keys.Mode):
		m.detector.Reset()
		m.queue(m.fetch.ToggleInfinite())
	case key.Matches(msg, m.keys.Refresh):
		for _, job := range m.fetch.Refresh() {
			m.queue(job)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	n := len(m.state.Tasks())
	if n == 0 {
		return
	}
	i := m.state.SelectedIndex() + delta
	i = max(0, min(n-1, i))
	m.state.SetCursor(i)
	m.ensureVisible()
	m.observe()
}

func (m *Model) ensureVisible() {
	i := m.state.SelectedIndex()
	switch {
	case i < m.body.YOffset:
		m.body.SetYOffset(i)
	case i >= m.body.YOffset+m.body.Height:
		m.body.SetYOffset(i - m.body.Height + 1)
	}
}

func (m *Model) focusColumn(i int) {
	if i < 0 || i >= len(m.columns) {
		return
	}
	m.focusCol = i
	if len(m.widths) != len(m.columns) || m.width == 0 {
		return
	}

	start := len(cursorBlank)
	for _, w := range m.widths[:i] {
		start += w
	}
	end := start + m.widths[i]
	off := m.grid.BodyOffset()
	switch {
	case start < off:
		m.grid.ScrollBody(start)
	case end > off+m.width:
		m.grid.ScrollBody(end - m.width)
	}
}

func (m *Model) stepTab(delta int) {
	n := len(taskstore.Statuses)
	cur := 0
	for i, s := range taskstore.Statuses {
		if s == m.state.Tab() {
			cur = i
		}
	}
	m.detector.Reset()
	m.queue(m.fetch.OnTabChange(taskstore.Statuses[(cur+delta+n)%n]))
}

func (m *Model) openSearch() tea.Cmd {
	col, q := m.state.Search()
	m.searchCol = 0
	for i, c := range SearchColumns {
		if c == col {
			m.searchCol = i
		}
	}
	m.search.SetValue(q)
	m.search.CursorEnd()
	m.mode = modeSearch
	return m.search.Focus()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.dialogKeys.Cancel):
		m.search.Blur()
		m.mode = modeTable
		return nil
	case key.Matches(msg, m.dialogKeys.Cycle):
		m.searchCol = (m.searchCol + 1) % len(SearchColumns)
		return nil
	case key.Matches(msg, m.dialogKeys.Confirm):
		m.search.Blur()
		m.mode = modeTable
		m.detector.Reset()
		m.queue(m.fetch.OnSearch(SearchColumns[m.searchCol], strings.TrimSpace(m.search.Value())))
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

// Run starts the program on the alternate screen and returns the final model.
func Run(ctx context.Context, m *Model) (*Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(*Model); ok {
		return fm, err
	}
	return m, err
}
