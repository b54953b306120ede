package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/yarlson/taskdesk/internal/format"
	"github.com/yarlson/taskdesk/internal/grid"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

const (
	cursorMark  = "› "
	cursorBlank = "  "
	cellGap     = 2
	loadingText = "Loading..."
)

// tableLayout reports the widths measured while rendering the body.
type tableLayout struct {
	headers int
	first   []int
}

func (l tableLayout) HeaderCells() []int {
	return make([]int, l.headers)
}

func (l tableLayout) FirstRowCells() ([]int, bool) {
	return l.first, l.first != nil
}

// measure returns the natural width of each column over the header and the
// given rows.
func (m *Model) measure(rows []grid.Row[taskstore.Task]) []int {
	widths := make([]int, len(m.columns))
	for i, col := range m.columns {
		widths[i] = ansi.StringWidth(m.grid.HeaderText(col)) + cellGap
	}
	for _, r := range rows {
		if r.Sentinel {
			continue
		}
		for i, c := range r.Cells {
			if w := ansi.StringWidth(c.Text) + cellGap; w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// refreshBody renders the rows into the viewport and syncs header widths.
func (m *Model) refreshBody() {
	rows := m.grid.Rows()

	loading := m.grid.Options().Loading
	if !loading || len(m.widths) != len(m.columns) {
		m.widths = m.measure(rows)
	}

	cursor := m.state.SelectedIndex()
	lines := make([]string, 0, len(rows)+1)
	var first []int
	for _, r := range rows {
		if r.Sentinel {
			lines = append(lines, cursorBlank+mutedStyle.Render(r.Cells[0].Text))
			continue
		}
		line, cells := m.renderRow(r, r.Index == cursor)
		if first == nil {
			first = cells
		}
		lines = append(lines, line)
	}

	if m.grid.NeedsSync() {
		m.grid.SyncWidths(tableLayout{headers: len(m.columns), first: first})
	}

	if m.state.InfiniteScroll() && m.state.Loading().More {
		lines = append(lines, cursorBlank+mutedStyle.Render(loadingText))
	}

	for i, line := range lines {
		lines[i] = m.cut(line, m.grid.BodyOffset())
	}
	atBottom := m.body.AtBottom()
	m.body.SetContent(strings.Join(lines, "\n"))
	if atBottom && m.state.Loading().More {
		m.body.GotoBottom()
	}
}

func (m *Model) renderRow(r grid.Row[taskstore.Task], selected bool) (string, []int) {
	var b strings.Builder
	if selected {
		b.WriteString(titleStyle.Render(cursorMark))
	} else {
		b.WriteString(cursorBlank)
	}

	cells := make([]int, len(r.Cells))
	for i, c := range r.Cells {
		w := m.widths[i]
		text := c.Text
		if c.Placeholder {
			text = placeholderStyle.Render(ansi.Truncate(c.Text, w-cellGap, ""))
		} else if selected {
			text = selectedRowStyle.Render(text)
		}
		b.WriteString(pad(text, w))
		cells[i] = w
	}
	return b.String(), cells
}

func (m *Model) renderHeader() string {
	widths := m.grid.HeaderWidths()
	if len(widths) != len(m.columns) {
		widths = m.widths
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(cursorBlank))
	for i, col := range m.columns {
		text := m.grid.HeaderText(col)
		w := ansi.StringWidth(text) + cellGap
		if i < len(widths) {
			w = widths[i]
		}
		st := headerStyle
		if i == m.focusCol && m.mode == modeTable {
			st = focusedHeaderStyle
		}
		b.WriteString(st.Render(text) + headerStyle.Render(strings.Repeat(" ", max(0, w-ansi.StringWidth(text)))))
	}
	return m.cut(b.String(), m.grid.HeaderOffset())
}

func (m *Model) cut(line string, offset int) string {
	if m.width <= 0 {
		return line
	}
	return ansi.Cut(line, offset, offset+m.width)
}

func pad(s string, w int) string {
	return s + strings.Repeat(" ", max(0, w-ansi.StringWidth(s)))
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(taskstore.Statuses))
	for _, s := range taskstore.Statuses {
		label := fmt.Sprintf("%s (%s)", format.Status(s), m.tabCount(s))
		if s == m.state.Tab() {
			tabs = append(tabs, activeTabStyle.Render(label))
			continue
		}
		tabs = append(tabs, tabStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// tabCount is the selected tab's total, or the aggregate count for others.
func (m *Model) tabCount(s taskstore.TaskStatus) string {
	if s != m.state.Tab() {
		return strconv.Itoa(m.state.Counts().Of(s))
	}
	if m.state.Loading().Initial {
		return "..."
	}
	return strconv.Itoa(m.state.TotalCount())
}

func (m *Model) renderSearchBar() string {
	if m.mode == modeSearch {
		col := labelStyle.Render("[" + SearchColumns[m.searchCol] + "]")
		return col + m.search.View()
	}
	col, q := m.state.Search()
	if col == "" {
		return mutedStyle.Render("no filter")
	}
	return mutedStyle.Render(fmt.Sprintf("%s: %q", col, q))
}

func (m *Model) renderFooter() string {
	if m.grid.Options().Manual {
		size := m.state.Page().Size
		return mutedStyle.Render(fmt.Sprintf("%s · %d per page · %d total", m.grid.PageLabel(), size, m.state.TotalCount()))
	}
	return mutedStyle.Render(fmt.Sprintf("%d of %d loaded", len(m.state.Tasks()), m.state.TotalCount()))
}

func (m *Model) renderStatusLine() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("error: " + m.err.Error())
	case m.notice != "":
		return mutedStyle.Render(m.notice)
	}
	return ""
}

// View renders the model.
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.mode {
	case modeDetails:
		return m.viewDetails()
	case modeStatus:
		return m.viewStatusDialog()
	}

	title := titleStyle.Render("Tasks") + "  " + m.renderTabs()
	return strings.Join([]string{
		title,
		m.renderSearchBar(),
		m.renderHeader(),
		m.body.View(),
		m.renderFooter(),
		m.renderStatusLine(),
		m.help.View(m.keys),
	}, "\n")
}
