package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yarlson/taskdesk/internal/format"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// prefetchDistance is how many rows before the end of the loaded set stepping
// through details requests the next page.
const prefetchDistance = 3

const noComment = "No comment"

func (m *Model) handleDetailKey(msg tea.KeyMsg) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.detailKeys.Close):
		m.state.Close()
		m.mode = modeTable
		m.ensureVisible()
		return
	case key.Matches(msg, m.detailKeys.Prev):
		m.stepDetails(-1)
		return
	case key.Matches(msg, m.detailKeys.Next):
		m.stepDetails(1)
		return
	}

	for i, b := range m.detailKeys.Status {
		if key.Matches(msg, b) {
			m.openStatusDialog(taskstore.Statuses[i])
			return
		}
	}
}

func (m *Model) stepDetails(delta int) {
	if !m.state.Step(delta) {
		return
	}
	if len(m.state.Tasks())-m.state.SelectedIndex() == prefetchDistance {
		m.queue(m.fetch.Append(false))
	}
}

func (m *Model) openStatusDialog(status taskstore.TaskStatus) {
	task, _ := m.state.Selected()
	if task == nil {
		return
	}
	m.pendingStatus = status
	m.comment.SetValue(task.Comment)
	m.comment.CursorEnd()
	m.comment.Focus()
	m.mode = modeStatus
}

func (m *Model) handleStatusKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.dialogKeys.Cancel):
		m.comment.Blur()
		m.mode = modeDetails
		return nil
	case key.Matches(msg, m.dialogKeys.Confirm):
		comment := strings.TrimSpace(m.comment.Value())
		if comment == "" {
			m.notice = "a comment is required"
			return nil
		}
		task, _ := m.state.Selected()
		if task == nil {
			return nil
		}
		m.log.Logf("[DEBUG] status change %s -> %s", task.ID, m.pendingStatus)
		m.queue(m.fetch.UpdateStatus(task.ID, m.pendingStatus, comment))
		m.comment.Blur()
		m.comment.SetValue("")
		m.mode = modeDetails
		return nil
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return cmd
}

func (m *Model) detailLines(t *taskstore.Task) []string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + value
	}
	priority := string(t.Priority)
	if st, ok := priorityStyles[t.Priority]; ok {
		priority = st.Render(priority)
	}
	status := format.Status(t.Status)
	if st, ok := statusStyles[t.Status]; ok {
		status = st.Render(status)
	}
	comment := t.Comment
	if comment == "" {
		comment = mutedStyle.Render(noComment)
	}
	return []string{
		row("ID", t.ID),
		row("Name", t.Name),
		row("Priority", priority),
		row("Status", status),
		row("Labels", format.Labels(t.Labels)),
		row("Due Date", format.Date(t.DueDate, true, false)),
		row("Created", format.Date(t.CreatedAt, true, false)+" "+format.Time(t.CreatedAt, false)),
		row("Assignee", t.Assignee),
		"",
		titleStyle.Render("Comment"),
		comment,
	}
}

func (m *Model) viewDetails() string {
	task, idx := m.state.Selected()
	if task == nil {
		return ""
	}
	header := titleStyle.Render("Task Details") + "  " +
		mutedStyle.Render(fmt.Sprintf("%d of %d", idx+1, m.state.TotalCount()))

	body := append([]string{header, ""}, m.detailLines(task)...)
	return strings.Join([]string{
		dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body...)),
		m.renderStatusLine(),
		m.help.View(m.detailKeys),
	}, "\n")
}

func (m *Model) viewStatusDialog() string {
	task, _ := m.state.Selected()
	if task == nil {
		return ""
	}
	title := titleStyle.Render(fmt.Sprintf("Change status to %s", format.Status(m.pendingStatus)))
	confirm := "[enter] Confirm"
	if strings.TrimSpace(m.comment.Value()) == "" {
		confirm = mutedStyle.Render(confirm)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		mutedStyle.Render(task.ID+" "+task.Name),
		"",
		m.comment.View(),
		"",
		confirm+"  [esc] Cancel",
	)
	return strings.Join([]string{
		dialogStyle.Render(content),
		m.renderStatusLine(),
	}, "\n")
}
