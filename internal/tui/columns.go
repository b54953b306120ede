package tui

import (
	"github.com/yarlson/taskdesk/internal/format"
	"github.com/yarlson/taskdesk/internal/grid"
	"github.com/yarlson/taskdesk/internal/query"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

// SearchColumns are the columns offered by the column search, in cycle order.
var SearchColumns = []string{query.FieldName, query.FieldPriority, query.FieldAssignee}

// DefaultSort is applied when no sort is persisted.
var DefaultSort = query.Sort{Column: query.FieldCreatedAt, Direction: query.Desc}

// Columns returns the task table columns. When styled is false cells are plain
// text, for output that is not a terminal.
func Columns(styled bool) []grid.Column[taskstore.Task] {
	priority := grid.NewColumn(query.FieldPriority, "Priority", func(t taskstore.Task) string { return string(t.Priority) })
	id := grid.NewColumn(query.FieldID, "ID", func(t taskstore.Task) string { return t.ID })
	id.Sortable = false
	status := grid.NewColumn(query.FieldStatus, "Status", func(t taskstore.Task) string { return format.Status(t.Status) })
	status.Sortable = false
	labels := grid.NewColumn(query.FieldLabels, "Labels", func(t taskstore.Task) string { return format.Labels(t.Labels) })
	labels.MaxLength = 24
	name := grid.NewColumn(query.FieldName, "Name", func(t taskstore.Task) string { return t.Name })
	name.MaxLength = 40
	name.Filterable = true
	due := grid.NewColumn(query.FieldDueDate, "Due Date", func(t taskstore.Task) string { return format.Date(t.DueDate, true, false) })
	created := grid.NewColumn(query.FieldCreatedAt, "Created At", func(t taskstore.Task) string { return format.Date(t.CreatedAt, true, false) })
	assignee := grid.NewColumn(query.FieldAssignee, "Assignee", func(t taskstore.Task) string { return t.Assignee })
	assignee.Filterable = true
	priority.Filterable = true

	if styled {
		priority.Render = func(v string, t taskstore.Task) string {
			if st, ok := priorityStyles[t.Priority]; ok {
				return st.Render(v)
			}
			return v
		}
		status.Render = func(v string, t taskstore.Task) string {
			if st, ok := statusStyles[t.Status]; ok {
				return st.Render(v)
			}
			return v
		}
	}

	return []grid.Column[taskstore.Task]{priority, id, status, labels, name, due, created, assignee}
}
