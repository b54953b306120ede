package query

import (
	"sort"
	"strings"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

// compareFunc returns <0, 0, >0 comparing a to b in ascending order.
type compareFunc func(a, b *taskstore.Task) int

var comparators = map[string]compareFunc{
	FieldDueDate:   func(a, b *taskstore.Task) int { return a.DueDate.Compare(b.DueDate) },
	FieldCreatedAt: func(a, b *taskstore.Task) int { return a.CreatedAt.Compare(b.CreatedAt) },
	FieldPriority:  func(a, b *taskstore.Task) int { return a.Priority.Rank() - b.Priority.Rank() },
}

// Sortable reports whether the provider can sort by column.
func Sortable(column string) bool {
	return HasField(column)
}

// SortTasks sorts tasks in place. A nil sort, an unknown column or an invalid
// direction leaves natural order untouched. Sorting is stable, so reversing the
// direction reverses the order of records with distinct keys.
func SortTasks(tasks []taskstore.Task, s *Sort) {
	if s == nil || len(tasks) == 0 || !Sortable(s.Column) || !s.Direction.IsValid() {
		return
	}

	cmp := comparators[s.Column]
	if cmp == nil {
		column := s.Column
		cmp = func(a, b *taskstore.Task) int {
			av, _ := FieldValue(a, column)
			bv, _ := FieldValue(b, column)
			return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	}

	desc := s.Direction == Desc
	sort.SliceStable(tasks, func(i, j int) bool {
		c := cmp(&tasks[i], &tasks[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}
