package query

import (
	"regexp"
	"strings"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Value is a filter value: either a single pattern or a list of accepted values.
// The zero Value is a no-op.
type Value struct {
	pattern string
	list    []string
	isList  bool
}

// Match returns a scalar filter value. Blank patterns are no-ops.
func Match(pattern string) Value {
	return Value{pattern: pattern}
}

// AnyOf returns a list filter value that accepts any of the given values.
// An empty list is a no-op.
func AnyOf(values ...string) Value {
	return Value{list: values, isList: true}
}

// IsNoop reports whether the value filters nothing.
func (v Value) IsNoop() bool {
	if v.isList {
		return len(v.list) == 0
	}
	return strings.TrimSpace(v.pattern) == ""
}

// Filters maps field names to filter values. Every entry must match.
type Filters map[string]Value

// Filter returns the tasks matching all filters, in their original order.
// The result is a new slice.
func Filter(tasks []taskstore.Task, filters Filters) []taskstore.Task {
	matchers := compile(filters)
	out := make([]taskstore.Task, 0, len(tasks))
	for i := range tasks {
		if matchAll(&tasks[i], matchers) {
			out = append(out, tasks[i])
		}
	}
	return out
}

type matcher struct {
	field string
	value Value
	re    *regexp.Regexp
}

// compile drops no-op entries and unknown fields, and compiles patterns once.
func compile(filters Filters) []matcher {
	var ms []matcher
	for field, value := range filters {
		if field == "" || value.IsNoop() || !HasField(field) {
			continue
		}
		m := matcher{field: field, value: value}
		if !value.isList && field != FieldStatus {
			// Invalid expressions fall back to substring matching.
			if re, err := regexp.Compile("(?i)" + value.pattern); err == nil {
				m.re = re
			}
		}
		ms = append(ms, m)
	}
	return ms
}

func matchAll(t *taskstore.Task, ms []matcher) bool {
	for _, m := range ms {
		if !m.matches(t) {
			return false
		}
	}
	return true
}

func (m matcher) matches(t *taskstore.Task) bool {
	candidates := m.candidates(t)

	if m.value.isList {
		for _, want := range m.value.list {
			for _, have := range candidates {
				if have == want {
					return true
				}
			}
		}
		return false
	}

	for _, have := range candidates {
		if m.matchScalar(have) {
			return true
		}
	}
	return false
}

// candidates returns the values a filter is compared against. Labels compare per label.
func (m matcher) candidates(t *taskstore.Task) []string {
	if m.field == FieldLabels {
		if len(t.Labels) == 0 {
			return []string{""}
		}
		return t.Labels
	}
	v, _ := FieldValue(t, m.field)
	return []string{v}
}

func (m matcher) matchScalar(have string) bool {
	if m.field == FieldStatus {
		return have == m.value.pattern
	}
	if m.re != nil {
		return m.re.MatchString(have)
	}
	return strings.Contains(strings.ToLower(have), strings.ToLower(m.value.pattern))
}
