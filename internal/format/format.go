// Package format renders dates, times and task fields for display.
package format

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

// Date formats t as "2 January, 2006". short uses the abbreviated month and
// excludeYear drops the year. The zero time formats as "".
func Date(t time.Time, short, excludeYear bool) string {
	if t.IsZero() {
		return ""
	}

	month := t.Month().String()
	if short {
		month = month[:3]
	}

	out := strconv.Itoa(t.Day()) + " " + month
	if excludeYear {
		return out
	}
	return out + ", " + strconv.Itoa(t.Year())
}

// Time formats t on a 12-hour clock, e.g. "3:04 PM" or "3:04:05 PM".
func Time(t time.Time, seconds bool) string {
	if t.IsZero() {
		return ""
	}
	if seconds {
		return t.Format("3:04:05 PM")
	}
	return t.Format("3:04 PM")
}

// Status returns the display label of a status, e.g. "In Progress".
func Status(s taskstore.TaskStatus) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

// Labels joins labels for a table cell.
func Labels(labels []string) string {
	return strings.Join(labels, ", ")
}

// Truncate cuts s to max runes and appends "..." when it was longer.
// max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
