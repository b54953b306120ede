package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

func TestDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "7 March, 2025", Date(d, false, false))
	assert.Equal(t, "7 Mar, 2025", Date(d, true, false))
	assert.Equal(t, "7 Mar", Date(d, true, true))
	assert.Equal(t, "", Date(time.Time{}, true, false))
}

func TestTime(t *testing.T) {
	assert.Equal(t, "3:04 PM", Time(time.Date(2025, 1, 1, 15, 4, 5, 0, time.UTC), false))
	assert.Equal(t, "12:00:09 AM", Time(time.Date(2025, 1, 1, 0, 0, 9, 0, time.UTC), true))
	assert.Equal(t, "", Time(time.Time{}, false))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "Open", Status(taskstore.StatusOpen))
	assert.Equal(t, "In Progress", Status(taskstore.StatusInProgress))
	assert.Equal(t, "Closed", Status(taskstore.StatusClosed))
}

func TestLabelsAndTruncate(t *testing.T) {
	assert.Equal(t, "a, b", Labels([]string{"a", "b"}))
	assert.Equal(t, "", Labels(nil))

	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel...", Truncate("hello", 3))
	assert.Equal(t, "héll...", Truncate("héllo wörld", 4))
	assert.Equal(t, "hello", Truncate("hello", 0))
}
