package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/taskdesk/internal/provider"
)

func TestCountsCommand(t *testing.T) {
	t.Run("prints one line per status", func(t *testing.T) {
		dir := inTempDir(t)
		path := writeFixture(t, dir)

		out, err := execute(t, "counts", "--dataset", path, "--no-latency")
		require.NoError(t, err)

		assert.Regexp(t, `Open\s+2\s+\[#{15}\.{15}\]\s+50%`, out)
		assert.Regexp(t, `In Progress\s+1\s+\[`, out)
		assert.Regexp(t, `Closed\s+1\s+\[`, out)
		assert.Regexp(t, `Total\s+4\n`, out)
	})
}

func TestFormatCounts(t *testing.T) {
	t.Run("empty dataset", func(t *testing.T) {
		out := formatCounts(provider.Counts{})
		assert.Contains(t, out, "  0%")
		assert.Regexp(t, `Total\s+0\n`, out)
	})

	t.Run("statuses in tab order", func(t *testing.T) {
		out := formatCounts(provider.Counts{Open: 1, InProgress: 2, Closed: 3})
		open := strings.Index(out, "Open")
		inProgress := strings.Index(out, "In Progress")
		closed := strings.Index(out, "Closed")
		assert.True(t, open < inProgress && inProgress < closed, out)
	})
}
