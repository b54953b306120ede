package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

func TestSetStatusCommand(t *testing.T) {
	t.Run("command exists and has correct structure", func(t *testing.T) {
		cmd := newSetStatusCmd()
		assert.Equal(t, "set-status <id> <status>", cmd.Use)
		flag := cmd.Flags().Lookup("comment")
		require.NotNil(t, flag)
		assert.Equal(t, "m", flag.Shorthand)
	})

	t.Run("requires a comment", func(t *testing.T) {
		inTempDir(t)

		_, err := execute(t, "set-status", "TASK-0001", "closed", "--no-latency")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "comment is required")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		inTempDir(t)

		_, err := execute(t, "set-status", "TASK-0001", "done", "-m", "x", "--no-latency")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid task status")
	})

	t.Run("unknown task", func(t *testing.T) {
		dir := inTempDir(t)
		path := writeFixture(t, dir)

		_, err := execute(t, "set-status", "T-99", "closed", "-m", "gone", "--dataset", path, "--no-latency")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "T-99")
	})

	t.Run("updates and saves the dataset file", func(t *testing.T) {
		dir := inTempDir(t)
		path := writeFixture(t, dir)

		out, err := execute(t, "set-status", "T-1", "in_progress", "-m", "  picked up  ", "--dataset", path, "--no-latency")
		require.NoError(t, err)
		assert.Contains(t, out, "✓ T-1 is now In Progress")
		assert.Contains(t, out, "Comment: picked up")

		file, err := taskstore.ReadYAMLFile(path)
		require.NoError(t, err)
		require.Len(t, file.Tasks, 4)

		var found bool
		for _, yt := range file.Tasks {
			if yt.ID == "T-1" {
				found = true
				assert.Equal(t, "in_progress", yt.Status)
				assert.Equal(t, "picked up", yt.Comment)
			}
		}
		assert.True(t, found)

		out, err = execute(t, "counts", "--dataset", path, "--no-latency")
		require.NoError(t, err)
		assert.Regexp(t, `In Progress\s+2\s`, out)
	})
}
