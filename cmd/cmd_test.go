package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureYAML = `tasks:
  - id: T-1
    name: Fix login flow
    priority: High
    status: open
    labels: [frontend, bug]
    dueDate: 2025-03-01
    createdAt: 2025-02-01T09:00:00Z
    assignee: Meera
  - id: T-2
    name: Write billing docs
    priority: Low
    status: open
    labels: [docs]
    dueDate: 2025-03-05
    createdAt: 2025-02-02T09:00:00Z
    assignee: Kabir
  - id: T-3
    name: Deploy search API
    priority: Medium
    status: in_progress
    labels: [backend]
    dueDate: 2025-03-10
    createdAt: 2025-02-03T09:00:00Z
    assignee: Sara
  - id: T-4
    name: Audit rate limiter
    priority: High
    status: closed
    labels: [infra]
    dueDate: 2025-03-12
    createdAt: 2025-02-04T09:00:00Z
    assignee: Meera
    comment: shipped
`

// inTempDir runs the test from an empty directory with no global config.
func inTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	return tmpDir
}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "tasks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0644))
	return path
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taskdesk.yaml"), []byte(content), 0644))
}
