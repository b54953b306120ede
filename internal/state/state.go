// Package state manages the .taskdesk directory structure and session files.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Directory and file names for the .taskdesk structure.
const (
	TaskdeskDir = ".taskdesk"
	StateDir    = "state"
	LogsDir     = "logs"
	ViewFile    = "view"
	LogFile     = "taskdesk.log"
)

// TaskdeskDirPath returns the path to the .taskdesk directory.
func TaskdeskDirPath(root string) string {
	return filepath.Join(root, TaskdeskDir)
}

// StateDirPath returns the path to the state directory.
func StateDirPath(root string) string {
	return filepath.Join(root, TaskdeskDir, StateDir)
}

// LogsDirPath returns the path to the logs directory.
func LogsDirPath(root string) string {
	return filepath.Join(root, TaskdeskDir, LogsDir)
}

// LogFilePath returns the path to the TUI log file.
func LogFilePath(root string) string {
	return filepath.Join(root, TaskdeskDir, LogsDir, LogFile)
}

// ViewFilePath returns the path to the persisted view query.
func ViewFilePath(root string) string {
	return filepath.Join(root, TaskdeskDir, StateDir, ViewFile)
}

// EnsureTaskdeskDir creates the .taskdesk directory structure if it doesn't exist.
// It creates the following directories:
//   - .taskdesk/
//   - .taskdesk/state/
//   - .taskdesk/logs/
//
// The function is idempotent. Directories are created with 0755 permissions.
func EnsureTaskdeskDir(root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return fmt.Errorf("root directory does not exist: %s", root)
	}

	dirs := []string{
		TaskdeskDirPath(root),
		StateDirPath(root),
		LogsDirPath(root),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// LoadView reads the persisted view query string.
// Returns empty string if nothing was saved.
func LoadView(root string) (string, error) {
	data, err := os.ReadFile(ViewFilePath(root))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading saved view: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveView writes the view query string to state.
func SaveView(root, query string) error {
	stateDir := StateDirPath(root)
	if _, err := os.Stat(stateDir); os.IsNotExist(err) {
		return fmt.Errorf(".taskdesk/state directory does not exist")
	}

	if err := os.WriteFile(ViewFilePath(root), []byte(query+"\n"), 0644); err != nil {
		return fmt.Errorf("writing saved view: %w", err)
	}
	return nil
}

// ClearView removes the persisted view.
func ClearView(root string) error {
	err := os.Remove(ViewFilePath(root))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove saved view: %w", err)
	}
	return nil
}

// OpenLog opens the log file for appending, creating the directory structure first.
func OpenLog(root string) (*os.File, error) {
	if err := EnsureTaskdeskDir(root); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(LogFilePath(root), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
