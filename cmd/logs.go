package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/state"
)

func newLogsCmd() *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the interactive table log",
		Long:  "Display the last lines of .taskdesk/logs/taskdesk.log, written while the interactive table runs. Use --level to keep only one level, e.g. WARN.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd, lines, level)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "only show lines of this level")

	return cmd
}

func runLogs(cmd *cobra.Command, lines int, level string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	f, err := os.Open(state.LogFilePath(workDir))
	if err != nil {
		if os.IsNotExist(err) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No logs found. Run 'taskdesk tui' first.\n")
			return nil
		}
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	tail, err := tailLines(f, lines, strings.ToUpper(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	for _, line := range tail {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

// tailLines returns the last n lines (all when n <= 0) whose level matches.
// Levels are matched as written by the logger, e.g. "[WARN]".
func tailLines(f *os.File, n int, level string) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if level != "" && !strings.Contains(line, "["+level+"]") {
			continue
		}
		out = append(out, line)
		if n > 0 && len(out) > n {
			out = out[1:]
		}
	}
	return out, sc.Err()
}
