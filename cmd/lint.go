package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/taskstore"
)

func newLintCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint <file>",
		Short: "Validate a YAML dataset",
		Long: `Validate a YAML dataset before loading it.

Tasks that cannot be converted or fail validation are errors, as are
duplicate IDs. Missing assignees or due dates are warnings; --strict turns
warnings into a failure.

Example YAML format:
  tasks:
    - id: TASK-0001
      name: Fix login flow
      priority: High
      status: open
      labels: [frontend, bug]
      dueDate: 2025-03-01
      createdAt: 2025-02-01T09:30:00Z
      assignee: Meera
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args[0], strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings")

	return cmd
}

func runLint(cmd *cobra.Command, path string, strict bool) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}

	file, err := taskstore.ReadYAMLFile(path)
	if err != nil {
		return err
	}

	tasks := make([]taskstore.Task, 0, len(file.Tasks))
	var convErrs []taskstore.LintError
	for _, yt := range file.Tasks {
		task, err := taskstore.ConvertYAMLTask(yt)
		if err != nil {
			convErrs = append(convErrs, taskstore.LintError{TaskID: yt.ID, Error: err.Error()})
			continue
		}
		tasks = append(tasks, task)
	}

	result := taskstore.LintTaskSet(tasks)
	if len(convErrs) > 0 {
		result.Valid = false
		result.Errors = append(convErrs, result.Errors...)
	}

	out := cmd.OutOrStdout()
	for _, w := range result.Warnings {
		_, _ = fmt.Fprintf(out, "warning: %s\n", w)
	}
	for _, e := range result.Errors {
		_, _ = fmt.Fprintf(out, "error: %s\n", e)
	}

	if err := result.Error(); err != nil {
		return fmt.Errorf("%s: %d error(s)", path, len(result.Errors))
	}
	if strict && len(result.Warnings) > 0 {
		return fmt.Errorf("%s: %d warning(s)", path, len(result.Warnings))
	}

	_, _ = fmt.Fprintf(out, "✓ %d task(s) valid\n", len(tasks))
	return nil
}
