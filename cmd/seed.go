package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/cmd/internal"
	"github.com/yarlson/taskdesk/internal/config"
	"github.com/yarlson/taskdesk/internal/taskstore"
)

func newSeedCmd() *cobra.Command {
	var (
		count int
		seed  int64
		force bool
	)

	cmd := &cobra.Command{
		Use:   "seed <file>",
		Short: "Write a generated dataset",
		Long: `Write a generated dataset to a YAML file.

The same seed always produces the same tasks, relative to the current time.
Use the file with --dataset or dataset.path in taskdesk.yaml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args[0], count, seed, force)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", config.DefaultSeedCount, "number of tasks")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func runSeed(cmd *cobra.Command, path string, count int, seed int64, force bool) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	if _, err := os.Stat(path); err == nil && !force {
		if !internal.IsInteractive(os.Stdin.Fd()) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		ok, err := internal.Confirm(cmd.OutOrStdout(), cmd.InOrStdin(), fmt.Sprintf("%s already exists. Overwrite?", path))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	tasks := taskstore.Generate(count, seed, time.Now())
	if err := taskstore.WriteYAMLFile(path, tasks); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d task(s) to %s\n", len(tasks), path)
	return nil
}
