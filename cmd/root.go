package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/cmd/internal"
)

var cfgFile string

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// Persistent flags shared by every command.
var (
	flagDataset   string
	flagProvider  string
	flagLogLevel  string
	flagNoLatency bool
)

// NewRootCmd creates the root command for the taskdesk CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskdesk",
		Short: "Browse and triage tasks from the terminal",
		Long: `Taskdesk shows a task dataset as a sortable, filterable table with status
tabs, infinite scroll or pagination, and a detail view for changing a task's
status with an audit comment.

Run without a subcommand on a terminal to open the interactive table. When
stdout is not a terminal the first page is printed instead.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if internal.IsInteractive(os.Stdout.Fd()) {
				return runTUI(cmd, tuiFlags{})
			}
			return runList(cmd, defaultListFlags())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./taskdesk.yaml, then ~/.config/taskdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDataset, "dataset", "", "YAML dataset file (default: generated)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "data provider (mock or remote)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (info or debug)")
	rootCmd.PersistentFlags().BoolVar(&flagNoLatency, "no-latency", false, "disable simulated provider latency")

	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newCountsCmd())
	rootCmd.AddCommand(newSetStatusCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newLogsCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
