package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/fetch"
	"github.com/yarlson/taskdesk/internal/format"
	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/taskstore"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

func newSetStatusCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Change a task's status",
		Long: `Change a task's status with an audit comment.

Status is one of open, in_progress or closed. The comment is required.
With a dataset file and the mock provider the file is rewritten.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetStatus(cmd, args[0], args[1], comment)
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "audit comment (required)")

	return cmd
}

func runSetStatus(cmd *cobra.Command, id, status, comment string) error {
	next := taskstore.TaskStatus(strings.TrimSpace(status))
	comment = strings.TrimSpace(comment)
	if err := provider.ValidateStatusChange(next, comment); err != nil {
		return err
	}

	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st := viewstate.New(viewstate.DefaultParams(), false)
	o := fetch.New(st, e.provider, e.log)
	msg := o.UpdateStatus(id, next, comment)(cmd.Context())
	if msg.Err != nil {
		return fmt.Errorf("failed to update %s: %w", id, msg.Err)
	}

	if err := e.persist(); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", msg.Task.ID, format.Status(msg.Task.Status))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Comment: %s\n", msg.Task.Comment)
	return nil
}
