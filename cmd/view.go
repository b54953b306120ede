package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/state"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

func newViewCmd() *cobra.Command {
	var clearView bool

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show or clear the saved table view",
		Long:  "Display the view (tab, sort, search and page) the interactive table restores on start, or clear it with --clear.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, clearView)
		},
	}

	cmd.Flags().BoolVar(&clearView, "clear", false, "remove the saved view")

	return cmd
}

func runView(cmd *cobra.Command, clearView bool) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if clearView {
		if err := state.ClearView(workDir); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, "✓ Saved view cleared")
		return nil
	}

	raw, err := state.LoadView(workDir)
	if err != nil {
		return err
	}
	if raw == "" {
		_, _ = fmt.Fprintln(out, "No saved view.")
		return nil
	}

	p, err := viewstate.ParseParams(raw)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Query:  %s\n", raw)
	_, _ = fmt.Fprintf(out, "Tab:    %s\n", p.Tab)
	if p.Sort != nil {
		_, _ = fmt.Fprintf(out, "Sort:   %s\n", p.Sort)
	}
	if p.Column != "" {
		_, _ = fmt.Fprintf(out, "Search: %s ~ %q\n", p.Column, p.Query)
	}
	_, _ = fmt.Fprintf(out, "Page:   %d (%d per page)\n", p.Page.Number, p.Page.Size)
	return nil
}
