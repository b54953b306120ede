package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/cmd/internal"
	"github.com/yarlson/taskdesk/internal/fetch"
	"github.com/yarlson/taskdesk/internal/format"
	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/taskstore"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

const countsBarWidth = 30

func newCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Show task counts per status",
		Long:  "Display the number of tasks in each status tab and their share of the dataset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCounts(cmd)
		},
	}
}

func runCounts(cmd *cobra.Command) error {
	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st := viewstate.New(viewstate.DefaultParams(), false)
	o := fetch.New(st, e.provider, e.log)
	if out := o.Apply(o.Counts()(cmd.Context())); out.Err != nil {
		return fmt.Errorf("failed to fetch counts: %w", out.Err)
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), formatCounts(st.Counts()))
	return nil
}

func formatCounts(c provider.Counts) string {
	total := c.Total()

	var sb strings.Builder
	for _, s := range taskstore.Statuses {
		n := c.Of(s)
		fmt.Fprintf(&sb, "%-12s %5d  %s %3d%%\n", format.Status(s), n, internal.ShareBar(n, total, countsBarWidth), internal.Share(n, total))
	}
	fmt.Fprintf(&sb, "%-12s %5d\n", "Total", total)
	return sb.String()
}
