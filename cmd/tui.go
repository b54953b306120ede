package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/scroll"
	"github.com/yarlson/taskdesk/internal/state"
	"github.com/yarlson/taskdesk/internal/tui"
	"github.com/yarlson/taskdesk/internal/viewstate"
)

type tuiFlags struct {
	view  string
	pages bool
	reset bool
}

func newTUICmd() *cobra.Command {
	var f tuiFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task table",
		Long: `Open the interactive task table.

The last view (tab, sort, search and page) is restored from
.taskdesk/state/view and saved again on exit. Logs go to
.taskdesk/logs/taskdesk.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.view, "view", "", "view query to open, e.g. \"tab=closed&sort-column=name\"")
	cmd.Flags().BoolVar(&f.pages, "pages", false, "start in pagination mode")
	cmd.Flags().BoolVar(&f.reset, "reset", false, "ignore the saved view")

	return cmd
}

func runTUI(cmd *cobra.Command, f tuiFlags) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	logFile, err := state.OpenLog(workDir)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	e, err := loadEnv(cmd, logFile)
	if err != nil {
		return err
	}

	params, infinite := resolveView(e, f)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := tui.New(ctx, tui.Options{
		Provider:       e.provider,
		Params:         params,
		InfiniteScroll: infinite,
		Scroll: scroll.Options{
			LoadBefore:   e.cfg.View.LoadBefore,
			StripeHeight: e.cfg.View.StripeHeight,
			Cooldown:     e.cfg.View.Cooldown,
		},
		Log: e.log,
	})

	e.log.Logf("[INFO] opening table, view %q", m.ViewQuery())
	final, err := tui.Run(ctx, m)
	cancel()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	if err := state.SaveView(workDir, final.ViewQuery()); err != nil {
		e.log.Logf("[WARN] failed to save view: %v", err)
	}
	return e.persist()
}

// resolveView picks the starting view: the --view flag, then the saved view,
// then config defaults.
func resolveView(e *env, f tuiFlags) (viewstate.Params, bool) {
	raw := f.view
	if raw == "" && !f.reset {
		saved, err := state.LoadView(e.workDir)
		if err != nil {
			e.log.Logf("[WARN] %v", err)
		}
		raw = saved
	}

	params, infinite, err := viewstate.ParseView(raw, e.cfg.View.PageSize, e.cfg.View.InfiniteScroll && !f.pages)
	if err != nil {
		e.log.Logf("[WARN] ignoring view %q: %v", raw, err)
		params = viewstate.DefaultParams()
		params.Page.Size = e.cfg.View.PageSize
	}
	return params, infinite
}
