package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yarlson/taskdesk/internal/provider"
	"github.com/yarlson/taskdesk/internal/server"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset over the JSON task API",
		Long: `Serve the dataset over the JSON task API used by the remote provider.

Routes:
  GET /api/tasks               list with sort-column, sort-order, page,
                               pageSize and match./any. filters
  GET /api/tasks/counts        per-status counts
  GET /api/tasks/{id}          one task
  PUT /api/tasks/{id}/status   {"status": "...", "comment": "..."}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	e, err := loadEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if e.kind != provider.Mock {
		return fmt.Errorf("serve needs a local dataset, not the %s provider", e.kind)
	}
	if addr == "" {
		addr = e.cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := server.NewHandler(e.store, e.provider, e.log)
	if err := server.Serve(ctx, addr, h.Routes(), e.log); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return e.persist()
}
