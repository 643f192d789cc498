package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradekit/internal/grading"
	"github.com/abhisek/gradekit/internal/metrics"
	"github.com/abhisek/gradekit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the validation API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		engine, cleanup, err := newEngine(ctx, st.EventRepo())
		if err != nil {
			return err
		}
		defer cleanup()

		m := metrics.New()
		svc := grading.NewService(engine,
			grading.WithRecorder(st.EventRepo()),
			grading.WithMetrics(m),
			grading.WithLogger(slog.Default()),
			grading.WithConcurrency(cfg.Concurrency),
		)

		slog.Info("starting server", "addr", cfg.Addr, "judge", cfg.Judge)
		return server.New(engine, svc, m, slog.Default()).Run(ctx, cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address (overrides GRADEKIT_ADDR)")
}
