package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoomvault/zoomvault/internal/instrumentation"
	"github.com/zoomvault/zoomvault/internal/logging"
	"github.com/zoomvault/zoomvault/internal/server"
	"github.com/zoomvault/zoomvault/internal/syncer"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as a daemon that syncs on a fixed interval",
		Long: `Run sync passes on the configured interval until interrupted. When
metrics are enabled a Prometheus endpoint with health checks is served
alongside.

After an authentication failure the daemon keeps running but skips sync
passes until the credentials are fixed; the readiness endpoint reports
the degraded state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(),
				syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Instrumentation comes up before the app so the syncer records into
	// a live meter provider.
	instrCfg := instrumentation.DefaultConfig(version)
	instrCfg.Enabled = cfg.Metrics.Enabled
	if cfg.Metrics.Exporter != "" {
		instrCfg.MetricsExporter = cfg.Metrics.Exporter
	}
	provider, err := instrumentation.NewProvider(ctx, instrCfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutting down instrumentation", logging.Err(err))
		}
	}()

	a := newApp(cfg, provider.Metrics())
	log := a.logger

	var metricsServer *server.MetricsServer
	if a.cfg.Metrics.Enabled {
		metricsServer = server.NewMetricsServer(a.cfg.Metrics.Addr, a.syncer)
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", logging.Err(err))
			}
		}()
		log.Info("metrics server listening", slog.String("addr", metricsServer.Addr()))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Error("shutting down metrics server", logging.Err(err))
			}
		}()
	}

	interval := a.cfg.Interval()
	log.Info("starting sync daemon", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runPass(ctx, a, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return nil
		case <-ticker.C:
			runPass(ctx, a, log)
		}
	}
}

func runPass(ctx context.Context, a *app, log *slog.Logger) {
	out := a.syncer.Run(ctx)
	if errors.Is(out.Err, syncer.ErrDisabled) {
		log.Warn("sync pass skipped, credentials need attention")
		return
	}
	if summary := out.Summary(); summary != "" {
		log.Info(summary)
	}
}
