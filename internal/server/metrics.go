package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultMetricsAddr is the default address for the metrics server.
	DefaultMetricsAddr = ":9090"

	// DefaultMetricsReadTimeout is the default read timeout for the metrics server.
	DefaultMetricsReadTimeout = 10 * time.Second

	// DefaultMetricsWriteTimeout is the default write timeout for the metrics server.
	DefaultMetricsWriteTimeout = 10 * time.Second

	// DefaultMetricsIdleTimeout is the default idle timeout for the metrics server.
	DefaultMetricsIdleTimeout = 60 * time.Second
)

// MetricsServer serves Prometheus metrics and health endpoints on a
// dedicated port, isolated from anything user-facing.
type MetricsServer struct {
	httpServer *http.Server
	addr       string
	health     *HealthChecker
}

// NewMetricsServer creates a metrics server exposing /metrics for
// Prometheus scraping plus the health endpoints. addr defaults to
// DefaultMetricsAddr when empty.
func NewMetricsServer(addr string, status SyncStatus) *MetricsServer {
	if addr == "" {
		addr = DefaultMetricsAddr
	}
	return &MetricsServer{
		addr:   addr,
		health: NewHealthChecker(status),
	}
}

// Start starts the metrics server in a blocking manner. Call in a goroutine
// for non-blocking operation.
func (s *MetricsServer) Start() error {
	mux := http.NewServeMux()

	// The OpenTelemetry prometheus exporter registers metrics with the
	// global Prometheus registry, which promhttp.Handler() exposes.
	mux.Handle("/metrics", promhttp.Handler())
	s.health.RegisterHealthEndpoints(mux)

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultMetricsReadTimeout,
		WriteTimeout:      DefaultMetricsWriteTimeout,
		IdleTimeout:       DefaultMetricsIdleTimeout,
	}

	slog.Info("starting metrics server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down metrics server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured address for the metrics server.
func (s *MetricsServer) Addr() string {
	return s.addr
}
