// Package instrumentation provides OpenTelemetry metrics for the sync
// daemon: run counts and durations, documents written, item failures and
// token refreshes.
//
// Metrics are exported either through the Prometheus exporter (scraped from
// the metrics server) or periodically to stdout for local debugging. The
// zero-value Metrics recorder is a no-op, so code records unconditionally.
package instrumentation
