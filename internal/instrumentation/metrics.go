package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrResult = "result"
	attrSource = "source"
)

// Run result attribute values.
const (
	ResultSuccess = "success"
	ResultPartial = "partial"
	ResultFailure = "failure"
	ResultNoop    = "noop"
	ResultAborted = "aborted"
)

// Metrics provides methods for recording sync observability metrics.
// The zero value is a no-op recorder, safe to use when instrumentation is
// disabled.
type Metrics struct {
	syncRunsTotal         metric.Int64Counter
	documentsWrittenTotal metric.Int64Counter
	itemFailuresTotal     metric.Int64Counter
	tokenRefreshesTotal   metric.Int64Counter
	runDuration           metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.syncRunsTotal, err = meter.Int64Counter(
		"zoomvault_sync_runs_total",
		metric.WithDescription("Total number of sync runs by result"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoomvault_sync_runs_total counter: %w", err)
	}

	m.documentsWrittenTotal, err = meter.Int64Counter(
		"zoomvault_documents_written_total",
		metric.WithDescription("Total number of transcript documents written"),
		metric.WithUnit("{document}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoomvault_documents_written_total counter: %w", err)
	}

	m.itemFailuresTotal, err = meter.Int64Counter(
		"zoomvault_item_failures_total",
		metric.WithDescription("Total number of per-item sync failures"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoomvault_item_failures_total counter: %w", err)
	}

	m.tokenRefreshesTotal, err = meter.Int64Counter(
		"zoomvault_token_refreshes_total",
		metric.WithDescription("Total number of OAuth token refreshes"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoomvault_token_refreshes_total counter: %w", err)
	}

	m.runDuration, err = meter.Float64Histogram(
		"zoomvault_run_duration_seconds",
		metric.WithDescription("Sync run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 5.0, 15.0, 30.0, 60.0, 120.0, 300.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create zoomvault_run_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordRun records one completed sync run with its result and duration.
func (m *Metrics) RecordRun(ctx context.Context, result string, duration time.Duration) {
	if m == nil || m.syncRunsTotal == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(attrResult, result))
	m.syncRunsTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordDocuments adds written documents for one source.
func (m *Metrics) RecordDocuments(ctx context.Context, source string, count int) {
	if m == nil || m.documentsWrittenTotal == nil || count == 0 {
		return
	}
	m.documentsWrittenTotal.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String(attrSource, source)))
}

// RecordItemFailures adds per-item failures for one source.
func (m *Metrics) RecordItemFailures(ctx context.Context, source string, count int) {
	if m == nil || m.itemFailuresTotal == nil || count == 0 {
		return
	}
	m.itemFailuresTotal.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String(attrSource, source)))
}

// RecordTokenRefresh records one OAuth token refresh.
func (m *Metrics) RecordTokenRefresh(ctx context.Context) {
	if m == nil || m.tokenRefreshesTotal == nil {
		return
	}
	m.tokenRefreshesTotal.Add(ctx, 1)
}
