package instrumentation

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Provider encapsulates the OpenTelemetry meter provider and the metrics
// recorder built on it.
type Provider struct {
	config        Config
	meterProvider *metric.MeterProvider
	metrics       *Metrics
	enabled       bool
}

// NewProvider creates a new OpenTelemetry provider with the given
// configuration. When disabled it returns a provider whose Metrics recorder
// is a no-op.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	if !config.Enabled {
		return &Provider{config: config, metrics: &Metrics{}}, nil
	}

	resourceAttrs := []attribute.KeyValue{
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
	}
	if hostname, err := os.Hostname(); err == nil {
		resourceAttrs = append(resourceAttrs, semconv.ServiceInstanceID(hostname))
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttrs...))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var reader metric.Reader
	switch config.MetricsExporter {
	case ExporterPrometheus, "":
		promExporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		reader = promExporter

	case ExporterStdout:
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		reader = metric.NewPeriodicReader(exporter, metric.WithInterval(30*time.Second))

	default:
		return nil, fmt.Errorf("unknown metrics exporter: %s", config.MetricsExporter)
	}

	provider := &Provider{
		config:  config,
		enabled: true,
		meterProvider: metric.NewMeterProvider(
			metric.WithResource(res),
			metric.WithReader(reader),
		),
	}
	otel.SetMeterProvider(provider.meterProvider)

	meter := provider.meterProvider.Meter(config.ServiceName)
	provider.metrics, err = NewMetrics(meter)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create metrics recorder: %w", err)
	}
	return provider, nil
}

// Metrics returns the metrics recorder. Never nil.
func (p *Provider) Metrics() *Metrics {
	return p.metrics
}

// Enabled reports whether instrumentation is active.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	return p.meterProvider.Shutdown(ctx)
}
