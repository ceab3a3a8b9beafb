package instrumentation

// Exporter types for metrics.
const (
	// ExporterPrometheus exposes metrics for Prometheus scraping (default).
	ExporterPrometheus = "prometheus"

	// ExporterStdout prints metrics periodically, for local debugging.
	ExporterStdout = "stdout"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: zoomvault).
	ServiceName string

	// ServiceVersion is the version of the service.
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: true).
	Enabled bool

	// MetricsExporter specifies the metrics exporter type.
	// Options: "prometheus", "stdout" (default: "prometheus").
	MetricsExporter string
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig(version string) Config {
	return Config{
		ServiceName:     "zoomvault",
		ServiceVersion:  version,
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
	}
}
