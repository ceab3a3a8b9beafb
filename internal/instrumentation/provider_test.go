package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("disabled provider is a no-op", func(t *testing.T) {
		p, err := NewProvider(context.Background(), Config{Enabled: false})
		require.NoError(t, err)
		assert.False(t, p.Enabled())
		require.NotNil(t, p.Metrics())

		// Recording through the no-op recorder must not panic.
		p.Metrics().RecordRun(context.Background(), ResultSuccess, time.Second)
		p.Metrics().RecordDocuments(context.Background(), "recordings", 3)
		p.Metrics().RecordItemFailures(context.Background(), "recordings", 1)
		p.Metrics().RecordTokenRefresh(context.Background())

		assert.NoError(t, p.Shutdown(context.Background()))
	})

	t.Run("prometheus exporter", func(t *testing.T) {
		cfg := DefaultConfig("test")
		p, err := NewProvider(context.Background(), cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

		assert.True(t, p.Enabled())
		p.Metrics().RecordRun(context.Background(), ResultPartial, 2*time.Second)
		p.Metrics().RecordDocuments(context.Background(), "sessions", 1)
	})

	t.Run("unknown exporter is rejected", func(t *testing.T) {
		cfg := DefaultConfig("test")
		cfg.MetricsExporter = "bogus"
		_, err := NewProvider(context.Background(), cfg)
		assert.Error(t, err)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("1.2.3")
	assert.Equal(t, "zoomvault", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ExporterPrometheus, cfg.MetricsExporter)
}
