package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/fleet/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	cfg := telemetry.MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		ExportInterval:    60 * time.Second,
		ServiceName:       "test-service",
	}

	mp, err := telemetry.NewMeterProvider(ctx, cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, mp)

	assert.False(t, mp.IsEnabled())

	// A disabled provider still hands out usable (no-op) meters
	meter := mp.Meter("test-meter")
	require.NotNil(t, meter)

	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestCounter_NoOpMeter(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{Enabled: false}, logger)
	require.NoError(t, err)

	counter, err := telemetry.NewCounter(mp.Meter("test"), "test_total", "test counter", "{items}")
	require.NoError(t, err)

	// Recording against a no-op meter must not panic
	counter.Inc(ctx)
	counter.Add(ctx, 5, telemetry.AttrPlatform.String("woocommerce"))
}

func TestHistogram_NoOpMeter(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{Enabled: false}, logger)
	require.NoError(t, err)

	hist, err := telemetry.NewHistogram(mp.Meter("test"), telemetry.HistogramOpts{
		Name:        "test_duration_seconds",
		Description: "test histogram",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	require.NoError(t, err)

	hist.Record(ctx, 0.42)
	hist.RecordDuration(ctx, 150*time.Millisecond, telemetry.AttrHTTPRoute.String("/health"))
}
