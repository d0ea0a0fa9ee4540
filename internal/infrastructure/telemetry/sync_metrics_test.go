package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/fleet/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewSyncMetrics(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{Enabled: false}, logger)
	require.NoError(t, err)

	metrics, err := telemetry.NewSyncMetrics(mp.Meter("sync"))
	require.NoError(t, err)
	require.NotNil(t, metrics)

	// Instruments on a no-op meter accept observations without panicking
	metrics.ObserveRun(ctx, "woocommerce", "partial", 10, 4, 5, 1, 2*time.Second)
	metrics.ObserveRun(ctx, "custom", "success", 0, 0, 0, 0, 30*time.Millisecond)
	metrics.ObserveWebhook(ctx, "shopify", "order.created", true)
	metrics.ObserveWebhook(ctx, "woocommerce", "product.updated", false)
}
