package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SyncMetrics exports ingestion outcomes as metrics: pull-sync runs and
// their record counts, plus webhook delivery counts. It satisfies the
// application layer's SyncObserver port.
type SyncMetrics struct {
	runsTotal     *Counter
	recordsTotal  *Counter
	runDuration   *Histogram
	webhooksTotal *Counter
}

// NewSyncMetrics creates the sync instrument set on the given meter.
func NewSyncMetrics(meter metric.Meter) (*SyncMetrics, error) {
	runsTotal, err := NewCounter(
		meter,
		"fleet_sync_runs_total",
		"Total number of pull-sync runs",
		"{runs}",
	)
	if err != nil {
		return nil, err
	}

	recordsTotal, err := NewCounter(
		meter,
		"fleet_sync_records_total",
		"Total number of records processed by pull-sync runs",
		"{records}",
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "fleet_sync_run_duration_seconds",
		Description: "Wall-clock duration of pull-sync runs",
		Unit:        "s",
		Boundaries:  SyncDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	webhooksTotal, err := NewCounter(
		meter,
		"fleet_webhook_deliveries_total",
		"Total number of authenticated webhook deliveries",
		"{deliveries}",
	)
	if err != nil {
		return nil, err
	}

	return &SyncMetrics{
		runsTotal:     runsTotal,
		recordsTotal:  recordsTotal,
		runDuration:   runDuration,
		webhooksTotal: webhooksTotal,
	}, nil
}

// ObserveRun records the outcome of one pull-sync run.
func (m *SyncMetrics) ObserveRun(ctx context.Context, platform, status string, fetched, created, updated, failed int64, duration time.Duration) {
	runAttrs := []attribute.KeyValue{
		AttrPlatform.String(platform),
		AttrSyncStatus.String(status),
	}
	m.runsTotal.Inc(ctx, runAttrs...)
	m.runDuration.RecordDuration(ctx, duration, AttrPlatform.String(platform))

	m.addRecords(ctx, platform, "fetched", fetched)
	m.addRecords(ctx, platform, "created", created)
	m.addRecords(ctx, platform, "updated", updated)
	m.addRecords(ctx, platform, "failed", failed)
}

// ObserveWebhook records one authenticated webhook delivery. Rejected
// deliveries never reach the observer; authentication failure is the
// only fatal path and it aborts before processing.
func (m *SyncMetrics) ObserveWebhook(ctx context.Context, platform, topic string, processed bool) {
	outcome := "processed"
	if !processed {
		outcome = "skipped"
	}
	m.webhooksTotal.Inc(ctx,
		AttrPlatform.String(platform),
		AttrWebhookTopic.String(topic),
		attribute.String("outcome", outcome),
	)
}

func (m *SyncMetrics) addRecords(ctx context.Context, platform, outcome string, n int64) {
	if n == 0 {
		return
	}
	m.recordsTotal.Add(ctx, n,
		AttrPlatform.String(platform),
		attribute.String("outcome", outcome),
	)
}
