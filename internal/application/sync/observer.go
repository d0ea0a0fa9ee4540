package sync

import (
	"context"
	"time"
)

// SyncObserver receives ingestion outcomes for metrics export. The
// telemetry layer provides the production implementation; services
// tolerate a nil observer.
type SyncObserver interface {
	// ObserveRun reports one completed pull-sync run.
	ObserveRun(ctx context.Context, platform, status string, fetched, created, updated, failed int64, duration time.Duration)

	// ObserveWebhook reports one authenticated webhook delivery.
	// processed is false when the delivery was accepted but nothing was
	// applied (ignored topic, unusable payload, missing order).
	ObserveWebhook(ctx context.Context, platform, topic string, processed bool)
}
