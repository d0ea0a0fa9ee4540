package integration

import (
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SyncLog is an append-only audit record of one pull-sync invocation.
// Rows are written once by the telemetry recorder and never updated.
type SyncLog struct {
	shared.BaseEntity
	IntegrationID uuid.UUID `gorm:"type:uuid;not null;index"`
	// SyncType names what was synchronized, e.g. "full" for a run across
	// all enabled entity kinds.
	SyncType       string     `gorm:"type:varchar(50);not null;default:'full'"`
	Status         SyncStatus `gorm:"type:varchar(20);not null"`
	RecordsFetched int64      `gorm:"not null;default:0"`
	RecordsCreated int64      `gorm:"not null;default:0"`
	RecordsUpdated int64      `gorm:"not null;default:0"`
	RecordsFailed  int64      `gorm:"not null;default:0"`
	ErrorMessage   string     `gorm:"type:text"`
	DurationMs     int64      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SyncLog) TableName() string {
	return "sync_logs"
}

// NewSyncLog creates a sync log row for one completed run
func NewSyncLog(integrationID uuid.UUID, status SyncStatus, fetched, created, updated, failed int64, errMessage string, duration time.Duration) *SyncLog {
	return &SyncLog{
		BaseEntity:     shared.NewBaseEntity(),
		IntegrationID:  integrationID,
		SyncType:       "full",
		Status:         status,
		RecordsFetched: fetched,
		RecordsCreated: created,
		RecordsUpdated: updated,
		RecordsFailed:  failed,
		ErrorMessage:   errMessage,
		DurationMs:     duration.Milliseconds(),
	}
}
