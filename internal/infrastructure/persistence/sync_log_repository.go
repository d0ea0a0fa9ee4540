package persistence

import (
	"context"

	"github.com/fleet/backend/internal/domain/integration"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSyncLogRepository implements SyncLogRepository using GORM.
// Sync logs are append-only; the repository only ever inserts.
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Save appends a sync log row
func (r *GormSyncLogRepository) Save(ctx context.Context, log *integration.SyncLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByIntegration finds recent logs for an integration, newest first
func (r *GormSyncLogRepository) FindByIntegration(ctx context.Context, integrationID uuid.UUID, filter shared.Filter) ([]integration.SyncLog, error) {
	var logs []integration.SyncLog
	query := applyFilter(
		r.db.WithContext(ctx).Model(&integration.SyncLog{}).Where("integration_id = ?", integrationID),
		filter,
	)
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// CountByIntegration counts logs for an integration
func (r *GormSyncLogRepository) CountByIntegration(ctx context.Context, integrationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&integration.SyncLog{}).
		Where("integration_id = ?", integrationID).
		Count(&count).Error
	return count, err
}
