package integration

import (
	"context"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IntegrationRepository defines the interface for integration persistence
type IntegrationRepository interface {
	// FindByID finds an integration by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Integration, error)

	// FindByIDForCompany finds an integration by ID within a company
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Integration, error)

	// FindAllForCompany finds all integrations for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Integration, error)

	// FindActiveForCompany finds active integrations for a company
	FindActiveForCompany(ctx context.Context, companyID uuid.UUID) ([]Integration, error)

	// Save creates or updates an integration
	Save(ctx context.Context, integration *Integration) error

	// Delete deletes an integration
	Delete(ctx context.Context, id uuid.UUID) error
}

// SyncLogRepository defines the interface for sync log persistence.
// Logs are append-only; there is deliberately no update operation.
type SyncLogRepository interface {
	// Save appends a sync log row
	Save(ctx context.Context, log *SyncLog) error

	// FindByIntegration finds recent logs for an integration, newest first
	FindByIntegration(ctx context.Context, integrationID uuid.UUID, filter shared.Filter) ([]SyncLog, error)

	// CountByIntegration counts logs for an integration
	CountByIntegration(ctx context.Context, integrationID uuid.UUID) (int64, error)
}
