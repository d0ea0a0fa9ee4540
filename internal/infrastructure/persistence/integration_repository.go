package persistence

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/integration"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIntegrationRepository implements IntegrationRepository using GORM
type GormIntegrationRepository struct {
	db *gorm.DB
}

// NewGormIntegrationRepository creates a new GormIntegrationRepository
func NewGormIntegrationRepository(db *gorm.DB) *GormIntegrationRepository {
	return &GormIntegrationRepository{db: db}
}

// FindByID finds an integration by its ID
func (r *GormIntegrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.Integration, error) {
	var integ integration.Integration
	if err := r.db.WithContext(ctx).First(&integ, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &integ, nil
}

// FindByIDForCompany finds an integration by ID within a company
func (r *GormIntegrationRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*integration.Integration, error) {
	var integ integration.Integration
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&integ).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &integ, nil
}

// FindAllForCompany finds all integrations for a company
func (r *GormIntegrationRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]integration.Integration, error) {
	var integrations []integration.Integration
	query := applyFilter(
		r.db.WithContext(ctx).Model(&integration.Integration{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&integrations).Error; err != nil {
		return nil, err
	}
	return integrations, nil
}

// FindActiveForCompany finds active integrations for a company
func (r *GormIntegrationRepository) FindActiveForCompany(ctx context.Context, companyID uuid.UUID) ([]integration.Integration, error) {
	var integrations []integration.Integration
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Find(&integrations).Error; err != nil {
		return nil, err
	}
	return integrations, nil
}

// Save creates or updates an integration
func (r *GormIntegrationRepository) Save(ctx context.Context, integ *integration.Integration) error {
	return r.db.WithContext(ctx).Save(integ).Error
}

// Delete deletes an integration
func (r *GormIntegrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&integration.Integration{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
