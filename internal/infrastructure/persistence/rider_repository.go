package persistence

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRiderRepository implements RiderRepository using GORM
type GormRiderRepository struct {
	db *gorm.DB
}

// NewGormRiderRepository creates a new GormRiderRepository
func NewGormRiderRepository(db *gorm.DB) *GormRiderRepository {
	return &GormRiderRepository{db: db}
}

// FindByID finds a rider by its ID
func (r *GormRiderRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Rider, error) {
	var rider delivery.Rider
	if err := r.db.WithContext(ctx).First(&rider, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rider, nil
}

// FindByExternalID finds a rider by external identity within a company
func (r *GormRiderRepository) FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*delivery.Rider, error) {
	if externalID == "" {
		return nil, shared.ErrNotFound
	}
	var rider delivery.Rider
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND external_id = ?", companyID, externalID).
		First(&rider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rider, nil
}

// FindAllForCompany finds all riders for a company
func (r *GormRiderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]delivery.Rider, error) {
	var riders []delivery.Rider
	query := applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Rider{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&riders).Error; err != nil {
		return nil, err
	}
	return riders, nil
}

// Save creates or updates a rider
func (r *GormRiderRepository) Save(ctx context.Context, rider *delivery.Rider) error {
	if err := r.db.WithContext(ctx).Save(rider).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CountForCompany counts riders for a company
func (r *GormRiderRepository) CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&delivery.Rider{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
