package persistence

import (
	"context"
	"errors"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Order, error) {
	var order delivery.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByExternalID finds an order by external identity within a company
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*delivery.Order, error) {
	if externalID == "" {
		return nil, shared.ErrNotFound
	}
	var order delivery.Order
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND external_id = ?", companyID, externalID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForCompany finds all orders for a company
func (r *GormOrderRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]delivery.Order, error) {
	var orders []delivery.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Order{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds orders by canonical status within a company
func (r *GormOrderRepository) FindByStatus(ctx context.Context, companyID uuid.UUID, status delivery.OrderStatus, filter shared.Filter) ([]delivery.Order, error) {
	var orders []delivery.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Order{}).
			Where("company_id = ? AND status = ?", companyID, status),
		filter,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *delivery.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CountForCompany counts orders for a company
func (r *GormOrderRepository) CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&delivery.Order{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
