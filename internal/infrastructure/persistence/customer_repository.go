package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Customer, error) {
	var customer delivery.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByExternalID finds a customer by external identity within a company
func (r *GormCustomerRepository) FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*delivery.Customer, error) {
	if externalID == "" {
		return nil, shared.ErrNotFound
	}
	var customer delivery.Customer
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND external_id = ?", companyID, externalID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByPhone finds a customer by phone number within a company
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, companyID uuid.UUID, phone string) (*delivery.Customer, error) {
	if phone == "" {
		return nil, shared.ErrNotFound
	}
	var customer delivery.Customer
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND phone = ?", companyID, phone).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByEmail finds a customer by email within a company
func (r *GormCustomerRepository) FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*delivery.Customer, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var customer delivery.Customer
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND email = ?", companyID, strings.ToLower(email)).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAllForCompany finds all customers for a company
func (r *GormCustomerRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]delivery.Customer, error) {
	var customers []delivery.Customer
	query := applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Customer{}).Where("company_id = ?", companyID),
		filter,
	)
	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Save creates or updates a customer. A duplicate external identity from
// a concurrent upsert surfaces as ErrAlreadyExists so the caller can
// count it as a record failure.
func (r *GormCustomerRepository) Save(ctx context.Context, customer *delivery.Customer) error {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// CountForCompany counts customers for a company
func (r *GormCustomerRepository) CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&delivery.Customer{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
