package delivery

import (
	"context"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByExternalID finds a customer by external identity within a company
	FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*Customer, error)

	// FindByPhone finds a customer by phone number within a company
	FindByPhone(ctx context.Context, companyID uuid.UUID, phone string) (*Customer, error)

	// FindByEmail finds a customer by email within a company
	FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*Customer, error)

	// FindAllForCompany finds all customers for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// CountForCompany counts customers for a company
	CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

// RiderRepository defines the interface for rider persistence
type RiderRepository interface {
	// FindByID finds a rider by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Rider, error)

	// FindByExternalID finds a rider by external identity within a company
	FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*Rider, error)

	// FindAllForCompany finds all riders for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Rider, error)

	// Save creates or updates a rider
	Save(ctx context.Context, rider *Rider) error

	// CountForCompany counts riders for a company
	CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByExternalID finds an order by external identity within a company
	FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*Order, error)

	// FindAllForCompany finds all orders for a company
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders by canonical status within a company
	FindByStatus(ctx context.Context, companyID uuid.UUID, status OrderStatus, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error

	// CountForCompany counts orders for a company
	CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}
