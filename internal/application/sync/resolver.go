package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerCandidate carries the fields an external record proposes for a
// customer. Empty fields are ignored on update; updates are additive.
type CustomerCandidate struct {
	ExternalID string
	Name       string
	Phone      string
	Email      string
	Address    string
}

// RiderCandidate carries the fields an external record proposes for a rider
type RiderCandidate struct {
	ExternalID  string
	Name        string
	Phone       string
	Email       string
	VehicleType delivery.VehicleType
	Latitude    float64
	Longitude   float64
}

// OrderCandidate carries the fields an external record proposes for an order
type OrderCandidate struct {
	ExternalID      string
	Status          delivery.OrderStatus
	PickupAddress   string
	DeliveryAddress string
	Items           []delivery.OrderItem
	Total           decimal.Decimal
	Notes           string
	PaymentStatus   delivery.PaymentStatus
	CustomerID      *uuid.UUID
}

// IdentityResolver finds-or-creates canonical records scoped to
// (company, external identity). It guarantees at most one canonical record
// per external identity under repeated calls; the database's composite
// unique indexes back the guarantee under true concurrency.
//
// The resolver never retries store failures: retry policy belongs to the
// orchestrator, which converts resolver errors into counted record
// failures.
type IdentityResolver struct {
	customers delivery.CustomerRepository
	riders    delivery.RiderRepository
	orders    delivery.OrderRepository
}

// NewIdentityResolver creates a new IdentityResolver
func NewIdentityResolver(
	customers delivery.CustomerRepository,
	riders delivery.RiderRepository,
	orders delivery.OrderRepository,
) *IdentityResolver {
	return &IdentityResolver{
		customers: customers,
		riders:    riders,
		orders:    orders,
	}
}

// ResolveCustomer upserts a customer. Resolution order:
//  1. (company, external_id) when the candidate carries a stable ID
//  2. (company, phone), then (company, email): best-effort dedup for
//     webhook-origin customers that have no stable external ID. Duplicates
//     can still arise when phone and email both differ across orders for
//     the same person; that is accepted.
//
// Returns the record and whether it was created.
func (r *IdentityResolver) ResolveCustomer(ctx context.Context, companyID uuid.UUID, source string, cand CustomerCandidate) (*delivery.Customer, bool, error) {
	existing, err := r.findCustomer(ctx, companyID, cand)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		existing.Merge(cand.Name, cand.Phone, cand.Email, cand.Address)
		if existing.ExternalID == "" && cand.ExternalID != "" {
			existing.SetExternalIdentity(normalizeExternalID(cand.ExternalID), source)
		}
		if err := r.customers.Save(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update customer: %w", err)
		}
		return existing, false, nil
	}

	customer, err := delivery.NewCustomer(companyID, fallback(cand.Name, "Unknown"))
	if err != nil {
		return nil, false, err
	}
	customer.Merge("", cand.Phone, cand.Email, cand.Address)
	if cand.ExternalID != "" {
		customer.SetExternalIdentity(normalizeExternalID(cand.ExternalID), source)
	} else {
		customer.ExternalSource = source
	}
	if err := r.customers.Save(ctx, customer); err != nil {
		return nil, false, fmt.Errorf("create customer: %w", err)
	}
	return customer, true, nil
}

// findCustomer looks up an existing customer by external ID, then by
// phone, then by email. Not-found at every step is not an error.
func (r *IdentityResolver) findCustomer(ctx context.Context, companyID uuid.UUID, cand CustomerCandidate) (*delivery.Customer, error) {
	if cand.ExternalID != "" {
		customer, err := r.customers.FindByExternalID(ctx, companyID, normalizeExternalID(cand.ExternalID))
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	if cand.Phone != "" {
		customer, err := r.customers.FindByPhone(ctx, companyID, cand.Phone)
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	if cand.Email != "" {
		customer, err := r.customers.FindByEmail(ctx, companyID, strings.ToLower(cand.Email))
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// ResolveRider upserts a rider keyed by (company, external_id)
func (r *IdentityResolver) ResolveRider(ctx context.Context, companyID uuid.UUID, source string, cand RiderCandidate) (*delivery.Rider, bool, error) {
	if cand.ExternalID == "" {
		return nil, false, shared.NewDomainError("MISSING_EXTERNAL_ID", "Rider record has no external ID")
	}
	externalID := normalizeExternalID(cand.ExternalID)

	existing, err := r.riders.FindByExternalID(ctx, companyID, externalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		existing.Merge(cand.Name, cand.Phone, cand.Email, cand.VehicleType)
		if cand.Latitude != 0 || cand.Longitude != 0 {
			existing.UpdateLocation(cand.Latitude, cand.Longitude)
		}
		if err := r.riders.Save(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update rider: %w", err)
		}
		return existing, false, nil
	}

	rider, err := delivery.NewRider(companyID, fallback(cand.Name, "Unknown"))
	if err != nil {
		return nil, false, err
	}
	rider.Merge("", cand.Phone, cand.Email, cand.VehicleType)
	if cand.Latitude != 0 || cand.Longitude != 0 {
		rider.UpdateLocation(cand.Latitude, cand.Longitude)
	}
	rider.SetExternalIdentity(externalID, source)
	if err := r.riders.Save(ctx, rider); err != nil {
		return nil, false, fmt.Errorf("create rider: %w", err)
	}
	return rider, true, nil
}

// ResolveOrder upserts an order keyed by (company, external_id). The
// candidate's status goes through the terminal-state guard; a guarded
// transition is not an error, the stored status simply wins.
func (r *IdentityResolver) ResolveOrder(ctx context.Context, companyID uuid.UUID, source string, cand OrderCandidate) (*delivery.Order, bool, error) {
	if cand.ExternalID == "" {
		return nil, false, shared.NewDomainError("MISSING_EXTERNAL_ID", "Order record has no external ID")
	}
	externalID := normalizeExternalID(cand.ExternalID)

	existing, err := r.orders.FindByExternalID(ctx, companyID, externalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		existing.Merge(cand.PickupAddress, cand.DeliveryAddress, cand.Notes, cand.Total, cand.Items, cand.PaymentStatus)
		if cand.CustomerID != nil {
			existing.CustomerID = cand.CustomerID
		}
		if cand.Status != "" {
			_ = existing.SetStatus(cand.Status)
		}
		if err := r.orders.Save(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update order: %w", err)
		}
		return existing, false, nil
	}

	order := delivery.NewOrder(companyID)
	order.SetExternalIdentity(externalID, source)
	order.Merge(cand.PickupAddress, cand.DeliveryAddress, cand.Notes, cand.Total, cand.Items, cand.PaymentStatus)
	order.CustomerID = cand.CustomerID
	if cand.Status != "" {
		_ = order.SetStatus(cand.Status)
	}
	if err := r.orders.Save(ctx, order); err != nil {
		return nil, false, fmt.Errorf("create order: %w", err)
	}
	return order, true, nil
}

// normalizeExternalID trims surrounding whitespace so identities compare
// exactly regardless of feed sloppiness
func normalizeExternalID(id string) string {
	return strings.TrimSpace(id)
}

// fallback returns the first non-empty string
func fallback(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
