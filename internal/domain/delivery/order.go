package delivery

import (
	"encoding/json"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the canonical order lifecycle
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAssigned  OrderStatus = "assigned"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid returns true if the status is a canonical lifecycle state
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAssigned, OrderStatusPickedUp,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a final state
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// OrderItem represents one line item on an order
type OrderItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// Order represents a delivery order belonging to a company
type Order struct {
	shared.CompanyEntity
	// ExternalID is the order's identity on the source platform, prefixed
	// with the platform name (e.g. "woo_501") so identities from different
	// platforms cannot collide within a company.
	ExternalID      string          `gorm:"type:varchar(120);index"`
	ExternalSource  string          `gorm:"type:varchar(50)"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	RiderID         *uuid.UUID      `gorm:"type:uuid;index"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	PickupAddress   string          `gorm:"type:text"`
	DeliveryAddress string          `gorm:"type:text"`
	ItemsJSON       string          `gorm:"type:jsonb;column:items"`
	Total           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes           string          `gorm:"type:text"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null;default:'unpaid'"`
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order for a company
func NewOrder(companyID uuid.UUID) *Order {
	return &Order{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Status:        OrderStatusPending,
		Total:         decimal.Zero,
		PaymentStatus: PaymentStatusUnpaid,
		ItemsJSON:     "[]",
	}
}

// SetExternalIdentity stamps the external identity on the order
func (o *Order) SetExternalIdentity(externalID, source string) {
	o.ExternalID = externalID
	o.ExternalSource = source
	o.UpdatedAt = time.Now()
}

// Items returns the decoded line items
func (o *Order) Items() []OrderItem {
	if o.ItemsJSON == "" {
		return nil
	}
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		return nil
	}
	return items
}

// SetItems replaces the order's line items
func (o *Order) SetItems(items []OrderItem) {
	if len(items) == 0 {
		o.ItemsJSON = "[]"
		return
	}
	if raw, err := json.Marshal(items); err == nil {
		o.ItemsJSON = string(raw)
	}
	o.UpdatedAt = time.Now()
}

// SetStatus transitions the order to the given canonical status.
// Inbound sync never implicitly regresses a terminal state: once an order
// is delivered or cancelled, only an explicit cancel may still apply.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+status.String())
	}
	if o.Status.IsTerminal() && status != o.Status && status != OrderStatusCancelled {
		return shared.NewDomainError("TERMINAL_STATUS", "Order is already in a terminal state")
	}

	o.Status = status
	now := time.Now()
	switch status {
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// Cancel marks the order cancelled
func (o *Order) Cancel() error {
	return o.SetStatus(OrderStatusCancelled)
}

// AssignRider links a rider to the order
func (o *Order) AssignRider(riderID uuid.UUID) {
	o.RiderID = &riderID
	o.UpdatedAt = time.Now()
}

// Merge applies candidate fields over the existing record. Empty candidate
// fields never clear stored values. Status is handled separately through
// SetStatus so the terminal-state guard applies.
func (o *Order) Merge(pickupAddress, deliveryAddress, notes string, total decimal.Decimal, items []OrderItem, payment PaymentStatus) {
	if pickupAddress != "" {
		o.PickupAddress = pickupAddress
	}
	if deliveryAddress != "" {
		o.DeliveryAddress = deliveryAddress
	}
	if notes != "" {
		o.Notes = notes
	}
	if !total.IsZero() {
		o.Total = total
	}
	if len(items) > 0 {
		o.SetItems(items)
	}
	if payment != "" {
		o.PaymentStatus = payment
	}
	o.UpdatedAt = time.Now()
}
