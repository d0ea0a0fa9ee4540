package integration

import (
	"net/url"
	"strings"
	"time"

	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// SyncStatus represents the outcome of the most recent sync run
// ---------------------------------------------------------------------------

// SyncStatus represents the outcome of a sync run
type SyncStatus string

const (
	// SyncStatusSuccess indicates every record of every entity kind synced
	SyncStatusSuccess SyncStatus = "success"
	// SyncStatusPartial indicates the run completed with some errors
	SyncStatusPartial SyncStatus = "partial"
	// SyncStatusFailed indicates the run could not start or nothing synced
	SyncStatusFailed SyncStatus = "failed"
)

// IsValid returns true if the status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusSuccess, SyncStatusPartial, SyncStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncStatus
func (s SyncStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Integration Aggregate
// ---------------------------------------------------------------------------

// Integration is a company-configured connection to one external platform:
// credentials, endpoint paths, per-entity sync toggles and rollup counters.
// It is created by an operator and mutated only by explicit operator edits
// and by the telemetry recorder after each pull-sync run.
type Integration struct {
	shared.CompanyEntity
	Name string       `gorm:"type:varchar(200);not null"`
	Type PlatformKind `gorm:"type:varchar(20);not null;column:integration_type"`
	// APIURL is the base URL of the external API; entity endpoints are
	// appended to it when pulling collections.
	APIURL string `gorm:"type:varchar(500);not null"`
	// APIKey and APISecret are interpreted per platform kind: WooCommerce
	// uses them as the Basic auth pair, Shopify sends APIKey as the access
	// token, everything else sends APIKey as a bearer token.
	APIKey    string `gorm:"type:varchar(255)"`
	APISecret string `gorm:"type:varchar(255)"`
	IsActive  bool   `gorm:"not null;default:true"`

	// Per-entity-type sync toggles
	SyncRiders    bool `gorm:"not null;default:false"`
	SyncOrders    bool `gorm:"not null;default:true"`
	SyncCustomers bool `gorm:"not null;default:false"`

	// Per-entity-type endpoint paths, relative to APIURL
	RidersEndpoint    string `gorm:"type:varchar(255);default:'/riders'"`
	OrdersEndpoint    string `gorm:"type:varchar(255);default:'/orders'"`
	CustomersEndpoint string `gorm:"type:varchar(255);default:'/customers'"`

	// Rollup telemetry, updated after every pull-sync run
	LastSyncAt     *time.Time `gorm:"index"`
	LastSyncStatus SyncStatus `gorm:"type:varchar(20)"`
	LastSyncError  string     `gorm:"type:text"`

	// Lifetime counters: incremented by net-new records only, updates of
	// existing records do not count toward the totals.
	TotalRidersSynced    int64 `gorm:"not null;default:0"`
	TotalOrdersSynced    int64 `gorm:"not null;default:0"`
	TotalCustomersSynced int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Integration) TableName() string {
	return "integrations"
}

// NewIntegration creates a new active integration for a company
func NewIntegration(companyID uuid.UUID, name string, kind PlatformKind, apiURL string) (*Integration, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Integration name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform kind: "+kind.String())
	}
	if _, err := url.ParseRequestURI(apiURL); err != nil {
		return nil, shared.NewDomainError("INVALID_API_URL", "API URL is not a valid URL")
	}

	return &Integration{
		CompanyEntity:     shared.NewCompanyEntity(companyID),
		Name:              name,
		Type:              kind,
		APIURL:            strings.TrimRight(apiURL, "/"),
		IsActive:          true,
		SyncOrders:        true,
		RidersEndpoint:    "/riders",
		OrdersEndpoint:    "/orders",
		CustomersEndpoint: "/customers",
	}, nil
}

// EndpointFor returns the full URL for one entity kind's collection
func (i *Integration) EndpointFor(kind SyncEntityKind) string {
	var path string
	switch kind {
	case SyncEntityRiders:
		path = i.RidersEndpoint
	case SyncEntityOrders:
		path = i.OrdersEndpoint
	case SyncEntityCustomers:
		path = i.CustomersEndpoint
	}
	if path == "" {
		path = "/" + kind.String()
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return i.APIURL + path
}

// SyncEnabledFor returns true if the entity kind is toggled on
func (i *Integration) SyncEnabledFor(kind SyncEntityKind) bool {
	switch kind {
	case SyncEntityRiders:
		return i.SyncRiders
	case SyncEntityOrders:
		return i.SyncOrders
	case SyncEntityCustomers:
		return i.SyncCustomers
	default:
		return false
	}
}

// RecordSyncOutcome applies one run's telemetry to the integration rollups.
// Created counts feed the lifetime totals; updates do not.
func (i *Integration) RecordSyncOutcome(status SyncStatus, errMessage string, ridersCreated, ordersCreated, customersCreated int64) {
	now := time.Now()
	i.LastSyncAt = &now
	i.LastSyncStatus = status
	i.LastSyncError = errMessage
	i.TotalRidersSynced += ridersCreated
	i.TotalOrdersSynced += ordersCreated
	i.TotalCustomersSynced += customersCreated
	i.UpdatedAt = now
}

// Activate enables the integration
func (i *Integration) Activate() {
	i.IsActive = true
	i.UpdatedAt = time.Now()
}

// Deactivate disables the integration; sync runs fail the precondition
// check until it is re-activated.
func (i *Integration) Deactivate() {
	i.IsActive = false
	i.UpdatedAt = time.Now()
}
