package sync

import (
	"time"

	"github.com/fleet/backend/internal/domain/integration"
)

// EntityCounts holds the per-entity-kind outcome of one sync run
type EntityCounts struct {
	Fetched int64 `json:"fetched"`
	Created int64 `json:"created"`
	Updated int64 `json:"updated"`
	Failed  int64 `json:"failed"`
}

// SyncResult is the full outcome of one pull-sync run. It is always
// produced, even when every entity kind failed entirely; only the
// precondition check (missing/inactive integration) prevents one.
type SyncResult struct {
	Riders    EntityCounts `json:"riders"`
	Orders    EntityCounts `json:"orders"`
	Customers EntityCounts `json:"customers"`
	// Errors holds human-readable, non-fatal error strings accumulated
	// across entity kinds and records.
	Errors   []string      `json:"errors,omitempty"`
	Duration time.Duration `json:"-"`
}

// countsFor returns a pointer to the counts bucket for an entity kind
func (r *SyncResult) countsFor(kind integration.SyncEntityKind) *EntityCounts {
	switch kind {
	case integration.SyncEntityRiders:
		return &r.Riders
	case integration.SyncEntityOrders:
		return &r.Orders
	default:
		return &r.Customers
	}
}

// Status derives the overall run status: success when no errors were
// collected, partial otherwise. A hard failed never arises from a run
// that started; the precondition check raises before any result exists,
// and SyncStatusFailed is reserved for rollups written by other tooling.
func (r *SyncResult) Status() integration.SyncStatus {
	if len(r.Errors) == 0 {
		return integration.SyncStatusSuccess
	}
	return integration.SyncStatusPartial
}

// Totals sums the counts across all entity kinds
func (r *SyncResult) Totals() EntityCounts {
	return EntityCounts{
		Fetched: r.Riders.Fetched + r.Orders.Fetched + r.Customers.Fetched,
		Created: r.Riders.Created + r.Orders.Created + r.Customers.Created,
		Updated: r.Riders.Updated + r.Orders.Updated + r.Customers.Updated,
		Failed:  r.Riders.Failed + r.Orders.Failed + r.Customers.Failed,
	}
}

// WebhookResult reports what a webhook delivery did. Authentication
// failure never produces one; every authenticated delivery does, even
// when processing partially no-oped.
type WebhookResult struct {
	CompanyName string `json:"company"`
	Topic       string `json:"topic"`
	// OrderCreated / OrderUpdated report the order upsert outcome
	OrderCreated bool `json:"order_created"`
	OrderUpdated bool `json:"order_updated"`
	// CustomerResolved is true when a customer was found or created
	CustomerResolved bool `json:"customer_resolved"`
	// SignatureValid is nil when no verification was attempted
	SignatureValid *bool  `json:"signature_valid,omitempty"`
	Message        string `json:"message,omitempty"`
}
