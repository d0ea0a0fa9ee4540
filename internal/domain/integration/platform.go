package integration

import "strings"

// ---------------------------------------------------------------------------
// PlatformKind represents the type of external commerce platform
// ---------------------------------------------------------------------------

// PlatformKind represents the type of external commerce platform an
// integration talks to. It selects the auth scheme, the webhook payload
// shape and the status mapping table.
type PlatformKind string

const (
	// PlatformWooCommerce represents a WooCommerce store
	PlatformWooCommerce PlatformKind = "woocommerce"
	// PlatformShopify represents a Shopify store
	PlatformShopify PlatformKind = "shopify"
	// PlatformWordPress represents a WordPress site with an order plugin
	PlatformWordPress PlatformKind = "wordpress"
	// PlatformCustom represents a generic REST API
	PlatformCustom PlatformKind = "custom"
)

// IsValid returns true if the platform kind is valid
func (k PlatformKind) IsValid() bool {
	switch k {
	case PlatformWooCommerce, PlatformShopify, PlatformWordPress, PlatformCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of PlatformKind
func (k PlatformKind) String() string {
	return string(k)
}

// ParsePlatformKind normalizes a route/user supplied platform name.
// Unknown names map to PlatformCustom so a misconfigured webhook URL
// still lands in the generic pipeline instead of 404ing.
func ParsePlatformKind(s string) PlatformKind {
	switch kind := PlatformKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case PlatformWooCommerce, PlatformShopify, PlatformWordPress:
		return kind
	default:
		return PlatformCustom
	}
}

// ---------------------------------------------------------------------------
// SyncEntityKind represents which collection a sync touches
// ---------------------------------------------------------------------------

// SyncEntityKind identifies one of the three synchronized collections
type SyncEntityKind string

const (
	SyncEntityRiders    SyncEntityKind = "riders"
	SyncEntityOrders    SyncEntityKind = "orders"
	SyncEntityCustomers SyncEntityKind = "customers"
)

// String returns the string representation of SyncEntityKind
func (k SyncEntityKind) String() string {
	return string(k)
}

// AllSyncEntityKinds returns the entity kinds in processing order.
// Riders first, then orders, then customers: the order is fixed and
// sequential so the orders pass can resolve embedded customers within
// a single run.
func AllSyncEntityKinds() []SyncEntityKind {
	return []SyncEntityKind{SyncEntityRiders, SyncEntityOrders, SyncEntityCustomers}
}
