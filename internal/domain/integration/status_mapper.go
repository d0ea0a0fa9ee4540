package integration

import (
	"strings"

	"github.com/fleet/backend/internal/domain/delivery"
)

// ---------------------------------------------------------------------------
// Canonical Status Mapper
// ---------------------------------------------------------------------------

// wooStatusTable maps WooCommerce order statuses to the canonical lifecycle.
// WooCommerce has a narrow vocabulary; anything it calls in-flight is still
// pending from the delivery platform's perspective.
var wooStatusTable = map[string]delivery.OrderStatus{
	"pending":    delivery.OrderStatusPending,
	"processing": delivery.OrderStatusPending,
	"on-hold":    delivery.OrderStatusPending,
	"completed":  delivery.OrderStatusDelivered,
	"cancelled":  delivery.OrderStatusCancelled,
	"refunded":   delivery.OrderStatusCancelled,
	"failed":     delivery.OrderStatusCancelled,
	"trash":      delivery.OrderStatusCancelled,
}

// shopifyStatusTable maps Shopify fulfillment statuses to the canonical
// lifecycle.
var shopifyStatusTable = map[string]delivery.OrderStatus{
	"pending":     delivery.OrderStatusPending,
	"open":        delivery.OrderStatusPending,
	"unfulfilled": delivery.OrderStatusPending,
	"partial":     delivery.OrderStatusInTransit,
	"in_transit":  delivery.OrderStatusInTransit,
	"fulfilled":   delivery.OrderStatusDelivered,
	"delivered":   delivery.OrderStatusDelivered,
	"cancelled":   delivery.OrderStatusCancelled,
	"voided":      delivery.OrderStatusCancelled,
	"refunded":    delivery.OrderStatusCancelled,
}

// genericStatusTable maps the vocabulary used by generic/custom feeds.
var genericStatusTable = map[string]delivery.OrderStatus{
	"pending":          delivery.OrderStatusPending,
	"new":              delivery.OrderStatusPending,
	"created":          delivery.OrderStatusPending,
	"processing":       delivery.OrderStatusAssigned,
	"confirmed":        delivery.OrderStatusAssigned,
	"assigned":         delivery.OrderStatusAssigned,
	"picked_up":        delivery.OrderStatusPickedUp,
	"pickup":           delivery.OrderStatusPickedUp,
	"shipped":          delivery.OrderStatusInTransit,
	"in_transit":       delivery.OrderStatusInTransit,
	"out_for_delivery": delivery.OrderStatusInTransit,
	"delivered":        delivery.OrderStatusDelivered,
	"completed":        delivery.OrderStatusDelivered,
	"cancelled":        delivery.OrderStatusCancelled,
	"canceled":         delivery.OrderStatusCancelled,
	"failed":           delivery.OrderStatusCancelled,
}

// MapOrderStatus maps a platform-specific status string to the canonical
// order lifecycle. The mapping is total: any status not present in the
// platform's table falls back to pending, so unknown external states are
// never dropped or fatal. They surface in the pending bucket where an
// operator will see them.
func MapOrderStatus(kind PlatformKind, externalStatus string) delivery.OrderStatus {
	status := strings.ToLower(strings.TrimSpace(externalStatus))

	var table map[string]delivery.OrderStatus
	switch kind {
	case PlatformWooCommerce, PlatformWordPress:
		table = wooStatusTable
	case PlatformShopify:
		table = shopifyStatusTable
	default:
		table = genericStatusTable
	}

	if mapped, ok := table[status]; ok {
		return mapped
	}
	return delivery.OrderStatusPending
}
