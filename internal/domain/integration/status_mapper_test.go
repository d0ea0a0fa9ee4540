package integration

import (
	"testing"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/stretchr/testify/assert"
)

func TestMapOrderStatus_WooCommerce(t *testing.T) {
	cases := map[string]delivery.OrderStatus{
		"pending":    delivery.OrderStatusPending,
		"processing": delivery.OrderStatusPending,
		"on-hold":    delivery.OrderStatusPending,
		"completed":  delivery.OrderStatusDelivered,
		"cancelled":  delivery.OrderStatusCancelled,
		"refunded":   delivery.OrderStatusCancelled,
		"failed":     delivery.OrderStatusCancelled,
	}
	for external, want := range cases {
		assert.Equal(t, want, MapOrderStatus(PlatformWooCommerce, external), external)
	}
}

func TestMapOrderStatus_Shopify(t *testing.T) {
	assert.Equal(t, delivery.OrderStatusDelivered, MapOrderStatus(PlatformShopify, "fulfilled"))
	assert.Equal(t, delivery.OrderStatusInTransit, MapOrderStatus(PlatformShopify, "partial"))
	assert.Equal(t, delivery.OrderStatusPending, MapOrderStatus(PlatformShopify, "unfulfilled"))
	assert.Equal(t, delivery.OrderStatusCancelled, MapOrderStatus(PlatformShopify, "voided"))
}

func TestMapOrderStatus_Generic(t *testing.T) {
	assert.Equal(t, delivery.OrderStatusAssigned, MapOrderStatus(PlatformCustom, "processing"))
	assert.Equal(t, delivery.OrderStatusAssigned, MapOrderStatus(PlatformCustom, "confirmed"))
	assert.Equal(t, delivery.OrderStatusInTransit, MapOrderStatus(PlatformCustom, "shipped"))
	assert.Equal(t, delivery.OrderStatusInTransit, MapOrderStatus(PlatformCustom, "out_for_delivery"))
	assert.Equal(t, delivery.OrderStatusPickedUp, MapOrderStatus(PlatformCustom, "picked_up"))
}

func TestMapOrderStatus_CaseAndWhitespaceInsensitive(t *testing.T) {
	assert.Equal(t, delivery.OrderStatusDelivered, MapOrderStatus(PlatformWooCommerce, "  Completed "))
	assert.Equal(t, delivery.OrderStatusDelivered, MapOrderStatus(PlatformShopify, "FULFILLED"))
}

func TestMapOrderStatus_Totality(t *testing.T) {
	// Every input maps to a valid canonical status; unknown vocab falls
	// back to pending instead of failing.
	kinds := []PlatformKind{PlatformWooCommerce, PlatformShopify, PlatformWordPress, PlatformCustom}
	inputs := []string{"", "garbage", "déjà-vu", "processing", "awaiting_pickup", "REFUNDED"}
	for _, kind := range kinds {
		for _, input := range inputs {
			got := MapOrderStatus(kind, input)
			assert.True(t, got.IsValid(), "kind=%s input=%q", kind, input)
		}
	}
	assert.Equal(t, delivery.OrderStatusPending, MapOrderStatus(PlatformCustom, "garbage"))
}

func TestMapOrderStatus_WordPressUsesWooVocabulary(t *testing.T) {
	assert.Equal(t, delivery.OrderStatusDelivered, MapOrderStatus(PlatformWordPress, "completed"))
	assert.Equal(t, delivery.OrderStatusPending, MapOrderStatus(PlatformWordPress, "processing"))
}
