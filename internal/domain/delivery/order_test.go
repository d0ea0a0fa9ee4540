package delivery

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	order := NewOrder(uuid.New())

	err := order.SetStatus(OrderStatus("shipped"))
	assert.Error(t, err)
	assert.Equal(t, OrderStatusPending, order.Status)
}

func TestSetStatus_StampsTimestamps(t *testing.T) {
	order := NewOrder(uuid.New())

	require.NoError(t, order.SetStatus(OrderStatusDelivered))
	assert.NotNil(t, order.DeliveredAt)

	other := NewOrder(uuid.New())
	require.NoError(t, other.SetStatus(OrderStatusCancelled))
	assert.NotNil(t, other.CancelledAt)
}

func TestSetStatus_TerminalGuard(t *testing.T) {
	order := NewOrder(uuid.New())
	require.NoError(t, order.SetStatus(OrderStatusDelivered))

	// A delivered order never moves backwards
	err := order.SetStatus(OrderStatusInTransit)
	assert.Error(t, err)
	assert.Equal(t, OrderStatusDelivered, order.Status)

	// Explicit cancellation is the one allowed exit from delivered
	require.NoError(t, order.SetStatus(OrderStatusCancelled))
	assert.Equal(t, OrderStatusCancelled, order.Status)
}

func TestMerge_EmptyFieldsPreserved(t *testing.T) {
	order := NewOrder(uuid.New())
	order.Merge("Depot A", "1 Main St", "ring bell", decimal.RequireFromString("19.98"),
		[]OrderItem{{Name: "Widget", Quantity: 2, Total: decimal.RequireFromString("19.98")}}, PaymentStatusPaid)

	order.Merge("", "", "", decimal.Zero, nil, "")

	assert.Equal(t, "Depot A", order.PickupAddress)
	assert.Equal(t, "1 Main St", order.DeliveryAddress)
	assert.Equal(t, "ring bell", order.Notes)
	assert.Equal(t, "19.98", order.Total.StringFixed(2))
	assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
	assert.Len(t, order.Items(), 1)
}

func TestItemsRoundTrip(t *testing.T) {
	order := NewOrder(uuid.New())
	assert.Empty(t, order.Items())

	order.SetItems([]OrderItem{
		{Name: "Widget", Quantity: 2, Total: decimal.RequireFromString("19.98")},
		{Name: "Gadget", Quantity: 1, Total: decimal.RequireFromString("9.50")},
	})

	items := order.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
}
