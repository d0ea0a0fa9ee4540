package sync

import (
	"encoding/json"
	"strings"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/integration"
	"github.com/shopspring/decimal"
)

// Transforms from loose pull-feed records to candidates. Unlike webhook
// payloads, pull collections come from operator-configured endpoints with
// no fixed schema, so fields are extracted tolerantly instead of decoded
// into per-platform structs.

// riderFromFeed extracts a rider candidate. Phone numbers from external
// fleets routinely arrive with embedded spaces; they are stripped so the
// number compares exactly on re-sync.
func riderFromFeed(rec integration.FeedRecord) RiderCandidate {
	return RiderCandidate{
		ExternalID:  firstRecordString(rec, "id", "external_id", "rider_id"),
		Name:        rec.String("name"),
		Phone:       stripWhitespace(rec.String("phone")),
		Email:       rec.String("email"),
		VehicleType: delivery.VehicleType(rec.String("vehicle_type")),
		Latitude:    rec.Float("latitude"),
		Longitude:   rec.Float("longitude"),
	}
}

// customerFromFeed extracts a customer candidate
func customerFromFeed(rec integration.FeedRecord) CustomerCandidate {
	return CustomerCandidate{
		ExternalID: firstRecordString(rec, "id", "external_id", "customer_id"),
		Name:       rec.String("name"),
		Phone:      rec.String("phone"),
		Email:      rec.String("email"),
		Address:    rec.String("address"),
	}
}

// orderFromFeed extracts an order candidate plus the customer the record
// embeds. Pull APIs frequently inline customer details on the order
// instead of exposing a separate customers collection.
//
// The external ID gets the same platform prefix the webhook path uses,
// so a store that is both webhook- and pull-synced converges on one
// canonical order row per external order.
func orderFromFeed(kind integration.PlatformKind, rec integration.FeedRecord) (OrderCandidate, CustomerCandidate) {
	externalID := ""
	if rawID := firstRecordString(rec, "id", "external_id", "order_id"); rawID != "" {
		externalID = externalOrderID(kind, rawID)
	}

	order := OrderCandidate{
		ExternalID:      externalID,
		Status:          integration.MapOrderStatus(kind, rec.String("status")),
		PickupAddress:   rec.String("pickup_address"),
		DeliveryAddress: firstRecordString(rec, "delivery_address", "address"),
		Items:           itemsFromFeed(rec),
		Total:           decimalFromFeed(rec, "total"),
		Notes:           rec.String("notes"),
		PaymentStatus:   delivery.PaymentStatus(rec.String("payment_status")),
	}

	customer := CustomerCandidate{
		Name:  firstRecordString(rec, "customer_name", "name"),
		Phone: rec.String("customer_phone"),
		Email: rec.String("customer_email"),
	}
	// A nested customer object takes precedence over flat fields
	if nested, ok := rec["customer"].(map[string]any); ok {
		embedded := integration.FeedRecord(nested)
		customer = CustomerCandidate{
			ExternalID: firstRecordString(embedded, "id", "external_id"),
			Name: fallback(embedded.String("name"),
				joinNonEmpty(" ", embedded.String("first_name"), embedded.String("last_name"))),
			Phone:   embedded.String("phone"),
			Email:   embedded.String("email"),
			Address: embedded.String("address"),
		}
	}
	customer.Address = fallback(customer.Address, order.DeliveryAddress)

	return order, customer
}

// itemsFromFeed extracts order line items when the record carries an
// array under "items" or "line_items". Absent or malformed items are not
// an error; the order is still worth storing.
func itemsFromFeed(rec integration.FeedRecord) []delivery.OrderItem {
	raw, ok := rec["items"].([]any)
	if !ok {
		raw, ok = rec["line_items"].([]any)
	}
	if !ok {
		return nil
	}
	items := make([]delivery.OrderItem, 0, len(raw))
	for _, el := range raw {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		item := integration.FeedRecord(m)
		items = append(items, delivery.OrderItem{
			Name:     fallback(item.String("name"), item.String("title")),
			Quantity: int(item.Float("quantity")),
			Total:    decimalFromFeed(item, "total", "price"),
		})
	}
	return items
}

// decimalFromFeed parses a money amount from the first present key,
// tolerating string and numeric encodings
func decimalFromFeed(rec integration.FeedRecord, keys ...string) decimal.Decimal {
	for _, key := range keys {
		switch v := rec[key].(type) {
		case string:
			return parseAmount(json.Number(strings.TrimSpace(v)))
		case float64:
			return decimal.NewFromFloat(v)
		}
	}
	return decimal.Zero
}

// firstRecordString returns the first non-empty string among the keys
func firstRecordString(rec integration.FeedRecord, keys ...string) string {
	for _, key := range keys {
		if v := rec.String(key); v != "" {
			return v
		}
	}
	return ""
}

// stripWhitespace removes every whitespace rune from s
func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
