package sync

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/integration"
	"github.com/shopspring/decimal"
)

// Each platform's webhook payload is modeled as its own schema and decoded
// strictly at the boundary; a payload that does not match the platform's
// shape is rejected without touching the store.

// ---------------------------------------------------------------------------
// WooCommerce
// ---------------------------------------------------------------------------

// wooAddress is the address block WooCommerce embeds under billing/shipping
type wooAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
}

// isEmpty reports whether the block carries no usable address line
func (a wooAddress) isEmpty() bool {
	return a.Address1 == "" && a.City == ""
}

// format renders the block as a single address string, skipping empty parts
func (a wooAddress) format() string {
	return joinNonEmpty(", ", a.Address1, a.Address2, a.City, a.State, a.Postcode)
}

// wooLineItem is one WooCommerce order line item
type wooLineItem struct {
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Total    json.Number `json:"total"`
}

// wooOrderPayload is the WooCommerce webhook order shape
type wooOrderPayload struct {
	ID           json.Number   `json:"id"`
	Status       string        `json:"status"`
	Billing      wooAddress    `json:"billing"`
	Shipping     wooAddress    `json:"shipping"`
	LineItems    []wooLineItem `json:"line_items"`
	Total        json.Number   `json:"total"`
	CustomerNote string        `json:"customer_note"`
}

// ---------------------------------------------------------------------------
// Shopify
// ---------------------------------------------------------------------------

type shopifyCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type shopifyAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
}

func (a shopifyAddress) isEmpty() bool {
	return a.Address1 == "" && a.City == ""
}

func (a shopifyAddress) format() string {
	return joinNonEmpty(", ", a.Address1, a.Address2, a.City, a.Province, a.Zip)
}

type shopifyLineItem struct {
	Title    string      `json:"title"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

// shopifyOrderPayload is the Shopify webhook order shape
type shopifyOrderPayload struct {
	ID                json.Number       `json:"id"`
	FulfillmentStatus string            `json:"fulfillment_status"`
	FinancialStatus   string            `json:"financial_status"`
	Customer          shopifyCustomer   `json:"customer"`
	ShippingAddress   shopifyAddress    `json:"shipping_address"`
	BillingAddress    shopifyAddress    `json:"billing_address"`
	LineItems         []shopifyLineItem `json:"line_items"`
	TotalPrice        json.Number       `json:"total_price"`
	Note              string            `json:"note"`
}

// ---------------------------------------------------------------------------
// Generic / custom
// ---------------------------------------------------------------------------

type genericLineItem struct {
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Total    json.Number `json:"total"`
}

// genericOrderPayload is the shape accepted from custom REST integrations
type genericOrderPayload struct {
	ID              json.Number       `json:"id"`
	Status          string            `json:"status"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   string            `json:"customer_email"`
	PickupAddress   string            `json:"pickup_address"`
	DeliveryAddress string            `json:"delivery_address"`
	Address         string            `json:"address"`
	Items           []genericLineItem `json:"items"`
	Total           json.Number       `json:"total"`
	Notes           string            `json:"notes"`
	PaymentStatus   string            `json:"payment_status"`
}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// transformWebhookOrder decodes the platform-native order payload and
// produces the canonical order and customer candidates. The order's
// external ID carries the platform prefix so identities from different
// platforms cannot collide within a company.
func transformWebhookOrder(kind integration.PlatformKind, rawBody []byte) (OrderCandidate, CustomerCandidate, error) {
	switch kind {
	case integration.PlatformWooCommerce, integration.PlatformWordPress:
		return transformWooOrder(kind, rawBody)
	case integration.PlatformShopify:
		return transformShopifyOrder(rawBody)
	default:
		return transformGenericOrder(rawBody)
	}
}

func transformWooOrder(kind integration.PlatformKind, rawBody []byte) (OrderCandidate, CustomerCandidate, error) {
	var payload wooOrderPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return OrderCandidate{}, CustomerCandidate{}, fmt.Errorf("%w: %v", integration.ErrRecordShape, err)
	}
	if payload.ID.String() == "" {
		return OrderCandidate{}, CustomerCandidate{}, fmt.Errorf("%w: order has no id", integration.ErrRecordShape)
	}

	// Delivery address: shipping block wins when present, billing is the
	// fallback. WooCommerce frequently leaves shipping empty for local
	// pickup style orders.
	address := payload.Shipping.format()
	if payload.Shipping.isEmpty() {
		address = payload.Billing.format()
	}

	customer := CustomerCandidate{
		Name:    joinNonEmpty(" ", payload.Billing.FirstName, payload.Billing.LastName),
		Phone:   payload.Billing.Phone,
		Email:   payload.Billing.Email,
		Address: address,
	}

	items := make([]delivery.OrderItem, 0, len(payload.LineItems))
	for _, li := range payload.LineItems {
		items = append(items, delivery.OrderItem{
			Name:     li.Name,
			Quantity: li.Quantity,
			Total:    parseAmount(li.Total),
		})
	}

	order := OrderCandidate{
		ExternalID:      externalOrderID(kind, payload.ID.String()),
		Status:          integration.MapOrderStatus(kind, payload.Status),
		DeliveryAddress: address,
		Items:           items,
		Total:           parseAmount(payload.Total),
		Notes:           payload.CustomerNote,
	}
	return order, customer, nil
}

func transformShopifyOrder(rawBody []byte) (OrderCandidate, CustomerCandidate, error) {
	var payload shopifyOrderPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return OrderCandidate{}, CustomerCandidate{}, fmt.Errorf("%w: %v", integration.ErrRecordShape, err)
	}
	if payload.ID.String() == "" {
		return OrderCandidate{}, CustomerCandidate{}, fmt.Errorf("%w: order has no id", integration.ErrRecordShape)
	}

	address := payload.ShippingAddress.format()
	if payload.ShippingAddress.isEmpty() {
		address = payload.BillingAddress.format()
	}

	customer := CustomerCandidate{
		Name:    joinNonEmpty(" ", payload.Customer.FirstName, payload.Customer.LastName),
		Phone:   fallback(payload.Customer.Phone, payload.ShippingAddress.Phone),
		Email:   payload.Customer.Email,
		Address: address,
	}

	items := make([]delivery.OrderItem, 0, len(payload.LineItems))
	for _, li := range payload.LineItems {
		items = append(items, delivery.OrderItem{
			Name:     li.Title,
			Quantity: li.Quantity,
			Total:    parseAmount(li.Price),
		})
	}

	// Fulfillment status drives delivery state; financial status is only
	// a fallback for orders Shopify has not started fulfilling.
	status := fallback(payload.FulfillmentStatus, payload.FinancialStatus)

	order := OrderCandidate{
		ExternalID:      externalOrderID(integration.PlatformShopify, payload.ID.String()),
		Status:          integration.MapOrderStatus(integration.PlatformShopify, status),
		DeliveryAddress: address,
		Items:           items,
		Total:           parseAmount(payload.TotalPrice),
		Notes:           payload.Note,
	}
	return order, customer, nil
}

func transformGenericOrder(rawBody []byte) (OrderCandidate, CustomerCandidate, error) {
	var payload genericOrderPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return OrderCandidate{}, CustomerCandidate{}, fmt.Errorf("%w: %v", integration.ErrRecordShape, err)
	}
	if payload.ID.String() == "" {
		return OrderCandidate{}, CustomerCandidate{}, fmt.Errorf("%w: order has no id", integration.ErrRecordShape)
	}

	address := fallback(payload.DeliveryAddress, payload.Address)

	customer := CustomerCandidate{
		Name:    payload.CustomerName,
		Phone:   payload.CustomerPhone,
		Email:   payload.CustomerEmail,
		Address: address,
	}

	items := make([]delivery.OrderItem, 0, len(payload.Items))
	for _, li := range payload.Items {
		items = append(items, delivery.OrderItem{
			Name:     li.Name,
			Quantity: li.Quantity,
			Total:    parseAmount(li.Total),
		})
	}

	order := OrderCandidate{
		ExternalID:      externalOrderID(integration.PlatformCustom, payload.ID.String()),
		Status:          integration.MapOrderStatus(integration.PlatformCustom, payload.Status),
		PickupAddress:   payload.PickupAddress,
		DeliveryAddress: address,
		Items:           items,
		Total:           parseAmount(payload.Total),
		Notes:           payload.Notes,
		PaymentStatus:   delivery.PaymentStatus(payload.PaymentStatus),
	}
	return order, customer, nil
}

// externalOrderID builds the platform-prefixed external identity,
// e.g. "woo_501" for WooCommerce order 501.
func externalOrderID(kind integration.PlatformKind, id string) string {
	prefix := map[integration.PlatformKind]string{
		integration.PlatformWooCommerce: "woo",
		integration.PlatformWordPress:   "wp",
		integration.PlatformShopify:     "shopify",
		integration.PlatformCustom:      "custom",
	}[kind]
	if prefix == "" {
		prefix = kind.String()
	}
	return prefix + "_" + strings.TrimSpace(id)
}

// parseAmount decodes a money amount that external platforms send as
// either a JSON string or a number
func parseAmount(n json.Number) decimal.Decimal {
	if n.String() == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// joinNonEmpty joins the non-empty parts with the separator
func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}
