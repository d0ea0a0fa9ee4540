package sync

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/fleet/backend/internal/domain/delivery"
	"github.com/fleet/backend/internal/domain/identity"
	"github.com/fleet/backend/internal/domain/integration"
	"github.com/fleet/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CompanyLookup resolves a company from its webhook API key. The cache
// decorator in the infrastructure layer satisfies this in front of the
// repository.
type CompanyLookup interface {
	FindByAPIKey(ctx context.Context, apiKey string) (*identity.Company, error)
}

// WebhookService processes inbound platform webhooks. Authentication is
// the only fatal failure mode; every authenticated delivery produces a
// WebhookResult even when processing partially no-oped.
type WebhookService struct {
	companies CompanyLookup
	resolver  *IdentityResolver
	orders    delivery.OrderRepository
	observer  SyncObserver
	logger    *zap.Logger
}

// NewWebhookService creates a new WebhookService. observer may be nil
// when no metrics backend is wired.
func NewWebhookService(
	companies CompanyLookup,
	resolver *IdentityResolver,
	orders delivery.OrderRepository,
	observer SyncObserver,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		companies: companies,
		resolver:  resolver,
		orders:    orders,
		observer:  observer,
		logger:    logger,
	}
}

// HandleWebhook authenticates and processes one webhook delivery.
//
// Steps: company lookup by API key, optional HMAC signature verification,
// platform-specific payload transform, topic dispatch. Signature
// mismatches are logged and accepted unless the company opted into
// strict verification.
func (s *WebhookService) HandleWebhook(ctx context.Context, apiKey, signature, topic string, kind integration.PlatformKind, rawBody []byte) (*WebhookResult, error) {
	company, err := s.authenticate(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	result := &WebhookResult{
		CompanyName: company.Name,
		Topic:       normalizeTopic(topic),
	}

	if signature != "" && company.WebhookSecret != "" {
		valid := verifySignature(company.WebhookSecret, signature, rawBody)
		result.SignatureValid = &valid
		if !valid {
			s.logger.Warn("webhook signature mismatch",
				zap.String("company_id", company.ID.String()),
				zap.String("platform", kind.String()),
				zap.String("topic", result.Topic))
			if company.RequireSignature {
				return nil, integration.ErrSignatureMismatch
			}
		}
	}

	// Processing errors past this point are reported in the result, not
	// raised: the delivery was authenticated, so the platform gets a 200
	// and does not retry a payload we cannot use anyway.
	switch result.Topic {
	case "order.created", "order.updated":
		if err := s.upsertOrder(ctx, company, kind, rawBody, result); err != nil {
			result.Message = err.Error()
			s.logger.Error("webhook order processing failed",
				zap.String("company_id", company.ID.String()),
				zap.String("topic", result.Topic),
				zap.Error(err))
		}
	case "order.deleted":
		if err := s.cancelOrder(ctx, company, kind, rawBody, result); err != nil {
			result.Message = err.Error()
			s.logger.Error("webhook order deletion failed",
				zap.String("company_id", company.ID.String()),
				zap.Error(err))
		}
	default:
		result.Message = fmt.Sprintf("topic %q ignored", result.Topic)
		s.logger.Info("webhook topic ignored",
			zap.String("company_id", company.ID.String()),
			zap.String("topic", result.Topic))
	}

	if s.observer != nil {
		s.observer.ObserveWebhook(ctx, kind.String(), result.Topic, result.Message == "")
	}

	return result, nil
}

// authenticate resolves and checks the webhook principal
func (s *WebhookService) authenticate(ctx context.Context, apiKey string) (*identity.Company, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, integration.ErrUnauthorized
	}
	company, err := s.companies.FindByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, integration.ErrUnauthorized
		}
		return nil, fmt.Errorf("company lookup: %w", err)
	}
	if !company.IsActive() {
		return nil, integration.ErrUnauthorized
	}
	return company, nil
}

// upsertOrder transforms the payload and upserts the order, resolving the
// embedded customer first when the payload identifies one.
func (s *WebhookService) upsertOrder(ctx context.Context, company *identity.Company, kind integration.PlatformKind, rawBody []byte, result *WebhookResult) error {
	orderCand, customerCand, err := transformWebhookOrder(kind, rawBody)
	if err != nil {
		return err
	}

	// A customer is only resolvable when the payload carries at least one
	// identity signal. An anonymous order still gets stored.
	if customerCand.Phone != "" || customerCand.Email != "" {
		customer, _, err := s.resolver.ResolveCustomer(ctx, company.ID, kind.String(), customerCand)
		if err != nil {
			s.logger.Warn("webhook customer resolution failed",
				zap.String("company_id", company.ID.String()),
				zap.String("external_order_id", orderCand.ExternalID),
				zap.Error(err))
		} else {
			result.CustomerResolved = true
			orderCand.CustomerID = &customer.ID
		}
	}

	_, created, err := s.resolver.ResolveOrder(ctx, company.ID, kind.String(), orderCand)
	if err != nil {
		return err
	}
	result.OrderCreated = created
	result.OrderUpdated = !created

	s.logger.Info("webhook order processed",
		zap.String("company_id", company.ID.String()),
		zap.String("external_order_id", orderCand.ExternalID),
		zap.Bool("created", created))
	return nil
}

// cancelOrder cancels the referenced order. A deletion for an order we
// never stored is a no-op, not an error.
func (s *WebhookService) cancelOrder(ctx context.Context, company *identity.Company, kind integration.PlatformKind, rawBody []byte, result *WebhookResult) error {
	orderCand, _, err := transformWebhookOrder(kind, rawBody)
	if err != nil {
		return err
	}

	order, err := s.orders.FindByExternalID(ctx, company.ID, orderCand.ExternalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			result.Message = "order not found, deletion ignored"
			return nil
		}
		return err
	}

	if err := order.SetStatus(delivery.OrderStatusCancelled); err != nil {
		result.Message = "order already terminal"
		return nil
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	result.OrderUpdated = true
	return nil
}

// verifySignature checks an HMAC-SHA256 signature (base64, the encoding
// WooCommerce and Shopify both use) over the raw request body
func verifySignature(secret, signature string, rawBody []byte) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(signature)))
}

// normalizeTopic converts platform topic spellings ("order.created",
// "orders/create", "order.updated") to the canonical dotted form
func normalizeTopic(topic string) string {
	t := strings.ToLower(strings.TrimSpace(topic))
	switch t {
	case "orders/create":
		return "order.created"
	case "orders/updated", "orders/update":
		return "order.updated"
	case "orders/delete", "orders/cancelled":
		return "order.deleted"
	}
	return t
}
