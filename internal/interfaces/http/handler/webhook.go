package handler

import (
	"errors"
	"net/http"

	syncapp "github.com/fleet/backend/internal/application/sync"
	"github.com/fleet/backend/internal/domain/integration"
	"github.com/fleet/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// signatureHeaders lists the per-platform signature header names, checked
// in order. Custom platforms send the generic one.
var signatureHeaders = []string{
	"X-WC-Webhook-Signature",
	"X-Shopify-Hmac-Sha256",
	"X-Webhook-Signature",
}

// topicHeaders lists the per-platform topic header names, checked in order
var topicHeaders = []string{
	"X-WC-Webhook-Topic",
	"X-Shopify-Topic",
	"X-Webhook-Topic",
}

// WebhookHandler handles inbound platform webhook deliveries
type WebhookHandler struct {
	BaseHandler
	service *syncapp.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(service *syncapp.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// Handle processes POST /api/v1/webhooks/:platform.
// Authentication failure is the only 401; everything else a platform
// could retry pointlessly returns 200 with details in the body.
func (h *WebhookHandler) Handle(c *gin.Context) {
	platform := integration.ParsePlatformKind(c.Param("platform"))
	apiKey := c.GetHeader("x-api-key")
	signature := firstHeader(c, signatureHeaders)
	topic := firstHeader(c, topicHeaders)

	rawBody, err := c.GetRawData()
	if err != nil {
		h.BadRequest(c, "Unable to read request body")
		return
	}

	result, err := h.service.HandleWebhook(c.Request.Context(), apiKey, signature, topic, platform, rawBody)
	if err != nil {
		switch {
		case errors.Is(err, integration.ErrUnauthorized):
			h.Unauthorized(c, "Invalid API key")
		case errors.Is(err, integration.ErrSignatureMismatch):
			h.Unauthorized(c, "Webhook signature verification failed")
		default:
			logger.GetGinLogger(c).Error("webhook processing failed",
				zap.String("platform", platform.String()),
				zap.Error(err))
			h.Internal(c, "Webhook processing failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": webhookMessage(result),
		"company": result.CompanyName,
		"data":    result,
	})
}

func webhookMessage(result *syncapp.WebhookResult) string {
	switch {
	case result.OrderCreated:
		return "order created"
	case result.OrderUpdated:
		return "order updated"
	case result.Message != "":
		return result.Message
	default:
		return "processed"
	}
}

// firstHeader returns the first non-empty header among names
func firstHeader(c *gin.Context, names []string) string {
	for _, name := range names {
		if v := c.GetHeader(name); v != "" {
			return v
		}
	}
	return ""
}
