package handler

import (
	"errors"
	"net/http"

	syncapp "github.com/fleet/backend/internal/application/sync"
	"github.com/fleet/backend/internal/domain/integration"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/fleet/backend/internal/infrastructure/logger"
	"github.com/fleet/backend/internal/interfaces/http/dto"
	"github.com/fleet/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntegrationHandler exposes the operator sync API: triggering a pull
// sync and reading an integration's sync history.
type IntegrationHandler struct {
	BaseHandler
	pullService  *syncapp.PullSyncService
	integrations integration.IntegrationRepository
	syncLogs     integration.SyncLogRepository
}

// NewIntegrationHandler creates a new IntegrationHandler
func NewIntegrationHandler(
	pullService *syncapp.PullSyncService,
	integrations integration.IntegrationRepository,
	syncLogs integration.SyncLogRepository,
) *IntegrationHandler {
	return &IntegrationHandler{
		pullService:  pullService,
		integrations: integrations,
		syncLogs:     syncLogs,
	}
}

// Sync processes POST /api/v1/integrations/:id/sync
func (h *IntegrationHandler) Sync(c *gin.Context) {
	integ, ok := h.loadScopedIntegration(c)
	if !ok {
		return
	}

	result, err := h.pullService.RunSync(c.Request.Context(), integ.ID)
	if err != nil {
		switch {
		case errors.Is(err, integration.ErrIntegrationNotFound):
			h.NotFound(c, "Integration not found")
		case errors.Is(err, integration.ErrIntegrationInactive):
			h.BadRequest(c, "Integration is not active")
		default:
			logger.GetGinLogger(c).Error("sync run failed",
				zap.String("integration_id", integ.ID.String()),
				zap.Error(err))
			h.Internal(c, "Sync failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "sync completed",
		"status":  result.Status(),
		"results": gin.H{
			"riders":    result.Riders,
			"orders":    result.Orders,
			"customers": result.Customers,
		},
		"errors":      result.Errors,
		"duration_ms": result.Duration.Milliseconds(),
	})
}

// Logs processes GET /api/v1/integrations/:id/logs
func (h *IntegrationHandler) Logs(c *gin.Context) {
	integ, ok := h.loadScopedIntegration(c)
	if !ok {
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	logs, err := h.syncLogs.FindByIntegration(c.Request.Context(), integ.ID, filter)
	if err != nil {
		h.Internal(c, "Unable to load sync logs")
		return
	}
	total, err := h.syncLogs.CountByIntegration(c.Request.Context(), integ.ID)
	if err != nil {
		h.Internal(c, "Unable to load sync logs")
		return
	}

	h.SuccessWithMeta(c, logs, total, filter.Page, filter.Limit())
}

// loadScopedIntegration resolves the :id param within the authenticated
// company. Integrations of other companies read as not found.
func (h *IntegrationHandler) loadScopedIntegration(c *gin.Context) (*integration.Integration, bool) {
	companyID, err := uuid.Parse(middleware.GetJWTCompanyID(c))
	if err != nil {
		h.Unauthorized(c, "Invalid company claim")
		return nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid integration ID")
		return nil, false
	}

	integ, err := h.integrations.FindByIDForCompany(c.Request.Context(), companyID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "Integration not found")
			return nil, false
		}
		h.Internal(c, "Unable to load integration")
		return nil, false
	}
	return integ, true
}
