package router

import (
	"github.com/fleet/backend/internal/infrastructure/auth"
	"github.com/fleet/backend/internal/infrastructure/config"
	"github.com/fleet/backend/internal/infrastructure/logger"
	"github.com/fleet/backend/internal/infrastructure/telemetry"
	"github.com/fleet/backend/internal/interfaces/http/handler"
	"github.com/fleet/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies holds everything the HTTP surface needs
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	Meter       *telemetry.MeterProvider
	JWTService  *auth.JWTService
	Webhook     *handler.WebhookHandler
	Integration *handler.IntegrationHandler
	System      *handler.SystemHandler
}

// New builds the gin engine with all middleware and routes wired.
//
// Two auth schemes coexist: webhooks authenticate per delivery with the
// x-api-key header inside the handler, while the operator endpoints sit
// behind JWT bearer auth.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(deps.Config.App.Name, deps.Config.Telemetry.Enabled),
		middleware.HTTPMetrics(deps.Meter),
		logger.GinMiddleware(deps.Logger),
		logger.Recovery(deps.Logger),
		middleware.BodyLimit(deps.Config.HTTP.MaxBodySize),
	)
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.GET("/health", deps.System.Health)

	api := engine.Group("/api/v1")
	{
		api.POST("/webhooks/:platform", deps.Webhook.Handle)

		integrations := api.Group("/integrations")
		integrations.Use(middleware.JWTAuth(deps.JWTService))
		{
			integrations.POST("/:id/sync", deps.Integration.Sync)
			integrations.GET("/:id/logs", deps.Integration.Logs)
		}
	}

	return engine
}
