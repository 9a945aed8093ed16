package handlers

import (
	"net/http"

	"github.com/SscSPs/drycleaner_app/cmd/docs"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/middleware"
	"github.com/SscSPs/drycleaner_app/internal/platform/config"
	"github.com/SscSPs/drycleaner_app/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
	authLimit gin.HandlerFunc,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public login routes
	public := r.Group("/api/v1")
	registerAuthRoutes(public, services.Auth, services.Token, authLimit)

	setupAPIV1Routes(r, cfg, services, hub)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerSystemRoutes(v1, services.Store)
	registerClientRoutes(v1, services.Store, services.Reporting)
	registerInvoiceRoutes(v1, services.Store, cfg.Location)
	registerReportingRoutes(v1, services.Reporting)
	registerAdminRoutes(v1, services.User, services.Activity)
	if hub != nil {
		registerWebsocketRoutes(v1, hub, cfg.CORSAllowedOrigins)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
