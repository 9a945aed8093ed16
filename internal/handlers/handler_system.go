package handlers

import (
	"net/http"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type systemHandler struct {
	store portssvc.StoreSvcFacade
}

func registerSystemRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade) {
	h := &systemHandler{store: store}

	system := rg.Group("/system")
	{
		system.GET("/status", h.status)
		system.POST("/initialize", h.initialize)
		system.POST("/clear-error", h.clearError)
		system.POST("/reset", middleware.RequireRole(domain.RoleAdmin), h.reset)
	}
}

// status godoc
// @Summary Store status
// @Description Returns the loading, error, readiness and pagination flags of the store.
// @Tags system
// @Produce json
// @Success 200 {object} domain.StoreState
// @Security BearerAuth
// @Router /system/status [get]
func (h *systemHandler) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State())
}

// initialize godoc
// @Summary Initialize or retry
// @Description Checks the schema, reloads clients and invoices and subscribes to changes.
// @Tags system
// @Produce json
// @Success 200 {object} domain.StoreState
// @Failure 503 {object} ErrorResponse "Database not ready"
// @Security BearerAuth
// @Router /system/initialize [post]
func (h *systemHandler) initialize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.store.InitializeDatabase(c.Request.Context()); err != nil {
		state := h.store.State()
		if !state.DatabaseReady {
			logger.Warn("Database not ready", "error", err)
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: state.Error})
			return
		}
		writeServiceError(c, logger, err, "initialize the database")
		return
	}
	c.JSON(http.StatusOK, h.store.State())
}

func (h *systemHandler) clearError(c *gin.Context) {
	h.store.ClearError()
	c.JSON(http.StatusOK, h.store.State())
}

// reset godoc
// @Summary Reset the store
// @Description Drops all cached data and the change subscription.
// @Tags system
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /system/reset [post]
func (h *systemHandler) reset(c *gin.Context) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Resetting store")
	h.store.Reset()
	c.Status(http.StatusNoContent)
}
