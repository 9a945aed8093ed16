package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/core/reporting"
	"github.com/SscSPs/drycleaner_app/internal/dto"
	"github.com/SscSPs/drycleaner_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients.
type clientHandler struct {
	store     portssvc.StoreSvcFacade
	reporting portssvc.ReportingSvc
}

func newClientHandler(store portssvc.StoreSvcFacade, rs portssvc.ReportingSvc) *clientHandler {
	return &clientHandler{store: store, reporting: rs}
}

// registerClientRoutes registers routes related to clients.
func registerClientRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade, rs portssvc.ReportingSvc) {
	h := newClientHandler(store, rs)

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.PATCH("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
		clients.GET("/:id/insights", h.clientInsights)
	}
}

// listClients godoc
// @Summary List clients
// @Description Returns every loaded client, newest first.
// @Tags clients
// @Produce json
// @Success 200 {object} dto.ListClientsResponse
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ListClientsResponse{Clients: h.store.Clients()})
}

// createClient godoc
// @Summary Add a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} domain.Client
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Phone already registered"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	client, err := h.store.AddClient(c.Request.Context(), req.ToNewClient())
	if err != nil {
		writeServiceError(c, logger, err, "add client")
		return
	}

	logger.Info("Client created", slog.String("client_id", client.ID))
	c.JSON(http.StatusCreated, client)
}

// updateClient godoc
// @Summary Update a client
// @Description Applies the present fields only.
// @Tags clients
// @Accept json
// @Param id path string true "Client ID"
// @Param client body dto.UpdateClientRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [patch]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("client_id", c.Param("id")))
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	if err := h.store.UpdateClient(c.Request.Context(), c.Param("id"), req.ToClientUpdate()); err != nil {
		writeServiceError(c, logger, err, "update client")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteClient godoc
// @Summary Delete a client
// @Description Deletes the client and, by cascade, all of its invoices.
// @Tags clients
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("client_id", c.Param("id")))
	if err := h.store.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, logger, err, "delete client")
		return
	}
	c.Status(http.StatusNoContent)
}

// clientInsights godoc
// @Summary Client insights
// @Description Range stats, chart, top items, habits and promotion suggestions of one client.
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Param range query string false "all, 7d, 30d, 90d, 6m or 1y" default(all)
// @Success 200 {object} reporting.ClientInsights
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Security BearerAuth
// @Router /clients/{id}/insights [get]
func (h *clientHandler) clientInsights(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("client_id", c.Param("id")))
	rangeKey := reporting.RangeKey(c.DefaultQuery("range", string(reporting.RangeAll)))

	insights, err := h.reporting.ClientInsights(c.Request.Context(), c.Param("id"), rangeKey)
	if err != nil {
		writeServiceError(c, logger, err, "load client details")
		return
	}
	c.JSON(http.StatusOK, insights)
}
