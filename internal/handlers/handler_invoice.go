package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/dto"
	"github.com/SscSPs/drycleaner_app/internal/middleware"
	"github.com/SscSPs/drycleaner_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// invoiceIDAttempts bounds retries when a generated id collides.
const invoiceIDAttempts = 3

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	store portssvc.StoreSvcFacade
	loc   *time.Location
	now   func() time.Time
}

func newInvoiceHandler(store portssvc.StoreSvcFacade, loc *time.Location) *invoiceHandler {
	if loc == nil {
		loc = time.Local
	}
	return &invoiceHandler{store: store, loc: loc, now: time.Now}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade, loc *time.Location) {
	h := newInvoiceHandler(store, loc)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.createInvoice)
		invoices.POST("/load-more", h.loadMoreInvoices)
		invoices.GET("/search", h.searchInvoices)
		invoices.GET("/range", h.invoicesInRange)
		invoices.GET("/pickups", h.pickupNotifications)
		invoices.PATCH("/:id", h.updateInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.PATCH("/:id/status", h.updateStatus)
		invoices.PATCH("/:id/paid", h.updatePaid)
		invoices.PATCH("/:id/payment-method", h.updatePaymentMethod)
	}
}

func (h *invoiceHandler) page() dto.ListInvoicesResponse {
	state := h.store.State()
	return dto.ListInvoicesResponse{
		Invoices:          h.store.Invoices(),
		Page:              state.Page,
		AllInvoicesLoaded: state.AllInvoicesLoaded,
	}
}

// listInvoices godoc
// @Summary List loaded invoices
// @Description Returns the paged-in invoices, newest first, with the paging state.
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, h.page())
}

// loadMoreInvoices godoc
// @Summary Load the next page
// @Description Appends the next page of invoices. A call while a page is in flight is a no-op.
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /invoices/load-more [post]
func (h *invoiceHandler) loadMoreInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if err := h.store.LoadMoreInvoices(c.Request.Context()); err != nil {
		writeServiceError(c, logger, err, "load more invoices")
		return
	}
	c.JSON(http.StatusOK, h.page())
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Creates an invoice and its items. The id is generated when omitted.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice"
// @Success 201 {object} domain.Invoice
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	generate := strings.TrimSpace(req.ID) == ""
	var (
		created *domain.Invoice
		err     error
	)
	for attempt := 0; attempt < invoiceIDAttempts; attempt++ {
		invoice := req.ToInvoice()
		if generate {
			if invoice.ID, err = utils.GenerateInvoiceID(h.now().In(h.loc)); err != nil {
				break
			}
		}
		created, err = h.store.AddInvoice(c.Request.Context(), invoice)
		if !generate || !errors.Is(err, apperrors.ErrDuplicate) {
			break
		}
		logger.Warn("Generated invoice id collided, retrying", slog.String("invoice_id", invoice.ID))
	}
	if err != nil {
		writeServiceError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", created.ID))
	c.JSON(http.StatusCreated, created)
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Applies the present fields; a present items array replaces all items.
// @Tags invoices
// @Accept json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to change"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [patch]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	if err := h.store.UpdateInvoice(c.Request.Context(), c.Param("id"), req.ToInvoiceUpdate()); err != nil {
		writeServiceError(c, logger, err, "update invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	if err := h.store.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, logger, err, "delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

// updateStatus godoc
// @Summary Set invoice status
// @Tags invoices
// @Accept json
// @Param id path string true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "Status"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/status [patch]
func (h *invoiceHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	if err := h.store.UpdateInvoiceStatus(c.Request.Context(), c.Param("id"), domain.InvoiceStatus(req.Status)); err != nil {
		writeServiceError(c, logger, err, "update status")
		return
	}
	c.Status(http.StatusNoContent)
}

// updatePaid godoc
// @Summary Set the paid flag
// @Description Sets only the paid flag; the payment method is left as is.
// @Tags invoices
// @Accept json
// @Param id path string true "Invoice ID"
// @Param paid body dto.UpdateInvoicePaidRequest true "Paid"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/paid [patch]
func (h *invoiceHandler) updatePaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	var req dto.UpdateInvoicePaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	if err := h.store.UpdateInvoicePaid(c.Request.Context(), c.Param("id"), *req.Paid); err != nil {
		writeServiceError(c, logger, err, "update paid flag")
		return
	}
	c.Status(http.StatusNoContent)
}

// updatePaymentMethod godoc
// @Summary Set the payment method
// @Description Sets the payment method; paid becomes true for every method except unpaid.
// @Tags invoices
// @Accept json
// @Param id path string true "Invoice ID"
// @Param method body dto.UpdateInvoicePaymentMethodRequest true "Payment method"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/{id}/payment-method [patch]
func (h *invoiceHandler) updatePaymentMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))
	var req dto.UpdateInvoicePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	if err := h.store.UpdateInvoicePaymentMethod(c.Request.Context(), c.Param("id"), domain.PaymentMethod(req.PaymentMethod)); err != nil {
		writeServiceError(c, logger, err, "update payment method")
		return
	}
	c.Status(http.StatusNoContent)
}

// searchInvoices godoc
// @Summary Search all invoices
// @Description Matches the invoice id or the client's name or phone, case-insensitively, across the whole database.
// @Tags invoices
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} dto.SearchInvoicesResponse
// @Security BearerAuth
// @Router /invoices/search [get]
func (h *invoiceHandler) searchInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	results, err := h.store.SearchInvoicesDB(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeServiceError(c, logger, err, "search invoices")
		return
	}
	c.JSON(http.StatusOK, dto.NewSearchInvoicesResponse(results))
}

// invoicesInRange godoc
// @Summary Invoices by creation date
// @Description Returns every invoice created between the two dates, both days included, in the business timezone.
// @Tags invoices
// @Produce json
// @Param from query string true "YYYY-MM-DD"
// @Param to query string true "YYYY-MM-DD"
// @Success 200 {object} dto.SearchInvoicesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /invoices/range [get]
func (h *invoiceHandler) invoicesInRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, errFrom := time.ParseInLocation(time.DateOnly, c.Query("from"), h.loc)
	to, errTo := time.ParseInLocation(time.DateOnly, c.Query("to"), h.loc)
	if err := errors.Join(errFrom, errTo); err != nil {
		logger.Warn("Invalid date range", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("from and to must be YYYY-MM-DD dates: %v", err)})
		return
	}

	results, err := h.store.FetchInvoicesForDateRange(c.Request.Context(), from, to.AddDate(0, 0, 1).Add(-time.Nanosecond))
	if err != nil {
		writeServiceError(c, logger, err, "fetch invoices")
		return
	}
	c.JSON(http.StatusOK, dto.NewSearchInvoicesResponse(results))
}

// pickupNotifications godoc
// @Summary Pickups due now
// @Description Returns unfinished invoices whose pickup is scheduled for the current minute.
// @Tags invoices
// @Produce json
// @Success 200 {object} dto.SearchInvoicesResponse
// @Security BearerAuth
// @Router /invoices/pickups [get]
func (h *invoiceHandler) pickupNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSearchInvoicesResponse(h.store.GetPickupNotifications()))
}
