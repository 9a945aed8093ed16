package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/dto"
	"github.com/SscSPs/drycleaner_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvc) {
	h := &reportingHandler{reportingService: rs}

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.summary)
	}
}

// summary godoc
// @Summary Period report
// @Description Revenue, status counts, payment mix, daily breakdown and top clients for a period.
// @Tags reports
// @Produce json
// @Param period query string false "daily, weekly, monthly, yearly or custom" default(daily)
// @Param date query string false "Anchor date, YYYY-MM-DD, defaults to today"
// @Param from query string false "Custom range start, YYYY-MM-DD"
// @Param to query string false "Custom range end (inclusive), YYYY-MM-DD"
// @Param top query int false "Number of top clients" default(5)
// @Success 200 {object} dto.ReportSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, logger, err)
		return
	}

	report, err := h.reportingService.Summary(c.Request.Context(), query)
	if err != nil {
		writeServiceError(c, logger, err, "generate report")
		return
	}
	c.JSON(http.StatusOK, report)
}
