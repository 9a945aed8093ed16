package dto

import (
	"github.com/SscSPs/drycleaner_app/internal/core/reporting"
)

// ReportQuery holds the query parameters of a summary report. Dates use the
// YYYY-MM-DD layout and are read in the business timezone.
type ReportQuery struct {
	Period string `form:"period,default=daily"`
	Date   string `form:"date"`
	From   string `form:"from"`
	To     string `form:"to"`
	Top    int    `form:"top,default=5" binding:"min=1,max=50"`
}

// ReportSummaryResponse is a period report.
type ReportSummaryResponse struct {
	Period string           `json:"period"`
	From   string           `json:"from"`
	To     string           `json:"to"` // Exclusive
	Stats  reporting.Stats  `json:"stats"`
	Window reporting.Window `json:"window"`
	// Display holds preformatted currency strings for receipts and exports.
	Display ReportDisplay `json:"display"`
}

// ReportDisplay carries the headline amounts of a report rendered in the
// business currency.
type ReportDisplay struct {
	TotalRevenue   string `json:"totalRevenue"`
	TotalPaid      string `json:"totalPaid"`
	PendingRevenue string `json:"pendingRevenue"`
	AverageInvoice string `json:"averageInvoice"`
}
