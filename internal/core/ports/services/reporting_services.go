package services

import (
	"context"

	"github.com/SscSPs/drycleaner_app/internal/core/reporting"
	"github.com/SscSPs/drycleaner_app/internal/dto"
)

// ReportingSvc defines operations for generating business reports
type ReportingSvc interface {
	// Summary computes aggregate statistics for a reporting period.
	Summary(ctx context.Context, query dto.ReportQuery) (*dto.ReportSummaryResponse, error)

	// ClientInsights builds the detail-page analytics of one client.
	ClientInsights(ctx context.Context, clientID string, rangeKey reporting.RangeKey) (*reporting.ClientInsights, error)
}
