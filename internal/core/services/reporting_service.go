package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	portssvc "github.com/SscSPs/drycleaner_app/internal/core/ports/services"
	"github.com/SscSPs/drycleaner_app/internal/core/reporting"
	"github.com/SscSPs/drycleaner_app/internal/dto"
	"github.com/SscSPs/drycleaner_app/internal/utils"
)

// reportingService implements the ReportingSvc interface on top of the store.
// All period arithmetic happens in the business timezone.
type reportingService struct {
	BaseService
	loader portssvc.StoreLoaderSvc
	loc    *time.Location
	now    func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingLocation sets the business timezone.
func WithReportingLocation(loc *time.Location) ReportingServiceOption {
	return func(s *reportingService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithReportingClock overrides the clock used to anchor periods.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(loader portssvc.StoreLoaderSvc, options ...ReportingServiceOption) portssvc.ReportingSvc {
	svc := &reportingService{
		loader: loader,
		loc:    time.Local,
		now:    time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// Summary computes the statistics of the period selected by query.
func (s *reportingService) Summary(ctx context.Context, query dto.ReportQuery) (*dto.ReportSummaryResponse, error) {
	kind := reporting.PeriodKind(strings.ToLower(strings.TrimSpace(query.Period)))
	if kind == "" {
		kind = reporting.PeriodDaily
	}

	anchor := s.now().In(s.loc)
	if query.Date != "" {
		d, err := s.parseDate("date", query.Date)
		if err != nil {
			return nil, err
		}
		anchor = d
	}
	from, err := s.parseDate("from", query.From)
	if err != nil {
		return nil, err
	}
	to, err := s.parseDate("to", query.To)
	if err != nil {
		return nil, err
	}

	window, err := reporting.PeriodWindow(kind, anchor, from, to)
	if err != nil {
		return nil, err
	}

	// The store range is inclusive on both ends.
	invoices, err := s.loader.FetchInvoicesForDateRange(ctx, window.Start, window.End.Add(-time.Nanosecond))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch invoices for report",
			slog.String("period", string(kind)),
			slog.Time("from", window.Start),
			slog.Time("to", window.End))
		return nil, fmt.Errorf("failed to fetch invoices for report: %w", err)
	}
	invoices = reporting.FilterByWindow(reporting.InLocation(invoices, s.loc), window)

	top := query.Top
	if top <= 0 {
		top = reporting.DefaultTopClients
	}

	s.LogDebug(ctx, "Report computed",
		slog.String("period", string(kind)),
		slog.Int("invoices", len(invoices)))

	stats := reporting.ComputeStats(invoices, top)
	return &dto.ReportSummaryResponse{
		Period: string(kind),
		From:   window.Start.Format(time.DateOnly),
		To:     window.End.Format(time.DateOnly),
		Stats:  stats,
		Window: window,
		Display: dto.ReportDisplay{
			TotalRevenue:   utils.FormatAmount(stats.TotalRevenue),
			TotalPaid:      utils.FormatAmount(stats.TotalPaid),
			PendingRevenue: utils.FormatAmount(stats.PendingRevenue),
			AverageInvoice: utils.FormatAmount(stats.AverageInvoice),
		},
	}, nil
}

// ClientInsights builds the analytics of one client over its full history.
func (s *reportingService) ClientInsights(ctx context.Context, clientID string, rangeKey reporting.RangeKey) (*reporting.ClientInsights, error) {
	if rangeKey == "" {
		rangeKey = reporting.RangeAll
	}
	if _, err := reporting.RangeCutoff(rangeKey, s.now()); err != nil {
		return nil, err
	}

	client, history, err := s.loader.GetClientHistory(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return reporting.BuildClientInsights(*client, history, rangeKey, s.now().In(s.loc))
}

// parseDate reads a YYYY-MM-DD value in the business timezone. An empty value
// yields the zero time.
func (s *reportingService) parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, s.loc)
	if err != nil {
		return time.Time{}, apperrors.Validation(fmt.Sprintf("invalid %s %q, expected YYYY-MM-DD", field, value))
	}
	return t, nil
}
