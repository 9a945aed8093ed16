// Package reporting derives aggregates and customer-behaviour heuristics from
// invoice collections. Every function is pure; callers pass in the invoices
// they have loaded and the current time.
package reporting

import (
	"fmt"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// PeriodKind selects how a reporting window is derived from its anchor.
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "daily"
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodYearly  PeriodKind = "yearly"
	PeriodCustom  PeriodKind = "custom"
)

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns midnight of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// PeriodWindow resolves a period kind and anchor into a window. The anchor's
// location decides where day boundaries fall. For custom periods the window
// covers customFrom's day through the whole of customTo's day.
func PeriodWindow(kind PeriodKind, anchor, customFrom, customTo time.Time) (Window, error) {
	switch kind {
	case PeriodDaily:
		start := StartOfDay(anchor)
		return Window{Start: start, End: start.AddDate(0, 0, 1)}, nil
	case PeriodWeekly:
		start := WeekStart(anchor)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case PeriodMonthly:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case PeriodYearly:
		start := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, nil
	case PeriodCustom:
		if customFrom.IsZero() || customTo.IsZero() {
			return Window{}, apperrors.Validation("custom period requires both from and to dates")
		}
		start := StartOfDay(customFrom)
		end := StartOfDay(customTo).AddDate(0, 0, 1)
		if !end.After(start) {
			return Window{}, apperrors.Validation("custom period end is before its start")
		}
		return Window{Start: start, End: end}, nil
	default:
		return Window{}, apperrors.Validation(fmt.Sprintf("unknown period %q", kind))
	}
}

// FilterByWindow keeps the invoices created inside w, preserving order.
func FilterByWindow(invoices []domain.Invoice, w Window) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if w.Contains(inv.CreatedAt) {
			out = append(out, inv)
		}
	}
	return out
}

// InLocation returns a copy of invoices with creation times expressed in loc,
// so that day and hour bucketing follows business hours.
func InLocation(invoices []domain.Invoice, loc *time.Location) []domain.Invoice {
	out := make([]domain.Invoice, len(invoices))
	for i, inv := range invoices {
		inv.CreatedAt = inv.CreatedAt.In(loc)
		out[i] = inv
	}
	return out
}
