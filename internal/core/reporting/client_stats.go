package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RangeKey selects the trailing window of a client's history to summarize.
type RangeKey string

const (
	RangeAll     RangeKey = "all"
	Range7Days   RangeKey = "7d"
	Range30Days  RangeKey = "30d"
	Range90Days  RangeKey = "90d"
	Range6Months RangeKey = "6m"
	Range1Year   RangeKey = "1y"
)

const (
	topItemsLimit   = 5
	maxDailyBuckets = 14
	maxMonthBuckets = 12
)

// ItemCount is the total quantity ordered of one item description.
type ItemCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ChartPoint is one bar of a spend chart.
type ChartPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ClientSummary holds the range-filtered spend figures of one client.
type ClientSummary struct {
	Range           RangeKey        `json:"range"`
	TotalSpent      decimal.Decimal `json:"totalSpent"`
	TotalVisits     int             `json:"totalVisits"`
	AverageSpend    decimal.Decimal `json:"averageSpend"`
	VisitsThisMonth int             `json:"visitsThisMonth"`
	VisitsThisYear  int             `json:"visitsThisYear"`
	Chart           []ChartPoint    `json:"chart"`
	TopItems        []ItemCount     `json:"topItems"`
}

// RangeCutoff returns the earliest creation time included by key, or the
// zero time for RangeAll.
func RangeCutoff(key RangeKey, now time.Time) (time.Time, error) {
	switch key {
	case RangeAll, "":
		return time.Time{}, nil
	case Range7Days:
		return now.AddDate(0, 0, -7), nil
	case Range30Days:
		return now.AddDate(0, 0, -30), nil
	case Range90Days:
		return now.AddDate(0, 0, -90), nil
	case Range6Months:
		return now.AddDate(0, -6, 0), nil
	case Range1Year:
		return now.AddDate(-1, 0, 0), nil
	}
	return time.Time{}, apperrors.Validation(fmt.Sprintf("unknown range %q", key))
}

// ClientStats summarizes history over the trailing range. Month and year
// visit counts always use the full history.
func ClientStats(history []domain.Invoice, key RangeKey, now time.Time) (ClientSummary, error) {
	if key == "" {
		key = RangeAll
	}
	cutoff, err := RangeCutoff(key, now)
	if err != nil {
		return ClientSummary{}, err
	}

	filtered := make([]domain.Invoice, 0, len(history))
	for _, inv := range history {
		if cutoff.IsZero() || !inv.CreatedAt.Before(cutoff) {
			filtered = append(filtered, inv)
		}
	}

	summary := ClientSummary{
		Range:        key,
		TotalSpent:   decimal.Zero,
		AverageSpend: decimal.Zero,
		TotalVisits:  len(filtered),
	}
	for _, inv := range filtered {
		summary.TotalSpent = summary.TotalSpent.Add(inv.Total)
	}
	if summary.TotalVisits > 0 {
		summary.AverageSpend = summary.TotalSpent.Div(decimal.NewFromInt(int64(summary.TotalVisits)))
	}

	for _, inv := range history {
		t := inv.CreatedAt.In(now.Location())
		if t.Year() == now.Year() {
			summary.VisitsThisYear++
			if t.Month() == now.Month() {
				summary.VisitsThisMonth++
			}
		}
	}

	if key == Range7Days || key == Range30Days {
		summary.Chart = chart(filtered, now.Location(), time.DateOnly, "2 Jan", maxDailyBuckets)
	} else {
		summary.Chart = chart(filtered, now.Location(), "2006-01", "Jan 2006", maxMonthBuckets)
	}
	summary.TopItems = TopItems(filtered, topItemsLimit)
	return summary, nil
}

// chart buckets spend by sortKey layout, keeps the latest limit buckets and
// labels them with the label layout in chronological order.
func chart(invoices []domain.Invoice, loc *time.Location, sortKey, label string, limit int) []ChartPoint {
	type bucket struct {
		key   string
		label string
		value decimal.Decimal
	}
	buckets := map[string]*bucket{}
	for _, inv := range invoices {
		t := inv.CreatedAt.In(loc)
		k := t.Format(sortKey)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{key: k, label: t.Format(label), value: decimal.Zero}
			buckets[k] = b
		}
		b.value = b.value.Add(inv.Total)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })
	if len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}

	points := make([]ChartPoint, len(ordered))
	for i, b := range ordered {
		points[i] = ChartPoint{Name: b.label, Value: b.value}
	}
	return points
}

// TopItems sums item quantities by description and returns the largest,
// ties broken by first appearance.
func TopItems(invoices []domain.Invoice, limit int) []ItemCount {
	counts := map[string]int{}
	var order []string
	for _, inv := range invoices {
		for _, it := range inv.Items {
			if _, ok := counts[it.Description]; !ok {
				order = append(order, it.Description)
			}
			counts[it.Description] += it.Quantity
		}
	}

	items := make([]ItemCount, len(order))
	for i, name := range order {
		items[i] = ItemCount{Name: name, Quantity: counts[name]}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Quantity > items[j].Quantity })
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
