package reporting

import (
	"sort"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultTopClients is the number of clients listed when no limit is given.
const DefaultTopClients = 5

// DayBreakdown aggregates one calendar day of invoices.
type DayBreakdown struct {
	Date      string          `json:"date"` // YYYY-MM-DD
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Completed int             `json:"completed"`
}

// ClientRevenue ranks a client by revenue within a report.
type ClientRevenue struct {
	Client    domain.Client   `json:"client"`
	Invoices  int             `json:"invoices"`
	Revenue   decimal.Decimal `json:"revenue"`
	Completed int             `json:"completed"`
}

// Stats is the aggregate summary of a set of invoices.
type Stats struct {
	TotalRevenue     decimal.Decimal              `json:"totalRevenue"`
	TotalInvoices    int                          `json:"totalInvoices"`
	PendingCount     int                          `json:"pendingCount"`
	CompletedCount   int                          `json:"completedCount"`
	CancelledCount   int                          `json:"cancelledCount"`
	PendingRevenue   decimal.Decimal              `json:"pendingRevenue"`
	CompletedRevenue decimal.Decimal              `json:"completedRevenue"`
	CancelledRevenue decimal.Decimal              `json:"cancelledRevenue"`
	TotalPaid        decimal.Decimal              `json:"totalPaid"`
	AverageInvoice   decimal.Decimal              `json:"averageInvoice"`
	CompletionRate   float64                      `json:"completionRate"` // Percent, 0-100
	UniqueClients    int                          `json:"uniqueClients"`
	PaymentMethods   map[domain.PaymentMethod]int `json:"paymentMethods"`
	DailyBreakdown   []DayBreakdown               `json:"dailyBreakdown"`
	TopClients       []ClientRevenue              `json:"topClients"`
}

// ComputeStats aggregates invoices. Day buckets use each invoice's creation
// time in its own location; see InLocation. Top clients are ordered by revenue
// descending, ties by first appearance in invoices.
func ComputeStats(invoices []domain.Invoice, topN int) Stats {
	if topN <= 0 {
		topN = DefaultTopClients
	}
	stats := Stats{
		TotalRevenue:     decimal.Zero,
		PendingRevenue:   decimal.Zero,
		CompletedRevenue: decimal.Zero,
		CancelledRevenue: decimal.Zero,
		TotalPaid:        decimal.Zero,
		AverageInvoice:   decimal.Zero,
		PaymentMethods:   map[domain.PaymentMethod]int{},
		DailyBreakdown:   []DayBreakdown{},
		TopClients:       []ClientRevenue{},
		TotalInvoices:    len(invoices),
	}

	days := map[string]*DayBreakdown{}
	clients := map[string]*ClientRevenue{}
	var clientOrder []string

	for _, inv := range invoices {
		stats.TotalRevenue = stats.TotalRevenue.Add(inv.Total)
		completed := inv.Status == domain.StatusCompleted

		switch inv.Status {
		case domain.StatusPending:
			stats.PendingCount++
			stats.PendingRevenue = stats.PendingRevenue.Add(inv.Total)
		case domain.StatusCompleted:
			stats.CompletedCount++
			stats.CompletedRevenue = stats.CompletedRevenue.Add(inv.Total)
		case domain.StatusCancelled:
			stats.CancelledCount++
			stats.CancelledRevenue = stats.CancelledRevenue.Add(inv.Total)
		}
		if inv.Paid {
			stats.TotalPaid = stats.TotalPaid.Add(inv.Total)
		}
		method := inv.PaymentMethod
		if method == "" {
			method = domain.PaymentUnpaid
		}
		stats.PaymentMethods[method]++

		key := inv.CreatedAt.Format(time.DateOnly)
		day, ok := days[key]
		if !ok {
			day = &DayBreakdown{Date: key, Revenue: decimal.Zero}
			days[key] = day
		}
		day.Count++
		day.Revenue = day.Revenue.Add(inv.Total)
		if completed {
			day.Completed++
		}

		cr, ok := clients[inv.Client.ID]
		if !ok {
			cr = &ClientRevenue{Client: inv.Client, Revenue: decimal.Zero}
			clients[inv.Client.ID] = cr
			clientOrder = append(clientOrder, inv.Client.ID)
		}
		cr.Invoices++
		cr.Revenue = cr.Revenue.Add(inv.Total)
		if completed {
			cr.Completed++
		}
	}

	stats.UniqueClients = len(clients)
	if stats.TotalInvoices > 0 {
		stats.AverageInvoice = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalInvoices)))
		stats.CompletionRate = float64(stats.CompletedCount) / float64(stats.TotalInvoices) * 100
	}

	for _, day := range days {
		stats.DailyBreakdown = append(stats.DailyBreakdown, *day)
	}
	sort.Slice(stats.DailyBreakdown, func(i, j int) bool {
		return stats.DailyBreakdown[i].Date < stats.DailyBreakdown[j].Date
	})

	ranked := make([]ClientRevenue, 0, len(clientOrder))
	for _, id := range clientOrder {
		ranked = append(ranked, *clients[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue.GreaterThan(ranked[j].Revenue)
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	stats.TopClients = ranked

	return stats
}
