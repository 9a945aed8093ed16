package reporting

import (
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// ClientInsights bundles everything shown on a client's detail page.
type ClientInsights struct {
	Client     domain.Client    `json:"client"`
	Summary    ClientSummary    `json:"summary"`
	Habit      *Habit           `json:"habit,omitempty"`
	Promotions []Promotion      `json:"promotions"`
	Invoices   []domain.Invoice `json:"invoices"`
}

// BuildClientInsights runs the range summary, habit analysis and promotion
// rules over a client's full history. Habits and the milestone rule look at
// the full history; top items come from the selected range.
func BuildClientInsights(client domain.Client, history []domain.Invoice, key RangeKey, now time.Time) (*ClientInsights, error) {
	history = InLocation(history, now.Location())
	summary, err := ClientStats(history, key, now)
	if err != nil {
		return nil, err
	}
	habit := AnalyzeHabits(history, now)
	return &ClientInsights{
		Client:     client,
		Summary:    summary,
		Habit:      habit,
		Promotions: SuggestPromotions(habit, len(history), summary.TopItems),
		Invoices:   history,
	}, nil
}
