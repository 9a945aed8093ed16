package reporting

import (
	"fmt"
	"sort"
	"strings"
)

// PromotionPriority drives display ordering of suggestions.
type PromotionPriority string

const (
	PriorityHigh   PromotionPriority = "high"
	PriorityMedium PromotionPriority = "medium"
)

// Promotion is a suggested offer for a client.
type Promotion struct {
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Action      string            `json:"action"`
	Priority    PromotionPriority `json:"priority"`
}

const (
	milestoneEvery = 10
	suitDealMinQty = 3
)

// SuggestPromotions applies each rule independently; several offers can be
// returned at once. High priority suggestions come first.
func SuggestPromotions(habit *Habit, lifetimeVisits int, topItems []ItemCount) []Promotion {
	suggestions := []Promotion{}

	if habit != nil && habit.ChurnRisk {
		suggestions = append(suggestions, Promotion{
			Type:  "churn",
			Title: "We Miss You Offer",
			Description: fmt.Sprintf("Customer hasn't visited in %d days (usually visits every %d days).",
				habit.DaysSinceLast, habit.AvgIntervalDays),
			Action:   "Send '20% Off Next Visit' SMS",
			Priority: PriorityHigh,
		})
	}

	if lifetimeVisits > 0 && lifetimeVisits%milestoneEvery == 0 {
		suggestions = append(suggestions, Promotion{
			Type:        "milestone",
			Title:       fmt.Sprintf("%dth Visit Milestone!", lifetimeVisits),
			Description: fmt.Sprintf("Customer has hit a %d-visit milestone.", lifetimeVisits),
			Action:      "Apply 15% Off",
			Priority:    PriorityHigh,
		})
	}

	for _, item := range topItems {
		if strings.Contains(strings.ToLower(item.Name), "suit") && item.Quantity > suitDealMinQty {
			suggestions = append(suggestions, Promotion{
				Type:        "item",
				Title:       "Suit Deal",
				Description: "Frequent suit customer.",
				Action:      "Offer '3 Suits for 2'",
				Priority:    PriorityMedium,
			})
			break
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Priority == PriorityHigh && suggestions[j].Priority != PriorityHigh
	})
	return suggestions
}
