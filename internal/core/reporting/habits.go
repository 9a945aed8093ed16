package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinHabitHistory is the smallest invoice history that yields a habit analysis.
const MinHabitHistory = 3

// BigSpenderThreshold is the average spend above which a client counts as a big spender.
var BigSpenderThreshold = decimal.NewFromInt(50000)

const (
	churnIntervalFactor = 2.5
	churnMinDays        = 30
	loyalistMinVisits   = 20
	day                 = 24 * time.Hour
)

// Persona labels, checked in this order.
const (
	PersonaProfessional = "Professional"
	PersonaAtRisk       = "At-Risk"
	PersonaLoyalist     = "Loyalist"
	PersonaBigSpender   = "Big Spender"
	PersonaRegular      = "Regular Customer"
)

// Time of day buckets.
const (
	Morning   = "Morning"
	Afternoon = "Afternoon"
	Evening   = "Evening"
)

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Habit summarizes a client's visiting pattern.
type Habit struct {
	FavoriteDay     string          `json:"favoriteDay"`
	TimeOfDay       string          `json:"timeOfDay"`
	AvgIntervalDays int             `json:"avgIntervalDays"`
	DaysSinceLast   int             `json:"daysSinceLast"`
	ChurnRisk       bool            `json:"churnRisk"`
	Persona         string          `json:"persona"`
	AverageSpend    decimal.Decimal `json:"averageSpend"`
}

// AnalyzeHabits inspects a client's full invoice history. It returns nil when
// the history is shorter than MinHabitHistory. Weekday and hour are read in
// each invoice's own location.
func AnalyzeHabits(history []domain.Invoice, now time.Time) *Habit {
	if len(history) < MinHabitHistory {
		return nil
	}

	var dayCounts [7]int
	var morning, afternoon, evening int
	spent := decimal.Zero
	suits := 0
	for _, inv := range history {
		dayCounts[inv.CreatedAt.Weekday()]++
		switch h := inv.CreatedAt.Hour(); {
		case h < 12:
			morning++
		case h < 17:
			afternoon++
		default:
			evening++
		}
		spent = spent.Add(inv.Total)
		for _, it := range inv.Items {
			if strings.Contains(strings.ToLower(it.Description), "suit") {
				suits++
			}
		}
	}

	fav := 0
	for i := 1; i < len(dayCounts); i++ {
		if dayCounts[i] > dayCounts[fav] {
			fav = i
		}
	}

	timeOfDay := Evening
	switch {
	case morning > afternoon && morning > evening:
		timeOfDay = Morning
	case afternoon > morning && afternoon > evening:
		timeOfDay = Afternoon
	}

	times := make([]time.Time, len(history))
	for i, inv := range history {
		times[i] = inv.CreatedAt
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	var totalGap time.Duration
	for i := 1; i < len(times); i++ {
		totalGap += times[i].Sub(times[i-1])
	}
	avgInterval := int(totalGap / time.Duration(len(times)-1) / day)
	daysSince := int(now.Sub(times[len(times)-1]) / day)
	churn := IsChurnRisk(daysSince, avgInterval)

	avgSpend := spent.Div(decimal.NewFromInt(int64(len(history))))

	persona := PersonaRegular
	switch {
	case suits > len(history):
		persona = PersonaProfessional
	case churn:
		persona = PersonaAtRisk
	case len(history) > loyalistMinVisits:
		persona = PersonaLoyalist
	case avgSpend.GreaterThan(BigSpenderThreshold):
		persona = PersonaBigSpender
	}

	return &Habit{
		FavoriteDay:     weekdayNames[fav],
		TimeOfDay:       timeOfDay,
		AvgIntervalDays: avgInterval,
		DaysSinceLast:   daysSince,
		ChurnRisk:       churn,
		Persona:         persona,
		AverageSpend:    avgSpend,
	}
}

// IsChurnRisk flags a client whose absence is both long in absolute terms and
// well beyond their usual visiting interval.
func IsChurnRisk(daysSinceLast, avgIntervalDays int) bool {
	return float64(daysSinceLast) > float64(avgIntervalDays)*churnIntervalFactor && daysSinceLast > churnMinDays
}
