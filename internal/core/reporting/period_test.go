package reporting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/drycleaner_app/internal/apperrors"
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
	"github.com/SscSPs/drycleaner_app/internal/core/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kigali = time.FixedZone("CAT", 2*60*60)

func at(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, kigali)
}

func TestWeekStart_IsMondayOfSameWeek(t *testing.T) {
	wednesday := at(2024, time.May, 15, 16, 45, 0)
	assert.Equal(t, at(2024, time.May, 13, 0, 0, 0), reporting.WeekStart(wednesday))

	sunday := at(2024, time.May, 19, 8, 0, 0)
	assert.Equal(t, at(2024, time.May, 13, 0, 0, 0), reporting.WeekStart(sunday), "sunday belongs to the preceding monday")

	monday := at(2024, time.May, 13, 0, 0, 0)
	assert.Equal(t, monday, reporting.WeekStart(monday))
}

func TestFilterByWindow_WeeklyBoundaries(t *testing.T) {
	wednesday := at(2024, time.May, 15, 12, 0, 0)
	w, err := reporting.PeriodWindow(reporting.PeriodWeekly, wednesday, time.Time{}, time.Time{})
	require.NoError(t, err)

	invoices := []domain.Invoice{
		{ID: "monday", Timestamps: domain.Timestamps{CreatedAt: at(2024, time.May, 13, 0, 0, 1)}},
		{ID: "prior-sunday", Timestamps: domain.Timestamps{CreatedAt: at(2024, time.May, 12, 23, 59, 59)}},
		{ID: "next-monday", Timestamps: domain.Timestamps{CreatedAt: at(2024, time.May, 20, 0, 0, 0)}},
		{ID: "sunday-night", Timestamps: domain.Timestamps{CreatedAt: at(2024, time.May, 19, 23, 59, 59)}},
	}

	got := reporting.FilterByWindow(invoices, w)

	ids := make([]string, len(got))
	for i, inv := range got {
		ids[i] = inv.ID
	}
	assert.Equal(t, []string{"monday", "sunday-night"}, ids)
}

func TestPeriodWindow(t *testing.T) {
	anchor := at(2024, time.February, 29, 13, 0, 0)

	tests := []struct {
		name      string
		kind      reporting.PeriodKind
		from, to  time.Time
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{name: "daily", kind: reporting.PeriodDaily, wantStart: at(2024, time.February, 29, 0, 0, 0), wantEnd: at(2024, time.March, 1, 0, 0, 0)},
		{name: "monthly", kind: reporting.PeriodMonthly, wantStart: at(2024, time.February, 1, 0, 0, 0), wantEnd: at(2024, time.March, 1, 0, 0, 0)},
		{name: "yearly", kind: reporting.PeriodYearly, wantStart: at(2024, time.January, 1, 0, 0, 0), wantEnd: at(2025, time.January, 1, 0, 0, 0)},
		{
			name: "custom includes whole end day", kind: reporting.PeriodCustom,
			from: at(2024, time.January, 10, 15, 0, 0), to: at(2024, time.January, 12, 1, 0, 0),
			wantStart: at(2024, time.January, 10, 0, 0, 0), wantEnd: at(2024, time.January, 13, 0, 0, 0),
		},
		{name: "custom missing bounds", kind: reporting.PeriodCustom, wantErr: true},
		{
			name: "custom reversed", kind: reporting.PeriodCustom,
			from: at(2024, time.January, 12, 0, 0, 0), to: at(2024, time.January, 10, 0, 0, 0), wantErr: true,
		},
		{name: "unknown", kind: "hourly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := reporting.PeriodWindow(tt.kind, anchor, tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)
		})
	}
}
