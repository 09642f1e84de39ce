package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMealAllowance(t *testing.T) {
	tests := []struct {
		totalWorkHours float64
		want           int
	}{
		{0, 6},
		{3.9, 6},
		{4.0, 14},
		{8.9, 14},
		{9.0, 24},
		{20, 24},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MealAllowance(tt.totalWorkHours), "for %v hours", tt.totalWorkHours)
	}
}

func TestDriverMonthLedger_RecomputeTotals(t *testing.T) {
	// given a ledger whose days were edited by hand
	ledger := &DriverMonthLedger{
		DriverName: "Max",
		Days: []DayRecord{
			{Date: date(2024, 6, 3), WorkHours: 8, BreakHours: 0.5, NightHours: 1},
			{Date: date(2024, 6, 4), WorkHours: 2.25, BreakHours: 0.25},
			{Date: date(2024, 6, 9), WorkHours: 4, SundayHours: 4},
		},
		// stale roll-up values
		TotalWorkHours: 99,
		MealAllowance:  6,
	}

	// when
	ledger.RecomputeTotals()

	// then totals and allowance follow the day records
	assert.Equal(t, 14.25, ledger.TotalWorkHours)
	assert.Equal(t, 0.75, ledger.TotalBreakHours)
	assert.Equal(t, 1.0, ledger.TotalNightHours)
	assert.Equal(t, 4.0, ledger.TotalSundayHours)
	assert.Equal(t, 0.0, ledger.TotalHolidayHours)
	assert.Equal(t, 24, ledger.MealAllowance)
}

func TestDriverMonthLedger_RecomputeTotals_doesNotTouchDays(t *testing.T) {
	ledger := &DriverMonthLedger{
		Days: []DayRecord{{Date: date(2024, 6, 3), WorkHours: 3.33}},
	}

	ledger.RecomputeTotals()

	assert.Equal(t, 3.33, ledger.Days[0].WorkHours)
	assert.Equal(t, 3.33, ledger.TotalWorkHours)
	assert.Equal(t, 6, ledger.MealAllowance)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
