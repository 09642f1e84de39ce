package timesheet

import (
	"math"
	"time"
)

// DayRecord is the ledger line for one driver on one calendar day. When Status
// is set (sick, vacation, ...) every hour field is zero and ride data for the
// day was ignored.
type DayRecord struct {
	Date         time.Time
	Weekday      string
	WorkHours    float64
	BreakHours   float64
	NightHours   float64
	SundayHours  float64
	HolidayHours float64
	IsWeekend    bool
	IsHoliday    bool
	HolidayName  string
	Status       string
}

// DriverMonthLedger covers every calendar day of the target month for one
// driver, first to last with no gaps, plus the monthly roll-up.
type DriverMonthLedger struct {
	DriverName        string
	Days              []DayRecord
	TotalWorkHours    float64
	TotalBreakHours   float64
	TotalNightHours   float64
	TotalSundayHours  float64
	TotalHolidayHours float64
	MealAllowance     int
}

// MealAllowance returns the tiered flat payment (in currency units) for a
// month's total work hours.
func MealAllowance(totalWorkHours float64) int {
	switch {
	case totalWorkHours < 4:
		return 6
	case totalWorkHours < 9:
		return 14
	default:
		return 24
	}
}

// RecomputeTotals re-derives the five total fields and the meal allowance
// from the day records. Day-level fields are authoritative and never touched
// here: this is also the entry point after a reviewer has edited days by hand.
func (l *DriverMonthLedger) RecomputeTotals() {
	var work, breaks, night, sunday, holiday float64
	for _, day := range l.Days {
		work += day.WorkHours
		breaks += day.BreakHours
		night += day.NightHours
		sunday += day.SundayHours
		holiday += day.HolidayHours
	}
	l.TotalWorkHours = round2(work)
	l.TotalBreakHours = round2(breaks)
	l.TotalNightHours = round2(night)
	l.TotalSundayHours = round2(sunday)
	l.TotalHolidayHours = round2(holiday)
	l.MealAllowance = MealAllowance(work)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
