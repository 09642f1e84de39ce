package timesheet

import (
	"time"

	"github.com/fahrzeit/fahrzeit/pkg/holiday"
)

// SundayHours attributes the full day's work hours to the Sunday premium
// category when the date falls on a Sunday. Premium pay applies to all hours
// worked that day, not a sub-portion.
func SundayHours(date time.Time, workHours float64) float64 {
	if date.Weekday() == time.Sunday {
		return workHours
	}
	return 0
}

// HolidayHours attributes the full day's work hours to the holiday premium
// category when the calendar marks the date as a statutory holiday. A Sunday
// holiday contributes to both premium categories.
func HolidayHours(date time.Time, workHours float64, cal holiday.Calendar) float64 {
	if ok, _ := cal.IsHoliday(date); ok {
		return workHours
	}
	return 0
}
