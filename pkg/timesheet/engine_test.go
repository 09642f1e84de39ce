package timesheet

import (
	"testing"
	"time"

	"github.com/fahrzeit/fahrzeit/pkg/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(driver string, day time.Time, start, end string) RideRow {
	return RideRow{DriverName: driver, Date: day, StartRaw: start, EndRaw: end}
}

func TestComputeMonth(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	// given a month of rides for one driver
	rides := []RideRow{
		// Monday: two rides separated by a ten-minute stop
		row("Max", date(2024, 6, 3), "08:00", "12:00"),
		row("Max", date(2024, 6, 3), "12:10", "16:00"),
		// Sunday
		row("Max", date(2024, 6, 9), "10:00", "14:00"),
	}

	// when
	ledgers, dropped, err := ComputeMonth(2024, time.June, []string{"Max"}, rides, calendarStub, nil, DefaultConfig())

	// then
	require.NoError(t, err)
	assert.Empty(t, dropped)
	require.Contains(t, ledgers, "Max")

	ledger := ledgers["Max"]
	assert.Equal(t, "Max", ledger.DriverName)
	require.Len(t, ledger.Days, 30)

	monday := ledger.Days[2]
	assert.Equal(t, date(2024, 6, 3), monday.Date)
	assert.Equal(t, "Monday", monday.Weekday)
	assert.Equal(t, 8.0, monday.WorkHours)
	assert.Equal(t, 0.0, monday.BreakHours)
	assert.Equal(t, 0.0, monday.SundayHours)
	assert.False(t, monday.IsWeekend)

	sunday := ledger.Days[8]
	assert.Equal(t, date(2024, 6, 9), sunday.Date)
	assert.Equal(t, 4.0, sunday.WorkHours)
	assert.Equal(t, 4.0, sunday.SundayHours)
	assert.True(t, sunday.IsWeekend)

	assert.Equal(t, 12.0, ledger.TotalWorkHours)
	assert.Equal(t, 4.0, ledger.TotalSundayHours)
	assert.Equal(t, 24, ledger.MealAllowance)
}

func TestComputeMonth_breakBetweenRides(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	rides := []RideRow{
		row("Max", date(2024, 6, 4), "08:00", "10:00"),
		row("Max", date(2024, 6, 4), "11:30", "14:00"),
	}

	ledgers, _, err := ComputeMonth(2024, time.June, []string{"Max"}, rides, calendarStub, nil, DefaultConfig())

	require.NoError(t, err)
	day := ledgers["Max"].Days[3]
	assert.Equal(t, 4.5, day.WorkHours)
	assert.Equal(t, 1.5, day.BreakHours)
}

func TestComputeMonth_nightHours(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	// given a shift crossing midnight
	rides := []RideRow{row("Max", date(2024, 6, 5), "22:00", "02:00")}

	// when
	ledgers, _, err := ComputeMonth(2024, time.June, []string{"Max"}, rides, calendarStub, nil, DefaultConfig())

	// then the 23:00-06:00 window yields three night hours
	require.NoError(t, err)
	day := ledgers["Max"].Days[4]
	assert.Equal(t, 4.0, day.WorkHours)
	assert.Equal(t, 3.0, day.NightHours)
}

func TestComputeMonth_holidayAttribution(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()
	calendarStub.Add(date(2024, 5, 30), "Fronleichnam")

	rides := []RideRow{row("Max", date(2024, 5, 30), "09:00", "15:00")}

	ledgers, _, err := ComputeMonth(2024, time.May, []string{"Max"}, rides, calendarStub, nil, DefaultConfig())

	require.NoError(t, err)
	day := ledgers["Max"].Days[29]
	assert.True(t, day.IsHoliday)
	assert.Equal(t, "Fronleichnam", day.HolidayName)
	assert.Equal(t, 6.0, day.WorkHours)
	assert.Equal(t, 6.0, day.HolidayHours)
	assert.Equal(t, 0.0, day.SundayHours)
}

func TestComputeMonth_specialDayOverridesRides(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	// given rides on a day the driver was reported sick
	rides := []RideRow{row("Max", date(2024, 6, 6), "08:00", "16:00")}
	specialDays := map[string]string{"2024-06-06": "krank"}

	// when
	ledgers, _, err := ComputeMonth(2024, time.June, []string{"Max"}, rides, calendarStub, specialDays, DefaultConfig())

	// then the override wins and the rides are ignored
	require.NoError(t, err)
	day := ledgers["Max"].Days[5]
	assert.Equal(t, "krank", day.Status)
	assert.Equal(t, 0.0, day.WorkHours)
}

func TestComputeMonth_invalidTokenDropsOnlyThatRide(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	rides := []RideRow{
		row("Max", date(2024, 6, 3), "08:00", "12:00"),
		row("Max", date(2024, 6, 3), "banana", "16:00"),
	}

	ledgers, dropped, err := ComputeMonth(2024, time.June, []string{"Max"}, rides, calendarStub, nil, DefaultConfig())

	require.NoError(t, err)
	require.Len(t, dropped, 1)
	assert.Equal(t, "Max", dropped[0].DriverName)
	assert.Equal(t, "banana", dropped[0].Raw)
	assert.Equal(t, 4.0, ledgers["Max"].Days[2].WorkHours)
}

func TestComputeMonth_droppedRidesAreSortedDeterministically(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	rides := []RideRow{
		row("Moritz", date(2024, 6, 4), "zzz", "12:00"),
		row("Max", date(2024, 6, 3), "banana", "12:00"),
		row("Max", date(2024, 6, 3), "apple", "12:00"),
		row("Max", date(2024, 6, 5), "08:00", "cherry"),
	}
	drivers := []string{"Moritz", "Max"}

	// drivers are computed concurrently, the audit order must not depend on
	// which goroutine finishes first
	for range 20 {
		_, dropped, err := ComputeMonth(2024, time.June, drivers, rides, calendarStub, nil, DefaultConfig())

		require.NoError(t, err)
		require.Len(t, dropped, 4)
		assert.Equal(t, "apple", dropped[0].Raw)
		assert.Equal(t, "banana", dropped[1].Raw)
		assert.Equal(t, "cherry", dropped[2].Raw)
		assert.Equal(t, "zzz", dropped[3].Raw)
	}
}

func TestComputeMonth_emptyTokenContributesNothing(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	rides := []RideRow{
		row("Max", date(2024, 6, 3), "08:00", ""),
		row("Max", date(2024, 6, 3), "13:00", "15:00"),
	}

	ledgers, dropped, err := ComputeMonth(2024, time.June, []string{"Max"}, rides, calendarStub, nil, DefaultConfig())

	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Equal(t, 2.0, ledgers["Max"].Days[2].WorkHours)
}

func TestComputeMonth_rosterIsAuthoritative(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	// given rides of a driver missing from the roster
	rides := []RideRow{
		row("Max", date(2024, 6, 3), "08:00", "12:00"),
		row("Unknown", date(2024, 6, 3), "08:00", "12:00"),
	}

	// when
	ledgers, _, err := ComputeMonth(2024, time.June, []string{"Max", "Moritz"}, rides, calendarStub, nil, DefaultConfig())

	// then only roster drivers are reported, ride-less ones with zero days
	require.NoError(t, err)
	require.Len(t, ledgers, 2)
	assert.NotContains(t, ledgers, "Unknown")

	moritz := ledgers["Moritz"]
	require.Len(t, moritz.Days, 30)
	assert.Equal(t, 0.0, moritz.TotalWorkHours)
	assert.Equal(t, 6, moritz.MealAllowance)
}

func TestComputeMonth_ridesOutsideMonthAreIgnored(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	rides := []RideRow{
		row("Max", date(2024, 5, 31), "08:00", "12:00"),
		row("Max", date(2024, 7, 1), "08:00", "12:00"),
	}

	ledgers, _, err := ComputeMonth(2024, time.June, []string{"Max"}, rides, calendarStub, nil, DefaultConfig())

	require.NoError(t, err)
	assert.Equal(t, 0.0, ledgers["Max"].TotalWorkHours)
}

func TestComputeMonth_invalidConfig(t *testing.T) {
	calendarStub := holiday.NewStubCalendar()
	defer calendarStub.Cleanup()

	cfg := Config{MergeGapMinutes: -1, BreakMinGapMinutes: 15, BreakCapMinutes: 120}

	_, _, err := ComputeMonth(2024, time.June, []string{"Max"}, nil, calendarStub, nil, cfg)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
}
