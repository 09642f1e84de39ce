package timesheet

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/fahrzeit/fahrzeit/pkg/holiday"
	log "github.com/sirupsen/logrus"
)

const dateKeyLayout = "2006-01-02"

// RideRow is one already-ingested line of the ride log. Time tokens are still
// raw so that a bad token drops only its own ride, never the whole day.
type RideRow struct {
	DriverName string
	Date       time.Time
	StartRaw   string
	EndRaw     string
}

// DroppedRide records a ride excluded from the computation. Payroll-relevant
// data must never disappear without a trace, so callers surface these.
type DroppedRide struct {
	DriverName string
	Date       time.Time
	Raw        string
	Reason     string
}

// ComputeMonth builds one DriverMonthLedger per roster driver for the target
// month. The roster is authoritative: rides of drivers outside it are ignored
// and roster drivers without any rides still receive a full month of
// zero-valued days. specialDays maps "2006-01-02" keys to a status string that
// suppresses ride processing for that date. Drivers are independent and are
// computed concurrently; the result map is keyed by driver name.
func ComputeMonth(
	year int,
	month time.Month,
	drivers []string,
	rides []RideRow,
	cal holiday.Calendar,
	specialDays map[string]string,
	cfg Config,
) (map[string]*DriverMonthLedger, []DroppedRide, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	rowsByDriver := make(map[string][]RideRow)
	for _, row := range rides {
		date := dateOnly(row.Date)
		if date.Before(first) || date.After(last) {
			continue
		}
		rowsByDriver[row.DriverName] = append(rowsByDriver[row.DriverName], row)
	}

	ledgers := make(map[string]*DriverMonthLedger, len(drivers))
	var dropped []DroppedRide
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for _, name := range drivers {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ledger, driverDropped := computeDriverMonth(name, first, last, rowsByDriver[name], cal, specialDays, cfg)

			mu.Lock()
			ledgers[name] = ledger
			dropped = append(dropped, driverDropped...)
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	// Drivers finish in arbitrary order; the full key ordering keeps the audit
	// trail reproducible across runs.
	sort.Slice(dropped, func(i, j int) bool {
		if dropped[i].DriverName != dropped[j].DriverName {
			return dropped[i].DriverName < dropped[j].DriverName
		}
		if !dropped[i].Date.Equal(dropped[j].Date) {
			return dropped[i].Date.Before(dropped[j].Date)
		}
		return dropped[i].Raw < dropped[j].Raw
	})

	return ledgers, dropped, nil
}

// computeDriverMonth walks every calendar day of the month for one driver.
// Days carry no state across each other.
func computeDriverMonth(
	name string,
	first, last time.Time,
	rows []RideRow,
	cal holiday.Calendar,
	specialDays map[string]string,
	cfg Config,
) (*DriverMonthLedger, []DroppedRide) {
	rowsByDay := make(map[string][]RideRow)
	for _, row := range rows {
		key := dateOnly(row.Date).Format(dateKeyLayout)
		rowsByDay[key] = append(rowsByDay[key], row)
	}

	ledger := &DriverMonthLedger{DriverName: name}
	var dropped []DroppedRide
	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		key := date.Format(dateKeyLayout)
		status := specialDays[key]

		var dayRides []RideInterval
		if status == "" {
			var dayDropped []DroppedRide
			dayRides, dayDropped = parseRides(name, rowsByDay[key])
			dropped = append(dropped, dayDropped...)
		}

		ledger.Days = append(ledger.Days, buildDay(date, dayRides, cal, status, cfg))
	}
	ledger.RecomputeTotals()

	return ledger, dropped
}

// buildDay combines ride aggregation and calendar attribution for one day. A
// special-day status bypasses ride processing entirely; the override wins even
// when ride rows exist for the date. All hour fields are rounded to two
// decimals here, once, and never re-rounded downstream.
func buildDay(date time.Time, rides []RideInterval, cal holiday.Calendar, status string, cfg Config) DayRecord {
	isHoliday, holidayName := cal.IsHoliday(date)
	record := DayRecord{
		Date:        date,
		Weekday:     date.Weekday().String(),
		IsWeekend:   date.Weekday() == time.Saturday || date.Weekday() == time.Sunday,
		IsHoliday:   isHoliday,
		HolidayName: holidayName,
		Status:      status,
	}
	if status != "" || len(rides) == 0 {
		return record
	}

	merged := MergeRides(rides, cfg.MergeGapMinutes)
	var workHours, nightHours float64
	for _, block := range merged {
		workHours += DurationHours(&block.Start, &block.End)
		nightHours += NightOverlapHours(&block.Start, &block.End)
	}

	record.WorkHours = round2(workHours)
	record.BreakHours = round2(BreakHours(rides, cfg.BreakMinGapMinutes, cfg.BreakCapMinutes))
	record.NightHours = round2(nightHours)
	record.SundayHours = round2(SundayHours(date, workHours))
	record.HolidayHours = round2(HolidayHours(date, workHours, cal))
	return record
}

func parseRides(driver string, rows []RideRow) ([]RideInterval, []DroppedRide) {
	var rides []RideInterval
	var dropped []DroppedRide
	for _, row := range rows {
		start, err := ParseTime(row.StartRaw)
		if err != nil {
			log.Warnf("dropping ride of %s on %s: %v", driver, row.Date.Format(dateKeyLayout), err)
			dropped = append(dropped, DroppedRide{
				DriverName: driver,
				Date:       dateOnly(row.Date),
				Raw:        row.StartRaw,
				Reason:     err.Error(),
			})
			continue
		}
		end, err := ParseTime(row.EndRaw)
		if err != nil {
			log.Warnf("dropping ride of %s on %s: %v", driver, row.Date.Format(dateKeyLayout), err)
			dropped = append(dropped, DroppedRide{
				DriverName: driver,
				Date:       dateOnly(row.Date),
				Raw:        row.EndRaw,
				Reason:     err.Error(),
			})
			continue
		}
		// An empty token is "no time", not a failure; such a ride has no
		// measurable duration and contributes nothing.
		if start == nil || end == nil {
			continue
		}
		rides = append(rides, RideInterval{Start: *start, End: *end})
	}
	return rides, dropped
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
