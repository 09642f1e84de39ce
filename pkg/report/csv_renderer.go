package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/fahrzeit/fahrzeit/pkg/timesheet"
)

type LedgerRenderer interface {
	RenderReport(report *MonthReport) (string, error)
}

type CsvLedgerRendererImpl struct {
}

func NewCsvLedgerRenderer() *CsvLedgerRendererImpl {
	return &CsvLedgerRendererImpl{}
}

// RenderReport writes one section per driver, sorted by name: the day table,
// a totals row, and the meal allowance.
func (t *CsvLedgerRendererImpl) RenderReport(report *MonthReport) (string, error) {
	names := make([]string, 0, len(report.Ledgers))
	for name := range report.Ledgers {
		names = append(names, name)
	}
	sort.Strings(names)

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	for _, name := range names {
		if err := writer.Write([]string{"Fahrer", name}); err != nil {
			return "", err
		}
		if err := renderLedger(writer, report.Ledgers[name]); err != nil {
			return "", err
		}
		if err := writer.Write([]string{}); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func renderLedger(writer *csv.Writer, ledger *timesheet.DriverMonthLedger) error {
	header := []string{"Datum", "Tag", "Arbeitszeit", "Pause", "Nachtarbeit", "Sonntagsarbeit", "Feiertagsarbeit", "Status"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, day := range ledger.Days {
		status := day.Status
		if status == "" && day.IsHoliday {
			status = day.HolidayName
		}
		row := []string{
			day.Date.Format("02.01.2006"),
			day.Weekday,
			FormatHours(day.WorkHours),
			FormatHours(day.BreakHours),
			FormatHours(day.NightHours),
			FormatHours(day.SundayHours),
			FormatHours(day.HolidayHours),
			status,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	totals := []string{
		"Summe",
		"",
		FormatHours(ledger.TotalWorkHours),
		FormatHours(ledger.TotalBreakHours),
		FormatHours(ledger.TotalNightHours),
		FormatHours(ledger.TotalSundayHours),
		FormatHours(ledger.TotalHolidayHours),
		"",
	}
	if err := writer.Write(totals); err != nil {
		return err
	}
	return writer.Write([]string{"Verpflegungspauschale", strconv.Itoa(ledger.MealAllowance)})
}

// FormatHours renders decimal hours as H:MM.
func FormatHours(hours float64) string {
	totalMinutes := int(math.Round(hours * 60))
	return fmt.Sprintf("%d:%02d", totalMinutes/60, totalMinutes%60)
}
