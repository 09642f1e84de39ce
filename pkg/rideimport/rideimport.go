// Package rideimport turns uploaded ride-log and roster sheets into the rows
// the time-sheet engine consumes. Column headings vary between dispatch
// systems ("Fahrer"/"driver"/"name", "Beginn"/"von"/"start", ...), so headers
// are normalized through a synonym table before validation.
package rideimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fahrzeit/fahrzeit/pkg/timesheet"
	log "github.com/sirupsen/logrus"
)

// SchemaError reports required columns missing from an uploaded sheet. It is
// fatal to the whole run: no ledger is built from a sheet that cannot name its
// drivers, dates, or times.
type SchemaError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns in %s: %s", e.Sheet, strings.Join(e.Missing, ", "))
}

// DefaultColumnSynonyms maps lower-cased sheet headings to canonical column
// names.
var DefaultColumnSynonyms = map[string]string{
	"name":   "name",
	"fahrer": "name",
	"driver": "name",

	"id":             "id",
	"persnum":        "id",
	"personalnummer": "id",
	"personal-id":    "id",
	"personal_id":    "id",

	"date":  "date",
	"datum": "date",
	"tag":   "date",

	"start":  "start",
	"beginn": "start",
	"von":    "start",

	"end":  "end",
	"ende": "end",
	"bis":  "end",
}

var dateLayouts = []string{"2006-01-02", "02.01.2006", "01/02/2006", "02/01/2006"}

type Importer struct {
	synonyms map[string]string
}

func NewImporter() *Importer {
	return &Importer{synonyms: DefaultColumnSynonyms}
}

// NewImporterWithSynonyms allows a deployment-specific heading table.
func NewImporterWithSynonyms(synonyms map[string]string) *Importer {
	return &Importer{synonyms: synonyms}
}

// ReadRideLog decodes a ride-log sheet into engine rows. The sheet must carry
// name, date, start and end columns (after synonym normalization); otherwise a
// *SchemaError is returned. Rows with an unparseable date are dropped and
// reported, not fatal.
func (imp *Importer) ReadRideLog(r io.Reader) ([]timesheet.RideRow, []timesheet.DroppedRide, error) {
	records, columns, err := imp.readSheet(r, "ride log", []string{"name", "date", "start", "end"})
	if err != nil {
		return nil, nil, err
	}

	var rows []timesheet.RideRow
	var dropped []timesheet.DroppedRide
	for _, record := range records {
		name := field(record, columns["name"])
		rawDate := field(record, columns["date"])
		date, err := parseDate(rawDate)
		if err != nil {
			log.Warnf("dropping ride of %q: %v", name, err)
			dropped = append(dropped, timesheet.DroppedRide{
				DriverName: name,
				Raw:        rawDate,
				Reason:     err.Error(),
			})
			continue
		}
		rows = append(rows, timesheet.RideRow{
			DriverName: name,
			Date:       date,
			StartRaw:   field(record, columns["start"]),
			EndRaw:     field(record, columns["end"]),
		})
	}
	return rows, dropped, nil
}

// ReadRoster extracts the driver names of a roster sheet, first occurrence
// order, duplicates removed.
func (imp *Importer) ReadRoster(r io.Reader) ([]string, error) {
	records, columns, err := imp.readSheet(r, "roster", []string{"name"})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, record := range records {
		name := field(record, columns["name"])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// readSheet decodes a CSV sheet, normalizes its header through the synonym
// table, and validates the required columns. It returns the data records and
// the canonical-name-to-index mapping.
func (imp *Importer) readSheet(r io.Reader, sheet string, required []string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("could not read %s sheet: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, nil, &SchemaError{Sheet: sheet, Missing: required}
	}

	columns := make(map[string]int)
	for idx, heading := range records[0] {
		canonical, ok := imp.synonyms[strings.ToLower(strings.TrimSpace(heading))]
		if !ok {
			continue
		}
		if _, taken := columns[canonical]; !taken {
			columns[canonical] = idx
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &SchemaError{Sheet: sheet, Missing: missing}
	}

	return records[1:], columns, nil
}

// ParseSpecialDays parses "YYYY-MM-DD,status" lines into the engine's
// special-day mapping. Malformed lines are skipped.
func ParseSpecialDays(text string) map[string]string {
	specialDays := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		date, status, found := strings.Cut(line, ",")
		if !found {
			continue
		}
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(date)); err != nil {
			continue
		}
		status = strings.TrimSpace(status)
		if status == "" {
			continue
		}
		specialDays[strings.TrimSpace(date)] = status
	}
	return specialDays
}

func parseDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, trimmed); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date %q", raw)
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
