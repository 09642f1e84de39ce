package rideimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporter_ReadRideLog(t *testing.T) {
	// given a sheet with German headings
	sheet := strings.NewReader(
		"Fahrer,Datum,Beginn,Ende\n" +
			"Max,2024-06-03,08:00,12:00\n" +
			"Moritz,03.06.2024,14:00,18:00\n")

	// when
	rows, dropped, err := NewImporter().ReadRideLog(sheet)

	// then headings are normalized and both date formats understood
	require.NoError(t, err)
	assert.Empty(t, dropped)
	require.Len(t, rows, 2)

	assert.Equal(t, "Max", rows[0].DriverName)
	assert.Equal(t, "2024-06-03", rows[0].Date.Format("2006-01-02"))
	assert.Equal(t, "08:00", rows[0].StartRaw)
	assert.Equal(t, "12:00", rows[0].EndRaw)

	assert.Equal(t, "Moritz", rows[1].DriverName)
	assert.Equal(t, "2024-06-03", rows[1].Date.Format("2006-01-02"))
}

func TestImporter_ReadRideLog_englishHeadings(t *testing.T) {
	sheet := strings.NewReader(
		"driver,date,start,end\n" +
			"Max,2024-06-03,08:00,12:00\n")

	rows, _, err := NewImporter().ReadRideLog(sheet)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Max", rows[0].DriverName)
}

func TestImporter_ReadRideLog_missingColumns(t *testing.T) {
	sheet := strings.NewReader(
		"Fahrer,Datum\n" +
			"Max,2024-06-03\n")

	rows, _, err := NewImporter().ReadRideLog(sheet)

	assert.Nil(t, rows)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "ride log", schemaErr.Sheet)
	assert.ElementsMatch(t, []string{"start", "end"}, schemaErr.Missing)
}

func TestImporter_ReadRideLog_badDateDropsRow(t *testing.T) {
	sheet := strings.NewReader(
		"Fahrer,Datum,Beginn,Ende\n" +
			"Max,not-a-date,08:00,12:00\n" +
			"Max,2024-06-03,08:00,12:00\n")

	rows, dropped, err := NewImporter().ReadRideLog(sheet)

	require.NoError(t, err)
	assert.Len(t, rows, 1)
	require.Len(t, dropped, 1)
	assert.Equal(t, "Max", dropped[0].DriverName)
	assert.Equal(t, "not-a-date", dropped[0].Raw)
}

func TestImporter_ReadRoster(t *testing.T) {
	sheet := strings.NewReader(
		"Name,Personalnummer\n" +
			"Max,1001\n" +
			"Moritz,1002\n" +
			"Max,1001\n" +
			",\n")

	names, err := NewImporter().ReadRoster(sheet)

	require.NoError(t, err)
	assert.Equal(t, []string{"Max", "Moritz"}, names)
}

func TestImporter_ReadRoster_missingNameColumn(t *testing.T) {
	sheet := strings.NewReader("Personalnummer\n1001\n")

	_, err := NewImporter().ReadRoster(sheet)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"name"}, schemaErr.Missing)
}

func TestNewImporterWithSynonyms(t *testing.T) {
	importer := NewImporterWithSynonyms(map[string]string{
		"chauffeur": "name",
		"jour":      "date",
		"debut":     "start",
		"fin":       "end",
	})
	sheet := strings.NewReader(
		"Chauffeur,Jour,Debut,Fin\n" +
			"Max,2024-06-03,08:00,12:00\n")

	rows, _, err := importer.ReadRideLog(sheet)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Max", rows[0].DriverName)
}

func TestParseSpecialDays(t *testing.T) {
	text := "2024-06-06,krank\n" +
		" 2024-06-07 , Urlaub \n" +
		"garbage line\n" +
		"not-a-date,krank\n" +
		"2024-06-08,\n"

	specialDays := ParseSpecialDays(text)

	assert.Equal(t, map[string]string{
		"2024-06-06": "krank",
		"2024-06-07": "Urlaub",
	}, specialDays)
}

func TestParseSpecialDays_empty(t *testing.T) {
	assert.Empty(t, ParseSpecialDays(""))
}
