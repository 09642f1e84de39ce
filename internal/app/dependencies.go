package app

import (
	"context"
	"database/sql"

	"github.com/fahrzeit/fahrzeit/internal/config"
	"github.com/fahrzeit/fahrzeit/internal/utils"
	"github.com/fahrzeit/fahrzeit/pkg/driver"
	"github.com/fahrzeit/fahrzeit/pkg/holiday"
	"github.com/fahrzeit/fahrzeit/pkg/report"
	"github.com/fahrzeit/fahrzeit/pkg/timesheet"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	DriverRepo    driver.Repo
	DriverService driver.Service
	DriverHandler *driver.Handler

	HolidayCalendar holiday.Calendar

	ReportService     report.Service
	CsvLedgerRenderer *report.CsvLedgerRendererImpl
	ReportHandler     *report.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.DriverRepo = driver.NewRepo(db)
	deps.DriverService = driver.NewService(deps.DriverRepo)
	deps.DriverHandler = driver.NewHandler(deps.DriverService)

	calendar, err := buildHolidayCalendar(cfg.Holidays)
	if err != nil {
		return nil, err
	}
	deps.HolidayCalendar = calendar

	deps.Clock = &utils.SystemClock{}

	deps.ReportService = report.NewService(deps.DriverService, deps.HolidayCalendar)
	deps.CsvLedgerRenderer = report.NewCsvLedgerRenderer()
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.CsvLedgerRenderer, timesheet.Config{
		MergeGapMinutes:    cfg.Engine.MergeGapMinutes,
		BreakMinGapMinutes: cfg.Engine.BreakMinGapMinutes,
		BreakCapMinutes:    cfg.Engine.BreakCapMinutes,
	}, deps.Clock)

	return deps, nil
}

// buildHolidayCalendar prefers the Google Calendar feed when an API key is
// configured and falls back to the built-in German state calendar.
func buildHolidayCalendar(cfg config.Holidays) (holiday.Calendar, error) {
	if cfg.GoogleApiKey != "" {
		calendarId := cfg.GoogleCalendarId
		if calendarId == "" {
			calendarId = holiday.DefaultGoogleCalendarID
		}
		log.Infof("Using Google Calendar holiday feed: %s", calendarId)
		return holiday.NewGoogleCalendar(context.Background(), cfg.GoogleApiKey, calendarId)
	}
	log.Infof("Using built-in German holiday calendar for region %s", cfg.Region)
	return holiday.Germany(holiday.GermanState(cfg.Region)), nil
}
