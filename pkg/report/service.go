package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fahrzeit/fahrzeit/pkg/driver"
	"github.com/fahrzeit/fahrzeit/pkg/holiday"
	"github.com/fahrzeit/fahrzeit/pkg/rideimport"
	"github.com/fahrzeit/fahrzeit/pkg/timesheet"
	log "github.com/sirupsen/logrus"
)

// GenerateRequest carries one month-report invocation.
type GenerateRequest struct {
	Year            int
	Month           time.Month
	IncludeInactive bool
	// RideLog is the uploaded ride-log sheet.
	RideLog io.Reader
	// Roster is the uploaded roster sheet, used only when the driver table is
	// empty.
	Roster io.Reader
	// SpecialDays holds "YYYY-MM-DD,status" lines declaring sick/vacation
	// days.
	SpecialDays string
	Config      timesheet.Config
}

// MonthReport is the computed output: one ledger per roster driver plus the
// dropped-ride audit trail.
type MonthReport struct {
	Year    int
	Month   time.Month
	Ledgers map[string]*timesheet.DriverMonthLedger
	Dropped []timesheet.DroppedRide
}

type Service interface {
	GenerateMonth(ctx context.Context, req GenerateRequest) (*MonthReport, error)
	// RecalculateTotals is the manual-edit entry point: day records edited by
	// a reviewer are authoritative, only the totals and the meal allowance
	// are re-derived.
	RecalculateTotals(ledger *timesheet.DriverMonthLedger) *timesheet.DriverMonthLedger
}

type ServiceImpl struct {
	drivers  driver.Service
	calendar holiday.Calendar
	importer *rideimport.Importer
}

func NewService(drivers driver.Service, calendar holiday.Calendar) *ServiceImpl {
	return &ServiceImpl{
		drivers:  drivers,
		calendar: calendar,
		importer: rideimport.NewImporter(),
	}
}

func (s *ServiceImpl) GenerateMonth(ctx context.Context, req GenerateRequest) (*MonthReport, error) {
	rows, droppedRows, err := s.importer.ReadRideLog(req.RideLog)
	if err != nil {
		return nil, err
	}

	roster, err := s.resolveRoster(ctx, req)
	if err != nil {
		return nil, err
	}

	if loader, ok := s.calendar.(holiday.YearLoader); ok {
		if err := loader.LoadYear(ctx, req.Year); err != nil {
			return nil, fmt.Errorf("failed to load holiday calendar: %w", err)
		}
	}

	specialDays := rideimport.ParseSpecialDays(req.SpecialDays)

	ledgers, dropped, err := timesheet.ComputeMonth(req.Year, req.Month, roster, rows, s.calendar, specialDays, req.Config)
	if err != nil {
		return nil, err
	}

	dropped = append(droppedRows, dropped...)
	if len(dropped) > 0 {
		log.Warnf("report for %d-%02d dropped %d ride(s)", req.Year, req.Month, len(dropped))
	}

	return &MonthReport{
		Year:    req.Year,
		Month:   req.Month,
		Ledgers: ledgers,
		Dropped: dropped,
	}, nil
}

func (s *ServiceImpl) RecalculateTotals(ledger *timesheet.DriverMonthLedger) *timesheet.DriverMonthLedger {
	ledger.RecomputeTotals()
	return ledger
}

// resolveRoster prefers the driver table; when it is empty the uploaded roster
// sheet decides which drivers are reported.
func (s *ServiceImpl) resolveRoster(ctx context.Context, req GenerateRequest) ([]string, error) {
	names, err := s.drivers.Names(ctx, req.IncludeInactive)
	if err != nil {
		return nil, err
	}
	if len(names) > 0 {
		return names, nil
	}
	if req.Roster == nil {
		return nil, fmt.Errorf("no drivers registered and no roster sheet provided")
	}
	log.Info("driver table is empty, using roster sheet names")
	return s.importer.ReadRoster(req.Roster)
}
