package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fahrzeit/fahrzeit/internal/rest"
	"github.com/fahrzeit/fahrzeit/internal/utils"
	"github.com/fahrzeit/fahrzeit/pkg/rideimport"
	"github.com/fahrzeit/fahrzeit/pkg/timesheet"
	log "github.com/sirupsen/logrus"
)

const maxUploadBytes = 32 << 20

type DayRecordDTO struct {
	Date         string  `json:"date"`
	Weekday      string  `json:"weekday"`
	WorkHours    float64 `json:"workHours"`
	BreakHours   float64 `json:"breakHours"`
	NightHours   float64 `json:"nightHours"`
	SundayHours  float64 `json:"sundayHours"`
	HolidayHours float64 `json:"holidayHours"`
	IsWeekend    bool    `json:"isWeekend"`
	IsHoliday    bool    `json:"isHoliday"`
	HolidayName  string  `json:"holidayName,omitempty"`
	Status       string  `json:"status,omitempty"`
}

type DriverMonthLedgerDTO struct {
	DriverName        string         `json:"driverName"`
	Days              []DayRecordDTO `json:"days"`
	TotalWorkHours    float64        `json:"totalWorkHours"`
	TotalBreakHours   float64        `json:"totalBreakHours"`
	TotalNightHours   float64        `json:"totalNightHours"`
	TotalSundayHours  float64        `json:"totalSundayHours"`
	TotalHolidayHours float64        `json:"totalHolidayHours"`
	MealAllowance     int            `json:"mealAllowance"`
}

type DroppedRideDTO struct {
	DriverName string `json:"driverName"`
	Date       string `json:"date,omitempty"`
	Raw        string `json:"raw"`
	Reason     string `json:"reason"`
}

type MonthReportDTO struct {
	Month        string                          `json:"month"`
	Ledgers      map[string]DriverMonthLedgerDTO `json:"ledgers"`
	DroppedRides []DroppedRideDTO                `json:"droppedRides"`
}

type Handler struct {
	service  Service
	renderer LedgerRenderer
	defaults timesheet.Config
	clock    utils.Clock
}

// NewHandler builds the report handler. defaults carries the configured engine
// thresholds; individual form fields can still override them per request. The
// clock decides which month is reported when the request names none.
func NewHandler(service Service, renderer LedgerRenderer, defaults timesheet.Config, clock utils.Clock) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		defaults: defaults,
		clock:    clock,
	}
}

// GenerateReport accepts a multipart upload (rideLog sheet, optional roster
// sheet) plus form fields month=YYYY-MM, includeInactive and specialDays, and
// responds with the computed month ledgers as JSON, or CSV when requested via
// the Accept header. Without a month field the previous calendar month is
// reported.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request", err.Error())
		return
	}

	rideLog, _, err := r.FormFile("rideLog")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing ride log upload", "a rideLog file part is required")
		return
	}
	defer rideLog.Close()

	req := GenerateRequest{
		RideLog:         rideLog,
		IncludeInactive: r.FormValue("includeInactive") == "true",
		SpecialDays:     r.FormValue("specialDays"),
		Config:          h.engineConfig(r),
	}

	if roster, _, err := r.FormFile("roster"); err == nil {
		defer roster.Close()
		req.Roster = roster
	}

	req.Year, req.Month, err = h.reportMonth(r.FormValue("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month format", "month must be formatted as YYYY-MM")
		return
	}

	result, err := h.service.GenerateMonth(r.Context(), req)
	if err != nil {
		var schemaErr *rideimport.SchemaError
		var configErr *timesheet.ConfigError
		if errors.As(err, &schemaErr) || errors.As(err, &configErr) {
			writeError(w, http.StatusBadRequest, "Could not process upload", err.Error())
			return
		}
		log.Errorf("failed to generate report: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderReport(result)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toReportDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RecalculateTotals recomputes the totals and meal allowance of a ledger whose
// day records were edited by a reviewer. Day fields are taken as-is.
func (h *Handler) RecalculateTotals(w http.ResponseWriter, r *http.Request) {
	var dto DriverMonthLedgerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	ledger, err := fromLedgerDTO(dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day record", err.Error())
		return
	}

	recalculated := h.service.RecalculateTotals(ledger)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toLedgerDTO(recalculated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// reportMonth parses "YYYY-MM", defaulting to the month before the current
// one: payroll runs after a month has closed.
func (h *Handler) reportMonth(raw string) (int, time.Month, error) {
	if raw == "" {
		previous := h.clock.Now().AddDate(0, -1, 0)
		return previous.Year(), previous.Month(), nil
	}
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		return 0, 0, err
	}
	return parsed.Year(), parsed.Month(), nil
}

func (h *Handler) engineConfig(r *http.Request) timesheet.Config {
	cfg := h.defaults
	if v, err := formInt(r, "mergeGapMinutes"); err == nil {
		cfg.MergeGapMinutes = v
	}
	if v, err := formInt(r, "breakMinGapMinutes"); err == nil {
		cfg.BreakMinGapMinutes = v
	}
	if v, err := formInt(r, "breakCapMinutes"); err == nil {
		cfg.BreakCapMinutes = v
	}
	return cfg
}

func formInt(r *http.Request, key string) (int, error) {
	value := r.FormValue(key)
	if value == "" {
		return 0, errors.New("not set")
	}
	return strconv.Atoi(value)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toReportDTO(report *MonthReport) MonthReportDTO {
	ledgers := make(map[string]DriverMonthLedgerDTO, len(report.Ledgers))
	for name, ledger := range report.Ledgers {
		ledgers[name] = toLedgerDTO(ledger)
	}

	dropped := make([]DroppedRideDTO, 0, len(report.Dropped))
	for _, d := range report.Dropped {
		dto := DroppedRideDTO{DriverName: d.DriverName, Raw: d.Raw, Reason: d.Reason}
		if !d.Date.IsZero() {
			dto.Date = d.Date.Format("2006-01-02")
		}
		dropped = append(dropped, dto)
	}

	return MonthReportDTO{
		Month:        time.Date(report.Year, report.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
		Ledgers:      ledgers,
		DroppedRides: dropped,
	}
}

func toLedgerDTO(ledger *timesheet.DriverMonthLedger) DriverMonthLedgerDTO {
	days := make([]DayRecordDTO, 0, len(ledger.Days))
	for _, day := range ledger.Days {
		days = append(days, DayRecordDTO{
			Date:         day.Date.Format("2006-01-02"),
			Weekday:      day.Weekday,
			WorkHours:    day.WorkHours,
			BreakHours:   day.BreakHours,
			NightHours:   day.NightHours,
			SundayHours:  day.SundayHours,
			HolidayHours: day.HolidayHours,
			IsWeekend:    day.IsWeekend,
			IsHoliday:    day.IsHoliday,
			HolidayName:  day.HolidayName,
			Status:       day.Status,
		})
	}
	return DriverMonthLedgerDTO{
		DriverName:        ledger.DriverName,
		Days:              days,
		TotalWorkHours:    ledger.TotalWorkHours,
		TotalBreakHours:   ledger.TotalBreakHours,
		TotalNightHours:   ledger.TotalNightHours,
		TotalSundayHours:  ledger.TotalSundayHours,
		TotalHolidayHours: ledger.TotalHolidayHours,
		MealAllowance:     ledger.MealAllowance,
	}
}

func fromLedgerDTO(dto DriverMonthLedgerDTO) (*timesheet.DriverMonthLedger, error) {
	ledger := &timesheet.DriverMonthLedger{
		DriverName:        dto.DriverName,
		TotalWorkHours:    dto.TotalWorkHours,
		TotalBreakHours:   dto.TotalBreakHours,
		TotalNightHours:   dto.TotalNightHours,
		TotalSundayHours:  dto.TotalSundayHours,
		TotalHolidayHours: dto.TotalHolidayHours,
		MealAllowance:     dto.MealAllowance,
	}
	for _, day := range dto.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return nil, err
		}
		ledger.Days = append(ledger.Days, timesheet.DayRecord{
			Date:         date,
			Weekday:      day.Weekday,
			WorkHours:    day.WorkHours,
			BreakHours:   day.BreakHours,
			NightHours:   day.NightHours,
			SundayHours:  day.SundayHours,
			HolidayHours: day.HolidayHours,
			IsWeekend:    day.IsWeekend,
			IsHoliday:    day.IsHoliday,
			HolidayName:  day.HolidayName,
			Status:       day.Status,
		})
	}
	return ledger, nil
}
