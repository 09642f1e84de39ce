package driver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fahrzeit/fahrzeit/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DriverDTO struct {
	ID         int     `json:"id"`
	Uid        string  `json:"uid"`
	Name       string  `json:"name"`
	EmployeeID string  `json:"employeeId,omitempty"`
	Role       string  `json:"role,omitempty"`
	Contract   string  `json:"contract,omitempty"`
	Schedule   string  `json:"schedule,omitempty"`
	Pay        float64 `json:"pay,omitempty"`
	IsActive   bool    `json:"isActive"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("includeInactive") == "true"
	drivers, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]DriverDTO, 0, len(drivers))
	for _, d := range drivers {
		dtos = append(dtos, toDTO(d))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := driverID(w, r)
	if !ok {
		return
	}
	d, err := h.service.Get(r.Context(), id)
	if errors.Is(err, ErrDriverNotFound) {
		http.Error(w, "driver not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toDTO(d)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var dto DriverDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.Debugf("invalid driver payload: %v", err)
		writeBadRequest(w, "Invalid request body", err.Error())
		return
	}
	if dto.Name == "" {
		writeBadRequest(w, "Driver name is required", "")
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := driverID(w, r)
	if !ok {
		return
	}
	var dto DriverDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeBadRequest(w, "Invalid request body", err.Error())
		return
	}
	d := fromDTO(dto)
	d.ID = id
	if _, err := h.service.Update(r.Context(), d); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toDTO(d)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ToggleDriverStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := driverID(w, r)
	if !ok {
		return
	}
	d, err := h.service.ToggleActive(r.Context(), id)
	if errors.Is(err, ErrDriverNotFound) {
		http.Error(w, "driver not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(toDTO(d)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := driverID(w, r)
	if !ok {
		return
	}
	if _, err := h.service.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func driverID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["driverId"])
	if err != nil {
		writeBadRequest(w, "Invalid driver id", "driverId must be an integer")
		return 0, false
	}
	return id, true
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(d Driver) DriverDTO {
	return DriverDTO{
		ID:         d.ID,
		Uid:        d.Uid,
		Name:       d.Name,
		EmployeeID: d.EmployeeID,
		Role:       d.Role,
		Contract:   d.Contract,
		Schedule:   d.Schedule,
		Pay:        d.Pay,
		IsActive:   d.IsActive,
	}
}

func fromDTO(dto DriverDTO) Driver {
	return Driver{
		ID:         dto.ID,
		Uid:        dto.Uid,
		Name:       dto.Name,
		EmployeeID: dto.EmployeeID,
		Role:       dto.Role,
		Contract:   dto.Contract,
		Schedule:   dto.Schedule,
		Pay:        dto.Pay,
		IsActive:   dto.IsActive,
	}
}
