package app

import (
	"github.com/fahrzeit/fahrzeit/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Driver roster
	r.HandleFunc("/api/driver", deps.DriverHandler.ListDrivers).Methods("GET")
	r.HandleFunc("/api/driver", deps.DriverHandler.CreateDriver).Methods("POST")
	r.HandleFunc("/api/driver/{driverId}", deps.DriverHandler.GetDriver).Methods("GET")
	r.HandleFunc("/api/driver/{driverId}", deps.DriverHandler.UpdateDriver).Methods("PUT")
	r.HandleFunc("/api/driver/{driverId}/status", deps.DriverHandler.ToggleDriverStatus).Methods("PATCH")
	r.HandleFunc("/api/driver/{driverId}", deps.DriverHandler.DeleteDriver).Methods("DELETE")

	// Month reports
	r.HandleFunc("/api/report", deps.ReportHandler.GenerateReport).Methods("POST")
	r.HandleFunc("/api/report/totals", deps.ReportHandler.RecalculateTotals).Methods("POST")
}
