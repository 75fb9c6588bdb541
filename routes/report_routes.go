package routes

import (
	"teccitas_server/controllers"
	"teccitas_server/services"

	"github.com/gorilla/mux"
)

// RegisterReportRoutes sets up the report route under /api/reports
func RegisterReportRoutes(r *mux.Router, reportService *services.ReportService) {
	controller := controllers.NewReportController(reportService)

	reportRouter := r.PathPrefix("/api/reports").Subrouter()
	reportRouter.HandleFunc("", controller.HandleSubmitReport).Methods("POST")
}
