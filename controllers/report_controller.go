package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"teccitas_server/services"
)

// ReportController handles report submissions.
type ReportController struct {
	ReportService *services.ReportService
}

// NewReportController initializes the controller
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// HandleSubmitReport - stores a report and optionally blocks the reported
// user for the reporter.
func (c *ReportController) HandleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var input services.ReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if input.ReporterID == "" || input.ReportedUserID == "" || input.Reason == "" {
		http.Error(w, `{"error": "reporterId, reportedUserId and reason are required"}`, http.StatusBadRequest)
		return
	}

	report, err := c.ReportService.SubmitReport(r.Context(), input)
	if err != nil {
		log.Printf("❌ Failed to submit report: %v", err)
		http.Error(w, `{"error": "Failed to submit report"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
