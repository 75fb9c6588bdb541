package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"teccitas_server/services"

	"github.com/gorilla/mux"
)

// CandidateController serves the swipe queue.
type CandidateController struct {
	CandidateService *services.CandidateService
}

// NewCandidateController initializes the controller
func NewCandidateController(candidateService *services.CandidateService) *CandidateController {
	return &CandidateController{CandidateService: candidateService}
}

// HandleDiscover - returns the filtered candidate queue for a user.
func (c *CandidateController) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	candidates, err := c.CandidateService.Discover(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileIncomplete):
			http.Error(w, `{"error": "Complete profile setup before discovering candidates"}`, http.StatusPreconditionFailed)
		case errors.Is(err, services.ErrDocumentNotFound):
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
		default:
			log.Printf("❌ Discover failed for '%s': %v", userID, err)
			http.Error(w, `{"error": "Failed to fetch candidates"}`, http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidates)
}
