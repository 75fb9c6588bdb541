package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"teccitas_server/services"

	"github.com/gorilla/mux"
)

// MatchController serves the matches list and single match lookups.
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the controller
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleListMatches - lists a user's matches, most recent activity first.
func (c *MatchController) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	matches, err := c.MatchService.ListMatches(r.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to list matches for '%s': %v", userID, err)
		http.Error(w, `{"error": "Failed to fetch matches"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}

// HandleGetMatch - fetches one match record by id.
func (c *MatchController) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := mux.Vars(r)["matchId"]

	match, err := c.MatchService.GetMatch(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			http.Error(w, `{"error": "Match not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to fetch match '%s': %v", matchID, err)
		http.Error(w, `{"error": "Failed to fetch match"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(match)
}
