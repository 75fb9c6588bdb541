package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"teccitas_server/services"
)

// SwipeController records like/dislike decisions and reports match outcomes.
type SwipeController struct {
	MatchService   *services.MatchService
	ProfileService *services.ProfileService
}

// NewSwipeController initializes the controller
func NewSwipeController(matchService *services.MatchService, profileService *services.ProfileService) *SwipeController {
	return &SwipeController{MatchService: matchService, ProfileService: profileService}
}

// HandleSwipe - records one swipe decision. The response tells the client
// whether this swipe completed a match so it can show the match screen.
func (c *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ActorID  string `json:"actorId"`
		TargetID string `json:"targetId"`
		Action   string `json:"action"` // like, dislike
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.ActorID == "" || request.TargetID == "" || request.Action == "" {
		http.Error(w, `{"error": "actorId, targetId and action are required"}`, http.StatusBadRequest)
		return
	}

	actor, err := c.ProfileService.GetProfile(r.Context(), request.ActorID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			http.Error(w, `{"error": "Actor profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to load actor '%s': %v", request.ActorID, err)
		http.Error(w, `{"error": "Failed to load actor profile"}`, http.StatusInternalServerError)
		return
	}

	target, err := c.ProfileService.GetProfile(r.Context(), request.TargetID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			http.Error(w, `{"error": "Target profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to load target '%s': %v", request.TargetID, err)
		http.Error(w, `{"error": "Failed to load target profile"}`, http.StatusInternalServerError)
		return
	}

	outcome, err := c.MatchService.RecordSwipe(r.Context(), *actor, *target, request.Action)
	if err != nil {
		log.Printf("❌ Swipe failed (%s -> %s): %v", request.ActorID, request.TargetID, err)
		http.Error(w, `{"error": "Failed to record swipe"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(outcome)
}
