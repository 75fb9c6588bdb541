package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"teccitas_server/models"
	"teccitas_server/services"

	"github.com/gorilla/mux"
)

// ProfileController handles requests related to user profiles
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// CreateProfile handles profile creation at the end of the setup flow.
func (c *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	created, err := c.ProfileService.CreateProfile(r.Context(), profile)
	if err != nil {
		if errors.Is(err, services.ErrProfileIncomplete) {
			http.Error(w, `{"error": "gender and interestedIn are required"}`, http.StatusBadRequest)
			return
		}
		log.Printf("❌ Failed to create profile: %v", err)
		http.Error(w, `{"error": "Failed to create profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(created)
}

// GetProfile handles fetching a profile by user id.
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to fetch profile '%s': %v", userID, err)
		http.Error(w, `{"error": "Failed to fetch profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// UpdateProfile applies a partial update to a profile.
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	profile, err := c.ProfileService.UpdateProfile(r.Context(), userID, updates)
	if err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to update profile '%s': %v", userID, err)
		http.Error(w, `{"error": "Failed to update profile"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// RegisterPushToken stores the device push token for a user.
func (c *ProfileController) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var request struct {
		PushToken string `json:"pushToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}
	if request.PushToken == "" {
		http.Error(w, `{"error": "pushToken is required"}`, http.StatusBadRequest)
		return
	}

	if err := c.ProfileService.RegisterPushToken(r.Context(), userID, request.PushToken); err != nil {
		if errors.Is(err, services.ErrDocumentNotFound) {
			http.Error(w, `{"error": "Profile not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("❌ Failed to register push token for '%s': %v", userID, err)
		http.Error(w, `{"error": "Failed to register push token"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

// DeleteProfile removes the account and everything it owns.
func (c *ProfileController) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := c.ProfileService.DeleteAccount(r.Context(), userID); err != nil {
		log.Printf("❌ Failed to delete account '%s': %v", userID, err)
		http.Error(w, `{"error": "Failed to delete account"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Account deleted"})
}
