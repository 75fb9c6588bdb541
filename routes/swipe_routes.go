package routes

import (
	"teccitas_server/controllers"
	"teccitas_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swipe decisions under /api/swipes
func RegisterSwipeRoutes(r *mux.Router, matchService *services.MatchService, profileService *services.ProfileService) {
	controller := controllers.NewSwipeController(matchService, profileService)

	swipeRouter := r.PathPrefix("/api/swipes").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleSwipe).Methods("POST")
}
