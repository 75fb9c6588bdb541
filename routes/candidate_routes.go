package routes

import (
	"teccitas_server/controllers"
	"teccitas_server/services"

	"github.com/gorilla/mux"
)

// RegisterCandidateRoutes sets up the discovery route under /api/candidates
func RegisterCandidateRoutes(r *mux.Router, candidateService *services.CandidateService) {
	controller := controllers.NewCandidateController(candidateService)

	candidateRouter := r.PathPrefix("/api/candidates").Subrouter()
	candidateRouter.HandleFunc("/{userId}", controller.HandleDiscover).Methods("GET")
}
