package routes

import (
	"teccitas_server/controllers"
	"teccitas_server/services"

	"github.com/gorilla/mux"
)

// RegisterPhotoRoutes sets up presigned-URL routes under /api/photos
func RegisterPhotoRoutes(r *mux.Router, photoService *services.PhotoService) {
	controller := controllers.NewPhotoController(photoService)

	photoRouter := r.PathPrefix("/api/photos").Subrouter()
	photoRouter.HandleFunc("/upload-url", controller.HandleUploadURL).Methods("GET")
	photoRouter.HandleFunc("/read-url", controller.HandleReadURL).Methods("GET")
}
