package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"teccitas_server/services"
)

// PhotoController hands out presigned URLs for profile photos.
type PhotoController struct {
	PhotoService *services.PhotoService
}

// NewPhotoController initializes the controller
func NewPhotoController(photoService *services.PhotoService) *PhotoController {
	return &PhotoController{PhotoService: photoService}
}

// HandleUploadURL - returns a presigned upload URL and the object key.
func (c *PhotoController) HandleUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		http.Error(w, `{"error": "fileName and fileType are required"}`, http.StatusBadRequest)
		return
	}

	url, key, err := c.PhotoService.GenerateUploadURL(fileName, fileType)
	if err != nil {
		log.Printf("❌ Failed to presign upload URL: %v", err)
		http.Error(w, `{"error": "Failed to generate upload URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"uploadUrl": url, "key": key})
}

// HandleReadURL - returns a presigned read URL for a stored photo.
func (c *PhotoController) HandleReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, `{"error": "key is required"}`, http.StatusBadRequest)
		return
	}

	url, err := c.PhotoService.GenerateReadURL(key)
	if err != nil {
		log.Printf("❌ Failed to presign read URL: %v", err)
		http.Error(w, `{"error": "Failed to generate read URL"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"readUrl": url})
}
