package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"teccitas_server/routes"
	"teccitas_server/services"
	"teccitas_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	store := newDocumentStore()

	notifier := services.NewExpoNotifier()
	hub := socket.NewHub()

	// Initialize Services
	profileService := &services.ProfileService{Store: store}
	candidateService := &services.CandidateService{Store: store}
	matchService := &services.MatchService{Store: store, Notifier: notifier}
	chatService := &services.ChatService{Store: store, Notifier: notifier, Broadcaster: hub}
	reportService := &services.ReportService{Store: store}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to TecCitas")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterCandidateRoutes(r, candidateService)
	routes.RegisterSwipeRoutes(r, matchService, profileService)
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterReportRoutes(r, reportService)
	registerPhotoRoutes(r)

	// Realtime chat hub
	go func() {
		if err := hub.Server.Serve(); err != nil {
			log.Printf("❌ Socket server error: %v", err)
		}
	}()
	defer hub.Server.Close()
	r.Handle("/socket.io/", hub.Server)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

// newDocumentStore picks the storage backend: DynamoDB by default, the
// in-memory store with STORE_BACKEND=memory for local development.
func newDocumentStore() services.DocumentStore {
	if os.Getenv("STORE_BACKEND") == "memory" {
		log.Println("Using in-memory document store")
		return services.NewMemoryStore()
	}

	log.Println("Initializing DynamoDB client...")
	client := services.InitializeDynamoDBClient()
	store := services.NewDynamoStore(client)
	log.Printf("DynamoDB document store ready (table %s)", store.Table)
	return store
}

// registerPhotoRoutes wires the photo endpoints when S3 is configured;
// without a bucket the service runs fine minus photo uploads.
func registerPhotoRoutes(r *mux.Router) {
	if os.Getenv("S3_BUCKET_NAME") == "" {
		log.Println("S3_BUCKET_NAME not set, photo routes disabled")
		return
	}
	photoService, err := services.NewPhotoService()
	if err != nil {
		log.Printf("❌ Failed to initialize photo service: %v", err)
		return
	}
	routes.RegisterPhotoRoutes(r, photoService)
}
