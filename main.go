package main

import (
	"context"
	"log"
	"os"
	"strings"

	"omninote-api/gemini"
	"omninote-api/handlers"
	"omninote-api/initializers"
	"omninote-api/pkg/notify"
	"omninote-api/repository"
	"omninote-api/storage"
	"omninote-api/websocket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; env vars win in production.
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "omninote.db"
	}

	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := storage.Open(dataPath)
	if err != nil {
		log.Fatal("Could not open database:", err)
	}
	defer db.Close()

	adapter := storage.NewAdapter(db)
	notes, tasks, reminders, err := adapter.Load()
	if err != nil {
		log.Fatal("Could not load application state:", err)
	}
	store := repository.NewStore(adapter, notes, tasks, reminders)

	ai, err := gemini.NewClient(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatal("Could not initialize AI client:", err)
	}

	if err := initializers.InitUploads(); err != nil {
		log.Fatal("Could not load upload policy:", err)
	}

	// WebSocket hub and change feed notifier
	hub := websocket.NewHub()
	notifier := &notify.WSNotifier{Hub: hub}

	r := handlers.NewRouter(store, ai, notifier, hub)

	// Configure trusted proxies for correct client IP handling in production
	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		// Default to loopback only; override via TRUSTED_PROXIES in production
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
