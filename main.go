package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"marketing-mailer/auth"
	"marketing-mailer/config"
	"marketing-mailer/database"
	"marketing-mailer/handlers"
	"marketing-mailer/services"
)

func main() {
	// Load configuration from .env
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	// Initialize database connection
	db, err := database.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	// Apply database migrations
	migrationsPath := filepath.Join(".", "database", "migrations")
	if err := database.ApplyMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("Error applying database migrations: %v", err)
	}
	log.Println("Database migrations applied successfully.")

	// Stores and services
	contacts := database.NewContactStore(db)
	campaigns := database.NewCampaignStore(db)

	template, err := services.NewBrandTemplate()
	if err != nil {
		log.Fatalf("Error parsing brand template: %v", err)
	}
	resolver := services.NewResolver(contacts)
	sender := services.NewSMTPSender(cfg)
	mailService := services.NewMailService(cfg, resolver, template, sender, campaigns)

	gate := auth.NewGate(cfg.AdminEmail, cfg.AdminPassword,
		time.Duration(cfg.SessionMaxAge)*time.Second)
	gate.CleanupExpiredSessions()
	if !cfg.AdminConfigured() {
		log.Println("WARNING: ADMIN_EMAIL/ADMIN_PASSWORD are not set; logins will fail.")
	}
	if !cfg.MailConfigured() {
		log.Println("WARNING: MAILHUB/AUTHUSER/AUTHPASS are not set; sends will fail.")
	}

	// Set up router
	r := mux.NewRouter()
	r.Use(gate.RequireAuth)

	// Session endpoints
	r.HandleFunc("/api/auth/login", handlers.LoginHandler(gate)).Methods("POST")
	r.HandleFunc("/api/auth/me", handlers.MeHandler(gate)).Methods("GET")
	r.HandleFunc("/api/auth/logout", handlers.LogoutHandler(gate)).Methods("POST")

	// Contact directory
	r.HandleFunc("/api/contacts", handlers.GetContactsHandler(contacts)).Methods("GET")
	r.HandleFunc("/api/contacts", handlers.CreateContactHandler(contacts)).Methods("POST")
	r.HandleFunc("/api/contacts", handlers.UpdateContactHandler(contacts)).Methods("PUT")
	r.HandleFunc("/api/contacts", handlers.DeleteContactHandler(contacts)).Methods("DELETE")

	// Targeting stats, campaign dispatch and history
	r.HandleFunc("/api/stats", handlers.GetStatsHandler(contacts)).Methods("GET")
	r.HandleFunc("/api/send", handlers.SendMailHandler(mailService)).Methods("POST")
	r.HandleFunc("/api/preview", handlers.PreviewHandler(template)).Methods("POST")
	r.HandleFunc("/api/campaigns", handlers.GetCampaignsHandler(campaigns)).Methods("GET")

	r.HandleFunc("/health", handlers.HealthHandler()).Methods("GET")

	// Dashboard static files
	staticDir := "./web"
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s...", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
