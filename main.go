// File: /main.go
package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"alumninet-api/config"
	"alumninet-api/database"
	"alumninet-api/middleware"
	"alumninet-api/routes"
	"alumninet-api/services"
	"alumninet-api/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed the bootstrap admin account if configured
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if !utils.IsValidEmail(cfg.AdminEmail) {
			log.Fatal("ADMIN_EMAIL is not a valid email address")
		}
		if !utils.IsValidPassword(cfg.AdminPassword) {
			log.Fatal("ADMIN_PASSWORD must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash admin password:", err)
		}
		if err := database.SeedAdmin(db, cfg.AdminEmail, string(hash)); err != nil {
			log.Printf("Warning: Failed to seed admin account: %v", err)
		}
	}

	// Email service
	emailService := services.NewEmailService(cfg)

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security headers
	router.Use(middleware.SecurityHeaders())

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Start server
	log.Printf("Starting Alumni Network API server on port %s", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
