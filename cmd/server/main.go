package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/saurabhkjha/studymaterial-backend/internal/auth"
	"github.com/saurabhkjha/studymaterial-backend/internal/router"
	"github.com/saurabhkjha/studymaterial-backend/pkg/config"
	"github.com/saurabhkjha/studymaterial-backend/validators"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := config.InitDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Credential verifier; the admin password is hashed once, here.
	verifier, err := auth.NewVerifier(cfg.AdminEmail, cfg.AdminPassword, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize credential verifier: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loginLimiter := auth.NewLoginLimiter(ctx, 10, 5)

	// Create Echo instance
	e := echo.New()

	// Expose error detail only outside production
	e.Debug = !cfg.IsProduction()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Mongo, verifier, loginLimiter)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
