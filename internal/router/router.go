package router

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/saurabhkjha/studymaterial-backend/internal/auth"
	"github.com/saurabhkjha/studymaterial-backend/internal/engagement"
	"github.com/saurabhkjha/studymaterial-backend/internal/handlers"
	"github.com/saurabhkjha/studymaterial-backend/internal/middleware"
	"github.com/saurabhkjha/studymaterial-backend/internal/repositories"
	"github.com/saurabhkjha/studymaterial-backend/internal/slugs"
	"github.com/saurabhkjha/studymaterial-backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	// View dedup keys on the client IP, so resolve it the same way behind a
	// proxy as when directly exposed.
	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("studymaterial"))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, mgClient *mongo.Client, verifier *auth.Verifier, loginLimiter *auth.LoginLimiter) {
	db := mgClient.Database(cfg.MongoDB)

	// --- Initialize repositories ---
	materialRepo := repositories.NewMongoMaterialRepository(db)
	postRepo := repositories.NewMongoPostRepository(db)
	viewLogRepo := repositories.NewViewLogRepository(db)

	// The indexes carry the invariants (unique slugs, view dedup, TTL
	// expiry), so refuse to start without them.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create post indexes: %v", err)
	}
	if err := viewLogRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create view log indexes: %v", err)
	}
	log.Println("MongoDB indexes ensured for all collections.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "StudyMaterial API"})
	})
	e.GET("/metrics", echoprometheus.NewHandler())

	assigner := slugs.NewAssigner(postRepo)
	tracker := engagement.NewTracker(materialRepo, postRepo, viewLogRepo)

	// --- Public routes ---
	public := e.Group("")

	authHandler := handlers.NewAuthHandler(verifier, loginLimiter)
	authHandler.RegisterAuthRoutes(public)
	log.Println("Auth routes configured.")

	materialHandler := handlers.NewMaterialHandler(materialRepo)
	materialHandler.RegisterPublicRoutes(public)

	postHandler := handlers.NewPostHandler(postRepo, viewLogRepo, assigner)
	postHandler.RegisterPublicRoutes(public)

	engagementHandler := handlers.NewEngagementHandler(tracker)
	engagementHandler.RegisterEngagementRoutes(public)

	sitemapHandler := handlers.NewSitemapHandler(postRepo, cfg.SiteURL)
	sitemapHandler.RegisterSitemapRoutes(public)
	log.Println("Public routes configured.")

	// --- Admin routes (require JWT authentication) ---
	admin := e.Group("", middleware.JWTAuth(verifier))
	materialHandler.RegisterAdminRoutes(admin)
	postHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured with JWT authentication.")

	log.Println("All routes configured.")
}
