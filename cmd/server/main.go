package main

import (
	"log"

	"github.com/akarpov/litepost/backend/internal/cache"
	applog "github.com/akarpov/litepost/backend/internal/log"
	"github.com/akarpov/litepost/backend/internal/router"
	"github.com/akarpov/litepost/backend/internal/storage"
	"github.com/akarpov/litepost/backend/pkg/config"
	"github.com/akarpov/litepost/backend/validators"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := applog.NewSugar(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		logger.Fatalw("failed to initialize database", "error", err)
	}
	defer config.CloseDB(db)
	logger.Info("connected to PostgreSQL")

	// Home feed page cache; runs disabled if Redis is unreachable
	pageCache := cache.NewPageCache(cfg.RedisAddr, cfg.CacheTTL, logger)
	defer pageCache.Close()

	// Media storage for post images
	images, err := storage.NewImageStore(cfg.MediaDir)
	if err != nil {
		logger.Fatalw("failed to initialize media storage", "error", err)
	}

	// Cookie sessions
	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e, sessions)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db, pageCache, sessions, images, logger); err != nil {
		logger.Fatalw("failed to set up routes", "error", err)
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
