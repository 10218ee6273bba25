package router

import (
	"github.com/akarpov/litepost/backend/internal/cache"
	"github.com/akarpov/litepost/backend/internal/handlers"
	"github.com/akarpov/litepost/backend/internal/middleware"
	"github.com/akarpov/litepost/backend/internal/models"
	"github.com/akarpov/litepost/backend/internal/repositories"
	"github.com/akarpov/litepost/backend/internal/storage"
	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware: panic recovery,
// CORS and the scs session layer every request passes through.
func SetupMiddleware(e *echo.Echo, sessions *scs.SessionManager) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(echo.WrapMiddleware(sessions.LoadAndSave))
}

// SetupRoutes runs migrations, wires repositories into handlers and
// registers all application routes.
func SetupRoutes(e *echo.Echo, db *gorm.DB, pageCache *cache.PageCache, sessions *scs.SessionManager, images *storage.ImageStore, logger *zap.SugaredLogger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		return err
	}
	logger.Info("database migrations completed")

	e.GET("/health", handlers.HealthCheck)
	e.Static("/media", images.Dir())

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	// Every route sees the session-resolved current user; the protected
	// group additionally redirects anonymous requests to login.
	public := e.Group("", middleware.CurrentUser(sessions, userRepo))
	protected := e.Group("", middleware.CurrentUser(sessions, userRepo), middleware.RequireAuth())

	authGroup := e.Group("/auth")
	authHandler := handlers.NewAuthHandler(userRepo, sessions, logger)
	authHandler.RegisterAuthRoutes(authGroup)

	feedHandler := handlers.NewFeedHandler(postRepo, groupRepo, pageCache, logger)
	feedHandler.RegisterFeedRoutes(public, protected)

	postHandler := handlers.NewPostHandler(postRepo, groupRepo, commentRepo, images, logger)
	postHandler.RegisterPostRoutes(public, protected)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, logger)
	commentHandler.RegisterCommentRoutes(protected)

	profileHandler := handlers.NewProfileHandler(userRepo, postRepo, followRepo, logger)
	profileHandler.RegisterProfileRoutes(public)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, logger)
	followHandler.RegisterFollowRoutes(protected)

	groupHandler := handlers.NewGroupHandler(groupRepo, logger)
	groupHandler.RegisterGroupRoutes(protected)

	logger.Info("all routes configured")
	return nil
}
