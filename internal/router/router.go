package router

import (
	"log"
	"log/slog"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/socially/backend/internal/handlers"
	"github.com/socially/backend/internal/middleware"
	"github.com/socially/backend/internal/models"
	"github.com/socially/backend/internal/repositories"
	"github.com/socially/backend/internal/services"
	"github.com/socially/backend/internal/views"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	db *gorm.DB,
	firebaseAuthClient *auth.Client,
	invalidator views.Invalidator,
	jwtSecret string,
	logger *slog.Logger,
) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Store and services ---
	store := repositories.NewGormStore(db)
	repos := store.Repos()

	toggleService := services.NewToggleService(store, invalidator, logger)
	interactionService := services.NewInteractionService(store, invalidator, logger)
	feedService := services.NewFeedService(store, logger)
	notificationService := services.NewNotificationService(store, logger)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(repos.Users, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Routes with actor resolution ---
	// The resolver never rejects a request: anonymous callers reach the
	// handlers with actor id 0 and write operations degrade to their
	// unauthenticated no-op result.
	api := e.Group("/api/v1")
	api.Use(middleware.ActorResolver(firebaseAuthClient, repos.Users, jwtSecret))
	log.Println("Actor resolver middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(repos.Users, repos.Follows, repos.Posts, feedService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	postHandler := handlers.NewPostHandler(interactionService, feedService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	likeHandler := handlers.NewLikeHandler(toggleService)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	followHandler := handlers.NewFollowHandler(toggleService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	commentHandler := handlers.NewCommentHandler(interactionService)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
