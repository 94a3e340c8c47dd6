package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/socially/backend/internal/router"
	"github.com/socially/backend/internal/validators"
	"github.com/socially/backend/internal/views"
	"github.com/socially/backend/pkg/config"
	"github.com/socially/backend/pkg/firebase"
)

func main() {
	// Load configuration
	config.LoadEnv()
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase (optional)
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Read model invalidation over Redis when configured
	var invalidator views.Invalidator = views.Noop{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		invalidator = views.NewRedisInvalidator(redisClient, logger)
		log.Println("Successfully connected to Redis!")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	var authClient *auth.Client
	if firebaseApp != nil {
		authClient = firebaseApp.AuthClient
	}
	router.SetupRoutes(e, db.Postgres, authClient, invalidator, cfg.JWTSecret, logger)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
