package router

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/anonto42/snapgram/backend/internal/accounts"
	"github.com/anonto42/snapgram/backend/internal/facade"
	"github.com/anonto42/snapgram/backend/internal/handlers"
	"github.com/anonto42/snapgram/backend/internal/middleware"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/internal/storage"
	"github.com/anonto42/snapgram/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, blobs storage.BlobStore, cfg *config.Config) {
	// AutoMigrate the account service tables
	if err := pgdb.AutoMigrate(
		&models.Account{},
		&models.Session{},
	); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize providers ---
	mongoDB := mgClient.Database(cfg.MongoDatabase)
	accountsSvc := accounts.NewGormService(pgdb, cfg.JWTSecret)
	userRepo := repositories.NewMongoUserRepository(mongoDB, cfg.UsersCollection)
	postRepo := repositories.NewMongoPostRepository(mongoDB, cfg.PostsCollection)
	savedPostRepo := repositories.NewMongoSavedPostRepository(mongoDB, cfg.SavedPostsCollection)

	if err := postRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create post indexes: %v", err)
	}
	log.Println("MongoDB indexes ensured.")

	f := facade.New(accountsSvc, userRepo, postRepo, savedPostRepo, blobs, cfg.AvatarEndpoint)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(f)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a live session) ---
	api := e.Group("/api/v1")
	api.Use(middleware.SessionAuthMiddleware(accountsSvc))
	log.Println("Session authentication middleware applied to /api/v1 group.")

	authHandler.RegisterSessionRoutes(api)

	userHandler := handlers.NewUserHandler(f)
	userHandler.RegisterUserRoutes(api)
	log.Println("User profile routes configured.")

	postHandler := handlers.NewPostHandler(f)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	savedPostHandler := handlers.NewSavedPostHandler(f)
	savedPostHandler.RegisterSavedPostRoutes(api)
	log.Println("Saved post routes configured.")

	log.Println("All routes configured.")
}
