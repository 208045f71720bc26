package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/boardhq/board/internal/feed"
	"github.com/boardhq/board/internal/handlers"
	"github.com/boardhq/board/internal/middleware"
	"github.com/boardhq/board/internal/models"
	"github.com/boardhq/board/internal/repositories"
	"github.com/boardhq/board/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, cfg *config.Config, log *zap.Logger) error {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.Topic{},
		&models.Reply{},
	)
	if err != nil {
		return err
	}
	log.Info("PostgreSQL auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", "uploads")

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	topicRepo := repositories.NewPostgresTopicRepository(pgdb)
	replyRepo := repositories.NewPostgresReplyRepository(pgdb)

	composer := feed.NewComposer(postRepo, followRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Public routes: anonymous viewers allowed, sessions recognized ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo, postRepo, commentRepo, likeRepo, followRepo, replyRepo, cfg.AvatarDir)
	userHandler.RegisterPublicRoutes(public)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, commentRepo, likeRepo, followRepo, composer)
	postHandler.RegisterPublicRoutes(public)

	feedHandler := handlers.NewFeedHandler(composer, userRepo, likeRepo, commentRepo)
	feedHandler.RegisterDiscoverRoutes(public)

	topicHandler := handlers.NewTopicHandler(topicRepo, replyRepo, userRepo)
	topicHandler.RegisterPublicRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))

	userHandler.RegisterProfileRoutes(api)
	postHandler.RegisterPostRoutes(api)
	feedHandler.RegisterHomeFeedRoutes(api)
	topicHandler.RegisterTopicRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo)
	likeHandler.RegisterLikeRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)

	log.Info("all routes configured")
	return nil
}
