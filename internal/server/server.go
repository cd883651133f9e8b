// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/featureflags"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App

	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	replyRepo  repository.ReplyRepository
	followRepo repository.FollowRepository

	featureFlags  *featureflags.Manager
	userService   *service.UserService
	postService   *service.PostService
	likeService   *service.LikeService
	followService *service.FollowService
	feedService   *service.FeedService
	searchService *service.SearchService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:       cfg,
		db:           db,
		redis:        redisClient,
		userRepo:     repository.NewUserRepository(db),
		postRepo:     repository.NewPostRepository(db),
		replyRepo:    repository.NewReplyRepository(db),
		followRepo:   repository.NewFollowRepository(db),
		featureFlags: featureflags.NewManager(cfg.FeatureFlags),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.postService = service.NewPostService(server.postRepo, server.replyRepo)
	server.likeService = service.NewLikeService(server.postRepo)
	server.followService = service.NewFollowService(server.followRepo, server.userRepo)
	server.feedService = service.NewFeedService(
		server.postRepo, server.followRepo, server.userRepo, server.replyRepo, server.featureFlags)
	server.searchService = service.NewSearchService(server.userRepo, server.postRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing (before context middleware so trace IDs propagate)
	app.Use(middleware.TracingMiddleware())

	// Context middleware to propagate request ID, identity and trace ID
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware runs before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on
	// error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they are handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	middleware.InitMetrics(app)

	// Identity provider webhook (HMAC-verified, not bearer-authenticated)
	api.Post("/webhooks/identity", s.IdentityWebhook)

	// Public reads with optional viewer annotation
	api.Get("/feed", middleware.OptionalAuth, s.GetHomeFeed)
	api.Get("/search", middleware.OptionalAuth, middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.Search)
	api.Get("/feature-flags", middleware.OptionalAuth, s.GetFeatureFlags)

	posts := api.Group("/posts")
	posts.Get("/:id/replies", s.GetReplies)
	posts.Get("/:id", middleware.OptionalAuth, s.GetPost)

	// Protected routes
	posts.Post("/", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Post("/:id/like", middleware.AuthRequired, s.ToggleLike)
	posts.Post("/:id/replies", middleware.AuthRequired, middleware.RateLimit(
		s.redis, 20, 5*time.Minute, "create_reply"), s.CreateReply)
	posts.Delete("/:id", middleware.AuthRequired, s.DeletePost)

	replies := api.Group("/replies")
	replies.Delete("/:id", middleware.AuthRequired, s.DeleteReply)

	// User routes. Specific /:x/:resource routes come BEFORE the generic
	// /:externalId lookup.
	users := api.Group("/users")
	users.Get("/:username/posts", middleware.OptionalAuth, s.GetProfileFeed)
	users.Post("/:id/follow", middleware.AuthRequired, s.ToggleFollow)
	users.Get("/:id/follow", middleware.AuthRequired, s.GetFollowState)
	users.Get("/:id/follow-stats", s.GetFollowStats)
	users.Get("/:externalId", middleware.AuthRequired, s.GetUserByExternalID)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is an optional accelerator; readiness only reports it.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Ripple API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewStoreError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
