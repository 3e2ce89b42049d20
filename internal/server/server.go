// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillcircle/internal/ai"
	"skillcircle/internal/cache"
	"skillcircle/internal/config"
	"skillcircle/internal/database"
	"skillcircle/internal/middleware"
	"skillcircle/internal/models"
	"skillcircle/internal/repository"
	"skillcircle/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
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
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	courseRepo     repository.CourseRepository
	requestRepo    repository.CourseRequestRepository
	circleRepo     repository.CircleRepository
	messageRepo    repository.MessageRepository
	chatbotRepo    repository.ChatbotRepository
	userService    *service.UserService
	courseService  *service.CourseService
	circleService  *service.CircleService
	messageService *service.MessageService
	chatbotService *service.ChatbotService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	var generator ai.TextGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini client setup failed: %w", err)
		}
		generator = client
	} else {
		middleware.Logger.Warn("GEMINI_API_KEY not set; study assistant runs in unavailable mode")
	}

	return NewServerWithDeps(cfg, db, redisClient, generator)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
// generator may be nil, in which case the assistant reports unavailable.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, generator ai.TextGenerator) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	requestRepo := repository.NewCourseRequestRepository(db)
	circleRepo := repository.NewCircleRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	chatbotRepo := repository.NewChatbotRepository(db)

	prom := middleware.InitMetrics("skillcircle-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		requestRepo:    requestRepo,
		circleRepo:     circleRepo,
		messageRepo:    messageRepo,
		chatbotRepo:    chatbotRepo,
	}
	server.userService = service.NewUserService(userRepo, courseRepo, circleRepo, requestRepo, chatbotRepo)
	server.courseService = service.NewCourseService(courseRepo, requestRepo)
	server.circleService = service.NewCircleService(circleRepo)
	server.messageService = service.NewMessageService(messageRepo, userRepo, circleRepo)
	server.chatbotService = service.NewChatbotService(generator, chatbotRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
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
	api.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/profile", s.AuthRequired(), s.GetProfile)

	// Public profile lookup (no auth, matches the original API)
	api.Get("/users/:id<int>", s.GetPublicProfile)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Put("/profile", s.UpdateProfile)
	users.Get("/dashboard", s.GetDashboard)
	users.Get("/", s.GetUsers)

	// Course routes; specific /requests routes before generic /:id
	courses := protected.Group("/courses")
	courses.Get("/", s.GetCourses)
	courses.Post("/", s.CreateCourse)
	courses.Get("/requests/sent", s.GetSentRequests)
	courses.Get("/requests/received", s.GetReceivedRequests)
	courses.Put("/requests/:id", s.UpdateRequestStatus)
	courses.Post("/:id/request", s.RequestCourseAccess)
	courses.Get("/:id", s.GetCourse)
	courses.Put("/:id", s.UpdateCourse)
	courses.Delete("/:id", s.DeleteCourse)

	// Circle routes
	circles := protected.Group("/circles")
	circles.Get("/", s.GetCircles)
	circles.Post("/", s.CreateCircle)
	circles.Post("/:id/join", s.JoinCircle)
	circles.Post("/:id/leave", s.LeaveCircle)
	circles.Get("/:id", s.GetCircle)
	circles.Put("/:id", s.UpdateCircle)
	circles.Delete("/:id", s.DeleteCircle)

	// Message routes
	messages := protected.Group("/messages")
	messages.Get("/conversations", s.GetConversations)
	messages.Get("/direct/:userId", s.GetDirectThread)
	messages.Get("/group/:circleId", s.GetGroupThread)
	messages.Post("/direct", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_direct"), s.SendDirectMessage)
	messages.Post("/group", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_group"), s.SendGroupMessage)
	messages.Put("/read/:peerId", s.MarkConversationRead)

	// Chatbot routes
	chatbot := protected.Group("/chatbot")
	chatbot.Post("/ask", middleware.RateLimit(
		s.redis, 10, time.Minute, "chatbot_ask"), s.AskChatbot)
	chatbot.Get("/history", s.GetChatbotHistory)
	chatbot.Delete("/history/:id", s.DeleteChatbotHistory)
	chatbot.Get("/topics", s.GetChatbotTopics)
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
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

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API stays usable without Redis, only cache and rate limits
		// degrade, so a missing client does not fail readiness.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "SkillCircle API",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns middleware that enforces a valid bearer token and
// verifies the token's subject still exists before letting the request
// through.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.Authenticate(c)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		c.Locals("userID", userID)

		if _, err := s.userRepo.GetByID(c.UserContext(), userID); err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User no longer exists"))
		}

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "SkillCircle API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
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
