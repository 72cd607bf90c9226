package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-reviewer/internal/auth"
	"resume-reviewer/internal/config"
	"resume-reviewer/internal/handlers"
	"resume-reviewer/internal/middleware"
	"resume-reviewer/internal/repositories"
	"resume-reviewer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	matchRepo := repositories.NewJobMatchRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	parser := services.NewDocumentParser()
	renderer := services.NewReportRenderer()

	reports := services.NewReportStorage(cfg.Storage.ReportDir)
	if err := reports.EnsureDir(); err != nil {
		log.Fatalf("❌ Failed to create report directory: %v", err)
	}
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize review pipeline
	reviewerService := services.NewReviewerService(
		resumeRepo,
		reviewRepo,
		geminiService,
		renderer,
		reports,
	)
	matcherService := services.NewMatcherService(
		resumeRepo,
		matchRepo,
		geminiService,
	)
	log.Println("✅ Review pipeline initialized")

	// Initialize worker
	worker := services.NewWorker(reviewerService, cfg.Review.WorkerConcurrency)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokenService, cfg.Auth.AdminEmail)
	resumeHandler := handlers.NewResumeHandler(
		resumeRepo,
		reviewRepo,
		parser,
		worker,
		reports,
		cfg.Review.DailyLimit,
		cfg.Storage.MaxFileSize,
	)
	jobMatchHandler := handlers.NewJobMatchHandler(matcherService, matchRepo)
	adminHandler := handlers.NewAdminHandler(userRepo, resumeRepo, reviewRepo)
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Reviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.HandleRegister)
	authGroup.Post("/login", authHandler.HandleLogin)
	authGroup.Post("/logout", authHandler.HandleLogout)

	// Resume routes
	resumeGroup := app.Group("/resume", authMiddleware.RequireUser())
	resumeGroup.Post("/upload", resumeHandler.HandleUpload)
	resumeGroup.Get("/resumes", resumeHandler.HandleListResumes)
	resumeGroup.Get("/:id", resumeHandler.HandleGetResume)
	resumeGroup.Get("/:id/review", resumeHandler.HandleRequestReview)
	resumeGroup.Get("/:id/reviews", resumeHandler.HandleListReviews)
	resumeGroup.Get("/:id/review/:review_id/download", resumeHandler.HandleDownloadReview)

	// Job match routes
	matchGroup := app.Group("/job_match", authMiddleware.RequireUser())
	matchGroup.Post("/:resume_id/match", jobMatchHandler.HandleMatch)
	matchGroup.Get("/:resume_id/matches", jobMatchHandler.HandleListMatches)

	// Admin routes
	adminGroup := app.Group("/admin", authMiddleware.RequireUser(), authMiddleware.RequireAdmin())
	adminGroup.Get("/stats", adminHandler.HandleStats)
	adminGroup.Get("/reviews", adminHandler.HandleAllReviews)
	adminGroup.Get("/users", adminHandler.HandleAllUsers)
	adminGroup.Get("/resumes", adminHandler.HandleAllResumes)
	adminGroup.Get("/user/:user_id/resumes", adminHandler.HandleUserResumes)
	adminGroup.Get("/user/:user_id/reviews", adminHandler.HandleUserReviews)
	adminGroup.Get("/resume/:resume_id/reviews", adminHandler.HandleResumeReviews)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the AI Resume Reviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /auth/register",
				"POST /auth/login",
				"POST /resume/upload",
				"GET /resume/:id/review",
				"GET /resume/:id/reviews",
				"POST /job_match/:resume_id/match",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		worker.Stop()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
