package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/jh-117/meeting-agenda-builder-sub000/pkg/validator"

	"github.com/jh-117/meeting-agenda-builder-sub000/internal/adapter/handler"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/infrastructure/cache"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/infrastructure/storage"
	agendaUsecase "github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/agenda"
	exportUsecase "github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/export"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/extract"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/generation"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/config"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/llm"
)

// @title           Meeting Agenda Builder API
// @version         1.0
// @description     API for AI-assisted meeting agenda generation, editing and export

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize session store
	var sessionStore cache.SessionStore
	switch cfg.Session.Backend {
	case "redis":
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		sessionStore = cache.NewRedisStore(redisClient, cfg.Session.TTL)
	default:
		log.Println("📦 Using in-memory session store")
		sessionStore = cache.NewMemoryStore(cfg.Session.TTL)
	}

	// Initialize LLM client
	log.Println("🤖 Initializing LLM client...")
	llmClient, err := llm.NewOpenAIClient(&cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	// Initialize services
	generationService := generation.NewService(llmClient, logger)
	sessionService := agendaUsecase.NewService(sessionStore, generationService, logger)
	exportService := exportUsecase.NewService(logger)

	// Initialize attachment storage. Attachments are optional: without
	// object storage the server still serves generation and export.
	var attachmentHandler *handler.Attachment
	log.Println("🗄️  Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Printf("⚠️  Object storage unavailable, attachments disabled: %v", err)
	} else {
		extractService := extract.NewService(minioClient, logger)
		attachmentHandler = handler.NewAttachmentHandler(minioClient, extractService, logger)
	}

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	agendaHandler := handler.NewAgendaHandler(sessionService, generationService, logger)
	exportHandler := handler.NewExportHandler(sessionService, exportService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, agendaHandler, exportHandler, attachmentHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Failed to shutdown server: %v", err)
	}

	log.Println("👋 Server stopped")
}
