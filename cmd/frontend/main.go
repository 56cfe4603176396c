package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/DEFRA/content-reviewer-frontend/internal/api"
	"github.com/DEFRA/content-reviewer-frontend/internal/backend"
	"github.com/DEFRA/content-reviewer-frontend/internal/config"
	"github.com/DEFRA/content-reviewer-frontend/internal/logger"
	"github.com/DEFRA/content-reviewer-frontend/internal/poller"
	"github.com/DEFRA/content-reviewer-frontend/internal/session"
	"github.com/DEFRA/content-reviewer-frontend/internal/storage"
	"github.com/DEFRA/content-reviewer-frontend/internal/uploader"
	"github.com/DEFRA/content-reviewer-frontend/internal/validate"
	"github.com/DEFRA/content-reviewer-frontend/internal/web"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting frontend server")

	// Session cache engine for flash messages
	cache, err := session.NewEngine(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session cache")
	}
	defer cache.Close()
	flashes := session.NewFlashes(cache, cfg.Session.TTL)

	// Backend review service client
	backendClient := backend.NewClient(cfg)

	// Direct-to-storage upload flow
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
	}
	statusPoller := poller.New(cfg.Poller)
	uploads := uploader.NewService(cfg, uploader.NewClient(cfg), store, backendClient, statusPoller)

	validator := validate.New(cfg.Upload)

	apiHandler := api.NewHandler(backendClient, uploads, validator, cfg)
	webHandler := web.NewHandler(backendClient, statusPoller, flashes, cfg)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxFileSize
	router.Use(api.CORSMiddleware())
	router.Use(api.SessionMiddleware())
	router.Use(api.LoggingMiddleware())
	router.Use(api.RecoveryMiddleware())

	// Setup routes
	api.SetupRoutes(router, apiHandler)
	web.SetupRoutes(router, webHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
