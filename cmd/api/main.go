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

	"github.com/toolhunt/toolhunt/internal/analyzer"
	"github.com/toolhunt/toolhunt/internal/api"
	"github.com/toolhunt/toolhunt/internal/api/middleware"
	"github.com/toolhunt/toolhunt/internal/config"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
	"github.com/toolhunt/toolhunt/internal/service"
	"github.com/toolhunt/toolhunt/internal/storage"
	"github.com/toolhunt/toolhunt/internal/youtube"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewFromEnv(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	videoRepo := repository.NewVideoRepository(db)
	toolRepo := repository.NewToolRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize external clients
	youtubeClient := youtube.NewClient(&youtube.ClientConfig{
		APIKey:  cfg.YouTube.APIKey,
		BaseURL: cfg.YouTube.BaseURL,
	})
	transcripts := youtube.NewTranscriptFetcher()
	extractor := analyzer.NewClient(&analyzer.ClientConfig{
		Model:   cfg.Analyzer.Model,
		APIKey:  cfg.Analyzer.APIKey,
		BaseURL: cfg.Analyzer.BaseURL,
	})

	// Initialize thumbnail archival when object storage is configured
	var archiver *storage.ThumbnailArchiver
	if cfg.Storage.Enabled {
		objectStorage, err := storage.NewS3Storage(&storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage")
		}
		if err := objectStorage.EnsureBucket(context.Background()); err != nil {
			appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
		}
		archiver = storage.NewThumbnailArchiver(objectStorage)
	}

	// Initialize services
	reconciler := service.NewToolReconciler(toolRepo, appLogger)
	pipeline := service.NewPipelineService(
		videoRepo, reviewRepo,
		youtubeClient, transcripts, extractor,
		reconciler, archiver, appLogger,
		&service.PipelineConfig{
			TranscriptMaxChars: cfg.Analyzer.TranscriptMaxChars,
		},
	)
	reviews := service.NewReviewService(reviewRepo, pipeline, appLogger)
	catalog := service.NewCatalogService(videoRepo, toolRepo, appLogger)
	trending := service.NewTrendingService(videoRepo, reviewRepo, youtubeClient, pipeline, appLogger, service.TrendingConfig{
		Queries:       cfg.Trending.Queries,
		QueriesPerRun: cfg.Trending.QueriesPerRun,
		LookbackDays:  cfg.Trending.LookbackDays,
		MinViews:      cfg.Trending.MinViews,
		MinDuration:   cfg.Trending.MinDuration,
		MaxResults:    cfg.Trending.MaxResults,
	})

	// Setup router
	router := api.SetupRouter(pipeline, reviews, catalog, trending, appLogger, api.RouterConfig{
		Mode: cfg.Server.Mode,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
		Auth: middleware.AuthConfig{
			UserHeader: cfg.Auth.UserHeader,
			RoleHeader: cfg.Auth.RoleHeader,
			CronSecret: cfg.Auth.CronSecret,
		},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
