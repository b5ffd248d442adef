package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/toolhunt/toolhunt/internal/analyzer"
	"github.com/toolhunt/toolhunt/internal/config"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
	"github.com/toolhunt/toolhunt/internal/service"
	"github.com/toolhunt/toolhunt/internal/storage"
	"github.com/toolhunt/toolhunt/internal/youtube"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "toolhunt-pipeline",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	videoURL := flag.String("url", "", "YouTube video URL to process")
	discover := flag.Bool("discover", false, "Run trending discovery instead of single-video processing")
	autoApprove := flag.Bool("auto-approve", false, "Persist directly instead of staging for review")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *videoURL == "" && !*discover {
		appLogger.Fatal("Either -url or -discover is required")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

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

	// Cancel the run on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		appLogger.Warn("Interrupt received, cancelling run")
		cancel()
	}()

	if *discover {
		trending := service.NewTrendingService(videoRepo, reviewRepo, youtubeClient, pipeline, appLogger, service.TrendingConfig{
			Queries:       cfg.Trending.Queries,
			QueriesPerRun: cfg.Trending.QueriesPerRun,
			LookbackDays:  cfg.Trending.LookbackDays,
			MinViews:      cfg.Trending.MinViews,
			MinDuration:   cfg.Trending.MinDuration,
			MaxResults:    cfg.Trending.MaxResults,
		})

		report, err := trending.Discover(ctx)
		if err != nil {
			appLogger.WithError(err).Fatal("Discovery run failed")
		}
		appLogger.WithFields(logger.Fields{
			"queries":    report.Queries,
			"candidates": report.Candidates,
			"skipped":    report.Skipped,
			"staged":     report.Staged,
			"failed":     len(report.Failures),
		}).Info("Discovery run finished")
		return
	}

	result, err := pipeline.Process(ctx, *videoURL, *autoApprove)
	if err != nil {
		appLogger.WithError(err).Fatal("Processing failed")
	}
	appLogger.WithFields(logger.Fields{
		"video_id":  result.VideoID,
		"review_id": result.ReviewID,
	}).Info("Processing finished")
}
