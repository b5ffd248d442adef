package api

import (
	"github.com/gin-gonic/gin"
	"github.com/toolhunt/toolhunt/internal/api/handler"
	"github.com/toolhunt/toolhunt/internal/api/middleware"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/service"
)

// RouterConfig carries the router's cross-cutting settings.
type RouterConfig struct {
	Mode string
	CORS middleware.CORSConfig
	Auth middleware.AuthConfig
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	pipeline *service.PipelineService,
	reviews *service.ReviewService,
	catalog *service.CatalogService,
	trending *service.TrendingService,
	log *logger.Logger,
	cfg RouterConfig,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestCache())

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	videoHandler := handler.NewVideoHandler(pipeline, catalog)
	reviewHandler := handler.NewReviewHandler(reviews)
	toolHandler := handler.NewToolHandler(catalog)
	trendingHandler := handler.NewTrendingHandler(trending)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Public catalog reads
		v1.GET("/videos", videoHandler.List)
		v1.GET("/videos/:id", videoHandler.Get)
		v1.GET("/tools", toolHandler.List)
		v1.GET("/tools/:id", toolHandler.Get)
		v1.GET("/categories", toolHandler.GetCategories)

		// Hunt and click counters, server-authoritative
		v1.POST("/tools/:id/hunt", toolHandler.Hunt)
		v1.DELETE("/tools/:id/hunt", toolHandler.Unhunt)
		v1.POST("/tools/:id/click", toolHandler.Click)

		// Admin surface, role-guarded
		admin := v1.Group("/admin")
		admin.Use(middleware.RequireRole(cfg.Auth, "admin", "editor"))
		{
			admin.POST("/videos/analyze", videoHandler.Analyze)
			admin.POST("/videos/process", videoHandler.Process)
			admin.POST("/videos/save", videoHandler.Save)
			admin.DELETE("/videos/:id", videoHandler.Delete)

			admin.GET("/reviews", reviewHandler.List)
			admin.GET("/reviews/:id", reviewHandler.Get)
			admin.PUT("/reviews/:id", reviewHandler.Update)
			admin.POST("/reviews/:id/approve", reviewHandler.Approve)
			admin.POST("/reviews/:id/reject", reviewHandler.Reject)
		}

		// Scheduler surface, secret-guarded
		cron := v1.Group("/cron")
		cron.Use(middleware.RequireCronSecret(cfg.Auth.CronSecret))
		{
			cron.GET("/discover-trending", trendingHandler.Discover)
		}
	}

	return r
}
