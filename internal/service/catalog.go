package service

import (
	"context"

	"github.com/toolhunt/toolhunt/internal/cache"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
)

// CatalogService serves public catalog reads and the engagement counters.
type CatalogService struct {
	videoRepo *repository.VideoRepository
	toolRepo  *repository.ToolRepository
	logger    *logger.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(videoRepo *repository.VideoRepository, toolRepo *repository.ToolRepository, log *logger.Logger) *CatalogService {
	return &CatalogService{
		videoRepo: videoRepo,
		toolRepo:  toolRepo,
		logger:    log,
	}
}

// VideoDetail is a catalog video with its chapter markers and linked tools.
type VideoDetail struct {
	domain.Video
	Timestamps []domain.VideoTimestamp `json:"timestamps"`
	Tools      []domain.Tool           `json:"tools"`
}

// ListVideos retrieves completed, approved catalog videos with an optional
// category filter.
func (s *CatalogService) ListVideos(ctx context.Context, category string, limit, offset int) ([]domain.Video, error) {
	return s.videoRepo.List(ctx, category, limit, offset)
}

// GetVideo retrieves one catalog video with timestamps and linked tools,
// bumping its view counter. The counter write is best-effort.
func (s *CatalogService) GetVideo(ctx context.Context, id string) (*VideoDetail, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	timestamps, err := s.videoRepo.GetTimestamps(ctx, id)
	if err != nil {
		return nil, err
	}
	tools, err := s.videoRepo.GetLinkedTools(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.videoRepo.IncrementViewCount(ctx, id); err != nil {
		logger.CtxWarn(ctx, "View count increment failed for video %s: %v", id, err)
	}
	return &VideoDetail{
		Video:      *video,
		Timestamps: timestamps,
		Tools:      tools,
	}, nil
}

// DeleteVideo removes a catalog video with its timestamps and tool links.
// Tools themselves stay in the catalog.
func (s *CatalogService) DeleteVideo(ctx context.Context, id string) error {
	if _, err := s.videoRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.videoRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "Deleted catalog video %s", id)
	return nil
}

// ListTools retrieves catalog tools with optional category and status filters.
func (s *CatalogService) ListTools(ctx context.Context, category string, status domain.ToolStatus, limit, offset int) ([]domain.Tool, error) {
	return s.toolRepo.List(ctx, category, status, limit, offset)
}

// GetToolBySlug retrieves one tool and bumps its view counter. The counter
// write is best-effort; a failure is logged and the read still succeeds.
func (s *CatalogService) GetToolBySlug(ctx context.Context, slug string) (*domain.Tool, error) {
	tool, err := s.toolRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.toolRepo.IncrementViewCount(ctx, tool.ID); err != nil {
		logger.CtxWarn(ctx, "View count increment failed for tool %s: %v", tool.ID, err)
	}
	return tool, nil
}

// GetCategories returns the distinct tool categories, memoized per request
// so repeated lookups within one request hit the database once.
func (s *CatalogService) GetCategories(ctx context.Context) ([]string, error) {
	v, err := cache.FromContext(ctx).GetOrLoad("tool:categories", func() (interface{}, error) {
		return s.toolRepo.GetCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Hunt increments a tool's hunt counter atomically and returns the updated
// row.
func (s *CatalogService) Hunt(ctx context.Context, id string) (*domain.Tool, error) {
	return s.toolRepo.IncrementHuntCount(ctx, id)
}

// Unhunt decrements a tool's hunt counter, clamped at zero.
func (s *CatalogService) Unhunt(ctx context.Context, id string) (*domain.Tool, error) {
	return s.toolRepo.DecrementHuntCount(ctx, id)
}

// RecordClick increments a tool's click-through counter.
func (s *CatalogService) RecordClick(ctx context.Context, id string) error {
	return s.toolRepo.IncrementClickCount(ctx, id)
}
