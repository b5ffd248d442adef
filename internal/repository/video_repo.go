package repository

import (
	"context"
	"errors"
	"time"

	"github.com/toolhunt/toolhunt/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoRepository handles video catalog data operations.
type VideoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *VideoRepository: repository instance bound to db.
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create inserts a new video record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - video: video record to persist.
// Returns:
//   - error: domain.ErrDuplicateVideo if the source video already exists,
//     otherwise the underlying database error.
func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	err := r.db.WithContext(ctx).Create(video).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateVideo
	}
	return err
}

// GetByID retrieves a video by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video ID.
// Returns:
//   - *domain.Video: video record if found.
//   - error: domain.ErrNotFound if no row matches.
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// GetByYouTubeID retrieves a video by its source platform ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - youtubeID: 11-character source video ID.
// Returns:
//   - *domain.Video: video record if found.
//   - error: domain.ErrNotFound if no row matches.
func (r *VideoRepository) GetByYouTubeID(ctx context.Context, youtubeID string) (*domain.Video, error) {
	var video domain.Video
	if err := r.db.WithContext(ctx).First(&video, "youtube_id = ?", youtubeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// ExistsByYouTubeID checks whether a video with the given source ID exists.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - youtubeID: 11-character source video ID.
// Returns:
//   - bool: true if a record exists.
//   - error: non-nil if the lookup fails.
func (r *VideoRepository) ExistsByYouTubeID(ctx context.Context, youtubeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("youtube_id = ?", youtubeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListYouTubeIDs returns the source IDs of all videos in the catalog.
// Used by trending discovery to skip already-ingested videos.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: source video IDs.
//   - error: non-nil if the query fails.
func (r *VideoRepository) ListYouTubeIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&domain.Video{}).
		Pluck("youtube_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// List retrieves videos with optional category filter and pagination,
// newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - category: category name to filter by; empty means all.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
// Returns:
//   - []domain.Video: matching video records.
//   - error: non-nil if the query fails.
func (r *VideoRepository) List(ctx context.Context, category string, limit, offset int) ([]domain.Video, error) {
	var videos []domain.Video
	query := r.db.WithContext(ctx)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.
		Where("processing_status = ?", domain.ProcessingStatusCompleted).
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// MarkCompleted stamps a video as fully processed.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video ID.
// Returns:
//   - error: non-nil if the update fails.
func (r *VideoRepository) MarkCompleted(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": domain.ProcessingStatusCompleted,
			"processing_error":  "",
			"processed_at":      &now,
		}).Error
}

// MarkFailed records a processing failure on a video row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video ID.
//   - reason: human-readable failure description.
// Returns:
//   - error: non-nil if the update fails.
func (r *VideoRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"processing_status": domain.ProcessingStatusFailed,
			"processing_error":  reason,
		}).Error
}

// SetArchivedThumbnail records the object key of an archived thumbnail.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video ID.
//   - key: object storage key.
// Returns:
//   - error: non-nil if the update fails.
func (r *VideoRepository) SetArchivedThumbnail(ctx context.Context, id string, key string) error {
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		Update("archived_thumbnail_key", key).Error
}

// IncrementViewCount atomically bumps a video's view counter.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video ID.
// Returns:
//   - error: non-nil if the update fails.
func (r *VideoRepository) IncrementViewCount(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

// CreateTimestamps inserts chapter markers for a video.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - timestamps: rows to insert; no-op when empty.
// Returns:
//   - error: non-nil if the insert fails.
func (r *VideoRepository) CreateTimestamps(ctx context.Context, timestamps []domain.VideoTimestamp) error {
	if len(timestamps) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&timestamps).Error
}

// GetTimestamps retrieves a video's chapter markers ordered by position.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoID: video ID.
// Returns:
//   - []domain.VideoTimestamp: ordered chapter markers.
//   - error: non-nil if the query fails.
func (r *VideoRepository) GetTimestamps(ctx context.Context, videoID string) ([]domain.VideoTimestamp, error) {
	var timestamps []domain.VideoTimestamp
	if err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("position ASC").
		Find(&timestamps).Error; err != nil {
		return nil, err
	}
	return timestamps, nil
}

// LinkTool associates a tool with a video, ignoring duplicate pairs.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - link: association row to insert.
// Returns:
//   - error: non-nil if the insert fails.
func (r *VideoRepository) LinkTool(ctx context.Context, link *domain.VideoToolLink) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}, {Name: "tool_id"}},
		DoNothing: true,
	}).Create(link).Error
}

// GetLinkedTools retrieves the tools associated with a video.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoID: video ID.
// Returns:
//   - []domain.Tool: linked tool records.
//   - error: non-nil if the query fails.
func (r *VideoRepository) GetLinkedTools(ctx context.Context, videoID string) ([]domain.Tool, error) {
	var tools []domain.Tool
	if err := r.db.WithContext(ctx).
		Joins("JOIN video_tools ON video_tools.tool_id = tools.id").
		Where("video_tools.video_id = ?", videoID).
		Find(&tools).Error; err != nil {
		return nil, err
	}
	return tools, nil
}

// Delete removes a video and its dependent rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: video ID to delete.
// Returns:
//   - error: non-nil if any delete fails.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.VideoTimestamp{}, "video_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.VideoToolLink{}, "video_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Video{}, "id = ?", id).Error
	})
}
