package repository

import (
	"context"
	"errors"
	"time"

	"github.com/toolhunt/toolhunt/internal/domain"
	"gorm.io/gorm"
)

// ReviewRepository handles pending review data operations.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ReviewRepository: repository instance bound to db.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new pending review.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - review: review record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.PendingReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID retrieves a pending review by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
// Returns:
//   - *domain.PendingReview: review record if found.
//   - error: domain.ErrNotFound if no row matches.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.PendingReview, error) {
	var review domain.PendingReview
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// List retrieves reviews with optional status and type filters, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - status: status filter; empty means all.
//   - reviewType: type filter; empty means all.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
// Returns:
//   - []domain.PendingReview: matching review records.
//   - error: non-nil if the query fails.
func (r *ReviewRepository) List(ctx context.Context, status domain.ReviewStatus, reviewType domain.ReviewType, limit, offset int) ([]domain.PendingReview, error) {
	var reviews []domain.PendingReview
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if reviewType != "" {
		query = query.Where("type = ?", reviewType)
	}
	if err := query.
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// UpdatePayload replaces the staged bundle of a review wholesale.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
//   - payload: new staged bundle.
// Returns:
//   - error: non-nil if the update fails.
func (r *ReviewRepository) UpdatePayload(ctx context.Context, id string, payload domain.ReviewPayload) error {
	return r.db.WithContext(ctx).Model(&domain.PendingReview{}).
		Where("id = ?", id).
		Update("raw_data", payload).Error
}

// MarkApproved transitions a review to approved, stamping the reviewer and
// storing the payload that was actually persisted.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
//   - reviewedBy: identifier of the approving admin.
//   - payload: bundle as persisted, including any edits.
// Returns:
//   - error: non-nil if the update fails.
func (r *ReviewRepository) MarkApproved(ctx context.Context, id string, reviewedBy string, payload domain.ReviewPayload) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.PendingReview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      domain.ReviewStatusApproved,
			"reviewed_by": reviewedBy,
			"reviewed_at": &now,
			"raw_data":    payload,
		}).Error
}

// MarkRejected transitions a review to rejected with an optional note.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
//   - reviewedBy: identifier of the rejecting admin.
//   - notes: reason recorded for the rejection.
// Returns:
//   - error: non-nil if the update fails.
func (r *ReviewRepository) MarkRejected(ctx context.Context, id string, reviewedBy string, notes string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.PendingReview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      domain.ReviewStatusRejected,
			"reviewed_by": reviewedBy,
			"reviewed_at": &now,
			"admin_notes": notes,
		}).Error
}

// ListStagedVideoIDs returns the source video IDs held in pending or
// approved video reviews. Used by trending discovery so a video already
// staged for moderation is not staged twice.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: source video IDs extracted from staged payloads.
//   - error: non-nil if the query fails.
func (r *ReviewRepository) ListStagedVideoIDs(ctx context.Context) ([]string, error) {
	var reviews []domain.PendingReview
	if err := r.db.WithContext(ctx).
		Where("type = ?", domain.ReviewTypeVideo).
		Where("status IN ?", []domain.ReviewStatus{domain.ReviewStatusPending, domain.ReviewStatusApproved}).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(reviews))
	for _, review := range reviews {
		if id := review.RawData.Metadata.VideoID; id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// HasPendingVideo reports whether a pending video review already holds
// the given source video ID. Guards staging so no two pending reviews
// exist for the same video at once.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoID: source video ID to look for.
// Returns:
//   - bool: true if a pending review carries the video ID.
//   - error: non-nil if the query fails.
func (r *ReviewRepository) HasPendingVideo(ctx context.Context, videoID string) (bool, error) {
	var reviews []domain.PendingReview
	if err := r.db.WithContext(ctx).
		Where("type = ?", domain.ReviewTypeVideo).
		Where("status = ?", domain.ReviewStatusPending).
		Find(&reviews).Error; err != nil {
		return false, err
	}
	for _, review := range reviews {
		if review.RawData.Metadata.VideoID == videoID {
			return true, nil
		}
	}
	return false, nil
}

// CountByStatus counts reviews in a given status.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - status: review status to count.
// Returns:
//   - int64: number of matching records.
//   - error: non-nil if the query fails.
func (r *ReviewRepository) CountByStatus(ctx context.Context, status domain.ReviewStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.PendingReview{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
