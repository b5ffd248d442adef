package service

import (
	"context"
	"fmt"

	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
)

// ReviewService is the moderation gate. Pending reviews can be edited,
// approved, or rejected; approved and rejected are terminal and any further
// transition attempt fails without touching the review or the catalog.
type ReviewService struct {
	reviewRepo *repository.ReviewRepository
	pipeline   *PipelineService
	logger     *logger.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo *repository.ReviewRepository, pipeline *PipelineService, log *logger.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		pipeline:   pipeline,
		logger:     log,
	}
}

// List retrieves reviews filtered by status and type.
func (s *ReviewService) List(ctx context.Context, status domain.ReviewStatus, reviewType domain.ReviewType, limit, offset int) ([]domain.PendingReview, error) {
	return s.reviewRepo.List(ctx, status, reviewType, limit, offset)
}

// Get retrieves one review by ID.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.PendingReview, error) {
	return s.reviewRepo.GetByID(ctx, id)
}

// UpdatePayload replaces the staged bundle of a pending review wholesale.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
//   - bundle: replacement bundle.
// Returns:
//   - error: domain.ErrReviewFinalized if the review is terminal,
//     domain.ErrNotFound if it does not exist.
func (s *ReviewService) UpdatePayload(ctx context.Context, id string, bundle *domain.AnalysisBundle) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.Status.Terminal() {
		return domain.ErrReviewFinalized
	}
	return s.reviewRepo.UpdatePayload(ctx, id, domain.ReviewPayload{AnalysisBundle: *bundle})
}

// EditField applies a single dotted-path edit to a pending review's bundle.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
//   - path: dotted field path into the bundle.
//   - value: replacement value.
// Returns:
//   - *domain.AnalysisBundle: bundle after the edit.
//   - error: domain.ErrReviewFinalized if terminal, or the path error.
func (s *ReviewService) EditField(ctx context.Context, id string, path string, value interface{}) (*domain.AnalysisBundle, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.Status.Terminal() {
		return nil, domain.ErrReviewFinalized
	}

	bundle := review.RawData.AnalysisBundle
	if err := bundle.ApplyFieldEdit(path, value); err != nil {
		return nil, fmt.Errorf("edit %s: %w", path, err)
	}
	if err := s.reviewRepo.UpdatePayload(ctx, id, domain.ReviewPayload{AnalysisBundle: bundle}); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Approve persists a pending review's bundle into the catalog and marks the
// review approved. When edited is non-nil it replaces the staged bundle and
// becomes the payload of record. If persistence fails the review stays
// pending so the admin can retry.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
//   - reviewedBy: identifier of the approving admin.
//   - edited: optional replacement bundle.
// Returns:
//   - string: catalog video ID.
//   - error: domain.ErrReviewFinalized if terminal, domain.ErrDuplicateVideo
//     or *domain.PersistenceError from persistence.
func (s *ReviewService) Approve(ctx context.Context, id string, reviewedBy string, edited *domain.AnalysisBundle) (string, error) {
	ctx = logger.SetReviewID(ctx, id)

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if review.Status.Terminal() {
		return "", domain.ErrReviewFinalized
	}

	bundle := review.RawData.AnalysisBundle
	if edited != nil {
		bundle = *edited
	}

	videoID, err := s.pipeline.Persist(ctx, &bundle, true)
	if err != nil {
		logger.CtxError(ctx, "Approval persistence failed, review stays pending: %v", err)
		return "", err
	}

	if err := s.reviewRepo.MarkApproved(ctx, id, reviewedBy, domain.ReviewPayload{AnalysisBundle: bundle}); err != nil {
		// The catalog write already happened; surface the stamp failure.
		return videoID, fmt.Errorf("mark approved: %w", err)
	}

	logger.CtxInfo(ctx, "Review approved by %s, video %s", reviewedBy, videoID)
	return videoID, nil
}

// Reject marks a pending review rejected with an optional note. The catalog
// is never touched.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID.
//   - reviewedBy: identifier of the rejecting admin.
//   - notes: reason recorded for the rejection.
// Returns:
//   - error: domain.ErrReviewFinalized if terminal, domain.ErrNotFound if
//     the review does not exist.
func (s *ReviewService) Reject(ctx context.Context, id string, reviewedBy string, notes string) error {
	ctx = logger.SetReviewID(ctx, id)

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.Status.Terminal() {
		return domain.ErrReviewFinalized
	}

	if err := s.reviewRepo.MarkRejected(ctx, id, reviewedBy, notes); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "Review rejected by %s", reviewedBy)
	return nil
}
