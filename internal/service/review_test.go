package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolhunt/toolhunt/internal/domain"
)

func stageReview(t *testing.T, env *testEnv) *domain.PendingReview {
	t.Helper()
	result, err := env.pipeline.Process(context.Background(), testWatchURL, false)
	require.NoError(t, err)
	review, err := env.reviewRepo.GetByID(context.Background(), result.ReviewID)
	require.NoError(t, err)
	return review
}

func TestReviewApprove(t *testing.T) {
	env := newTestEnv(t)
	review := stageReview(t, env)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	videoID, err := svc.Approve(context.Background(), review.ID, "admin-1", nil)
	require.NoError(t, err)
	require.NotEmpty(t, videoID)

	video, err := env.videoRepo.GetByID(context.Background(), videoID)
	require.NoError(t, err)
	assert.True(t, video.AdminApproved)
	assert.Equal(t, domain.ProcessingStatusCompleted, video.ProcessingStatus)

	stamped, err := env.reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusApproved, stamped.Status)
	assert.Equal(t, "admin-1", stamped.ReviewedBy)
	assert.NotNil(t, stamped.ReviewedAt)
}

func TestReviewApproveWithEditedBundle(t *testing.T) {
	env := newTestEnv(t)
	review := stageReview(t, env)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	edited := review.RawData.AnalysisBundle
	edited.Metadata.Title = "Corrected Title"
	edited.Summary.Summary = "Corrected by an admin."

	videoID, err := svc.Approve(context.Background(), review.ID, "admin-1", &edited)
	require.NoError(t, err)

	video, err := env.videoRepo.GetByID(context.Background(), videoID)
	require.NoError(t, err)
	assert.Equal(t, "Corrected Title", video.Title)
	assert.Equal(t, "Corrected by an admin.", video.AISummary)

	// the edited bundle becomes the payload of record
	stamped, err := env.reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corrected Title", stamped.RawData.Metadata.Title)
}

func TestReviewApprovePersistFailureStaysPending(t *testing.T) {
	env := newTestEnv(t)
	review := stageReview(t, env)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	// occupy the youtube_id so persistence hits the duplicate guard
	_, err := env.pipeline.Process(context.Background(), testWatchURL, true)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), review.ID, "admin-1", nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateVideo)

	after, err := env.reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusPending, after.Status)
}

func TestReviewReject(t *testing.T) {
	env := newTestEnv(t)
	review := stageReview(t, env)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	err := svc.Reject(context.Background(), review.ID, "admin-2", "low quality")
	require.NoError(t, err)

	after, err := env.reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusRejected, after.Status)
	assert.Equal(t, "admin-2", after.ReviewedBy)
	assert.Equal(t, "low quality", after.AdminNotes)

	// rejection never touches the catalog
	exists, err := env.videoRepo.ExistsByYouTubeID(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReviewTerminalStateRejected(t *testing.T) {
	env := newTestEnv(t)
	review := stageReview(t, env)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	require.NoError(t, svc.Reject(context.Background(), review.ID, "admin-1", ""))

	_, err := svc.Approve(context.Background(), review.ID, "admin-1", nil)
	assert.ErrorIs(t, err, domain.ErrReviewFinalized)

	err = svc.Reject(context.Background(), review.ID, "admin-1", "again")
	assert.ErrorIs(t, err, domain.ErrReviewFinalized)

	err = svc.UpdatePayload(context.Background(), review.ID, &review.RawData.AnalysisBundle)
	assert.ErrorIs(t, err, domain.ErrReviewFinalized)

	// the rejection never reached the catalog, even after the attempts
	exists, err := env.videoRepo.ExistsByYouTubeID(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReviewTerminalStateApproved(t *testing.T) {
	env := newTestEnv(t)
	review := stageReview(t, env)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	videoID, err := svc.Approve(context.Background(), review.ID, "admin-1", nil)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), review.ID, "admin-1", nil)
	assert.ErrorIs(t, err, domain.ErrReviewFinalized)

	err = svc.Reject(context.Background(), review.ID, "admin-1", "too late")
	assert.ErrorIs(t, err, domain.ErrReviewFinalized)

	// the persisted video and the review are untouched by the attempts
	video, err := env.videoRepo.GetByID(context.Background(), videoID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProcessingStatusCompleted, video.ProcessingStatus)

	after, err := env.reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusApproved, after.Status)
	assert.Empty(t, after.AdminNotes)
}

func TestReviewEditField(t *testing.T) {
	env := newTestEnv(t)
	review := stageReview(t, env)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	bundle, err := svc.EditField(context.Background(), review.ID, "timestamps.1.title", "Renamed chapter")
	require.NoError(t, err)
	assert.Equal(t, "Renamed chapter", bundle.Timestamps[1].Title)

	after, err := env.reviewRepo.GetByID(context.Background(), review.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed chapter", after.RawData.Timestamps[1].Title)

	_, err = svc.EditField(context.Background(), review.ID, "timestamps.9.title", "out of range")
	assert.Error(t, err)
}

func TestReviewGetMissing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewReviewService(env.reviewRepo, env.pipeline, env.pipeline.logger)

	_, err := svc.Get(context.Background(), "no-such-review")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
