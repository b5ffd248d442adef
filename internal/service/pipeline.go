package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
	"github.com/toolhunt/toolhunt/internal/storage"
	"github.com/toolhunt/toolhunt/internal/youtube"
)

// MetadataFetcher resolves video metadata from the video index.
type MetadataFetcher interface {
	GetVideoMetadata(ctx context.Context, videoID string) (*domain.VideoMetadata, error)
}

// TranscriptFetcher downloads caption tracks for videos.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]domain.TranscriptSegment, error)
}

// Extractor runs the three AI extraction tasks.
type Extractor interface {
	Summarize(ctx context.Context, title, description, transcript string) (*domain.VideoSummary, error)
	DetectTimestamps(ctx context.Context, transcript string) ([]domain.TimestampEntry, error)
	DetectTools(ctx context.Context, title, transcript string) ([]domain.DetectedTool, error)
}

// PipelineService orchestrates a full ingestion run: fetch, extract,
// reconcile, persist or stage for moderation.
type PipelineService struct {
	videoRepo   *repository.VideoRepository
	reviewRepo  *repository.ReviewRepository
	metadata    MetadataFetcher
	transcripts TranscriptFetcher
	extractor   Extractor
	reconciler  *ToolReconciler
	archiver    *storage.ThumbnailArchiver
	logger      *logger.Logger

	transcriptMaxChars int
}

// PipelineConfig holds orchestration settings.
type PipelineConfig struct {
	TranscriptMaxChars int
}

// NewPipelineService creates a new PipelineService.
// Parameters:
//   - videoRepo: catalog video repository.
//   - reviewRepo: pending review repository.
//   - metadata: video index metadata fetcher.
//   - transcripts: caption fetcher.
//   - extractor: AI extraction client.
//   - reconciler: tool catalog reconciler.
//   - archiver: thumbnail archiver; nil disables archival.
//   - log: service logger.
//   - cfg: orchestration settings; nil uses defaults.
// Returns:
//   - *PipelineService: initialized orchestrator.
func NewPipelineService(
	videoRepo *repository.VideoRepository,
	reviewRepo *repository.ReviewRepository,
	metadata MetadataFetcher,
	transcripts TranscriptFetcher,
	extractor Extractor,
	reconciler *ToolReconciler,
	archiver *storage.ThumbnailArchiver,
	log *logger.Logger,
	cfg *PipelineConfig,
) *PipelineService {
	maxChars := 30000
	if cfg != nil && cfg.TranscriptMaxChars > 0 {
		maxChars = cfg.TranscriptMaxChars
	}
	return &PipelineService{
		videoRepo:          videoRepo,
		reviewRepo:         reviewRepo,
		metadata:           metadata,
		transcripts:        transcripts,
		extractor:          extractor,
		reconciler:         reconciler,
		archiver:           archiver,
		logger:             log,
		transcriptMaxChars: maxChars,
	}
}

// ProcessResult is the outcome of one Process call.
type ProcessResult struct {
	VideoID  string `json:"video_id,omitempty"`
	ReviewID string `json:"review_id,omitempty"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// Analyze runs the read-only half of the pipeline: resolve metadata, fetch
// the transcript, and run the three extraction tasks. Nothing is written
// to the catalog. A missing transcript degrades to a placeholder; any other
// step failure aborts the run.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoURL: YouTube URL as submitted.
// Returns:
//   - *domain.AnalysisBundle: aggregated extraction output.
//   - error: domain.ErrInvalidInput, domain.ErrNotFound, ErrUpstream, or an
//     *domain.ExtractionError naming the failed stage.
func (s *PipelineService) Analyze(ctx context.Context, videoURL string) (*domain.AnalysisBundle, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}
	ctx = logger.SetVideoID(ctx, videoID)

	logger.CtxInfo(ctx, "Analyzing video")

	stepStart := time.Now()
	meta, err := s.metadata.GetVideoMetadata(ctx, videoID)
	if err != nil {
		return nil, err
	}
	s.logStep(ctx, "metadata", stepStart)

	stepStart = time.Now()
	transcript := youtube.PlaceholderTranscript
	segments, err := s.transcripts.Fetch(ctx, videoID)
	switch {
	case err == nil:
		transcript = youtube.FormatTranscript(segments)
	case errors.Is(err, domain.ErrTranscriptUnavailable):
		logger.CtxWarn(ctx, "No transcript available, proceeding with placeholder: %v", err)
	default:
		return nil, err
	}
	transcript = youtube.Truncate(transcript, s.transcriptMaxChars)
	s.logStep(ctx, "transcript", stepStart)

	// The three extraction calls share one external quota, so they run
	// sequentially rather than in parallel.
	stepStart = time.Now()
	summary, err := s.extractor.Summarize(ctx, meta.Title, meta.Description, transcript)
	if err != nil {
		return nil, err
	}
	s.logStep(ctx, "summarize", stepStart)

	stepStart = time.Now()
	timestamps, err := s.extractor.DetectTimestamps(ctx, transcript)
	if err != nil {
		return nil, err
	}
	s.logStep(ctx, "timestamps", stepStart)

	stepStart = time.Now()
	tools, err := s.extractor.DetectTools(ctx, meta.Title, transcript)
	if err != nil {
		return nil, err
	}
	s.logStep(ctx, "tools", stepStart)

	return &domain.AnalysisBundle{
		Metadata:   *meta,
		Summary:    *summary,
		Timestamps: timestamps,
		Tools:      tools,
	}, nil
}

// Process runs the full pipeline for one URL. With autoApprove the bundle
// goes straight into the catalog; otherwise it is staged for moderation.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoURL: YouTube URL as submitted.
//   - autoApprove: bypass the moderation gate.
// Returns:
//   - *ProcessResult: outcome with either VideoID or ReviewID set.
//   - error: non-nil only for failures the caller should treat as unexpected;
//     domain failures are folded into the result.
func (s *PipelineService) Process(ctx context.Context, videoURL string, autoApprove bool) (*ProcessResult, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return &ProcessResult{Error: err.Error()}, err
	}

	// Pre-check before spending model quota. The unique index still backs
	// this up if two submissions race.
	exists, err := s.videoRepo.ExistsByYouTubeID(ctx, videoID)
	if err != nil {
		return &ProcessResult{Error: err.Error()}, err
	}
	if exists {
		return &ProcessResult{Error: domain.ErrDuplicateVideo.Error()}, domain.ErrDuplicateVideo
	}
	if !autoApprove {
		staged, err := s.reviewRepo.HasPendingVideo(ctx, videoID)
		if err != nil {
			return &ProcessResult{Error: err.Error()}, err
		}
		if staged {
			return &ProcessResult{Error: domain.ErrDuplicateVideo.Error()}, domain.ErrDuplicateVideo
		}
	}

	bundle, err := s.Analyze(ctx, videoURL)
	if err != nil {
		return &ProcessResult{Error: err.Error()}, err
	}

	if !autoApprove {
		review, err := s.StageForReview(ctx, bundle, domain.ReviewSourceManual)
		if err != nil {
			return &ProcessResult{Error: err.Error()}, err
		}
		return &ProcessResult{ReviewID: review.ID, Success: true}, nil
	}

	persistedID, err := s.Persist(ctx, bundle, true)
	if err != nil {
		return &ProcessResult{VideoID: persistedID, Error: err.Error()}, err
	}
	return &ProcessResult{VideoID: persistedID, Success: true}, nil
}

// StageForReview stores a bundle as a pending review for later moderation.
// A video already waiting in the queue is not staged again.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - bundle: analysis output to stage.
//   - source: origin of the run (manual, discovery).
// Returns:
//   - *domain.PendingReview: created review row.
//   - error: domain.ErrDuplicateVideo if a pending review already holds the
//     video, otherwise non-nil if the insert fails.
func (s *PipelineService) StageForReview(ctx context.Context, bundle *domain.AnalysisBundle, source string) (*domain.PendingReview, error) {
	staged, err := s.reviewRepo.HasPendingVideo(ctx, bundle.Metadata.VideoID)
	if err != nil {
		return nil, fmt.Errorf("stage review: %w", err)
	}
	if staged {
		return nil, domain.ErrDuplicateVideo
	}
	review := &domain.PendingReview{
		ID:      uuid.NewString(),
		Type:    domain.ReviewTypeVideo,
		Status:  domain.ReviewStatusPending,
		Source:  source,
		RawData: domain.ReviewPayload{AnalysisBundle: *bundle},
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("stage review: %w", err)
	}
	logger.CtxInfo(ctx, "Staged video %s for review (review %s)", bundle.Metadata.VideoID, review.ID)
	return review, nil
}

// Persist writes a bundle into the catalog: the video row, its chapter
// markers, reconciled tools, and their links. Thumbnail archival is
// best-effort. A failure after the video row exists marks the row failed
// and returns a PersistenceError, so partial runs are visible in the
// catalog rather than silently half-written.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - bundle: analysis output to persist.
//   - approved: value recorded as the row's admin approval flag.
// Returns:
//   - string: catalog video ID (set even when a late step fails).
//   - error: domain.ErrDuplicateVideo or *domain.PersistenceError.
func (s *PipelineService) Persist(ctx context.Context, bundle *domain.AnalysisBundle, approved bool) (string, error) {
	ctx = logger.SetVideoID(ctx, bundle.Metadata.VideoID)

	video := &domain.Video{
		ID:               uuid.NewString(),
		YouTubeID:        bundle.Metadata.VideoID,
		Title:            bundle.Metadata.Title,
		Description:      bundle.Metadata.Description,
		ThumbnailURL:     bundle.Metadata.ThumbnailURL,
		ChannelName:      bundle.Metadata.ChannelName,
		Duration:         bundle.Metadata.Duration,
		Category:         bundle.Summary.Category,
		AISummary:        bundle.Summary.Summary,
		Highlights:       domain.StringArray(bundle.Summary.Highlights),
		ProcessingStatus: domain.ProcessingStatusProcessing,
		AdminApproved:    approved,
		PublishedAt:      bundle.Metadata.PublishedAt,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		if errors.Is(err, domain.ErrDuplicateVideo) {
			return "", err
		}
		return "", &domain.PersistenceError{Op: "create_video", Err: err}
	}

	timestamps := make([]domain.VideoTimestamp, 0, len(bundle.Timestamps))
	for i, entry := range bundle.Timestamps {
		timestamps = append(timestamps, domain.VideoTimestamp{
			ID:          uuid.NewString(),
			VideoID:     video.ID,
			Seconds:     entry.Seconds,
			Title:       entry.Title,
			Description: entry.Description,
			Position:    i,
		})
	}
	if err := s.videoRepo.CreateTimestamps(ctx, timestamps); err != nil {
		return video.ID, s.failPersist(ctx, video.ID, "create_timestamps", err)
	}

	reconciled, err := s.reconciler.Reconcile(ctx, bundle.Tools)
	if err != nil {
		return video.ID, s.failPersist(ctx, video.ID, "reconcile_tools", err)
	}
	for _, tool := range reconciled.All() {
		link := &domain.VideoToolLink{
			ID:      uuid.NewString(),
			VideoID: video.ID,
			ToolID:  tool.ID,
		}
		if err := s.videoRepo.LinkTool(ctx, link); err != nil {
			return video.ID, s.failPersist(ctx, video.ID, "link_tool", err)
		}
	}

	s.archiveThumbnail(ctx, video)

	if err := s.videoRepo.MarkCompleted(ctx, video.ID); err != nil {
		return video.ID, s.failPersist(ctx, video.ID, "mark_completed", err)
	}

	logger.CtxInfo(ctx, "Persisted video %s (%d timestamps, %d new tools, %d existing)",
		video.ID, len(timestamps), len(reconciled.Created), len(reconciled.Existing))
	return video.ID, nil
}

// failPersist records a persistence failure on the video row and wraps the
// cause.
func (s *PipelineService) failPersist(ctx context.Context, videoID, op string, cause error) error {
	perr := &domain.PersistenceError{Op: op, Err: cause}
	if err := s.videoRepo.MarkFailed(ctx, videoID, perr.Error()); err != nil {
		logger.CtxError(ctx, "Failed to mark video %s as failed: %v", videoID, err)
	}
	return perr
}

// archiveThumbnail mirrors the thumbnail into object storage. Failures are
// logged and swallowed; the catalog keeps the source URL either way.
func (s *PipelineService) archiveThumbnail(ctx context.Context, video *domain.Video) {
	if s.archiver == nil || video.ThumbnailURL == "" {
		return
	}
	key, err := s.archiver.Archive(ctx, video.YouTubeID, video.ThumbnailURL)
	if err != nil {
		logger.CtxWarn(ctx, "Thumbnail archival failed for %s: %v", video.YouTubeID, err)
		return
	}
	if err := s.videoRepo.SetArchivedThumbnail(ctx, video.ID, key); err != nil {
		logger.CtxWarn(ctx, "Failed to record archived thumbnail key: %v", err)
	}
}

// logStep emits a structured duration event for one pipeline step.
func (s *PipelineService) logStep(ctx context.Context, step string, start time.Time) {
	logger.With(logger.Fields{
		logger.FieldStep:       step,
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Pipeline step completed")
}
