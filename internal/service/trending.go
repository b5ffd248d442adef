package service

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
	"github.com/toolhunt/toolhunt/internal/youtube"
)

// VideoSearcher runs keyword searches against the video index.
type VideoSearcher interface {
	Search(ctx context.Context, query string, publishedAfter time.Time, maxResults int) ([]youtube.SearchResult, error)
}

// TrendingService discovers candidate videos from rotating topical searches
// and stages them for moderation. Discovered videos never enter the catalog
// directly.
type TrendingService struct {
	videoRepo  *repository.VideoRepository
	reviewRepo *repository.ReviewRepository
	searcher   VideoSearcher
	pipeline   *PipelineService
	logger     *logger.Logger
	cfg        TrendingConfig

	// shuffle is swappable so tests get deterministic query sampling
	shuffle func(n int, swap func(i, j int))
}

// TrendingConfig holds discovery thresholds.
type TrendingConfig struct {
	Queries       []string
	QueriesPerRun int
	LookbackDays  int
	MinViews      int64
	MinDuration   int
	MaxResults    int
}

// NewTrendingService creates a new TrendingService.
func NewTrendingService(
	videoRepo *repository.VideoRepository,
	reviewRepo *repository.ReviewRepository,
	searcher VideoSearcher,
	pipeline *PipelineService,
	log *logger.Logger,
	cfg TrendingConfig,
) *TrendingService {
	if cfg.QueriesPerRun <= 0 {
		cfg.QueriesPerRun = 2
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 14
	}
	if cfg.MinViews <= 0 {
		cfg.MinViews = 1000
	}
	if cfg.MinDuration <= 0 {
		cfg.MinDuration = 60
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	return &TrendingService{
		videoRepo:  videoRepo,
		reviewRepo: reviewRepo,
		searcher:   searcher,
		pipeline:   pipeline,
		logger:     log,
		cfg:        cfg,
		shuffle:    rand.Shuffle,
	}
}

// DiscoveryFailure records one candidate whose analysis failed.
type DiscoveryFailure struct {
	VideoID string `json:"video_id"`
	Error   string `json:"error"`
}

// DiscoveryReport summarizes one discovery run.
type DiscoveryReport struct {
	Queries    []string           `json:"queries"`
	Candidates int                `json:"candidates"`
	Skipped    int                `json:"skipped"`
	Staged     int                `json:"staged"`
	Failures   []DiscoveryFailure `json:"failures,omitempty"`
}

// Discover runs one discovery pass: sample queries, search, filter, analyze
// survivors, stage each as a pending review. Per-candidate analysis
// failures are recorded in the report, not fatal to the batch.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - *DiscoveryReport: run summary.
//   - error: non-nil only when the run cannot proceed at all (search or
//     catalog lookups failing).
func (s *TrendingService) Discover(ctx context.Context) (*DiscoveryReport, error) {
	queries := s.sampleQueries()
	report := &DiscoveryReport{Queries: queries}

	logger.CtxInfo(ctx, "Starting trending discovery with queries %v", queries)

	known, err := s.knownVideoIDs(ctx)
	if err != nil {
		return nil, err
	}

	publishedAfter := time.Now().AddDate(0, 0, -s.cfg.LookbackDays)
	candidates := make(map[string]youtube.SearchResult)
	for _, query := range queries {
		results, err := s.searcher.Search(ctx, query, publishedAfter, s.cfg.MaxResults)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			candidates[r.VideoID] = r
		}
	}
	report.Candidates = len(candidates)

	kept := make([]youtube.SearchResult, 0, len(candidates))
	for _, r := range candidates {
		if known[r.VideoID] || r.ViewCount < s.cfg.MinViews || r.Duration < s.cfg.MinDuration {
			report.Skipped++
			continue
		}
		kept = append(kept, r)
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].ViewCount > kept[j].ViewCount
	})
	if len(kept) > s.cfg.MaxResults {
		kept = kept[:s.cfg.MaxResults]
	}

	for _, r := range kept {
		bundle, err := s.pipeline.Analyze(ctx, youtube.WatchURL(r.VideoID))
		if err != nil {
			logger.CtxWarn(ctx, "Discovery analysis failed for %s: %v", r.VideoID, err)
			report.Failures = append(report.Failures, DiscoveryFailure{
				VideoID: r.VideoID,
				Error:   err.Error(),
			})
			continue
		}
		if _, err := s.pipeline.StageForReview(ctx, bundle, domain.ReviewSourceDiscovery); err != nil {
			report.Failures = append(report.Failures, DiscoveryFailure{
				VideoID: r.VideoID,
				Error:   err.Error(),
			})
			continue
		}
		report.Staged++
	}

	logger.With(logger.Fields{
		logger.FieldCount: report.Staged,
	}).Info(ctx, "Trending discovery finished: %d candidates, %d skipped, %d staged, %d failed",
		report.Candidates, report.Skipped, report.Staged, len(report.Failures))
	return report, nil
}

// sampleQueries picks QueriesPerRun distinct queries at random.
func (s *TrendingService) sampleQueries() []string {
	queries := make([]string, len(s.cfg.Queries))
	copy(queries, s.cfg.Queries)
	s.shuffle(len(queries), func(i, j int) {
		queries[i], queries[j] = queries[j], queries[i]
	})
	n := s.cfg.QueriesPerRun
	if n > len(queries) {
		n = len(queries)
	}
	return queries[:n]
}

// knownVideoIDs builds the skip set: everything already in the catalog plus
// everything staged in a pending or approved video review.
func (s *TrendingService) knownVideoIDs(ctx context.Context) (map[string]bool, error) {
	known := make(map[string]bool)

	catalogIDs, err := s.videoRepo.ListYouTubeIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range catalogIDs {
		known[id] = true
	}

	stagedIDs, err := s.reviewRepo.ListStagedVideoIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range stagedIDs {
		known[id] = true
	}
	return known, nil
}
