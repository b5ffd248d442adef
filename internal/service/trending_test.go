package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/youtube"
)

type fakeSearcher struct {
	results map[string][]youtube.SearchResult
	queried []string
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, publishedAfter time.Time, maxResults int) ([]youtube.SearchResult, error) {
	f.queried = append(f.queried, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func newTrendingService(env *testEnv, searcher *fakeSearcher, cfg TrendingConfig) *TrendingService {
	svc := NewTrendingService(env.videoRepo, env.reviewRepo, searcher, env.pipeline, env.pipeline.logger, cfg)
	// identity shuffle so query sampling is deterministic
	svc.shuffle = func(n int, swap func(i, j int)) {}
	return svc
}

func TestDiscoverStagesSurvivors(t *testing.T) {
	env := newTestEnv(t)
	searcher := &fakeSearcher{results: map[string][]youtube.SearchResult{
		"ai tools": {
			{VideoID: "aaaaaaaaaaa", Title: "Popular", ViewCount: 50000, Duration: 600},
			{VideoID: "bbbbbbbbbbb", Title: "Obscure", ViewCount: 40, Duration: 600},
			{VideoID: "ccccccccccc", Title: "Short", ViewCount: 50000, Duration: 30},
		},
	}}
	svc := newTrendingService(env, searcher, TrendingConfig{
		Queries:       []string{"ai tools"},
		QueriesPerRun: 1,
	})

	report, err := svc.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ai tools"}, report.Queries)
	assert.Equal(t, 3, report.Candidates)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, report.Staged)
	assert.Empty(t, report.Failures)

	reviews, err := env.reviewRepo.List(context.Background(), domain.ReviewStatusPending, "", 50, 0)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, domain.ReviewSourceDiscovery, reviews[0].Source)
	assert.Equal(t, "aaaaaaaaaaa", reviews[0].RawData.Metadata.VideoID)
}

func TestDiscoverSkipsKnownVideos(t *testing.T) {
	env := newTestEnv(t)

	// already in the catalog
	_, err := env.pipeline.Process(context.Background(), testWatchURL, true)
	require.NoError(t, err)
	// already staged for review
	_, err = env.pipeline.Process(context.Background(), "https://youtu.be/aaaaaaaaaaa", false)
	require.NoError(t, err)

	searcher := &fakeSearcher{results: map[string][]youtube.SearchResult{
		"ai tools": {
			{VideoID: "dQw4w9WgXcQ", ViewCount: 90000, Duration: 900},
			{VideoID: "aaaaaaaaaaa", ViewCount: 90000, Duration: 900},
			{VideoID: "fffffffffff", ViewCount: 90000, Duration: 900},
		},
	}}
	svc := newTrendingService(env, searcher, TrendingConfig{
		Queries:       []string{"ai tools"},
		QueriesPerRun: 1,
	})

	report, err := svc.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, report.Staged)

	reviews, err := env.reviewRepo.List(context.Background(), domain.ReviewStatusPending, "", 50, 0)
	require.NoError(t, err)
	staged := make(map[string]bool)
	for _, r := range reviews {
		staged[r.RawData.Metadata.VideoID] = true
	}
	assert.True(t, staged["fffffffffff"])
}

func TestDiscoverQuerySampling(t *testing.T) {
	env := newTestEnv(t)
	searcher := &fakeSearcher{results: map[string][]youtube.SearchResult{}}
	svc := newTrendingService(env, searcher, TrendingConfig{
		Queries:       []string{"first", "second", "third"},
		QueriesPerRun: 2,
	})

	report, err := svc.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, report.Queries)
	assert.Equal(t, []string{"first", "second"}, searcher.queried)
	assert.Equal(t, 0, report.Candidates)
}

func TestDiscoverDedupesAcrossQueries(t *testing.T) {
	env := newTestEnv(t)
	shared := youtube.SearchResult{VideoID: "aaaaaaaaaaa", ViewCount: 90000, Duration: 900}
	searcher := &fakeSearcher{results: map[string][]youtube.SearchResult{
		"first":  {shared},
		"second": {shared},
	}}
	svc := newTrendingService(env, searcher, TrendingConfig{
		Queries:       []string{"first", "second"},
		QueriesPerRun: 2,
	})

	report, err := svc.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Candidates)
	assert.Equal(t, 1, report.Staged)
}

func TestDiscoverCapsAtMaxResults(t *testing.T) {
	env := newTestEnv(t)
	searcher := &fakeSearcher{results: map[string][]youtube.SearchResult{
		"ai tools": {
			{VideoID: "aaaaaaaaaaa", ViewCount: 10000, Duration: 900},
			{VideoID: "bbbbbbbbbbb", ViewCount: 30000, Duration: 900},
			{VideoID: "ccccccccccc", ViewCount: 20000, Duration: 900},
		},
	}}
	svc := newTrendingService(env, searcher, TrendingConfig{
		Queries:       []string{"ai tools"},
		QueriesPerRun: 1,
		MaxResults:    2,
	})

	report, err := svc.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Staged)

	reviews, err := env.reviewRepo.List(context.Background(), domain.ReviewStatusPending, "", 50, 0)
	require.NoError(t, err)
	staged := make(map[string]bool)
	for _, r := range reviews {
		staged[r.RawData.Metadata.VideoID] = true
	}
	// the two highest view counts survive the cap
	assert.True(t, staged["bbbbbbbbbbb"])
	assert.True(t, staged["ccccccccccc"])
	assert.False(t, staged["aaaaaaaaaaa"])
}

func TestDiscoverAnalysisFailureNonFatal(t *testing.T) {
	env := newTestEnv(t)
	env.extractor.summaryErr = domain.NewExtractionError(domain.StageSummary, errors.New("model unavailable"))

	searcher := &fakeSearcher{results: map[string][]youtube.SearchResult{
		"ai tools": {
			{VideoID: "aaaaaaaaaaa", ViewCount: 90000, Duration: 900},
		},
	}}
	svc := newTrendingService(env, searcher, TrendingConfig{
		Queries:       []string{"ai tools"},
		QueriesPerRun: 1,
	})

	report, err := svc.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Staged)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "aaaaaaaaaaa", report.Failures[0].VideoID)
}

func TestDiscoverSearchFailureAborts(t *testing.T) {
	env := newTestEnv(t)
	searcher := &fakeSearcher{err: errors.New("quota exceeded")}
	svc := newTrendingService(env, searcher, TrendingConfig{
		Queries:       []string{"ai tools"},
		QueriesPerRun: 1,
	})

	_, err := svc.Discover(context.Background())
	assert.Error(t, err)
}
