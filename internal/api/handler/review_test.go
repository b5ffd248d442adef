package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolhunt/toolhunt/internal/config"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/logger"
	"github.com/toolhunt/toolhunt/internal/repository"
	"github.com/toolhunt/toolhunt/internal/service"
)

var handlerDBCounter int

// newReviewAPI builds a router exposing the review list endpoint over an
// in-memory database seeded with reviews in every status.
func newReviewAPI(t *testing.T) (*gin.Engine, *repository.ReviewRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handlerDBCounter++
	db, err := repository.InitDB(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", handlerDBCounter),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		AutoMigrate:  true,
	})
	require.NoError(t, err)

	reviewRepo := repository.NewReviewRepository(db)
	log := logger.New(&logger.Config{Level: "error", Format: "text"})
	h := NewReviewHandler(service.NewReviewService(reviewRepo, nil, log))

	r := gin.New()
	r.GET("/reviews", h.List)
	return r, reviewRepo
}

func seedReview(t *testing.T, repo *repository.ReviewRepository, id string, status domain.ReviewStatus) {
	t.Helper()
	err := repo.Create(context.Background(), &domain.PendingReview{
		ID:     id,
		Type:   domain.ReviewTypeVideo,
		Status: status,
		Source: domain.ReviewSourceManual,
		RawData: domain.ReviewPayload{
			AnalysisBundle: domain.AnalysisBundle{
				Metadata: domain.VideoMetadata{VideoID: "vid-" + id},
			},
		},
	})
	require.NoError(t, err)
}

func listReviews(t *testing.T, r *gin.Engine, query string) []domain.PendingReview {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reviews"+query, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Reviews []domain.PendingReview `json:"reviews"`
		Total   int                    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Reviews
}

func TestReviewListDefaultsToPending(t *testing.T) {
	r, repo := newReviewAPI(t)
	seedReview(t, repo, "r1", domain.ReviewStatusPending)
	seedReview(t, repo, "r2", domain.ReviewStatusApproved)
	seedReview(t, repo, "r3", domain.ReviewStatusRejected)

	reviews := listReviews(t, r, "")
	require.Len(t, reviews, 1)
	assert.Equal(t, "r1", reviews[0].ID)
	assert.Equal(t, domain.ReviewStatusPending, reviews[0].Status)
}

func TestReviewListFiltersByStatus(t *testing.T) {
	r, repo := newReviewAPI(t)
	seedReview(t, repo, "r1", domain.ReviewStatusPending)
	seedReview(t, repo, "r2", domain.ReviewStatusRejected)

	reviews := listReviews(t, r, "?status=rejected")
	require.Len(t, reviews, 1)
	assert.Equal(t, "r2", reviews[0].ID)
}

func TestReviewListAllStatuses(t *testing.T) {
	r, repo := newReviewAPI(t)
	seedReview(t, repo, "r1", domain.ReviewStatusPending)
	seedReview(t, repo, "r2", domain.ReviewStatusApproved)
	seedReview(t, repo, "r3", domain.ReviewStatusRejected)

	reviews := listReviews(t, r, "?status=all")
	assert.Len(t, reviews, 3)
}
