package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/service"
)

// VideoHandler handles video catalog and admin ingestion endpoints.
type VideoHandler struct {
	pipeline *service.PipelineService
	catalog  *service.CatalogService
}

// NewVideoHandler creates a new video handler.
// Parameters:
//   - pipeline: pipeline service instance.
//   - catalog: catalog service instance.
// Returns:
//   - *VideoHandler: initialized handler.
func NewVideoHandler(pipeline *service.PipelineService, catalog *service.CatalogService) *VideoHandler {
	return &VideoHandler{
		pipeline: pipeline,
		catalog:  catalog,
	}
}

// AnalyzeRequest represents the analyze API request.
type AnalyzeRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
}

// ProcessRequest represents the process API request.
type ProcessRequest struct {
	VideoURL    string `json:"video_url" binding:"required"`
	AutoApprove bool   `json:"auto_approve"`
}

// SaveRequest represents the save API request carrying a previously
// analyzed bundle.
type SaveRequest struct {
	Bundle      domain.AnalysisBundle `json:"bundle" binding:"required"`
	AutoApprove bool                  `json:"auto_approve"`
}

// List handles GET /api/v1/videos.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *VideoHandler) List(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	videos, err := h.catalog.ListVideos(c.Request.Context(), c.Query("category"), limit, offset)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  len(videos),
	})
}

// Get handles GET /api/v1/videos/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.catalog.GetVideo(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, video)
}

// Delete handles DELETE /api/v1/admin/videos/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteVideo(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// Analyze handles POST /api/v1/admin/videos/analyze.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *VideoHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	bundle, err := h.pipeline.Analyze(c.Request.Context(), req.VideoURL)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"bundle":  bundle,
	})
}

// Process handles POST /api/v1/admin/videos/process.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *VideoHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.pipeline.Process(c.Request.Context(), req.VideoURL, req.AutoApprove)
	if err != nil {
		c.JSON(statusForError(err), result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Save handles POST /api/v1/admin/videos/save. It persists a bundle the
// admin already reviewed client-side, skipping re-analysis.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *VideoHandler) Save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	if req.Bundle.Metadata.VideoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Bundle is missing video metadata",
		})
		return
	}

	if !req.AutoApprove {
		review, err := h.pipeline.StageForReview(c.Request.Context(), &req.Bundle, domain.ReviewSourceManual)
		if err != nil {
			c.JSON(statusForError(err), gin.H{
				"success": false,
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"review_id": review.ID,
		})
		return
	}

	videoID, err := h.pipeline.Persist(c.Request.Context(), &req.Bundle, true)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"video_id": videoID,
	})
}
