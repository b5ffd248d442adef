package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toolhunt/toolhunt/internal/api/middleware"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/service"
)

// ReviewHandler handles moderation queue endpoints.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new review handler.
// Parameters:
//   - reviews: review service instance.
// Returns:
//   - *ReviewHandler: initialized handler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
	}
}

// UpdateReviewRequest represents the payload edit request.
type UpdateReviewRequest struct {
	RawData domain.AnalysisBundle `json:"raw_data" binding:"required"`
}

// ApproveRequest represents the approve request with an optional edited
// bundle that replaces the staged payload.
type ApproveRequest struct {
	EditedData *domain.AnalysisBundle `json:"edited_data"`
}

// RejectRequest represents the reject request.
type RejectRequest struct {
	Notes string `json:"notes"`
}

// List handles GET /api/v1/admin/reviews. Without an explicit status the
// queue of pending reviews is returned; "all" lists every status.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) List(c *gin.Context) {
	status := domain.ReviewStatus(c.DefaultQuery("status", string(domain.ReviewStatusPending)))
	if status == "all" {
		status = ""
	}
	reviewType := domain.ReviewType(c.Query("type"))

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

	reviews, err := h.reviews.List(c.Request.Context(), status, reviewType, limit, offset)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// Get handles GET /api/v1/admin/reviews/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, review)
}

// Update handles PUT /api/v1/admin/reviews/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) Update(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	if err := h.reviews.UpdatePayload(c.Request.Context(), c.Param("id"), &req.RawData); err != nil {
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

// Approve handles POST /api/v1/admin/reviews/:id/approve.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) Approve(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	videoID, err := h.reviews.Approve(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.EditedData)
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

// Reject handles POST /api/v1/admin/reviews/:id/reject.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ReviewHandler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	if err := h.reviews.Reject(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Notes); err != nil {
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
