package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toolhunt/toolhunt/internal/service"
)

// TrendingHandler handles the scheduled discovery endpoint.
type TrendingHandler struct {
	trending *service.TrendingService
}

// NewTrendingHandler creates a new trending handler.
// Parameters:
//   - trending: trending service instance.
// Returns:
//   - *TrendingHandler: initialized handler.
func NewTrendingHandler(trending *service.TrendingService) *TrendingHandler {
	return &TrendingHandler{
		trending: trending,
	}
}

// Discover handles GET /api/v1/cron/discover-trending. Invoked by an
// external scheduler; the run executes synchronously and the report is
// the response body.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TrendingHandler) Discover(c *gin.Context) {
	report, err := h.trending.Discover(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  report,
	})
}
