package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/toolhunt/toolhunt/internal/domain"
	"github.com/toolhunt/toolhunt/internal/service"
)

// ToolHandler handles public tool catalog endpoints.
type ToolHandler struct {
	catalog *service.CatalogService
}

// NewToolHandler creates a new tool handler.
// Parameters:
//   - catalog: catalog service instance.
// Returns:
//   - *ToolHandler: initialized handler.
func NewToolHandler(catalog *service.CatalogService) *ToolHandler {
	return &ToolHandler{
		catalog: catalog,
	}
}

// List handles GET /api/v1/tools.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ToolHandler) List(c *gin.Context) {
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

	tools, err := h.catalog.ListTools(
		c.Request.Context(),
		c.Query("category"),
		domain.ToolStatus(c.Query("status")),
		limit, offset,
	)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tools": tools,
		"total": len(tools),
	})
}

// Get handles GET /api/v1/tools/:id. Tools are addressed by slug on the
// public read path.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ToolHandler) Get(c *gin.Context) {
	tool, err := h.catalog.GetToolBySlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, tool)
}

// GetCategories handles GET /api/v1/tools/categories.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ToolHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.GetCategories(c.Request.Context())
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

// Hunt handles POST /api/v1/tools/:id/hunt. The counter is incremented
// server-side; clients never submit a count.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ToolHandler) Hunt(c *gin.Context) {
	tool, err := h.catalog.Hunt(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"hunt_count": tool.HuntCount,
	})
}

// Unhunt handles DELETE /api/v1/tools/:id/hunt.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ToolHandler) Unhunt(c *gin.Context) {
	tool, err := h.catalog.Unhunt(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"hunt_count": tool.HuntCount,
	})
}

// Click handles POST /api/v1/tools/:id/click, recording an outbound
// website click.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ToolHandler) Click(c *gin.Context) {
	if err := h.catalog.RecordClick(c.Request.Context(), c.Param("id")); err != nil {
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
