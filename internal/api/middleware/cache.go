package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/toolhunt/toolhunt/internal/cache"
)

// RequestCache returns a middleware that attaches a fresh per-request cache
// to the request context. Handlers and services below share memoized reads
// for the lifetime of one request.
func RequestCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := cache.WithContext(c.Request.Context(), cache.New())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
