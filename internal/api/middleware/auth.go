package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toolhunt/toolhunt/internal/logger"
)

// AuthConfig holds the identity headers and the cron shared secret.
// Identity is asserted by a trusted proxy upstream; the API only reads
// the headers it is configured to trust.
type AuthConfig struct {
	UserHeader string
	RoleHeader string
	CronSecret string
}

// RequireRole returns a middleware that rejects requests whose role header
// does not match one of the allowed roles.
// Parameters:
//   - cfg: auth configuration.
//   - roles: accepted role values.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequireRole(cfg AuthConfig, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		userID := c.GetHeader(cfg.UserHeader)
		role := c.GetHeader(cfg.RoleHeader)

		if userID == "" || !allowed[role] {
			logger.CtxWarn(c.Request.Context(), "Rejected admin request: path=%s, role=%q", c.Request.URL.Path, role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("user_role", role)
		c.Next()
	}
}

// RequireCronSecret returns a middleware that guards scheduler endpoints
// with a bearer secret.
// Parameters:
//   - secret: the shared secret; an empty secret rejects every request.
// Returns:
//   - gin.HandlerFunc: middleware handler.
func RequireCronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Next()
	}
}

// UserID extracts the authenticated user ID set by RequireRole.
// Parameters:
//   - c: Gin request context.
// Returns:
//   - string: user ID or empty string.
func UserID(c *gin.Context) string {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
