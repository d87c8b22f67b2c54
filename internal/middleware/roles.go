package middleware

import (
	"net/http"

	"makemeshort/internal/entities"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects callers whose role set does not intersect the
// required set. SuperUser always passes. Must run after AuthRequired.
func RequireRoles(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextClaims); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		if !entities.HasAnyRole(CallerRoles(c), required...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			return
		}

		c.Next()
	}
}
