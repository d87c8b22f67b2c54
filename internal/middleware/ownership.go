package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireOwnership rejects callers whose id does not match the named path
// parameter. A route without the parameter is treated as a collection-level
// route and passes through. Must run after AuthRequired.
func RequireOwnership(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := CallerUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "User not authenticated",
			})
			return
		}

		ownerID := c.Param(paramName)
		if ownerID == "" {
			c.Next()
			return
		}

		if callerID != ownerID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Access denied: you can only access your own resources",
			})
			return
		}

		c.Next()
	}
}
