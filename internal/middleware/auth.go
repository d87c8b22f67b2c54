package middleware

import (
	"net/http"
	"strings"

	"makemeshort/internal/jwt"

	"github.com/gin-gonic/gin"
)

// Context keys populated by AuthRequired for downstream gates and handlers.
const (
	ContextClaims   = "claims"
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRoles    = "roles"
)

// AuthRequired validates the Bearer token and attaches its claims to the
// request context. Unauthenticated requests are short-circuited; public
// routes (login, signup, init, redirect, health check) are registered
// outside the gated group instead.
func AuthRequired(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "No authorization header",
			})
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format",
			})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Subject)
		c.Set(ContextRoles, claims.Roles)

		c.Next()
	}
}

// CallerUserID returns the authenticated user's id from the context.
func CallerUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// CallerRoles returns the authenticated user's role set from the context.
func CallerRoles(c *gin.Context) []string {
	v, exists := c.Get(ContextRoles)
	if !exists {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}
