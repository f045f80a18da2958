package middlewares

import (
	"net/http"
	"strings"

	"codearena/internal/models"
	"codearena/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	UserContextKey     = "userID"
	UsernameContextKey = "username"
	RoleContextKey     = "role"
)

// AuthMiddleware creates a middleware that enforces authentication.
// It validates the access token from the cookie and sets the userID in the context.
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, claims.UserID)
		c.Set(UsernameContextKey, claims.Username)
		c.Set(RoleContextKey, claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware creates a middleware that checks for authentication but doesn't enforce it.
// If a valid token is present, it sets the userID in the context. Otherwise, it continues without it.
func OptionalAuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("access_token")
		if err != nil || strings.TrimSpace(tokenString) == "" {
			c.Next()
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err == nil && claims != nil {
			c.Set(UserContextKey, claims.UserID)
			c.Set(RoleContextKey, claims.Role)
		}

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware. Problem authoring endpoints are
// restricted to admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(RoleContextKey)
		if !ok || role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
