package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/knowhive/knowhive/internal/models"
	"github.com/knowhive/knowhive/internal/repository"
	"github.com/knowhive/knowhive/internal/utils"
)

// contextUserKey is where AuthMiddleware stores the resolved user.
const contextUserKey = "currentUser"

// AuthMiddleware guards private routes. It extracts the bearer token from
// the Authorization header, verifies signature and expiry, then resolves
// the embedded id to a live user record — a valid token for a deleted
// account is rejected. Every failure path is an explicit 401.
func AuthMiddleware(userRepo *repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to resolve user",
			})
			c.Abort()
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "User no longer exists",
			})
			c.Abort()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware. Only valid on
// routes behind the middleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(contextUserKey).(*models.User)
}
