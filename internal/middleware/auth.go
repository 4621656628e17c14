package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zapshift/zapshift-server/internal/models"
	"github.com/zapshift/zapshift-server/internal/services"
	"github.com/zapshift/zapshift-server/internal/store"
)

// EmailKey is the context key holding the verified caller email.
const EmailKey = "userEmail"

// VerifyToken checks the Authorization header against the identity provider
// and attaches the verified email to the request context.
func VerifyToken(verifier services.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// WebSocket clients can't set headers, so accept a query token too
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"message": "Unauthorized access"})
			c.Abort()
			return
		}

		email, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(401, gin.H{"message": "Unauthorized access"})
			c.Abort()
			return
		}

		c.Set(EmailKey, email)
		c.Next()
	}
}

// RequireAdmin checks the stored role of the verified caller. Must run after
// VerifyToken.
func RequireAdmin(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(EmailKey)

		user, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to look up user"})
			c.Abort()
			return
		}
		if user == nil || user.Role != models.RoleAdmin {
			c.JSON(403, gin.H{"message": "Forbidden access"})
			c.Abort()
			return
		}

		c.Next()
	}
}
