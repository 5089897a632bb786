package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"pc_house/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// EmailKey is the gin context key holding the verified email claim
const EmailKey = "email"

// JWTAuthMiddleware validates bearer tokens and stores the email claim in the context.
// A missing credential is 401, a credential that fails verification is 403.
func JWTAuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, err := tokens.ParseJWT(tokenStr) // Parse and verify the token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"error":      err.Error(),
			}).Debug("Token rejected")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Set(EmailKey, claims.Email) // Store email in context
		c.Next()                      // Proceed to the next handler
	}
}

// GetEmail returns the verified email claim set by JWTAuthMiddleware
func GetEmail(c *gin.Context) (string, bool) {
	email := c.GetString(EmailKey)
	return email, email != ""
}
