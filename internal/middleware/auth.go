package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards admin endpoints using the X-Admin-API-Key
// header. When ADMIN_API_KEY is unset the middleware is a passthrough so
// local development works without credentials.
func AdminAuthMiddleware() gin.HandlerFunc {
	apiKey := os.Getenv("ADMIN_API_KEY")
	if apiKey == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	apiKeyBytes := []byte(apiKey)

	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-API-Key")
		// Use subtle.ConstantTimeCompare to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(key), apiKeyBytes) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Next()
	}
}
