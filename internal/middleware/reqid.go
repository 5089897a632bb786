package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request id generation
)

// Request id propagation
const (
	RequestIDHeader = "X-Request-ID" // Header read from and echoed to clients
	RequestIDKey    = "request_id"   // gin context key
)

// RequestIDMiddleware reuses an upstream X-Request-ID or generates a new one
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
