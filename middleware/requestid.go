package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header name used to propagate the request ID.
const RequestIDHeader = "X-Request-ID"

// RequestID injects a unique request ID into every request:
//
//   - If the client sends X-Request-ID, that value is reused (useful for
//     tracing across an upstream proxy or gateway).
//   - Otherwise a new random UUID is generated.
//
// The ID is echoed in the response header and available downstream via
// GetRequestID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set("request_id", id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request ID attached to the Gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString("request_id")
}
