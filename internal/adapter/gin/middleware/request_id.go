package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"twitter-api/pkg/logger"
)

// RequestID propagates the X-Request-ID header, generating one when absent,
// and stores it on the request context for logging.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(logger.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Header(logger.RequestIDHeader, requestID)
		c.Next()
	}
}
