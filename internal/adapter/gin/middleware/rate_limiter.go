package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"twitter-api/internal/adapter/ratelimit"
)

// RateLimiter returns a Gin middleware for rate limiting using the token bucket limiter.
// Buckets are per method, route and client IP.
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := ratelimit.Key("http", c.Request.Method+" "+route, c.ClientIP())

		if !limiter.Allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": limiter.Message(),
			})
			return
		}

		c.Next()
	}
}
