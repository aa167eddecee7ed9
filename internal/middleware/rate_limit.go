package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wayplan/wayplan/internal/ratelimit"
)

// RateLimit returns middleware that enforces per-caller request limits.
// Authenticated callers are keyed by user ID, anonymous ones by client
// IP. A limiter failure lets the request through rather than blocking
// all traffic on a degraded store.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := UserID(c); ok {
			key = "user:" + userID.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Error("rate limit check failed", "error", err, "key", key)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}

		c.Next()
	}
}
