package middleware

import (
	"github.com/gin-gonic/gin"

	"boxmas/internal/infrastructure/ratelimit"
	"boxmas/internal/shared/errors"
	"boxmas/internal/shared/logger"
	"boxmas/internal/shared/utils"
)

// RateLimit enforces limiter per client IP. When the limiter itself fails the
// request is let through so a Redis outage never blocks login.
func RateLimit(limiter ratelimit.RateLimiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request",
				"path", c.Request.URL.Path,
				"error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.AbortWithError(c, errors.NewRateLimitError("Too many requests, please try again later"))
			return
		}

		c.Next()
	}
}
