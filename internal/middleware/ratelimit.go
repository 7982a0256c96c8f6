package middleware

import (
	"math"
	"strconv"
	"time"

	"artisan-marketplace-backend/internal/apperrors"
	"artisan-marketplace-backend/internal/logging"
	"artisan-marketplace-backend/internal/metrics"
	"artisan-marketplace-backend/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

var internalError = apperrors.New(apperrors.CodeInternal, "internal server error")

func rateKey(c *gin.Context) string {
	if userID, ok := UserID(c); ok {
		return "user:" + userID.String()
	}
	return "ip:" + c.ClientIP()
}

// Throttle applies the general per-caller token bucket.
func Throttle(t *ratelimit.Throttle, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t.Allow(rateKey(c)) {
			c.Next()
			return
		}
		m.RateLimited("api")
		c.Header("Retry-After", "1")
		AbortWithError(c, apperrors.WithMetadata(apperrors.CodeRateLimited, "too many requests",
			map[string]string{"RetryAfter": "1"}))
	}
}

// GenerationLimit enforces the fixed-window budget for AI generations. A
// limiter failure lets the request through, since the limit is soft.
func GenerationLimit(limiter ratelimit.Limiter, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), rateKey(c))
		if err != nil {
			logging.FromContext(c).WithError(err).Warn("generation rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if decision.Allowed {
			c.Next()
			return
		}

		retryAfter := strconv.Itoa(int(math.Ceil(decision.RetryAfter(time.Now()).Seconds())))
		m.RateLimited("generation")
		c.Header("Retry-After", retryAfter)
		AbortWithError(c, apperrors.WithMetadata(apperrors.CodeRateLimited, "generation limit reached",
			map[string]string{"RetryAfter": retryAfter}))
	}
}
