package middleware

import (
	"strconv"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/circleops/salesops-backend/internal/services"
	"github.com/circleops/salesops-backend/internal/utils"
)

// RateLimitMiddleware limits requests per client IP
func RateLimitMiddleware(limiter *services.RateLimitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := utils.GetRealIP(c)
		if rlErr := limiter.Reserve("ip:" + ip); rlErr != nil {
			retryAfter := int(math.Ceil(rlErr.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			abortWithError(c, http.StatusTooManyRequests, "rate_limited", "RATE_LIMITED", rlErr.Message)
			return
		}
		c.Next()
	}
}
