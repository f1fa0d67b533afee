package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/ratelimit"
)

// RateLimit throttles by client IP. A limiter backend error lets the
// request through.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			httperr.Abort(c, http.StatusTooManyRequests, httperr.CodeTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}
