package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/cashdesk-api/internal/observability/metrics"
)

// MetricsMiddleware records count and latency of every request by route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
