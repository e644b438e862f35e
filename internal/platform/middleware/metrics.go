package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"feedback-chat/backend/internal/platform/metrics"
)

// Metrics instruments HTTP request counts/latency when metrics are enabled.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
