package middleware

import (
	"time"

	"github.com/creatorkit/server/internal/utils/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts, latency and in-flight requests. Paths are
// the registered route templates so label cardinality stays bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
