package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blackpiston/internal/metrics"
)

// Metrics counts requests by route template, so /listings/:id is one series.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.Request(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
