package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request, after the handler ran.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		line := "[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s"
		args := []any{
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			float64(latency.Microseconds()) / 1000.0,
			c.ClientIP(),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			line += " errors=%q"
			args = append(args, errs)
		}
		log.Printf(line, args...)
	}
}
