package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Latency delays every request by d, for exercising loading states in the
// front ends. Zero disables it.
func Latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d > 0 {
			t := time.NewTimer(d)
			select {
			case <-t.C:
			case <-c.Request.Context().Done():
				t.Stop()
			}
		}
		c.Next()
	}
}
