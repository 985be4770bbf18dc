package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Latency delays every response by d to mimic a remote API. A zero d
// disables it.
func Latency(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
		c.Next()
	}
}
