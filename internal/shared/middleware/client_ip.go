package middleware

import (
	"storefront/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

// ClientIPMiddleware stores the client IP for the logger and rate limiter.
// Register it early in the chain.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyClientIP, utils.ExtractClientIP(c))
		c.Next()
	}
}
