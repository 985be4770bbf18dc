package middleware

import (
	"storefront/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware checks if user has admin role. Runs after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
