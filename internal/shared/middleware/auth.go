package middleware

import (
	"strings"
	"time"

	"storefront/internal/shared/response"
	"storefront/pkg/jwt"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RevocationChecker reports access tokens revoked by logout
type RevocationChecker interface {
	IsAccessRevoked(jti string) bool
}

// AuthMiddleware validates the bearer access token and stores its claims
// in the gin context
func AuthMiddleware(jwtManager *jwt.Manager, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 2. Verify signature, expiry and token type
		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			logger.Debug("rejected access token: " + err.Error())
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		// 3. Logged-out tokens stay rejected until they expire
		if revoked != nil && revoked.IsAccessRevoked(claims.ID) {
			response.Unauthorized(c, "token has been revoked")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_expires_at", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// TokenExpiry returns the expiry of the access token on the request
func TokenExpiry(c *gin.Context) time.Time {
	return c.GetTime("token_expires_at")
}
