package middleware

import (
	"github.com/gin-gonic/gin"
)

// Gin context keys set by the middlewares in this package
const (
	ContextKeyUserID    = "userID"
	ContextKeyEmail     = "email"
	ContextKeyRole      = "role"
	ContextKeyTokenID   = "tokenID"
	ContextKeyRequestID = "request_id"
	ContextKeyClientIP  = "client_ip"
)

// GetUserID returns the authenticated user id, "" on public routes
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

func GetRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}

func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == "admin"
}
