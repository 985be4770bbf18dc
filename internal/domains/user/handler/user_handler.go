package handler

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domains/user"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/middleware"
	"storefront/internal/shared/response"
	"storefront/pkg/jwt"
	"storefront/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// UserHandler serves the /auth endpoints
type UserHandler struct {
	service    user.Service
	jwtManager *jwt.Manager
}

func NewUserHandler(service user.Service, jwtManager *jwt.Manager) *UserHandler {
	return &UserHandler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Login handles POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// RefreshToken handles POST /auth/refresh
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokens)
}

// Logout handles POST /auth/logout. It needs no valid session: a present
// and valid access token is revoked along with the refresh token in the body.
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	var (
		jti string
		exp = middleware.TokenExpiry(c)
	)
	if bearer, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		if claims, err := h.jwtManager.ValidateAccessToken(bearer); err == nil {
			jti = claims.ID
			if claims.ExpiresAt != nil {
				exp = claims.ExpiresAt.Time
			}
		}
	}

	if err := h.service.Logout(c.Request.Context(), req.RefreshToken, jti, exp); err != nil {
		h.handleError(c, err)
		return
	}
	response.NoContent(c)
}

// Me handles GET /auth/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)

	// 401 Unauthorized - authentication failed
	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInvalidToken):
		response.Unauthorized(c, err.Error())

	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	default:
		logger.Error("auth request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
