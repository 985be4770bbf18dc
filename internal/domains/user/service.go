package user

import (
	"context"
	"time"

	"storefront/internal/shared/dto"
)

// Service is the auth business logic of the mock backend
type Service interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Refresh rotates the pair: the presented refresh token stops working
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthTokens, error)

	// Logout revokes the refresh token and, when given, the access token jti
	Logout(ctx context.Context, refreshToken, accessJTI string, accessExpiresAt time.Time) error

	Me(ctx context.Context, userID string) (*dto.User, error)
}
