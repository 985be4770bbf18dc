package user

import (
	"context"
	"time"
)

// Repository is the account store
type Repository interface {
	// FindByEmail returns ErrUserNotFound when no account matches
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// TokenRepository tracks issued refresh tokens and revoked access tokens by jti
type TokenRepository interface {
	SaveRefresh(ctx context.Context, jti, userID string, expiresAt time.Time) error

	// ConsumeRefresh removes the refresh token and returns its owner. A token
	// can be consumed once; ok is false for unknown, revoked or used tokens.
	ConsumeRefresh(ctx context.Context, jti string) (userID string, ok bool, err error)

	RevokeRefresh(ctx context.Context, jti string) error
	RevokeAccess(ctx context.Context, jti string, expiresAt time.Time) error
	IsAccessRevoked(jti string) bool
}
