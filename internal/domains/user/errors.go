package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Service-level (Business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
