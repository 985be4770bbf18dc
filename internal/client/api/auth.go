package api

import (
	"context"

	"storefront/internal/shared/dto"
)

type AuthAPI struct {
	doer Doer
}

// Login exchanges credentials for a token pair. It does not persist them.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := publicPost(ctx, a.doer, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*dto.User, error) {
	var out dto.User
	if err := a.doer.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the refresh token server-side
func (a *AuthAPI) Logout(ctx context.Context, refreshToken string) error {
	return a.doer.Post(ctx, "/auth/logout", dto.LogoutRequest{RefreshToken: refreshToken}, nil)
}
