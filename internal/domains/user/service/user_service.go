package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domains/user"
	"storefront/internal/shared/dto"
	"storefront/pkg/jwt"
	"storefront/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	tokens     user.TokenRepository
	jwtManager *jwt.Manager
}

func NewUserService(repo user.Repository, tokens user.TokenRepository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		tokens:     tokens,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := user.ValidateLogin(req); err != nil {
		return nil, err
	}

	// 1. FIND USER; unknown email and wrong password look the same
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 2. VERIFY PASSWORD
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 3. ISSUE TOKENS
	tokens, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}

	logger.Info("user logged in", map[string]interface{}{
		"user_id": u.ID,
		"role":    u.Role,
	})
	return &dto.LoginResponse{Tokens: *tokens, User: u.ToDTO()}, nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthTokens, error) {
	if err := user.ValidateRefresh(dto.RefreshRequest{RefreshToken: refreshToken}); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	// rotation: each refresh token works once
	userID, ok, err := s.tokens.ConsumeRefresh(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	if !ok || userID != claims.UserID {
		return nil, user.ErrInvalidToken
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, user.ErrInvalidToken
	}
	return s.issueTokens(ctx, u)
}

func (s *userService) Logout(ctx context.Context, refreshToken, accessJTI string, accessExpiresAt time.Time) error {
	if refreshToken != "" {
		if claims, err := s.jwtManager.ValidateRefreshToken(refreshToken); err == nil {
			if err := s.tokens.RevokeRefresh(ctx, claims.ID); err != nil {
				return fmt.Errorf("revoke refresh token: %w", err)
			}
		}
	}

	if accessJTI != "" {
		if accessExpiresAt.IsZero() {
			accessExpiresAt = time.Now().Add(s.jwtManager.AccessExpiry())
		}
		if err := s.tokens.RevokeAccess(ctx, accessJTI, accessExpiresAt); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}
	return nil
}

func (s *userService) Me(ctx context.Context, userID string) (*dto.User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := u.ToDTO()
	return &out, nil
}

func (s *userService) issueTokens(ctx context.Context, u *user.User) (*dto.AuthTokens, error) {
	access, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refresh, jti, err := s.jwtManager.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokens.SaveRefresh(ctx, jti, u.ID, time.Now().Add(s.jwtManager.RefreshExpiry())); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &dto.AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}
