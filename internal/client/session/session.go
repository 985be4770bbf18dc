// Package session owns the signed-in state of the storefront client. It
// persists credentials through the token store and tells dependants (the
// cart engine) when the session ends, whether by logout or because the
// transport had to discard credentials.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"storefront/internal/client/tokenstore"
	"storefront/internal/shared/dto"

	"github.com/rs/zerolog"
)

// AuthRemote is the auth surface of the API
type AuthRemote interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Me(ctx context.Context) (*dto.User, error)
	Logout(ctx context.Context, refreshToken string) error
}

// CredentialNotifier is implemented by the transport client
type CredentialNotifier interface {
	OnCredentialsCleared(fn func())
}

type Session struct {
	remote AuthRemote
	tokens tokenstore.Store
	log    zerolog.Logger

	authenticated atomic.Bool
	user          atomic.Pointer[dto.User]

	mu       sync.Mutex
	onLogout []func()
}

func New(remote AuthRemote, tokens tokenstore.Store, log zerolog.Logger) *Session {
	return &Session{remote: remote, tokens: tokens, log: log}
}

// Bind ends the session whenever the transport discards credentials
func (s *Session) Bind(n CredentialNotifier) {
	n.OnCredentialsCleared(s.end)
}

// OnLogout registers fn to run once per session end
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Authenticated answers without I/O
func (s *Session) Authenticated() bool {
	return s.authenticated.Load()
}

// User is the signed-in user, when known
func (s *Session) User() *dto.User {
	return s.user.Load()
}

// Restore picks up credentials persisted by an earlier run
func (s *Session) Restore(ctx context.Context) error {
	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	s.authenticated.Store(!tokens.Empty())
	return nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*dto.User, error) {
	resp, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, resp.Tokens); err != nil {
		return nil, fmt.Errorf("save credentials: %w", err)
	}

	user := resp.User
	s.user.Store(&user)
	s.authenticated.Store(true)
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("signed in")
	return &user, nil
}

// Me fetches the signed-in user from the API
func (s *Session) Me(ctx context.Context) (*dto.User, error) {
	user, err := s.remote.Me(ctx)
	if err != nil {
		return nil, err
	}
	s.user.Store(user)
	return user, nil
}

// Logout revokes the session server-side when possible, then discards the
// local credentials. The local part always happens.
func (s *Session) Logout(ctx context.Context) error {
	tokens, err := s.tokens.Load(ctx)
	if err == nil && !tokens.Empty() {
		if err := s.remote.Logout(ctx, tokens.RefreshToken); err != nil {
			s.log.Warn().Err(err).Msg("server logout failed")
		}
	}

	if err := s.tokens.Clear(ctx); err != nil {
		s.end()
		return fmt.Errorf("clear credentials: %w", err)
	}
	s.end()
	return nil
}

func (s *Session) end() {
	s.user.Store(nil)
	if !s.authenticated.Swap(false) {
		return
	}

	s.log.Info().Msg("session ended")
	s.mu.Lock()
	hooks := append([]func(){}, s.onLogout...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
