package session

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/client/tokenstore"
	"storefront/internal/shared/dto"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRemote struct {
	loginErr  error
	logoutErr error
	revoked   []string
}

func (r *stubRemote) Login(_ context.Context, email, _ string) (*dto.LoginResponse, error) {
	if r.loginErr != nil {
		return nil, r.loginErr
	}
	return &dto.LoginResponse{
		Tokens: dto.AuthTokens{AccessToken: "access", RefreshToken: "refresh"},
		User:   dto.User{ID: "u1", Email: email, Role: dto.RoleCustomer},
	}, nil
}

func (r *stubRemote) Me(context.Context) (*dto.User, error) {
	return &dto.User{ID: "u1"}, nil
}

func (r *stubRemote) Logout(_ context.Context, refreshToken string) error {
	r.revoked = append(r.revoked, refreshToken)
	return r.logoutErr
}

type stubNotifier struct{ fn func() }

func (n *stubNotifier) OnCredentialsCleared(fn func()) { n.fn = fn }

func TestLoginPersistsTokens(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	s := New(&stubRemote{}, store, zerolog.Nop())

	user, err := s.Login(context.Background(), "ava@storefront.dev", "password123")
	require.NoError(t, err)

	assert.Equal(t, "u1", user.ID)
	assert.True(t, s.Authenticated())
	tokens, _ := store.Load(context.Background())
	assert.Equal(t, "access", tokens.AccessToken)
}

func TestLoginFailureStaysSignedOut(t *testing.T) {
	s := New(&stubRemote{loginErr: errors.New("invalid credentials")}, tokenstore.NewMemoryStore(), zerolog.Nop())

	_, err := s.Login(context.Background(), "ava@storefront.dev", "nope")

	assert.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestLogoutRevokesAndFiresHooksOnce(t *testing.T) {
	remote := &stubRemote{logoutErr: errors.New("offline")}
	store := tokenstore.NewMemoryStore()
	s := New(remote, store, zerolog.Nop())
	notifier := &stubNotifier{}
	s.Bind(notifier)

	resets := 0
	s.OnLogout(func() { resets++ })

	_, err := s.Login(context.Background(), "ava@storefront.dev", "password123")
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background()))
	// the transport clearing afterwards must not end the session twice
	notifier.fn()

	assert.Equal(t, []string{"refresh"}, remote.revoked)
	assert.Equal(t, 1, resets)
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	tokens, _ := store.Load(context.Background())
	assert.True(t, tokens.Empty())
}

func TestTransportClearEndsSession(t *testing.T) {
	s := New(&stubRemote{}, tokenstore.NewMemoryStore(), zerolog.Nop())
	notifier := &stubNotifier{}
	s.Bind(notifier)

	ended := false
	s.OnLogout(func() { ended = true })

	_, err := s.Login(context.Background(), "ava@storefront.dev", "password123")
	require.NoError(t, err)

	notifier.fn()

	assert.True(t, ended)
	assert.False(t, s.Authenticated())
}

func TestRestore(t *testing.T) {
	store := tokenstore.NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), dto.AuthTokens{AccessToken: "a", RefreshToken: "r"}))

	s := New(&stubRemote{}, store, zerolog.Nop())
	require.NoError(t, s.Restore(context.Background()))
	assert.True(t, s.Authenticated())

	require.NoError(t, store.Clear(context.Background()))
	require.NoError(t, s.Restore(context.Background()))
	assert.False(t, s.Authenticated())
}
