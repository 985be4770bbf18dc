package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/domains/user"

	"golang.org/x/crypto/bcrypt"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*user.User
	byEmail map[string]*user.User
}

// NewMemoryRepository hashes the seed passwords with the given bcrypt cost
func NewMemoryRepository(seed []user.SeedUser, cost int) (user.Repository, error) {
	r := &memoryRepository{
		byID:    make(map[string]*user.User, len(seed)),
		byEmail: make(map[string]*user.User, len(seed)),
	}

	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", s.Email, err)
		}
		u := &user.User{ID: s.ID, Name: s.Name, Email: s.Email, Role: s.Role, PasswordHash: string(hash)}
		r.byID[u.ID] = u
		r.byEmail[strings.ToLower(u.Email)] = u
	}
	return r, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// ========================================
// TOKENS
// ========================================

type refreshRecord struct {
	userID    string
	expiresAt time.Time
}

type memoryTokenRepository struct {
	mu            sync.Mutex
	refresh       map[string]refreshRecord
	revokedAccess map[string]time.Time
	now           func() time.Time
}

func NewMemoryTokenRepository() user.TokenRepository {
	return &memoryTokenRepository{
		refresh:       make(map[string]refreshRecord),
		revokedAccess: make(map[string]time.Time),
		now:           time.Now,
	}
}

func (r *memoryTokenRepository) SaveRefresh(_ context.Context, jti, userID string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.refresh[jti] = refreshRecord{userID: userID, expiresAt: expiresAt}
	return nil
}

func (r *memoryTokenRepository) ConsumeRefresh(_ context.Context, jti string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.refresh[jti]
	if !ok {
		return "", false, nil
	}
	delete(r.refresh, jti)
	if r.now().After(rec.expiresAt) {
		return "", false, nil
	}
	return rec.userID, true, nil
}

func (r *memoryTokenRepository) RevokeRefresh(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.refresh, jti)
	return nil
}

func (r *memoryTokenRepository) RevokeAccess(_ context.Context, jti string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, exp := range r.revokedAccess {
		if now.After(exp) {
			delete(r.revokedAccess, id)
		}
	}
	r.revokedAccess[jti] = expiresAt
	return nil
}

func (r *memoryTokenRepository) IsAccessRevoked(jti string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.revokedAccess[jti]
	return ok
}
