// Package tokenstore persists the access/refresh credential pair of the
// storefront client. It holds no logic beyond storage.
package tokenstore

import (
	"context"
	"sync"

	"storefront/internal/shared/dto"
)

// Store persists credentials. Load returns empty tokens when nothing is stored.
type Store interface {
	Load(ctx context.Context) (dto.AuthTokens, error)
	Save(ctx context.Context, tokens dto.AuthTokens) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps credentials for the lifetime of the process
type MemoryStore struct {
	mu     sync.RWMutex
	tokens dto.AuthTokens
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (dto.AuthTokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, nil
}

func (s *MemoryStore) Save(_ context.Context, tokens dto.AuthTokens) error {
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.tokens = dto.AuthTokens{}
	s.mu.Unlock()
	return nil
}
