package repository

import (
	"context"
	"sync"

	"storefront/internal/domains/cart/model"
)

type memoryRepository struct {
	mu    sync.Mutex
	carts map[string]*model.Cart
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{carts: make(map[string]*model.Cart)}
}

func (r *memoryRepository) Get(_ context.Context, userID string) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensureLocked(userID).Clone(), nil
}

func (r *memoryRepository) Update(_ context.Context, userID string, fn func(cart *model.Cart) error) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.ensureLocked(userID).Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	r.carts[userID] = working
	return working.Clone(), nil
}

// ensureLocked assigns cart ids sequentially in creation order
func (r *memoryRepository) ensureLocked(userID string) *model.Cart {
	cart, ok := r.carts[userID]
	if !ok {
		cart = &model.Cart{ID: int64(len(r.carts) + 1), UserID: userID, Items: []model.Item{}}
		r.carts[userID] = cart
	}
	return cart
}
