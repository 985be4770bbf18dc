package repository

import (
	"context"
	"sync"

	"storefront/internal/domains/category"
)

type memoryRepository struct {
	mu         sync.RWMutex
	categories []category.Category
}

func NewMemoryRepository(seed []category.Category) category.CategoryRepository {
	return &memoryRepository{categories: append([]category.Category(nil), seed...)}
}

func (r *memoryRepository) GetAll(_ context.Context) ([]category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]category.Category(nil), r.categories...), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, category.ErrCategoryNotFound
}
