package repository

import (
	"context"
	"sort"
	"sync"

	"storefront/internal/domains/product/model"
	"storefront/internal/shared/dto"
)

type memoryRepository struct {
	mu       sync.RWMutex
	products []dto.Product
}

func NewMemoryRepository(seed []dto.Product) RepositoryInterface {
	r := &memoryRepository{products: make([]dto.Product, 0, len(seed))}
	for _, p := range seed {
		r.products = append(r.products, p.Clone())
	}
	return r
}

func (r *memoryRepository) List(_ context.Context) ([]dto.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dto.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*dto.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return nil, model.ErrProductNotFound
	}
	p := r.products[idx].Clone()
	return &p, nil
}

func (r *memoryRepository) Create(_ context.Context, p dto.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = append([]dto.Product{p.Clone()}, r.products...)
	return nil
}

func (r *memoryRepository) Update(_ context.Context, p dto.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(p.ID)
	if idx < 0 {
		return model.ErrProductNotFound
	}
	r.products[idx] = p.Clone()
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexLocked(id)
	if idx < 0 {
		return model.ErrProductNotFound
	}
	r.products = append(r.products[:idx], r.products[idx+1:]...)
	return nil
}

func (r *memoryRepository) ReserveStock(_ context.Context, quantities map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// check everything before touching anything
	for _, id := range ids {
		idx := r.indexLocked(id)
		if idx < 0 {
			return model.ErrProductNotFound
		}
		if want := quantities[id]; r.products[idx].Inventory < want {
			return &model.StockShortage{ProductID: id, Requested: want, Available: r.products[idx].Inventory}
		}
	}
	for _, id := range ids {
		r.products[r.indexLocked(id)].Inventory -= quantities[id]
	}
	return nil
}

func (r *memoryRepository) ReleaseStock(_ context.Context, quantities map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, qty := range quantities {
		// deleted products are not resurrected
		if idx := r.indexLocked(id); idx >= 0 {
			r.products[idx].Inventory += qty
		}
	}
	return nil
}

func (r *memoryRepository) indexLocked(id string) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}
