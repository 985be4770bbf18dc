package repository

import (
	"context"
	"sync"

	"storefront/internal/domains/order/model"
	"storefront/internal/shared/dto"
)

type memoryRepository struct {
	mu     sync.RWMutex
	orders []*dto.Order // newest first
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, order *dto.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append([]*dto.Order{cloneOrder(order)}, r.orders...)
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*dto.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return nil, model.ErrOrderNotFound
}

func (r *memoryRepository) GetByPaymentRef(_ context.Context, paymentRef string) (*dto.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.PaymentRef == paymentRef {
			return cloneOrder(o), nil
		}
	}
	return nil, model.ErrOrderNotFound
}

func (r *memoryRepository) List(_ context.Context, userID string) ([]dto.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dto.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if userID == "" || o.UserID == userID {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, id string, fn func(order *dto.Order) error) (*dto.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID != id {
			continue
		}
		working := cloneOrder(o)
		if err := fn(working); err != nil {
			return nil, err
		}
		r.orders[i] = working
		return cloneOrder(working), nil
	}
	return nil, model.ErrOrderNotFound
}

func cloneOrder(o *dto.Order) *dto.Order {
	out := *o
	out.Items = make([]dto.OrderItem, len(o.Items))
	for i, item := range o.Items {
		item.Product = item.Product.Clone()
		out.Items[i] = item
	}
	if o.PaidAt != nil {
		paidAt := *o.PaidAt
		out.PaidAt = &paidAt
	}
	return &out
}
