package repository

import (
	"context"

	"storefront/internal/shared/dto"
)

type RepositoryInterface interface {
	Create(ctx context.Context, order *dto.Order) error
	GetByID(ctx context.Context, id string) (*dto.Order, error)
	GetByPaymentRef(ctx context.Context, paymentRef string) (*dto.Order, error)
	// List returns newest first; an empty userID lists every order
	List(ctx context.Context, userID string) ([]dto.Order, error)
	// Update applies fn atomically; nothing is stored when fn fails
	Update(ctx context.Context, id string, fn func(order *dto.Order) error) (*dto.Order, error)
}
