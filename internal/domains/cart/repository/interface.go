package repository

import (
	"context"

	"storefront/internal/domains/cart/model"
)

type RepositoryInterface interface {
	// Get returns the user's cart, creating an empty one on first use
	Get(ctx context.Context, userID string) (*model.Cart, error)
	// Update runs fn on the user's cart while holding it; the cart is stored
	// only when fn returns nil
	Update(ctx context.Context, userID string, fn func(cart *model.Cart) error) (*model.Cart, error)
}
