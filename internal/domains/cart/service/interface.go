package service

import (
	"context"

	"storefront/internal/shared/dto"
)

type ServiceInterface interface {
	GetCart(ctx context.Context, userID string) (*dto.CartSummary, error)

	// AddItem merges into an existing line for the product, clamped to stock
	AddItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (*dto.CartSummary, error)

	// UpdateItem sets a line's quantity, clamped to stock. Zero or less
	// removes the line.
	UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*dto.CartSummary, error)

	// RemoveItem succeeds whether or not the line exists
	RemoveItem(ctx context.Context, userID, itemID string) (*dto.CartSummary, error)

	// ClearCart empties the cart and keeps its id
	ClearCart(ctx context.Context, userID string) (*dto.CartSummary, error)

	// Drain hands the priced cart to fn and empties it when fn succeeds.
	// The cart cannot change while fn runs.
	Drain(ctx context.Context, userID string, fn func(cart *dto.CartSummary) error) error
}

// ProductReader resolves catalog entries for cart lines
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*dto.Product, error)
}
