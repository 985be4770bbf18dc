package repository

import (
	"context"

	"storefront/internal/shared/dto"
)

// RepositoryInterface stores the catalog. Returned products are copies.
type RepositoryInterface interface {
	List(ctx context.Context) ([]dto.Product, error)
	GetByID(ctx context.Context, id string) (*dto.Product, error)
	// Create puts the product at the head of the catalog
	Create(ctx context.Context, p dto.Product) error
	Update(ctx context.Context, p dto.Product) error
	Delete(ctx context.Context, id string) error
	// ReserveStock decrements inventory for every entry or for none of them
	ReserveStock(ctx context.Context, quantities map[string]int) error
	// ReleaseStock gives back a previous reservation
	ReleaseStock(ctx context.Context, quantities map[string]int) error
}
