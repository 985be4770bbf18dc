package service

import (
	"context"

	"storefront/internal/shared/dto"
)

type ServiceInterface interface {
	ListProducts(ctx context.Context, q dto.ProductsQuery) (*dto.Page[dto.Product], error)
	GetProduct(ctx context.Context, id string) (*dto.Product, error)
	CreateProduct(ctx context.Context, in dto.ProductInput) (*dto.Product, error)
	UpdateProduct(ctx context.Context, id string, in dto.ProductInput) (*dto.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ReserveStock(ctx context.Context, quantities map[string]int) error
	ReleaseStock(ctx context.Context, quantities map[string]int) error
}
