package category

import "context"

type CategoryService interface {
	List(ctx context.Context) ([]Category, error)

	// Exists lets the catalog validate product category references
	Exists(ctx context.Context, id string) (bool, error)

	// DefaultID is assigned to products created without a category
	DefaultID(ctx context.Context) string
}
