package category

import "context"

// ============================================================
// REPOSITORY INTERFACE: CategoryRepository
// ============================================================

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]Category, error)

	// GetByID returns ErrCategoryNotFound when absent
	GetByID(ctx context.Context, id string) (*Category, error)
}
