package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domains/category"
)

type categoryService struct {
	repo category.CategoryRepository
}

func NewCategoryService(repo category.CategoryRepository) category.CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, category.ErrCategoryNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *categoryService) DefaultID(ctx context.Context) string {
	categories, err := s.repo.GetAll(ctx)
	if err != nil || len(categories) == 0 {
		return ""
	}
	return categories[0].ID
}
