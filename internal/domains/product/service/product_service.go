package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront/internal/domains/category"
	"storefront/internal/domains/product/model"
	"storefront/internal/domains/product/repository"
	"storefront/internal/shared/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService struct {
	repo       repository.RepositoryInterface
	categories category.CategoryService
	now        func() time.Time
}

func NewProductService(repo repository.RepositoryInterface, categories category.CategoryService) ServiceInterface {
	return &ProductService{
		repo:       repo,
		categories: categories,
		now:        time.Now,
	}
}

// ListProducts filters, sorts and pages the catalog. Without an explicit
// sort products come back by name.
func (s *ProductService) ListProducts(ctx context.Context, q dto.ProductsQuery) (*dto.Page[dto.Product], error) {
	if err := model.ValidateQuery(q); err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	filtered := filterProducts(all, q)
	sortProducts(filtered, q.Sort)

	page := q.Page
	if page <= 0 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &dto.Page[dto.Product]{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func filterProducts(products []dto.Product, q dto.ProductsQuery) []dto.Product {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]dto.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if q.Category != "" && p.CategoryID != q.Category {
			continue
		}
		if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
			continue
		}
		if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(products []dto.Product, by dto.ProductSort) {
	var less func(a, b dto.Product) bool
	switch by {
	case dto.SortPriceAsc:
		less = func(a, b dto.Product) bool { return a.Price.LessThan(b.Price) }
	case dto.SortPriceDesc:
		less = func(a, b dto.Product) bool { return a.Price.GreaterThan(b.Price) }
	case dto.SortLatest:
		less = func(a, b dto.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = func(a, b dto.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*dto.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, in dto.ProductInput) (*dto.Product, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	p := dto.Product{
		ID:         uuid.NewString(),
		Name:       "Untitled product",
		Price:      decimal.Zero,
		Currency:   dto.DefaultCurrency,
		CategoryID: s.categories.DefaultID(ctx),
		Image:      model.PlaceholderImage,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.apply(ctx, &p, in); err != nil {
		return nil, err
	}
	if in.Gallery == nil {
		p.Gallery = []string{p.Image}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, in dto.ProductInput) (*dto.Product, error) {
	if err := model.ValidateInput(in); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// apply merges the present fields of in onto p
func (s *ProductService) apply(ctx context.Context, p *dto.Product, in dto.ProductInput) error {
	if in.CategoryID != nil {
		ok, err := s.categories.Exists(ctx, *in.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrUnknownCategory
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Currency != nil {
		p.Currency = strings.ToUpper(*in.Currency)
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Gallery != nil {
		p.Gallery = append([]string(nil), in.Gallery...)
	}
	if in.Inventory != nil {
		p.Inventory = *in.Inventory
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) ReserveStock(ctx context.Context, quantities map[string]int) error {
	return s.repo.ReserveStock(ctx, quantities)
}

func (s *ProductService) ReleaseStock(ctx context.Context, quantities map[string]int) error {
	return s.repo.ReleaseStock(ctx, quantities)
}
