package api

import (
	"context"
	"net/url"
	"strconv"

	"storefront/internal/shared/dto"
)

type CatalogAPI struct {
	doer Doer
}

func (a *CatalogAPI) Products(ctx context.Context, q dto.ProductsQuery) (*dto.Page[dto.Product], error) {
	var out dto.Page[dto.Product]
	if err := a.doer.Get(ctx, "/products", productsQuery(q), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CatalogAPI) Product(ctx context.Context, id string) (*dto.Product, error) {
	var out dto.Product
	if err := a.doer.Get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CatalogAPI) Categories(ctx context.Context) ([]dto.Category, error) {
	var out []dto.Category
	if err := a.doer.Get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *CatalogAPI) CreateProduct(ctx context.Context, in dto.ProductInput) (*dto.Product, error) {
	var out dto.Product
	if err := a.doer.Post(ctx, "/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CatalogAPI) UpdateProduct(ctx context.Context, id string, in dto.ProductInput) (*dto.Product, error) {
	var out dto.Product
	if err := a.doer.Patch(ctx, "/products/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *CatalogAPI) DeleteProduct(ctx context.Context, id string) error {
	return a.doer.Delete(ctx, "/products/"+url.PathEscape(id), nil)
}

func productsQuery(q dto.ProductsQuery) url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort))
	}
	if q.MinPrice != nil {
		v.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", q.MaxPrice.String())
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}
