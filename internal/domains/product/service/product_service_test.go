package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domains/category"
	categoryrepo "storefront/internal/domains/category/repository"
	categoryservice "storefront/internal/domains/category/service"
	"storefront/internal/domains/product/model"
	"storefront/internal/domains/product/repository"
	"storefront/internal/shared/dto"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (ServiceInterface, repository.RepositoryInterface) {
	repo := repository.NewMemoryRepository(model.DefaultSeed())
	cats := categoryservice.NewCategoryService(categoryrepo.NewMemoryRepository(category.DefaultSeed))
	return NewProductService(repo, cats), repo
}

func ids(products []dto.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestListProductsDefaults(t *testing.T) {
	svc, _ := newService()

	page, err := svc.ListProducts(context.Background(), dto.ProductsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, model.DefaultPageSize, page.PageSize)
	assert.Equal(t, 9, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	// name order: Aero, Arc, Cloud, Everyday, Lumen, Marble
	assert.Equal(t, []string{"p8", "p6", "p5", "p1", "p9", "p4"}, ids(page.Items))

	second, err := svc.ListProducts(context.Background(), dto.ProductsQuery{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p7"}, ids(second.Items))
}

func TestListProductsFiltersAndSorts(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name  string
		query dto.ProductsQuery
		want  []string
	}{
		{
			name:  "category by price ascending",
			query: dto.ProductsQuery{Category: "c3", Sort: dto.SortPriceAsc},
			want:  []string{"p4", "p5", "p9"},
		},
		{
			name:  "price window descending",
			query: dto.ProductsQuery{MinPrice: ptr(decimal.NewFromInt(60)), MaxPrice: ptr(decimal.NewFromInt(100)), Sort: dto.SortPriceDesc},
			want:  []string{"p2", "p1", "p3"},
		},
		{
			name:  "search matches description case-insensitively",
			query: dto.ProductsQuery{Search: "LINEN"},
			want:  []string{"p1", "p9"},
		},
		{
			name:  "latest first",
			query: dto.ProductsQuery{Sort: dto.SortLatest, PageSize: 3},
			want:  []string{"p5", "p2", "p8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ListProducts(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(page.Items))
		})
	}
}

func TestListProductsEmptyResultHasOnePage(t *testing.T) {
	svc, _ := newService()

	page, err := svc.ListProducts(context.Background(), dto.ProductsQuery{Search: "nothing like this"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListProductsRejectsHugePageSize(t *testing.T) {
	svc, _ := newService()

	_, err := svc.ListProducts(context.Background(), dto.ProductsQuery{PageSize: 1000})
	var verrs validation.Errors
	assert.True(t, errors.As(err, &verrs))
}

func TestCreateProductDefaults(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, dto.ProductInput{Inventory: ptr(3)})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Untitled product", p.Name)
	assert.Equal(t, dto.DefaultCurrency, p.Currency)
	assert.Equal(t, "c1", p.CategoryID)
	assert.Equal(t, model.PlaceholderImage, p.Image)
	assert.Equal(t, []string{model.PlaceholderImage}, p.Gallery)
	assert.Equal(t, 3, p.Inventory)

	// new products lead the catalog before sorting
	page, err := svc.ListProducts(ctx, dto.ProductsQuery{Search: "untitled"})
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids(page.Items))
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, dto.ProductInput{Price: ptr(decimal.NewFromInt(-1))})
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "price")

	_, err = svc.CreateProduct(ctx, dto.ProductInput{CategoryID: ptr("c99")})
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	updated, err := svc.UpdateProduct(ctx, "p4", dto.ProductInput{Price: ptr(decimal.NewFromInt(30)), Featured: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(30)))
	assert.True(t, updated.Featured)
	assert.Equal(t, "Marble Keep Cup", updated.Name)

	_, err = svc.UpdateProduct(ctx, "nope", dto.ProductInput{})
	assert.ErrorIs(t, err, model.ErrProductNotFound)

	require.NoError(t, svc.DeleteProduct(ctx, "p4"))
	_, err = svc.GetProduct(ctx, "p4")
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, "p4"), model.ErrProductNotFound)
}

func TestReserveStockIsAllOrNothing(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	err := svc.ReserveStock(ctx, map[string]int{"p1": 2, "p7": 13})
	var shortage *model.StockShortage
	require.ErrorAs(t, err, &shortage)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, "p7", shortage.ProductID)

	p1, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 42, p1.Inventory)

	require.NoError(t, svc.ReserveStock(ctx, map[string]int{"p1": 2, "p7": 12}))
	p7, err := repo.GetByID(ctx, "p7")
	require.NoError(t, err)
	assert.Equal(t, 0, p7.Inventory)

	require.NoError(t, svc.ReleaseStock(ctx, map[string]int{"p7": 12}))
	p7, err = repo.GetByID(ctx, "p7")
	require.NoError(t, err)
	assert.Equal(t, 12, p7.Inventory)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	_, repo := newService()
	ctx := context.Background()

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Gallery[0] = "mutated"
	p.Inventory = 0

	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "/images/products/linen-shirt.jpg", again.Gallery[0])
	assert.Equal(t, 42, again.Inventory)
}
