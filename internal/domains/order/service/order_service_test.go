package service

import (
	"context"
	"errors"
	"testing"

	cartRepo "storefront/internal/domains/cart/repository"
	cartService "storefront/internal/domains/cart/service"
	"storefront/internal/domains/category"
	categoryRepo "storefront/internal/domains/category/repository"
	categoryService "storefront/internal/domains/category/service"
	"storefront/internal/domains/order/model"
	"storefront/internal/domains/order/repository"
	"storefront/internal/domains/payment/gateway/mock"
	productModel "storefront/internal/domains/product/model"
	productRepo "storefront/internal/domains/product/repository"
	productService "storefront/internal/domains/product/service"
	"storefront/internal/shared/dto"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsers map[string]dto.User

func (s stubUsers) Me(_ context.Context, id string) (*dto.User, error) {
	u, ok := s[id]
	if !ok {
		return nil, errors.New("no such user")
	}
	return &u, nil
}

type fixture struct {
	orders   OrderService
	carts    cartService.ServiceInterface
	products productService.ServiceInterface
	gateway  *mock.MockPayGateway
}

func newFixture() *fixture {
	cats := categoryService.NewCategoryService(categoryRepo.NewMemoryRepository(category.DefaultSeed))
	products := productService.NewProductService(productRepo.NewMemoryRepository(productModel.DefaultSeed()), cats)
	carts := cartService.NewCartService(cartRepo.NewMemoryRepository(), products)
	gw := mock.NewMockPayGateway("secret")
	users := stubUsers{
		"u1": {ID: "u1", Name: "Ava Harper", Email: "ava@storefront.dev", Role: dto.RoleCustomer},
		"u3": {ID: "u3", Name: "Other", Email: "other@storefront.dev", Role: dto.RoleCustomer},
	}
	return &fixture{
		orders:   NewOrderService(repository.NewMemoryRepository(), carts, products, users, gw),
		carts:    carts,
		products: products,
		gateway:  gw,
	}
}

func (f *fixture) add(t *testing.T, userID, productID string, qty int) *dto.CartSummary {
	t.Helper()
	cart, err := f.carts.AddItem(context.Background(), userID, dto.AddCartItemRequest{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return cart
}

func (f *fixture) inventory(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.products.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	return p.Inventory
}

func TestCheckoutPlacesPendingOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cart := f.add(t, "u1", "p1", 2)

	res, err := f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{CartID: cart.ID})
	require.NoError(t, err)
	assert.Regexp(t, `^pay_[0-9a-f]{8}$`, res.PaymentRef)
	assert.NotEmpty(t, res.ClientSecret)

	order, err := f.orders.GetOrder(ctx, res.OrderID, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderPending, order.Status)
	assert.Equal(t, res.PaymentRef, order.PaymentRef)
	assert.Equal(t, "Ava Harper", order.Address.FullName)
	assert.Equal(t, "156", order.Subtotal.String())
	assert.Equal(t, "12.48", order.Tax.String())
	assert.Equal(t, "168.48", order.Total.String())
	assert.Nil(t, order.PaidAt)

	assert.Equal(t, 40, f.inventory(t, "p1"))

	after, err := f.carts.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, after.Items)
	assert.Equal(t, cart.ID, after.ID)
}

func TestCheckoutRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{})
	assert.ErrorIs(t, err, model.ErrCartEmpty)

	cart := f.add(t, "u1", "p7", 12)
	_, err = f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{CartID: cart.ID + 1})
	assert.ErrorIs(t, err, model.ErrCartMismatch)

	// someone else buys part of the stock first
	require.NoError(t, f.products.ReserveStock(ctx, map[string]int{"p7": 1}))
	_, err = f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{CartID: cart.ID})
	assert.ErrorIs(t, err, productModel.ErrInsufficientStock)

	kept, err := f.carts.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, kept.Items, 1)
}

func TestCheckoutReleasesStockWhenPaymentFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cart := f.add(t, "u1", "p2", 3)

	f.gateway.SetFailPayment(true)
	_, err := f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{CartID: cart.ID})
	require.Error(t, err)

	assert.Equal(t, 15, f.inventory(t, "p2"))
	kept, err := f.carts.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, kept.Items, 1)

	orders, err := f.orders.ListOrders(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrderValidatesAddress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.add(t, "u1", "p4", 1)

	_, err := f.orders.CreateOrder(ctx, "u1", dto.CreateOrderRequest{})
	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))

	addr := model.DefaultAddress(dto.User{Name: "Ava Harper", Email: "ava@storefront.dev"})
	addr.Line1 = "9 Harbor Road"
	order, err := f.orders.CreateOrder(ctx, "u1", dto.CreateOrderRequest{Address: addr})
	require.NoError(t, err)
	assert.Equal(t, "9 Harbor Road", order.Address.Line1)
	assert.NotEmpty(t, order.PaymentRef)
}

func TestOrderVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.add(t, "u1", "p1", 1)
	mine, err := f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{})
	require.NoError(t, err)
	f.add(t, "u3", "p3", 1)
	theirs, err := f.orders.Checkout(ctx, "u3", dto.CheckoutRequest{})
	require.NoError(t, err)

	list, err := f.orders.ListOrders(ctx, "u1", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.OrderID, list[0].ID)

	all, err := f.orders.ListOrders(ctx, "u2", true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, theirs.OrderID, all[0].ID)

	_, err = f.orders.GetOrder(ctx, theirs.OrderID, "u1", false)
	assert.ErrorIs(t, err, model.ErrOrderForbidden)
	_, err = f.orders.GetOrder(ctx, theirs.OrderID, "u2", true)
	assert.NoError(t, err)
	_, err = f.orders.GetOrder(ctx, "missing", "u1", false)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.add(t, "u1", "p5", 1)
	res, err := f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{})
	require.NoError(t, err)

	first, err := f.orders.MarkPaid(ctx, res.PaymentRef)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderPaid, first.Status)
	require.NotNil(t, first.PaidAt)

	second, err := f.orders.MarkPaid(ctx, res.PaymentRef)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderPaid, second.Status)
	assert.Equal(t, *first.PaidAt, *second.PaidAt)

	_, err = f.orders.MarkPaid(ctx, "pay_unknown")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.add(t, "u1", "p9", 2)
	res, err := f.orders.Checkout(ctx, "u1", dto.CheckoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, 16, f.inventory(t, "p9"))

	_, err = f.orders.UpdateStatus(ctx, res.OrderID, dto.UpdateOrderStatusRequest{Status: dto.OrderShipped})
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	paid, err := f.orders.UpdateStatus(ctx, res.OrderID, dto.UpdateOrderStatusRequest{Status: dto.OrderPaid})
	require.NoError(t, err)
	assert.NotNil(t, paid.PaidAt)

	cancelled, err := f.orders.UpdateStatus(ctx, res.OrderID, dto.UpdateOrderStatusRequest{Status: dto.OrderCancelled})
	require.NoError(t, err)
	assert.Equal(t, dto.OrderCancelled, cancelled.Status)
	assert.Equal(t, 18, f.inventory(t, "p9"))

	_, err = f.orders.UpdateStatus(ctx, res.OrderID, dto.UpdateOrderStatusRequest{Status: dto.OrderPaid})
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	_, err = f.orders.MarkPaid(ctx, res.PaymentRef)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	_, err = f.orders.UpdateStatus(ctx, res.OrderID, dto.UpdateOrderStatusRequest{Status: "lost"})
	var verrs validation.Errors
	assert.True(t, errors.As(err, &verrs))
}
