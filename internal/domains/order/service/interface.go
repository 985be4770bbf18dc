package service

import (
	"context"

	"storefront/internal/shared/dto"
)

type OrderService interface {
	// Checkout turns the user's cart into a pending order with a payment
	// reference, reserves stock and empties the cart
	Checkout(ctx context.Context, userID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)

	// CreateOrder is Checkout with an explicit shipping address
	CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*dto.Order, error)

	// ListOrders returns the user's orders, or every order for admins
	ListOrders(ctx context.Context, userID string, isAdmin bool) ([]dto.Order, error)

	GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*dto.Order, error)

	// UpdateStatus moves an order along its lifecycle (admin)
	UpdateStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest) (*dto.Order, error)

	// MarkPaid confirms payment for the order with paymentRef. Repeated
	// calls return the already paid order.
	MarkPaid(ctx context.Context, paymentRef string) (*dto.Order, error)
}

// CartDrainer hands out the user's cart and empties it on success
type CartDrainer interface {
	Drain(ctx context.Context, userID string, fn func(cart *dto.CartSummary) error) error
}

// StockReserver holds inventory for placed orders
type StockReserver interface {
	ReserveStock(ctx context.Context, quantities map[string]int) error
	ReleaseStock(ctx context.Context, quantities map[string]int) error
}

type UserReader interface {
	Me(ctx context.Context, userID string) (*dto.User, error)
}
