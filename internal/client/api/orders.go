package api

import (
	"context"
	"net/http"
	"net/url"

	"storefront/internal/client/transport"
	"storefront/internal/shared/dto"
)

// SignatureHeader authenticates calls to the mock payment webhook
const SignatureHeader = "X-MockPay-Signature"

type OrdersAPI struct {
	doer Doer
}

func (a *OrdersAPI) List(ctx context.Context) ([]dto.Order, error) {
	var out []dto.Order
	if err := a.doer.Get(ctx, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *OrdersAPI) Get(ctx context.Context, id string) (*dto.Order, error) {
	var out dto.Order
	if err := a.doer.Get(ctx, "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create places an order for the current cart without the payment step
func (a *OrdersAPI) Create(ctx context.Context, address dto.Address) (*dto.Order, error) {
	var out dto.Order
	if err := a.doer.Post(ctx, "/orders", dto.CreateOrderRequest{Address: address}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *OrdersAPI) UpdateStatus(ctx context.Context, id string, status dto.OrderStatus) (*dto.Order, error) {
	var out dto.Order
	if err := a.doer.Patch(ctx, "/orders/"+url.PathEscape(id), dto.UpdateOrderStatusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Checkout turns the cart into a pending order awaiting payment
func (a *OrdersAPI) Checkout(ctx context.Context, cartID int64) (*dto.CheckoutResponse, error) {
	var out dto.CheckoutResponse
	if err := a.doer.Post(ctx, "/checkout", dto.CheckoutRequest{CartID: cartID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmPayment plays the payment provider and returns the paid order
func (a *OrdersAPI) ConfirmPayment(ctx context.Context, paymentRef, signature string) (*dto.Order, error) {
	header := http.Header{}
	header.Set(SignatureHeader, signature)

	var out dto.Order
	err := a.doer.Send(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/webhooks/mock-payments",
		Body:   dto.PaymentWebhookRequest{PaymentRef: paymentRef},
		Header: header,
		Public: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
