package service

import (
	"context"

	"storefront/internal/domains/payment/gateway"
	"storefront/internal/domains/payment/model"
	"storefront/internal/shared/dto"
	"storefront/pkg/logger"
)

// OrderPayer settles orders once their payment is confirmed
type OrderPayer interface {
	MarkPaid(ctx context.Context, paymentRef string) (*dto.Order, error)
}

type ServiceInterface interface {
	// HandleWebhook verifies the provider signature and marks the order paid
	HandleWebhook(ctx context.Context, signature string, req dto.PaymentWebhookRequest) (*dto.Order, error)
}

type paymentService struct {
	gateway gateway.Gateway
	orders  OrderPayer
}

func NewPaymentService(gw gateway.Gateway, orders OrderPayer) ServiceInterface {
	return &paymentService{gateway: gw, orders: orders}
}

func (s *paymentService) HandleWebhook(ctx context.Context, signature string, req dto.PaymentWebhookRequest) (*dto.Order, error) {
	if !s.gateway.VerifySignature(signature) {
		logger.Warn("webhook signature rejected", map[string]interface{}{"payment_ref": req.PaymentRef})
		return nil, model.ErrInvalidSignature
	}

	order, err := s.orders.MarkPaid(ctx, req.PaymentRef)
	if err != nil {
		return nil, err
	}
	logger.Info("payment confirmed", map[string]interface{}{
		"order_id":    order.ID,
		"payment_ref": req.PaymentRef,
	})
	return order, nil
}
