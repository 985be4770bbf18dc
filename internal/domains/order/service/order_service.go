package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domains/order/model"
	"storefront/internal/domains/order/repository"
	"storefront/internal/domains/payment/gateway"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/pricing"
	"storefront/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type orderService struct {
	repo     repository.RepositoryInterface
	carts    CartDrainer
	stock    StockReserver
	users    UserReader
	payments gateway.Gateway
	now      func() time.Time
}

func NewOrderService(
	repo repository.RepositoryInterface,
	carts CartDrainer,
	stock StockReserver,
	users UserReader,
	payments gateway.Gateway,
) OrderService {
	return &orderService{
		repo:     repo,
		carts:    carts,
		stock:    stock,
		users:    users,
		payments: payments,
		now:      time.Now,
	}
}

func (s *orderService) Checkout(ctx context.Context, userID string, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	user, err := s.users.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, intent, err := s.placeOrder(ctx, *user, req.CartID, model.DefaultAddress(*user))
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{
		OrderID:      order.ID,
		PaymentRef:   intent.PaymentRef,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req dto.CreateOrderRequest) (*dto.Order, error) {
	if err := model.ValidateAddress(req.Address); err != nil {
		return nil, err
	}
	user, err := s.users.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, _, err := s.placeOrder(ctx, *user, 0, req.Address)
	return order, err
}

// placeOrder runs with the cart held: the cart is emptied only when the
// order is stored. A cartID of 0 skips the cart id check.
func (s *orderService) placeOrder(ctx context.Context, user dto.User, cartID int64, address dto.Address) (*dto.Order, *gateway.PaymentIntent, error) {
	var (
		order  *dto.Order
		intent *gateway.PaymentIntent
	)

	err := s.carts.Drain(ctx, user.ID, func(cart *dto.CartSummary) error {
		if len(cart.Items) == 0 {
			return model.ErrCartEmpty
		}
		if cartID != 0 && cartID != cart.ID {
			return model.ErrCartMismatch
		}

		order = s.buildOrder(user, cart, address)
		quantities := model.Quantities(order)
		if err := s.stock.ReserveStock(ctx, quantities); err != nil {
			return err
		}

		var err error
		intent, err = s.payments.CreatePayment(ctx, gateway.PaymentRequest{
			OrderID:  order.ID,
			Amount:   order.Total,
			Currency: order.Currency,
		})
		if err == nil {
			order.PaymentRef = intent.PaymentRef
			err = s.repo.Create(ctx, order)
		}
		if err != nil {
			if releaseErr := s.stock.ReleaseStock(ctx, quantities); releaseErr != nil {
				logger.Error("release stock after failed checkout", releaseErr)
			}
			return fmt.Errorf("place order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("order placed", map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     user.ID,
		"payment_ref": order.PaymentRef,
		"total":       order.Total.StringFixed(2),
	})
	return order, intent, nil
}

func (s *orderService) buildOrder(user dto.User, cart *dto.CartSummary, address dto.Address) *dto.Order {
	items := make([]dto.OrderItem, 0, len(cart.Items))
	subtotal := decimal.Zero
	for _, line := range cart.Items {
		items = append(items, dto.OrderItem{
			ID:        uuid.NewString(),
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
			Product:   line.Product.Clone(),
		})
		subtotal = subtotal.Add(pricing.LineTotal(line.Product.Price, line.Quantity))
	}
	totals := pricing.Calculate(subtotal)

	return &dto.Order{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Status:    dto.OrderPending,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Currency:  dto.DefaultCurrency,
		CreatedAt: s.now().UTC(),
		Address:   address,
	}
}

func (s *orderService) ListOrders(ctx context.Context, userID string, isAdmin bool) ([]dto.Order, error) {
	if isAdmin {
		userID = ""
	}
	return s.repo.List(ctx, userID)
}

func (s *orderService) GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*dto.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, model.ErrOrderForbidden
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID string, req dto.UpdateOrderStatusRequest) (*dto.Order, error) {
	if err := model.ValidateStatus(req); err != nil {
		return nil, err
	}

	var released map[string]int
	order, err := s.repo.Update(ctx, orderID, func(order *dto.Order) error {
		if order.Status == req.Status {
			return nil
		}
		if !model.CanTransition(order.Status, req.Status) {
			return fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, order.Status, req.Status)
		}
		order.Status = req.Status
		if req.Status == dto.OrderPaid && order.PaidAt == nil {
			paidAt := s.now().UTC()
			order.PaidAt = &paidAt
		}
		if req.Status == dto.OrderCancelled {
			released = model.Quantities(order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if released != nil {
		if err := s.stock.ReleaseStock(ctx, released); err != nil {
			logger.Error("release stock for cancelled order", err)
		}
	}
	return order, nil
}

func (s *orderService) MarkPaid(ctx context.Context, paymentRef string) (*dto.Order, error) {
	found, err := s.repo.GetByPaymentRef(ctx, paymentRef)
	if err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, found.ID, func(order *dto.Order) error {
		switch order.Status {
		case dto.OrderPending:
			paidAt := s.now().UTC()
			order.Status = dto.OrderPaid
			order.PaidAt = &paidAt
			return nil
		case dto.OrderCancelled:
			return fmt.Errorf("%w: cancelled order cannot be paid", model.ErrInvalidTransition)
		default:
			// already paid or further along
			return nil
		}
	})
}
