// Package checkout drives the storefront checkout: the cart becomes a
// pending order, the payment step is simulated by a scripted delay, the
// payment is confirmed through the mock provider webhook and the local cart
// is cleared to mirror the server.
package checkout

import (
	"context"
	"time"

	"storefront/internal/client/apierr"
	"storefront/internal/shared/dto"

	"github.com/rs/zerolog"
)

// Orders is the order surface of the API used by the flow
type Orders interface {
	Checkout(ctx context.Context, cartID int64) (*dto.CheckoutResponse, error)
	ConfirmPayment(ctx context.Context, paymentRef, signature string) (*dto.Order, error)
}

// Cart is the part of the cart engine the flow needs
type Cart interface {
	Cart() *dto.CartSummary
	Fetch(ctx context.Context) (*dto.CartSummary, error)
	Clear(ctx context.Context) (*dto.CartSummary, error)
}

const resyncTimeout = 5 * time.Second

// Stage is reported to the progress callback
type Stage string

const (
	StageAuthorizing Stage = "authorizing"
	StageConfirming  Stage = "confirming"
	StageSucceeded   Stage = "succeeded"
)

type Flow struct {
	orders    Orders
	cart      Cart
	signature string
	delay     time.Duration
	log       zerolog.Logger

	// OnStage, when set, observes progress
	OnStage func(Stage, *dto.CheckoutResponse)
}

func New(orders Orders, cart Cart, signature string, delay time.Duration, log zerolog.Logger) *Flow {
	return &Flow{orders: orders, cart: cart, signature: signature, delay: delay, log: log}
}

// Result of a completed checkout
type Result struct {
	Checkout dto.CheckoutResponse
	Order    *dto.Order
}

func (f *Flow) Run(ctx context.Context) (*Result, error) {
	cart := f.cart.Cart()
	if cart == nil {
		var err error
		if cart, err = f.cart.Fetch(ctx); err != nil {
			return nil, err
		}
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, apierr.New(apierr.KindValidation, "Your cart is empty")
	}

	started, err := f.orders.Checkout(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	f.stage(StageAuthorizing, started)
	f.log.Info().Str("order_id", started.OrderID).Str("payment_ref", started.PaymentRef).Msg("checkout started")

	timer := time.NewTimer(f.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		// the server already took the cart for the pending order
		f.resync(ctx)
		return nil, apierr.Transport(ctx.Err())
	case <-timer.C:
	}

	f.stage(StageConfirming, started)
	order, err := f.orders.ConfirmPayment(ctx, started.PaymentRef, f.signature)
	if err != nil {
		f.log.Error().Err(err).Str("payment_ref", started.PaymentRef).Msg("payment confirmation failed")
		return nil, err
	}

	// the server already emptied the cart; mirror it locally
	if _, err := f.cart.Clear(ctx); err != nil {
		f.log.Warn().Err(err).Msg("clearing local cart after checkout failed")
	}

	f.stage(StageSucceeded, started)
	return &Result{Checkout: *started, Order: order}, nil
}

// resync reloads the local cart outside the caller's cancellation
func (f *Flow) resync(ctx context.Context) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resyncTimeout)
	defer cancel()

	if _, err := f.cart.Fetch(rctx); err != nil {
		f.log.Warn().Err(err).Msg("reloading cart after cancelled checkout failed")
	}
}

func (f *Flow) stage(s Stage, resp *dto.CheckoutResponse) {
	if f.OnStage != nil {
		f.OnStage(s, resp)
	}
}
