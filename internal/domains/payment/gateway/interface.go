package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway is the payment provider seen by checkout and the webhook
type Gateway interface {
	// CreatePayment opens a payment for an order
	CreatePayment(ctx context.Context, req PaymentRequest) (*PaymentIntent, error)

	// VerifySignature checks the signature header of a webhook call
	VerifySignature(signature string) bool
}

type PaymentRequest struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
}

// PaymentIntent is what the client needs to confirm a payment
type PaymentIntent struct {
	PaymentRef   string // "pay_" + 8 hex chars, unique per order
	ClientSecret string
}
