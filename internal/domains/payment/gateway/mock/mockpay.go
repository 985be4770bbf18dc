package mock

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"sync/atomic"

	"storefront/internal/domains/payment/gateway"

	"github.com/google/uuid"
)

// MockPayGateway issues payment references locally and accepts webhooks
// signed with a shared secret
type MockPayGateway struct {
	secret            string
	shouldFailPayment atomic.Bool
}

func NewMockPayGateway(secret string) *MockPayGateway {
	return &MockPayGateway{secret: secret}
}

func (m *MockPayGateway) CreatePayment(_ context.Context, req gateway.PaymentRequest) (*gateway.PaymentIntent, error) {
	if m.shouldFailPayment.Load() {
		return nil, fmt.Errorf("mock payment creation failed for order %s", req.OrderID)
	}
	return &gateway.PaymentIntent{
		PaymentRef:   "pay_" + uuid.NewString()[:8],
		ClientSecret: strings.ReplaceAll(uuid.NewString(), "-", ""),
	}, nil
}

func (m *MockPayGateway) VerifySignature(signature string) bool {
	if m.secret == "" || signature == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(signature), []byte(m.secret)) == 1
}

// SetFailPayment makes CreatePayment fail until reset
func (m *MockPayGateway) SetFailPayment(shouldFail bool) {
	m.shouldFailPayment.Store(shouldFail)
}
