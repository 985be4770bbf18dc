package model

import (
	"testing"

	"storefront/internal/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to dto.OrderStatus
		want     bool
	}{
		{dto.OrderPending, dto.OrderPaid, true},
		{dto.OrderPending, dto.OrderCancelled, true},
		{dto.OrderPending, dto.OrderShipped, false},
		{dto.OrderPaid, dto.OrderShipped, true},
		{dto.OrderPaid, dto.OrderCancelled, true},
		{dto.OrderShipped, dto.OrderCompleted, true},
		{dto.OrderShipped, dto.OrderCancelled, false},
		{dto.OrderCancelled, dto.OrderPaid, false},
		{dto.OrderCompleted, dto.OrderShipped, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestValidateStatus(t *testing.T) {
	assert.NoError(t, ValidateStatus(dto.UpdateOrderStatusRequest{Status: dto.OrderShipped}))
	assert.Error(t, ValidateStatus(dto.UpdateOrderStatusRequest{Status: "lost"}))
	assert.Error(t, ValidateStatus(dto.UpdateOrderStatusRequest{}))
}

func TestDefaultAddressIsValid(t *testing.T) {
	addr := DefaultAddress(dto.User{Name: "Ava Harper", Email: "ava@storefront.dev"})
	assert.NoError(t, ValidateAddress(addr))
	assert.Error(t, ValidateAddress(dto.Address{FullName: "x"}))
}
