package model

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderForbidden    = errors.New("order belongs to another user")
	ErrCartEmpty         = errors.New("your cart is empty")
	ErrCartMismatch      = errors.New("cart mismatch")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
