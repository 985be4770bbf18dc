package model

import (
	"storefront/internal/shared/dto"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// transitions lists the statuses reachable from each status.
// Cancelled and completed orders are final.
var transitions = map[dto.OrderStatus][]dto.OrderStatus{
	dto.OrderPending: {dto.OrderPaid, dto.OrderCancelled},
	dto.OrderPaid:    {dto.OrderShipped, dto.OrderCancelled},
	dto.OrderShipped: {dto.OrderCompleted},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to dto.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsKnownStatus(s dto.OrderStatus) bool {
	switch s {
	case dto.OrderPending, dto.OrderPaid, dto.OrderShipped, dto.OrderCompleted, dto.OrderCancelled:
		return true
	}
	return false
}

// DefaultAddress is the shipping address checkout uses when the client
// sends none
func DefaultAddress(u dto.User) dto.Address {
	return dto.Address{
		FullName:   u.Name,
		Email:      u.Email,
		Phone:      "000-000-0000",
		Line1:      "123 Mockingbird Lane",
		City:       "Mock City",
		State:      "CA",
		PostalCode: "00000",
		Country:    "USA",
	}
}

func ValidateAddress(a dto.Address) error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FullName, validation.Required, validation.Length(1, 120)),
		validation.Field(&a.Email, validation.Required, is.EmailFormat),
		validation.Field(&a.Line1, validation.Required),
		validation.Field(&a.City, validation.Required),
		validation.Field(&a.PostalCode, validation.Required),
		validation.Field(&a.Country, validation.Required),
	)
}

func ValidateStatus(req dto.UpdateOrderStatusRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Status, validation.Required, validation.In(
			dto.OrderPending, dto.OrderPaid, dto.OrderShipped, dto.OrderCompleted, dto.OrderCancelled,
		)),
	)
}

// Quantities maps product id to the quantity ordered
func Quantities(o *dto.Order) map[string]int {
	out := make(map[string]int, len(o.Items))
	for _, item := range o.Items {
		out[item.ProductID] += item.Quantity
	}
	return out
}
