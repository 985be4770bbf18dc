package model

import (
	"storefront/internal/shared/dto"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize  = 6
	MaxPageSize      = 100
	PlaceholderImage = "/images/products/placeholder.jpg"
)

var nonNegativePrice = validation.By(func(value interface{}) error {
	p, _ := value.(*decimal.Decimal)
	if p != nil && p.IsNegative() {
		return validation.NewError("validation_price_negative", "price must not be negative")
	}
	return nil
})

// ValidateInput checks an admin create or patch payload. Absent fields are
// fine; present ones must be sane.
func ValidateInput(in dto.ProductInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&in.Price, nonNegativePrice),
		validation.Field(&in.Currency, validation.NilOrNotEmpty, validation.Length(3, 3)),
		validation.Field(&in.Inventory, validation.Min(0)),
		validation.Field(&in.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
}

// ValidateQuery checks listing parameters after parsing
func ValidateQuery(q dto.ProductsQuery) error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.PageSize, validation.Min(0), validation.Max(MaxPageSize)),
	)
}
