package pricing

import (
	"storefront/internal/shared/dto"

	"github.com/shopspring/decimal"
)

// TaxRate applied to every cart and order subtotal
var TaxRate = decimal.RequireFromString("0.08")

// Totals holds the derived monetary values of a cart or order
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Calculate derives subtotal, tax and total from a subtotal.
// Tax is rounded to cents first, then the sum is rounded.
func Calculate(subtotal decimal.Decimal) Totals {
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Round(2),
	}
}

// LineTotal returns price × quantity
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// ForItems sums the line items of a cart and derives its totals
func ForItems(items []dto.CartLineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineTotal(item.Product.Price, item.Quantity))
	}
	return Calculate(subtotal)
}

// Apply recomputes the derived fields of cart in place
func Apply(cart *dto.CartSummary) {
	t := ForItems(cart.Items)
	cart.Subtotal = t.Subtotal
	cart.Tax = t.Tax
	cart.Total = t.Total
}

// ClampQuantity bounds quantity to [1, inventory]. When inventory is below 1
// the result is 1; callers reject out-of-stock products before clamping.
func ClampQuantity(quantity, inventory int) int {
	if quantity > inventory {
		quantity = inventory
	}
	if quantity < 1 {
		quantity = 1
	}
	return quantity
}
