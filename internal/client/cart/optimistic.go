package cart

import (
	"storefront/internal/shared/dto"
	"storefront/internal/shared/pricing"
)

// TempLinePrefix marks line ids the server has not assigned yet
const TempLinePrefix = "optimistic-"

func TempLineID(productID string) string {
	return TempLinePrefix + productID
}

// The projections below never modify their input.

func emptyCart(id int64, currency string) *dto.CartSummary {
	if currency == "" {
		currency = dto.DefaultCurrency
	}
	cart := &dto.CartSummary{ID: id, Items: []dto.CartLineItem{}, Currency: currency}
	pricing.Apply(cart)
	return cart
}

func projectAdd(cur *dto.CartSummary, product dto.Product, quantity int) *dto.CartSummary {
	next := cur.Clone()
	if next == nil {
		next = emptyCart(0, "")
	}

	if i := next.FindByProduct(product.ID); i >= 0 {
		next.Items[i].Quantity = pricing.ClampQuantity(next.Items[i].Quantity+quantity, product.Inventory)
	} else {
		next.Items = append(next.Items, dto.CartLineItem{
			ID:        TempLineID(product.ID),
			ProductID: product.ID,
			Quantity:  pricing.ClampQuantity(quantity, product.Inventory),
			Product:   product.Clone(),
		})
	}

	pricing.Apply(next)
	return next
}

// projectUpdate never drops the line; quantities below 1 display as 1 until
// the server answers (it deletes the line for those).
func projectUpdate(cur *dto.CartSummary, lineID string, quantity int) *dto.CartSummary {
	if cur == nil {
		return nil
	}
	i := cur.FindLine(lineID)
	if i < 0 {
		return cur.Clone()
	}

	next := cur.Clone()
	next.Items[i].Quantity = pricing.ClampQuantity(quantity, next.Items[i].Product.Inventory)
	pricing.Apply(next)
	return next
}

func projectRemove(cur *dto.CartSummary, lineID string) *dto.CartSummary {
	if cur == nil {
		return nil
	}

	next := cur.Clone()
	items := next.Items[:0]
	for _, item := range next.Items {
		if item.ID != lineID {
			items = append(items, item)
		}
	}
	next.Items = items
	pricing.Apply(next)
	return next
}

func projectClear(cur *dto.CartSummary) *dto.CartSummary {
	if cur == nil {
		return emptyCart(0, "")
	}
	return emptyCart(cur.ID, cur.Currency)
}
