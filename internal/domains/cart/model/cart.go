package model

import (
	"storefront/internal/shared/dto"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Cart is the stored form of a user's cart. Line prices are resolved from
// the catalog whenever the cart is read.
type Cart struct {
	ID     int64
	UserID string
	Items  []Item
}

type Item struct {
	ID        string
	ProductID string
	Quantity  int
}

// Find returns the index of the line with the given id, or -1
func (c *Cart) Find(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// FindProduct returns the index of the line holding productID, or -1
func (c *Cart) FindProduct(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Remove drops the line with itemID if present
func (c *Cart) Remove(itemID string) {
	kept := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c *Cart) Clone() *Cart {
	out := *c
	out.Items = append([]Item{}, c.Items...)
	return &out
}

func ValidateAddItem(req dto.AddCartItemRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ProductID, validation.Required.Error("productId is required")),
		// Min skips zero values, Required catches them
		validation.Field(&req.Quantity, validation.Required.Error("quantity must be at least 1"), validation.Min(1).Error("quantity must be at least 1")),
	)
}
