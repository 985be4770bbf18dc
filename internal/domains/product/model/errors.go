package model

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownCategory   = errors.New("unknown category")
)

// StockShortage names the product that could not be reserved
type StockShortage struct {
	ProductID string
	Requested int
	Available int
}

func (e *StockShortage) Error() string {
	return "insufficient stock for " + e.ProductID
}

func (e *StockShortage) Unwrap() error {
	return ErrInsufficientStock
}
