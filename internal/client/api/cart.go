package api

import (
	"context"
	"net/url"
	"strings"

	"storefront/internal/client/apierr"
	"storefront/internal/shared/dto"
)

// CartAPI is the remote cart. Every call returns the full server cart.
type CartAPI struct {
	doer Doer
}

func (a *CartAPI) Fetch(ctx context.Context) (*dto.CartSummary, error) {
	return a.cart(func(out *dto.CartSummary) error {
		return a.doer.Get(ctx, "/cart", nil, out)
	})
}

func (a *CartAPI) Add(ctx context.Context, productID string, quantity int) (*dto.CartSummary, error) {
	return a.cart(func(out *dto.CartSummary) error {
		return a.doer.Post(ctx, "/cart", dto.AddCartItemRequest{ProductID: productID, Quantity: quantity}, out)
	})
}

func (a *CartAPI) Update(ctx context.Context, lineID string, quantity int) (*dto.CartSummary, error) {
	if err := requireLine(lineID); err != nil {
		return nil, err
	}
	return a.cart(func(out *dto.CartSummary) error {
		return a.doer.Patch(ctx, "/cart/"+url.PathEscape(lineID), dto.UpdateCartItemRequest{Quantity: quantity}, out)
	})
}

func (a *CartAPI) Remove(ctx context.Context, lineID string) (*dto.CartSummary, error) {
	if err := requireLine(lineID); err != nil {
		return nil, err
	}
	return a.cart(func(out *dto.CartSummary) error {
		return a.doer.Delete(ctx, "/cart/"+url.PathEscape(lineID), out)
	})
}

func (a *CartAPI) Clear(ctx context.Context) (*dto.CartSummary, error) {
	return a.cart(func(out *dto.CartSummary) error {
		return a.doer.Delete(ctx, "/cart", out)
	})
}

func (a *CartAPI) cart(call func(*dto.CartSummary) error) (*dto.CartSummary, error) {
	var out dto.CartSummary
	if err := call(&out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []dto.CartLineItem{}
	}
	return &out, nil
}

// requireLine stops "/cart/" from being sent, which would address the whole cart
func requireLine(lineID string) error {
	if strings.TrimSpace(lineID) == "" {
		return apierr.New(apierr.KindValidation, "cart line id is required")
	}
	return nil
}
