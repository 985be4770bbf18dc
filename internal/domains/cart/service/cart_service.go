package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domains/cart/model"
	"storefront/internal/domains/cart/repository"
	productModel "storefront/internal/domains/product/model"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/pricing"

	"github.com/google/uuid"
)

type CartService struct {
	repo     repository.RepositoryInterface
	products ProductReader
}

func NewCartService(repo repository.RepositoryInterface, products ProductReader) ServiceInterface {
	return &CartService{
		repo:     repo,
		products: products,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*dto.CartSummary, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return s.summarize(ctx, cart)
}

func (s *CartService) AddItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (*dto.CartSummary, error) {
	if err := model.ValidateAddItem(req); err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Inventory < 1 {
		return nil, model.ErrOutOfStock
	}

	cart, err := s.repo.Update(ctx, userID, func(cart *model.Cart) error {
		if idx := cart.FindProduct(req.ProductID); idx >= 0 {
			cart.Items[idx].Quantity = min(cart.Items[idx].Quantity+req.Quantity, product.Inventory)
			return nil
		}
		cart.Items = append(cart.Items, model.Item{
			ID:        uuid.NewString(),
			ProductID: req.ProductID,
			Quantity:  min(req.Quantity, product.Inventory),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, cart)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*dto.CartSummary, error) {
	cart, err := s.repo.Update(ctx, userID, func(cart *model.Cart) error {
		idx := cart.Find(itemID)
		if idx < 0 {
			return model.ErrCartItemNotFound
		}
		if quantity <= 0 {
			cart.Remove(itemID)
			return nil
		}

		maxQuantity := quantity
		product, err := s.products.GetProduct(ctx, cart.Items[idx].ProductID)
		switch {
		case err == nil:
			maxQuantity = product.Inventory
		case !errors.Is(err, productModel.ErrProductNotFound):
			return err
		}
		cart.Items[idx].Quantity = min(quantity, maxQuantity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*dto.CartSummary, error) {
	cart, err := s.repo.Update(ctx, userID, func(cart *model.Cart) error {
		cart.Remove(itemID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, cart)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) (*dto.CartSummary, error) {
	cart, err := s.repo.Update(ctx, userID, func(cart *model.Cart) error {
		cart.Items = []model.Item{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, cart)
}

func (s *CartService) Drain(ctx context.Context, userID string, fn func(cart *dto.CartSummary) error) error {
	_, err := s.repo.Update(ctx, userID, func(cart *model.Cart) error {
		summary, err := s.summarize(ctx, cart)
		if err != nil {
			return err
		}
		if err := fn(summary); err != nil {
			return err
		}
		cart.Items = []model.Item{}
		return nil
	})
	return err
}

// summarize prices the cart from the current catalog. Lines whose product
// has been deleted are left out.
func (s *CartService) summarize(ctx context.Context, cart *model.Cart) (*dto.CartSummary, error) {
	summary := &dto.CartSummary{
		ID:       cart.ID,
		Items:    make([]dto.CartLineItem, 0, len(cart.Items)),
		Currency: dto.DefaultCurrency,
	}
	for _, item := range cart.Items {
		product, err := s.products.GetProduct(ctx, item.ProductID)
		if errors.Is(err, productModel.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve product %s: %w", item.ProductID, err)
		}
		summary.Items = append(summary.Items, dto.CartLineItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   *product,
		})
	}
	pricing.Apply(summary)
	return summary, nil
}
