// Package dto holds the JSON shapes exchanged between the storefront REST API
// and its clients. Both the mock backend and the client packages use these
// types so the wire format is defined once.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role of an authenticated user
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// DefaultCurrency is the only currency the storefront trades in
const DefaultCurrency = "USD"

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthTokens is the credential pair persisted by the client token store
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Empty reports whether no credentials are held
func (t AuthTokens) Empty() bool {
	return t.AccessToken == "" || t.RefreshToken == ""
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Tokens AuthTokens `json:"tokens"`
	User   User       `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	CategoryID  string          `json:"categoryId"`
	Image       string          `json:"image"`
	Gallery     []string        `json:"gallery"`
	Inventory   int             `json:"inventory"`
	Featured    bool            `json:"featured"`
	Rating      float64         `json:"rating"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Clone returns a copy that shares no slices with p
func (p Product) Clone() Product {
	if p.Gallery != nil {
		p.Gallery = append([]string(nil), p.Gallery...)
	}
	return p
}

// ProductInput is the admin payload for creating or patching a product.
// Nil fields are left untouched on patch.
type ProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	CategoryID  *string          `json:"categoryId,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Gallery     []string         `json:"gallery,omitempty"`
	Inventory   *int             `json:"inventory,omitempty"`
	Featured    *bool            `json:"featured,omitempty"`
	Rating      *float64         `json:"rating,omitempty"`
}

// ProductSort values accepted by the catalog listing
type ProductSort string

const (
	SortPriceAsc  ProductSort = "price-asc"
	SortPriceDesc ProductSort = "price-desc"
	SortLatest    ProductSort = "latest"
)

type ProductsQuery struct {
	Search   string           `form:"search"`
	Category string           `form:"category"`
	Sort     ProductSort      `form:"sort"`
	MinPrice *decimal.Decimal `form:"-"`
	MaxPrice *decimal.Decimal `form:"-"`
	Page     int              `form:"page"`
	PageSize int              `form:"pageSize"`
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// CartLineItem is one product-quantity pairing. Product is a denormalized
// snapshot used for pricing without a second fetch.
type CartLineItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// CartSummary is the authoritative (or optimistically projected) cart.
// ID 0 means the server has not assigned a cart yet.
type CartSummary struct {
	ID       int64           `json:"id"`
	Items    []CartLineItem  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// Clone deep-copies the cart so snapshots never alias live state
func (c *CartSummary) Clone() *CartSummary {
	if c == nil {
		return nil
	}
	out := *c
	out.Items = make([]CartLineItem, len(c.Items))
	for i, item := range c.Items {
		item.Product = item.Product.Clone()
		out.Items[i] = item
	}
	return &out
}

// FindByProduct returns the index of the line for productID, or -1
func (c *CartSummary) FindByProduct(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// FindLine returns the index of the line with the given id, or -1
func (c *CartSummary) FindLine(lineID string) int {
	for i, item := range c.Items {
		if item.ID == lineID {
			return i
		}
	}
	return -1
}

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type Address struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Product   Product         `json:"product"`
}

type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Status     OrderStatus     `json:"status"`
	Items      []OrderItem     `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"createdAt"`
	Address    Address         `json:"address"`
	PaymentRef string          `json:"paymentRef"`
	PaidAt     *time.Time      `json:"paidAt"`
}

type CreateOrderRequest struct {
	Address Address `json:"address"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

type CheckoutRequest struct {
	CartID int64 `json:"cartId"`
}

type CheckoutResponse struct {
	OrderID      string `json:"orderId"`
	PaymentRef   string `json:"paymentRef"`
	ClientSecret string `json:"clientSecret"`
}

type PaymentWebhookRequest struct {
	PaymentRef string `json:"paymentRef"`
}
