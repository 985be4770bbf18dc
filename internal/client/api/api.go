// Package api wraps the storefront REST endpoints in typed calls on top of
// the transport client.
package api

import (
	"context"
	"net/http"
	"net/url"

	"storefront/internal/client/transport"
)

// Doer is the subset of *transport.Client the resource clients need
type Doer interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	Send(ctx context.Context, req transport.Request, out any) error
}

// Client groups the resource clients of one API
type Client struct {
	Auth    *AuthAPI
	Catalog *CatalogAPI
	Cart    *CartAPI
	Orders  *OrdersAPI
}

func New(doer Doer) *Client {
	return &Client{
		Auth:    &AuthAPI{doer: doer},
		Catalog: &CatalogAPI{doer: doer},
		Cart:    &CartAPI{doer: doer},
		Orders:  &OrdersAPI{doer: doer},
	}
}

func publicPost(ctx context.Context, doer Doer, path string, body, out any) error {
	return doer.Send(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
		Public: true,
	}, out)
}
