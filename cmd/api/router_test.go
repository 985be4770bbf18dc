package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/client/api"
	"storefront/internal/client/apierr"
	"storefront/internal/client/cart"
	"storefront/internal/client/checkout"
	"storefront/internal/client/session"
	"storefront/internal/client/tokenstore"
	"storefront/internal/client/transport"
	"storefront/internal/config"
	"storefront/internal/shared/dto"
	"storefront/pkg/container"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "mockpay-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront API", Environment: "test", Version: "test"},
		JWT: config.JWTConfig{Secret: "test-secret", AccessTokenExpiry: 15, RefreshTokenExpiry: 72},
		Mock: config.MockConfig{
			PaymentSecret: webhookSecret,
			AuthRateLimit: 1000,
			AuthRateBurst: 1000,
		},
	}
}

// shopper is one client process talking to the test server
type shopper struct {
	tokens    *tokenstore.MemoryStore
	transport *transport.Client
	api       *api.Client
	session   *session.Session
	cart      *cart.Engine
}

func newServer(t *testing.T) (*httptest.Server, *container.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	c, err := container.NewContainer(testConfig())
	require.NoError(t, err)

	srv := httptest.NewServer(SetupRouter(c))
	t.Cleanup(srv.Close)
	return srv, c
}

func newShopper(t *testing.T, srv *httptest.Server) *shopper {
	t.Helper()
	tokens := tokenstore.NewMemoryStore()
	tc := transport.New(srv.URL+"/api/v1", tokens, transport.WithTimeout(5*time.Second))
	client := api.New(tc)

	sess := session.New(client.Auth, tokens, zerolog.Nop())
	sess.Bind(tc)
	engine := cart.NewEngine(client.Cart, sess)
	sess.OnLogout(engine.Reset)
	t.Cleanup(engine.Close)

	return &shopper{tokens: tokens, transport: tc, api: client, session: sess, cart: engine}
}

func (s *shopper) login(t *testing.T, email, password string) {
	t.Helper()
	_, err := s.session.Login(context.Background(), email, password)
	require.NoError(t, err)
}

func (s *shopper) product(t *testing.T, id string) dto.Product {
	t.Helper()
	p, err := s.api.Catalog.Product(context.Background(), id)
	require.NoError(t, err)
	return *p
}

func TestHealthAndSecurityHeaders(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCatalogEndpoints(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	ctx := context.Background()

	categories, err := s.api.Catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 3)

	page, err := s.api.Catalog.Products(ctx, dto.ProductsQuery{Category: "c1", Sort: dto.SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "p7", page.Items[0].ID)
	assert.Equal(t, 1, page.TotalPages)

	_, err = s.api.Catalog.Product(ctx, "p404")
	assert.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestCartRequiresSignIn(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	p1 := s.product(t, "p1")

	_, err := s.cart.AddItem(context.Background(), p1, 1)
	assert.ErrorIs(t, err, apierr.ErrNotAuthenticated)
	assert.Equal(t, "Please sign in to manage your cart", apierr.UserMessage(err))
	assert.Nil(t, s.cart.Cart())
}

func TestCartSyncsWithServer(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	p1 := s.product(t, "p1")
	got, err := s.cart.AddItem(ctx, p1, 1)
	require.NoError(t, err)

	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(1), got.ID)
	assert.False(t, strings.HasPrefix(got.Items[0].ID, cart.TempLinePrefix))
	assert.Equal(t, "78", got.Subtotal.String())
	assert.Equal(t, "6.24", got.Tax.String())
	assert.Equal(t, "84.24", got.Total.String())

	// quantities clamp to inventory on both sides
	p7 := s.product(t, "p7")
	got, err = s.cart.AddItem(ctx, p7, 20)
	require.NoError(t, err)
	line := got.Items[got.FindByProduct("p7")]
	assert.Equal(t, 12, line.Quantity)

	got, err = s.cart.UpdateItem(ctx, line.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, got.FindByProduct("p7"))

	s.cart.Wait()
	server, err := s.api.Cart.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.cart.Cart().Items, server.Items)
	assert.True(t, s.cart.Cart().Total.Equal(server.Total))

	cleared, err := s.cart.Clear(ctx)
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Equal(t, int64(1), cleared.ID)
}

func TestUnknownLineRollsBack(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	_, err := s.cart.AddItem(ctx, s.product(t, "p3"), 2)
	require.NoError(t, err)
	s.cart.Wait()
	before := s.cart.Cart()

	_, err = s.cart.UpdateItem(ctx, "not-a-line", 3)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
	s.cart.Wait()
	assert.Equal(t, before, s.cart.Cart())
}

func TestExpiredAccessTokenIsRefreshed(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	original, err := s.tokens.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.tokens.Save(ctx, dto.AuthTokens{AccessToken: "expired", RefreshToken: original.RefreshToken}))

	me, err := s.api.Auth.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)

	rotated, err := s.tokens.Load(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, original.RefreshToken, rotated.RefreshToken)
	assert.True(t, s.session.Authenticated())

	// the consumed refresh token is dead
	err = s.transport.Send(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   dto.RefreshRequest{RefreshToken: original.RefreshToken},
		Public: true,
	}, nil)
	assert.ErrorIs(t, err, apierr.ErrNotAuthenticated)
}

func TestFailedRefreshEndsSession(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	_, err := s.cart.AddItem(ctx, s.product(t, "p4"), 1)
	require.NoError(t, err)
	s.cart.Wait()

	require.NoError(t, s.tokens.Save(ctx, dto.AuthTokens{AccessToken: "expired", RefreshToken: "forged"}))
	_, err = s.api.Cart.Fetch(ctx)
	assert.ErrorIs(t, err, apierr.ErrNotAuthenticated)

	assert.False(t, s.session.Authenticated())
	assert.Nil(t, s.cart.Cart())
	stored, err := s.tokens.Load(ctx)
	require.NoError(t, err)
	assert.True(t, stored.Empty())
}

func TestLogoutRevokesTokens(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	tokens, err := s.tokens.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.session.Logout(ctx))
	assert.False(t, s.session.Authenticated())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	err = s.transport.Send(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   dto.RefreshRequest{RefreshToken: tokens.RefreshToken},
		Public: true,
	}, nil)
	assert.ErrorIs(t, err, apierr.ErrNotAuthenticated)
}

func TestCheckoutAndPaymentWebhook(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	_, err := s.cart.AddItem(ctx, s.product(t, "p2"), 2)
	require.NoError(t, err)
	s.cart.Wait()

	var stages []checkout.Stage
	flow := checkout.New(s.api.Orders, s.cart, webhookSecret, 0, zerolog.Nop())
	flow.OnStage = func(st checkout.Stage, _ *dto.CheckoutResponse) { stages = append(stages, st) }

	res, err := flow.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, []checkout.Stage{checkout.StageAuthorizing, checkout.StageConfirming, checkout.StageSucceeded}, stages)
	assert.Equal(t, dto.OrderPaid, res.Order.Status)
	assert.NotNil(t, res.Order.PaidAt)
	assert.True(t, res.Order.Total.Equal(decimal.RequireFromString("207.36")))
	assert.Empty(t, s.cart.Cart().Items)

	assert.Equal(t, 13, s.product(t, "p2").Inventory)

	orders, err := s.api.Orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, res.Checkout.OrderID, orders[0].ID)
	assert.Equal(t, "123 Mockingbird Lane", orders[0].Address.Line1)

	// replays are harmless, forged signatures are not accepted
	again, err := s.api.Orders.ConfirmPayment(ctx, res.Checkout.PaymentRef, webhookSecret)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderPaid, again.Status)

	_, err = s.api.Orders.ConfirmPayment(ctx, res.Checkout.PaymentRef, "forged")
	assert.ErrorIs(t, err, apierr.ErrNotAuthenticated)
	assert.True(t, s.session.Authenticated())

	_, err = s.api.Orders.ConfirmPayment(ctx, "pay_missing", webhookSecret)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestCheckoutRejectsEmptyCartAndShortStock(t *testing.T) {
	srv, c := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	_, err := s.api.Orders.Checkout(ctx, 0)
	assert.ErrorIs(t, err, apierr.ErrValidation)

	summary, err := s.cart.AddItem(ctx, s.product(t, "p9"), 18)
	require.NoError(t, err)

	_, err = s.api.Orders.Checkout(ctx, summary.ID+5)
	assert.ErrorIs(t, err, apierr.ErrValidation)

	require.NoError(t, c.ProductService.ReserveStock(ctx, map[string]int{"p9": 1}))
	_, err = s.api.Orders.Checkout(ctx, summary.ID)
	assert.ErrorIs(t, err, apierr.ErrConflict)
}

func TestAdminRoutes(t *testing.T) {
	srv, _ := newServer(t)
	ctx := context.Background()

	customer := newShopper(t, srv)
	customer.login(t, "ava@storefront.dev", "password123")
	_, err := customer.api.Catalog.CreateProduct(ctx, dto.ProductInput{})
	assert.ErrorIs(t, err, apierr.ErrForbidden)

	admin := newShopper(t, srv)
	admin.login(t, "elliot@storefront.dev", "admin123")

	name := "Stoneware Bowl"
	inventory := 7
	created, err := admin.api.Catalog.CreateProduct(ctx, dto.ProductInput{Name: &name, Inventory: &inventory})
	require.NoError(t, err)
	assert.Equal(t, "c1", created.CategoryID)

	featured := true
	updated, err := admin.api.Catalog.UpdateProduct(ctx, created.ID, dto.ProductInput{Featured: &featured})
	require.NoError(t, err)
	assert.True(t, updated.Featured)

	// a customer order moves through the lifecycle
	_, err = customer.cart.AddItem(ctx, *updated, 1)
	require.NoError(t, err)
	customer.cart.Wait()
	started, err := customer.api.Orders.Checkout(ctx, 0)
	require.NoError(t, err)

	_, err = customer.api.Orders.UpdateStatus(ctx, started.OrderID, dto.OrderShipped)
	assert.ErrorIs(t, err, apierr.ErrForbidden)

	_, err = admin.api.Orders.UpdateStatus(ctx, started.OrderID, dto.OrderShipped)
	assert.ErrorIs(t, err, apierr.ErrConflict)

	order, err := admin.api.Orders.UpdateStatus(ctx, started.OrderID, dto.OrderPaid)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderPaid, order.Status)

	all, err := admin.api.Orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, admin.api.Catalog.DeleteProduct(ctx, created.ID))
	_, err = admin.api.Catalog.Product(ctx, created.ID)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestSeededAccountsSignIn(t *testing.T) {
	srv, _ := newServer(t)
	ctx := context.Background()

	for _, acct := range []struct {
		email, password string
		role            dto.Role
	}{
		{"ava@storefront.dev", "password123", dto.RoleCustomer},
		{"elliot@storefront.dev", "admin123", dto.RoleAdmin},
	} {
		t.Run(acct.email, func(t *testing.T) {
			s := newShopper(t, srv)
			u, err := s.session.Login(ctx, acct.email, acct.password)
			require.NoError(t, err)
			assert.Equal(t, acct.role, u.Role)

			me, err := s.session.Me(ctx)
			require.NoError(t, err)
			assert.Equal(t, acct.email, me.Email)
		})
	}
}

func TestBlankLineIDLeavesCartIntact(t *testing.T) {
	srv, _ := newServer(t)
	s := newShopper(t, srv)
	s.login(t, "ava@storefront.dev", "password123")
	ctx := context.Background()

	_, err := s.cart.AddItem(ctx, s.product(t, "p1"), 1)
	require.NoError(t, err)
	_, err = s.cart.AddItem(ctx, s.product(t, "p3"), 1)
	require.NoError(t, err)
	s.cart.Wait()

	_, err = s.cart.RemoveItem(ctx, "")
	assert.ErrorIs(t, err, apierr.ErrValidation)
	_, err = s.api.Cart.Remove(ctx, "")
	assert.ErrorIs(t, err, apierr.ErrValidation)

	// the server must not redirect a trailing-slash delete onto the cart itself
	var out dto.CartSummary
	err = s.transport.Delete(ctx, "/cart/", &out)
	assert.ErrorIs(t, err, apierr.ErrNotFound)

	server, err := s.api.Cart.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, server.Items, 2)
	assert.Len(t, s.cart.Cart().Items, 2)
}
