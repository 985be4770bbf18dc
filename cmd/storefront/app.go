package main

import (
	"context"
	"fmt"
	"io"

	"storefront/internal/client/api"
	"storefront/internal/client/cart"
	"storefront/internal/client/checkout"
	"storefront/internal/client/session"
	"storefront/internal/client/tokenstore"
	"storefront/internal/client/transport"
	"storefront/internal/config"
	infraCache "storefront/internal/infrastructure/cache"
	"storefront/internal/shared/dto"
	"storefront/pkg/logger"
)

// app is the client stack of one CLI invocation
type app struct {
	cfg       *config.Config
	out       io.Writer
	redis     *infraCache.RedisClient
	tokens    tokenstore.Store
	transport *transport.Client
	api       *api.Client
	session   *session.Session
	cart      *cart.Engine
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer) (*app, error) {
	a := &app{cfg: cfg, out: out}

	tokens, err := a.openTokenStore(ctx)
	if err != nil {
		return nil, err
	}
	a.tokens = tokens

	a.transport = transport.New(cfg.Client.APIBaseURL, tokens,
		transport.WithTimeout(cfg.Client.RequestTimeout),
		transport.WithLogger(logger.Component("transport")),
	)
	a.api = api.New(a.transport)

	a.session = session.New(a.api.Auth, tokens, logger.Component("session"))
	a.session.Bind(a.transport)
	if err := a.session.Restore(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.cart = cart.NewEngine(a.api.Cart, a.session, cart.WithLogger(logger.Component("cart")))
	a.session.OnLogout(a.cart.Reset)
	return a, nil
}

func (a *app) openTokenStore(ctx context.Context) (tokenstore.Store, error) {
	switch a.cfg.Client.TokenStore {
	case config.TokenStoreMemory:
		return tokenstore.NewMemoryStore(), nil
	case config.TokenStoreRedis:
		a.redis = infraCache.NewRedisClient(a.cfg.Redis)
		if err := a.redis.Connect(ctx); err != nil {
			return nil, fmt.Errorf("token store: %w", err)
		}
		return tokenstore.NewRedisStore(a.redis.Client, a.cfg.Client.TokenKeyPrefix), nil
	default:
		return tokenstore.NewFileStore(a.cfg.Client.TokenFile), nil
	}
}

func (a *app) checkoutFlow() *checkout.Flow {
	flow := checkout.New(a.api.Orders, a.cart, a.cfg.Mock.PaymentSecret, a.cfg.Client.CheckoutConfirmDelay, logger.Component("checkout"))
	flow.OnStage = func(stage checkout.Stage, resp *dto.CheckoutResponse) {
		printStage(a.out, stage, resp)
	}
	return flow
}

func (a *app) close() {
	if a.cart != nil {
		a.cart.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Error("close redis", err)
		}
	}
}
