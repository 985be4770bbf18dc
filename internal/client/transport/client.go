// Package transport issues requests against the storefront API. It attaches
// the bearer token from the token store and, on a 401, performs a
// deduplicated token refresh before retrying the original request once.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"storefront/internal/client/apierr"
	"storefront/internal/client/tokenstore"
	"storefront/internal/shared/dto"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	refreshKey      = "refresh"
	refreshPath     = "/auth/refresh"
	maxResponseBody = 4 << 20
)

// Request describes one API call. Public requests carry no bearer token and
// never trigger a refresh.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
	Public bool
}

// envelope mirrors the server's response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is safe for concurrent use
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         tokenstore.Store
	refreshTimeout time.Duration
	log            zerolog.Logger

	refreshes singleflight.Group
	inflight  atomic.Int32

	hooksMu sync.Mutex
	hooks   []func()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds every request, refresh included
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
		c.refreshTimeout = d
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, tokens tokenstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Timeout: 10 * time.Second},
		tokens:         tokens,
		refreshTimeout: 10 * time.Second,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnCredentialsCleared registers fn to run whenever a failed refresh or a
// rejected retry wipes the stored credentials
func (c *Client) OnCredentialsCleared(fn func()) {
	c.hooksMu.Lock()
	c.hooks = append(c.hooks, fn)
	c.hooksMu.Unlock()
}

// RefreshInFlight reports whether a token refresh is currently running
func (c *Client) RefreshInFlight() bool {
	return c.inflight.Load() > 0
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Send(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Send(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Send(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Send(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

// Send performs req and decodes the response data into out (when non-nil)
func (c *Client) Send(ctx context.Context, req Request, out any) error {
	var token string
	if !req.Public {
		tokens, err := c.tokens.Load(ctx)
		if err != nil {
			return &apierr.Error{Kind: apierr.KindUnknown, Message: "load credentials", Err: err}
		}
		token = tokens.AccessToken
	}

	status, env, err := c.roundTrip(ctx, req, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !req.Public {
		fresh, err := c.freshToken(ctx, token)
		if err != nil {
			return err
		}

		status, env, err = c.roundTrip(ctx, req, fresh)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			c.clearCredentials(ctx, "retried request rejected")
			return failure(status, env)
		}
	}

	if status >= http.StatusBadRequest {
		return failure(status, env)
	}

	if out != nil && env != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apierr.Transport(fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err))
		}
	}
	return nil
}

// freshToken returns a token different from the rejected one. When another
// request already rotated the credentials it reuses them instead of
// refreshing again.
func (c *Client) freshToken(ctx context.Context, rejected string) (string, error) {
	tokens, err := c.tokens.Load(ctx)
	if err == nil && tokens.AccessToken != "" && tokens.AccessToken != rejected {
		return tokens.AccessToken, nil
	}
	return c.refresh(ctx)
}

// refresh joins the shared in-flight refresh or starts one. The refresh is
// detached from ctx so one caller giving up does not fail the others.
func (c *Client) refresh(ctx context.Context) (string, error) {
	ch := c.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		c.inflight.Add(1)
		defer c.inflight.Add(-1)

		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()
		return c.doRefresh(rctx)
	})

	select {
	case <-ctx.Done():
		return "", apierr.Transport(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	tokens, err := c.tokens.Load(ctx)
	if err != nil || tokens.RefreshToken == "" {
		c.clearCredentials(ctx, "no refresh token")
		return "", &apierr.Error{Kind: apierr.KindNotAuthenticated, Message: "not authenticated", Err: err}
	}

	var pair dto.AuthTokens
	err = c.Send(ctx, Request{
		Method: http.MethodPost,
		Path:   refreshPath,
		Body:   dto.RefreshRequest{RefreshToken: tokens.RefreshToken},
		Public: true,
	}, &pair)
	if err == nil && pair.AccessToken == "" {
		err = errors.New("refresh response carried no access token")
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("token refresh failed")
		c.clearCredentials(ctx, "refresh failed")
		return "", &apierr.Error{Kind: apierr.KindNotAuthenticated, Message: "session expired", Err: err}
	}

	if err := c.tokens.Save(ctx, pair); err != nil {
		return "", &apierr.Error{Kind: apierr.KindUnknown, Message: "store refreshed credentials", Err: err}
	}

	c.log.Info().Msg("access token refreshed")
	return pair.AccessToken, nil
}

func (c *Client) clearCredentials(ctx context.Context, reason string) {
	if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		c.log.Error().Err(err).Msg("failed to clear credentials")
	}
	c.log.Info().Str("reason", reason).Msg("credentials cleared")

	c.hooksMu.Lock()
	hooks := append([]func(){}, c.hooks...)
	c.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

func (c *Client) roundTrip(ctx context.Context, req Request, token string) (int, *envelope, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, apierr.New(apierr.KindValidation, fmt.Sprintf("encode request: %v", err))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return 0, nil, apierr.Transport(err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, apierr.Transport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return 0, nil, apierr.Transport(err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Msg("api request")

	var env envelope
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, &env, nil
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			// non-envelope error bodies (proxies, router 404s)
			return resp.StatusCode, &env, nil
		}
		return 0, nil, apierr.Transport(fmt.Errorf("decode envelope: %w", err))
	}
	return resp.StatusCode, &env, nil
}

func failure(status int, env *envelope) error {
	code, message := "", http.StatusText(status)
	if env != nil && env.Error != nil {
		code = env.Error.Code
		if env.Error.Message != "" {
			message = env.Error.Message
		}
	}
	return apierr.FromStatus(status, code, message)
}
