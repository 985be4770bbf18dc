// Package cart is the client-side cart synchronization engine. Every write
// is applied optimistically to the shared Store, sent to the remote cart,
// and then replaced by the server's cart or rolled back to the state seen
// just before that write. Each settled write schedules a confirmation
// refetch.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/client/apierr"
	"storefront/internal/shared/dto"

	"github.com/rs/zerolog"
)

// ErrReadCancelled is returned by Fetch when a write or Reset superseded the read
var ErrReadCancelled = errors.New("cart read cancelled")

// ErrClosed is returned by every operation after Close
var ErrClosed = errors.New("cart engine closed")

// Remote is the server-held cart. Every call returns the full server cart.
type Remote interface {
	Fetch(ctx context.Context) (*dto.CartSummary, error)
	Add(ctx context.Context, productID string, quantity int) (*dto.CartSummary, error)
	Update(ctx context.Context, lineID string, quantity int) (*dto.CartSummary, error)
	Remove(ctx context.Context, lineID string) (*dto.CartSummary, error)
	Clear(ctx context.Context) (*dto.CartSummary, error)
}

// Authenticator reports, without I/O, whether credentials are held
type Authenticator interface {
	Authenticated() bool
}

type Engine struct {
	store  *Store
	remote Remote
	auth   Authenticator
	log    zerolog.Logger

	// guarded by store's lock
	readSeq    uint64
	readCancel context.CancelFunc
	epoch      uint64
	closed     bool

	refetchMu      sync.Mutex
	refetchRunning bool
	refetchQueued  bool
	refetchStopped bool // set by Close; no refetch starts afterwards
	refetches      sync.WaitGroup

	baseCtx context.Context
	stop    context.CancelFunc
}

type Option func(*Engine)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithStore shares an existing store instead of creating one
func WithStore(s *Store) Option {
	return func(e *Engine) { e.store = s }
}

func NewEngine(remote Remote, auth Authenticator, opts ...Option) *Engine {
	ctx, stop := context.WithCancel(context.Background())
	e := &Engine{
		remote:  remote,
		auth:    auth,
		log:     zerolog.Nop(),
		baseCtx: ctx,
		stop:    stop,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = NewStore()
	}
	return e
}

func (e *Engine) Store() *Store {
	return e.store
}

func (e *Engine) State() State {
	return e.store.State()
}

// Cart returns a copy of the current cart, nil when none is known
func (e *Engine) Cart() *dto.CartSummary {
	return e.store.State().Cart
}

func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	return e.store.Subscribe(fn)
}

// ============================================================
// READS
// ============================================================

// Fetch loads the server cart and makes it the baseline. A read that a
// later write cancels never lands in the store.
func (e *Engine) Fetch(ctx context.Context) (*dto.CartSummary, error) {
	if !e.auth.Authenticated() {
		return nil, notAuthenticated()
	}

	e.store.Lock()
	if e.closed {
		e.store.Unlock()
		return nil, ErrClosed
	}
	e.cancelReadLocked()
	e.readSeq++
	seq := e.readSeq
	rctx, cancel := context.WithCancel(ctx)
	e.readCancel = cancel
	e.store.setFetching(true)
	e.store.Unlock()

	cart, err := e.remote.Fetch(rctx)
	cancel()

	e.store.Lock()
	defer e.store.Unlock()

	if seq != e.readSeq {
		return nil, ErrReadCancelled
	}
	e.readCancel = nil
	e.store.setFetching(false)

	if err != nil {
		e.store.setErr(err)
		return nil, err
	}

	e.store.setCart(cart)
	e.store.setStale(false)
	e.store.setErr(nil)
	return cart.Clone(), nil
}

func (e *Engine) cancelReadLocked() {
	if e.readCancel != nil {
		e.readCancel()
		e.readCancel = nil
		e.readSeq++
		e.store.setFetching(false)
	}
}

// ============================================================
// WRITES
// ============================================================

// AddItem adds quantity of product, merging into an existing line.
// Out-of-stock products are rejected without a request.
func (e *Engine) AddItem(ctx context.Context, product dto.Product, quantity int) (*dto.CartSummary, error) {
	if !e.auth.Authenticated() {
		return nil, notAuthenticated()
	}
	if product.Inventory < 1 {
		return nil, apierr.New(apierr.KindConflict, fmt.Sprintf("%s is out of stock", product.Name))
	}

	return e.mutate(ctx, "add",
		func(cur *dto.CartSummary) *dto.CartSummary { return projectAdd(cur, product, quantity) },
		func(ctx context.Context) (*dto.CartSummary, error) { return e.remote.Add(ctx, product.ID, quantity) },
	)
}

// UpdateItem sets the quantity of a line. The server removes the line for
// quantity <= 0; locally the line shows quantity 1 until it answers.
func (e *Engine) UpdateItem(ctx context.Context, lineID string, quantity int) (*dto.CartSummary, error) {
	if err := e.checkLine(lineID); err != nil {
		return nil, err
	}
	return e.mutate(ctx, "update",
		func(cur *dto.CartSummary) *dto.CartSummary { return projectUpdate(cur, lineID, quantity) },
		func(ctx context.Context) (*dto.CartSummary, error) { return e.remote.Update(ctx, lineID, quantity) },
	)
}

func (e *Engine) RemoveItem(ctx context.Context, lineID string) (*dto.CartSummary, error) {
	if err := e.checkLine(lineID); err != nil {
		return nil, err
	}
	return e.mutate(ctx, "remove",
		func(cur *dto.CartSummary) *dto.CartSummary { return projectRemove(cur, lineID) },
		func(ctx context.Context) (*dto.CartSummary, error) { return e.remote.Remove(ctx, lineID) },
	)
}

// checkLine rejects a blank line id before anything is applied or sent
func (e *Engine) checkLine(lineID string) error {
	if !e.auth.Authenticated() {
		return notAuthenticated()
	}
	if strings.TrimSpace(lineID) == "" {
		return apierr.New(apierr.KindValidation, "cart line id is required")
	}
	return nil
}

// Clear empties the cart, keeping its id
func (e *Engine) Clear(ctx context.Context) (*dto.CartSummary, error) {
	return e.mutate(ctx, "clear",
		projectClear,
		e.remote.Clear,
	)
}

func (e *Engine) mutate(
	ctx context.Context,
	op string,
	project func(*dto.CartSummary) *dto.CartSummary,
	call func(context.Context) (*dto.CartSummary, error),
) (*dto.CartSummary, error) {
	if !e.auth.Authenticated() {
		return nil, notAuthenticated()
	}

	var (
		epoch  uint64
		closed bool
	)
	cart, err := Run(ctx, e.store, Mutation[*dto.CartSummary, *dto.CartSummary]{
		Snapshot: func() *dto.CartSummary {
			epoch, closed = e.epoch, e.closed
			return e.store.current()
		},
		Apply: func() {
			if closed {
				return
			}
			e.cancelReadLocked()
			e.store.setCart(project(e.store.current()))
			e.store.addPending(1)
		},
		Call: func(ctx context.Context) (*dto.CartSummary, error) {
			if closed {
				return nil, ErrClosed
			}
			return call(ctx)
		},
		Commit: func(server *dto.CartSummary) {
			e.store.addPending(-1)
			if epoch != e.epoch {
				return
			}
			e.store.setCart(server)
			e.store.setStale(true)
			e.store.setErr(nil)
		},
		Rollback: func(snapshot *dto.CartSummary, err error) {
			if closed {
				return
			}
			e.store.addPending(-1)
			if epoch != e.epoch {
				return
			}
			e.store.setCart(snapshot)
			e.store.setStale(true)
			e.store.setErr(err)
		},
		Settled: func(err error) {
			if closed {
				return
			}
			if err != nil {
				e.log.Warn().Err(err).Str("op", op).Msg("cart mutation rolled back")
			}
			e.scheduleRefetch()
		},
	})
	if err != nil {
		return nil, err
	}
	return cart.Clone(), nil
}

// ============================================================
// CONFIRMATION REFETCH
// ============================================================

// scheduleRefetch starts a background Fetch, or queues one behind the
// running fetch. At most one is queued.
func (e *Engine) scheduleRefetch() {
	e.refetchMu.Lock()
	defer e.refetchMu.Unlock()

	if e.refetchStopped {
		return
	}

	if e.refetchRunning {
		e.refetchQueued = true
		return
	}
	e.refetchRunning = true
	e.refetches.Add(1)
	go e.refetchLoop()
}

func (e *Engine) refetchLoop() {
	defer e.refetches.Done()

	for {
		e.refetch()

		e.refetchMu.Lock()
		if !e.refetchQueued {
			e.refetchRunning = false
			e.refetchMu.Unlock()
			return
		}
		e.refetchQueued = false
		e.refetchMu.Unlock()
	}
}

func (e *Engine) refetch() {
	e.store.Lock()
	// a pending write schedules its own refetch when it settles
	skip := e.closed || e.store.pending > 0
	e.store.Unlock()
	if skip || !e.auth.Authenticated() {
		return
	}

	_, err := e.Fetch(e.baseCtx)
	switch {
	case err == nil, errors.Is(err, ErrReadCancelled), errors.Is(err, ErrClosed):
	case errors.Is(err, apierr.ErrNotAuthenticated):
		e.log.Debug().Msg("confirmation refetch skipped, signed out")
	default:
		e.log.Warn().Err(err).Msg("confirmation refetch failed")
	}
}

// Wait blocks until no confirmation refetch is running or queued
func (e *Engine) Wait() {
	e.refetches.Wait()
}

// ============================================================
// LIFECYCLE
// ============================================================

// Reset discards the cart, e.g. on logout. Writes still in flight settle
// without touching the store.
func (e *Engine) Reset() {
	e.store.Lock()
	defer e.store.Unlock()

	e.cancelReadLocked()
	e.readSeq++
	e.epoch++
	e.store.reset()
}

// Close cancels background work and waits for it. Later calls fail with ErrClosed.
func (e *Engine) Close() {
	e.store.Lock()
	e.closed = true
	e.cancelReadLocked()
	e.readSeq++
	e.store.Unlock()

	e.refetchMu.Lock()
	e.refetchStopped = true
	e.refetchMu.Unlock()

	e.stop()
	e.refetches.Wait()
}

func notAuthenticated() error {
	return apierr.New(apierr.KindNotAuthenticated, "please sign in to manage your cart")
}
