package cart

import (
	"sync"

	"storefront/internal/shared/dto"
)

// State is a point-in-time view of the engine. Cart is nil while no cart is
// known (unauthenticated, or before the first fetch or add).
type State struct {
	Cart     *dto.CartSummary
	Stale    bool
	Fetching bool
	Pending  int   // mutations between optimistic apply and settle
	Err      error // last failed fetch or mutation, nil after a good fetch
	Version  uint64
}

// Store is the single cart slot of a session. It is a sync.Locker: every
// write happens between Lock and Unlock, and Unlock notifies subscribers
// when anything changed.
type Store struct {
	mu      sync.Mutex
	cart    *dto.CartSummary
	stale   bool
	fetch   bool
	pending int
	err     error
	version uint64
	dirty   bool

	subs   map[int]func(State)
	nextID int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(State))}
}

// State returns a copy of the current state; the cart is deep-copied
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Subscribe registers fn to receive the new state after every change.
// Callbacks run outside the lock and may arrive out of order under
// concurrent writes; compare Version to discard older states.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) Lock() {
	s.mu.Lock()
}

func (s *Store) Unlock() {
	if !s.dirty {
		s.mu.Unlock()
		return
	}

	s.dirty = false
	s.version++
	st := s.stateLocked()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// The helpers below require the lock.

func (s *Store) stateLocked() State {
	return State{
		Cart:     s.cart.Clone(),
		Stale:    s.stale,
		Fetching: s.fetch,
		Pending:  s.pending,
		Err:      s.err,
		Version:  s.version,
	}
}

func (s *Store) current() *dto.CartSummary {
	return s.cart
}

func (s *Store) setCart(cart *dto.CartSummary) {
	s.cart = cart
	s.dirty = true
}

func (s *Store) setStale(stale bool) {
	if s.stale != stale {
		s.stale = stale
		s.dirty = true
	}
}

func (s *Store) setFetching(fetching bool) {
	if s.fetch != fetching {
		s.fetch = fetching
		s.dirty = true
	}
}

func (s *Store) addPending(delta int) {
	s.pending += delta
	s.dirty = true
}

func (s *Store) setErr(err error) {
	if s.err != err {
		s.err = err
		s.dirty = true
	}
}

func (s *Store) reset() {
	s.cart = nil
	s.stale = false
	s.fetch = false
	s.err = nil
	s.dirty = true
}
