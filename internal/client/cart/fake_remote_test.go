package cart

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"storefront/internal/client/apierr"
	"storefront/internal/shared/dto"
	"storefront/internal/shared/pricing"

	"github.com/shopspring/decimal"
)

func product(id string, price string, inventory int) dto.Product {
	return dto.Product{
		ID:        id,
		Name:      "Product " + id,
		Price:     decimal.RequireFromString(price),
		Currency:  dto.DefaultCurrency,
		Inventory: inventory,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

type fakeAuth struct{ on atomic.Bool }

func signedIn() *fakeAuth {
	a := &fakeAuth{}
	a.on.Store(true)
	return a
}

func (a *fakeAuth) Authenticated() bool { return a.on.Load() }

// fakeRemote is an in-memory server cart with the REST cart semantics
type fakeRemote struct {
	mu       sync.Mutex
	cart     dto.CartSummary
	products map[string]dto.Product
	nextLine int
	calls    map[string]int

	writeErr error
	fetchErr error

	// when set, writes block until the gate closes
	writeGate    chan struct{}
	writeStarted chan string
	// when set, fetches block until the gate closes or ctx is cancelled
	fetchGate    chan struct{}
	fetchStarted chan struct{}
}

func newFakeRemote(products ...dto.Product) *fakeRemote {
	r := &fakeRemote{
		cart:         dto.CartSummary{ID: 7, Items: []dto.CartLineItem{}, Currency: dto.DefaultCurrency},
		products:     make(map[string]dto.Product),
		calls:        make(map[string]int),
		writeStarted: make(chan string, 64),
		fetchStarted: make(chan struct{}, 64),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	pricing.Apply(&r.cart)
	return r
}

func (r *fakeRemote) count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[op]
}

func (r *fakeRemote) totalCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

func (r *fakeRemote) setWriteErr(err error) {
	r.mu.Lock()
	r.writeErr = err
	r.mu.Unlock()
}

func (r *fakeRemote) setFetchErr(err error) {
	r.mu.Lock()
	r.fetchErr = err
	r.mu.Unlock()
}

func (r *fakeRemote) snapshot() *dto.CartSummary {
	c := r.cart
	pricing.Apply(&c)
	return c.Clone()
}

func (r *fakeRemote) Fetch(ctx context.Context) (*dto.CartSummary, error) {
	r.mu.Lock()
	r.calls["fetch"]++
	gate := r.fetchGate
	r.mu.Unlock()
	r.fetchStarted <- struct{}{}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, apierr.Transport(ctx.Err())
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.snapshot(), nil
}

func (r *fakeRemote) write(op string, fn func() error) (*dto.CartSummary, error) {
	r.mu.Lock()
	r.calls[op]++
	gate := r.writeGate
	r.mu.Unlock()
	r.writeStarted <- op

	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	if err := fn(); err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

func (r *fakeRemote) Add(_ context.Context, productID string, quantity int) (*dto.CartSummary, error) {
	return r.write("add", func() error {
		p, ok := r.products[productID]
		if !ok {
			return apierr.FromStatus(404, "NOT_FOUND", "Product not found")
		}
		if quantity < 1 {
			return apierr.FromStatus(400, "BAD_REQUEST", "Quantity must be at least 1")
		}
		if i := r.cart.FindByProduct(productID); i >= 0 {
			r.cart.Items[i].Quantity = min(r.cart.Items[i].Quantity+quantity, p.Inventory)
			return nil
		}
		r.nextLine++
		r.cart.Items = append(r.cart.Items, dto.CartLineItem{
			ID:        fmt.Sprintf("line-%d", r.nextLine),
			ProductID: productID,
			Quantity:  min(quantity, p.Inventory),
			Product:   p,
		})
		return nil
	})
}

func (r *fakeRemote) Update(_ context.Context, lineID string, quantity int) (*dto.CartSummary, error) {
	return r.write("update", func() error {
		i := r.cart.FindLine(lineID)
		if i < 0 {
			return apierr.FromStatus(404, "NOT_FOUND", "Cart item not found")
		}
		if quantity <= 0 {
			r.cart.Items = append(r.cart.Items[:i:i], r.cart.Items[i+1:]...)
			return nil
		}
		r.cart.Items[i].Quantity = min(quantity, r.cart.Items[i].Product.Inventory)
		return nil
	})
}

func (r *fakeRemote) Remove(_ context.Context, lineID string) (*dto.CartSummary, error) {
	return r.write("remove", func() error {
		if i := r.cart.FindLine(lineID); i >= 0 {
			r.cart.Items = append(r.cart.Items[:i:i], r.cart.Items[i+1:]...)
		}
		return nil
	})
}

func (r *fakeRemote) Clear(_ context.Context) (*dto.CartSummary, error) {
	return r.write("clear", func() error {
		r.cart.Items = []dto.CartLineItem{}
		return nil
	})
}
