package cart

import (
	"context"
	"sync"
)

// Mutation is one optimistic write: a snapshot is taken and the optimistic
// state applied atomically, the remote call runs unlocked, and then either
// Commit or Rollback (with that mutation's own snapshot) runs under the lock.
// Settled always runs last, outside the lock.
type Mutation[S, R any] struct {
	Snapshot func() S
	Apply    func()
	Call     func(ctx context.Context) (R, error)
	Commit   func(R)
	Rollback func(S, error)
	Settled  func(error)
}

// Run executes m, holding mu only around the local state transitions
func Run[S, R any](ctx context.Context, mu sync.Locker, m Mutation[S, R]) (R, error) {
	mu.Lock()
	snapshot := m.Snapshot()
	m.Apply()
	mu.Unlock()

	res, err := m.Call(ctx)

	mu.Lock()
	if err != nil {
		m.Rollback(snapshot, err)
	} else {
		m.Commit(res)
	}
	mu.Unlock()

	if m.Settled != nil {
		m.Settled(err)
	}
	return res, err
}
