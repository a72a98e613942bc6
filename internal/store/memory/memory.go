// Package memory is the in-process backend: maps guarded by one mutex,
// with a trm.Manager whose transactions are snapshot/restore. It exists
// for tests and local runs; the Postgres repos are the real custody
// implementation. Both are selected once at construction and share the
// same interfaces, so call sites never branch on the backend.
package memory

import (
	"context"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/fastprodman/divegame/internal/repos/pools"
	"github.com/fastprodman/divegame/internal/repos/sessions"
)

type Store struct {
	mu       sync.Mutex
	sessions map[string]sessions.Session
	pools    map[string]pools.Pool
	wallets  map[uint64]int64
}

func New() *Store {
	return &Store{
		sessions: make(map[string]sessions.Session),
		pools:    make(map[string]pools.Pool),
		wallets:  make(map[uint64]int64),
	}
}

// Manager returns a trm.Manager that serializes transactions on the
// store mutex and rolls the maps back if fn fails.
func (s *Store) Manager() trm.Manager {
	return &txManager{st: s}
}

type ctxKey struct{}

type txManager struct {
	st *Store
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.st.mu.Lock()
	defer m.st.mu.Unlock()

	snap := m.st.snapshot()

	err := fn(context.WithValue(ctx, ctxKey{}, struct{}{}))
	if err != nil {
		m.st.restore(snap)
		return err
	}

	return nil
}

func (m *txManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

type snapshot struct {
	sessions map[string]sessions.Session
	pools    map[string]pools.Pool
	wallets  map[uint64]int64
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		sessions: make(map[string]sessions.Session, len(s.sessions)),
		pools:    make(map[string]pools.Pool, len(s.pools)),
		wallets:  make(map[uint64]int64, len(s.wallets)),
	}
	for k, v := range s.sessions {
		snap.sessions[k] = v
	}
	for k, v := range s.pools {
		snap.pools[k] = v
	}
	for k, v := range s.wallets {
		snap.wallets[k] = v
	}

	return snap
}

func (s *Store) restore(snap snapshot) {
	s.sessions = snap.sessions
	s.pools = snap.pools
	s.wallets = snap.wallets
}

// lock acquires the store mutex unless the context is already inside a
// manager transaction, which holds it for the whole closure.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(ctxKey{}) != nil {
		return func() {}
	}

	s.mu.Lock()

	return s.mu.Unlock
}
