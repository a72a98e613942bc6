package session

import (
	"context"
	"testing"

	"github.com/fastprodman/divegame/internal/gamemath"
	"github.com/fastprodman/divegame/internal/repos/pools"
	"github.com/fastprodman/divegame/internal/repos/sessions"
	"github.com/fastprodman/divegame/internal/store/memory"
)

const testPoolID = "house"

// testConfig shortens the horizon so reservations stay tractable and
// disables the profitability gate; tests that exercise the gate flip it
// back on.
func testConfig() gamemath.Config {
	cfg := gamemath.DefaultConfig()
	cfg.MaxRounds = 12
	cfg.MaxPotentialPayout = 1_000_000
	cfg.MaxStake = 100_000
	cfg.SessionTimeoutSecs = 600
	cfg.RequireProfitableCashOut = false

	return cfg
}

type fixture struct {
	svc   *Service
	store *memory.Store
	cfg   gamemath.Config
}

func newFixture(t *testing.T, cfg gamemath.Config, poolBalance int64) *fixture {
	t.Helper()

	st := memory.New()

	err := st.Pools().Create(context.Background(), pools.Pool{ID: testPoolID, Balance: poolBalance})
	if err != nil {
		t.Fatalf("seed pool: %v", err)
	}

	svc, err := New(cfg, testPoolID, st.Sessions(), st.Pools(), st.Wallets(), st.Manager())
	if err != nil {
		t.Fatalf("init service: %v", err)
	}

	return &fixture{svc: svc, store: st, cfg: cfg}
}

func (f *fixture) deposit(t *testing.T, owner uint64, amount int64) {
	t.Helper()

	err := f.store.Wallets().Credit(context.Background(), owner, amount)
	if err != nil {
		t.Fatalf("seed wallet %d: %v", owner, err)
	}
}

func (f *fixture) pool(t *testing.T) pools.Pool {
	t.Helper()

	p, err := f.store.Pools().Get(context.Background(), testPoolID)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}

	return p
}

func (f *fixture) wallet(t *testing.T, owner uint64) int64 {
	t.Helper()

	balance, err := f.store.Wallets().GetBalance(context.Background(), owner)
	if err != nil {
		t.Fatalf("get wallet %d: %v", owner, err)
	}

	return balance
}

func (f *fixture) session(t *testing.T, key string) sessions.Session {
	t.Helper()

	sess, err := f.store.Sessions().Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get session %s: %v", key, err)
	}

	return sess
}

// requireSolvent asserts the custody invariant the whole engine hangs
// on: the pool never promises more than it holds.
func (f *fixture) requireSolvent(t *testing.T) {
	t.Helper()

	p := f.pool(t)
	if p.TotalReserved > p.Balance {
		t.Fatalf("pool insolvent: reserved %d > balance %d", p.TotalReserved, p.Balance)
	}
	if p.TotalReserved < 0 {
		t.Fatalf("negative reservation counter: %d", p.TotalReserved)
	}
}
