package session

import (
	"context"
	"errors"
	"testing"

	"github.com/fastprodman/divegame/internal/gamemath"
	"github.com/fastprodman/divegame/internal/repos/sessions"
)

func TestStart_OpensSessionAndMovesStake(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	f := newFixture(t, cfg, 100_000)
	f.deposit(t, 1, 5_000)

	const stake = 1_000

	res, err := f.svc.Start(context.Background(), 1, stake)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if res.InitialValue != stake {
		t.Fatalf("initial value: want %d, got %d", stake, res.InitialValue)
	}

	wantReserved := gamemath.MaxPayout(stake, cfg.MaxRounds, cfg)
	if res.ReservedAmount != wantReserved {
		t.Fatalf("reserved: want %d, got %d", wantReserved, res.ReservedAmount)
	}

	if got := f.wallet(t, 1); got != 4_000 {
		t.Fatalf("wallet after stake: want 4000, got %d", got)
	}

	p := f.pool(t)
	if p.Balance != 100_000+stake {
		t.Fatalf("pool balance: want %d, got %d", 100_000+stake, p.Balance)
	}
	if p.TotalReserved != wantReserved {
		t.Fatalf("pool reserved: want %d, got %d", wantReserved, p.TotalReserved)
	}

	sess := f.session(t, res.SessionKey)
	if sess.Owner != 1 || sess.Status != sessions.StatusActive {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.RoundNumber != 1 || sess.CurrentValue != stake || sess.ReservedAmount != wantReserved {
		t.Fatalf("unexpected session counters: %+v", sess)
	}

	f.requireSolvent(t)
}

func TestStart_StakeBounds(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	f := newFixture(t, cfg, 100_000)
	f.deposit(t, 1, 1_000_000)

	for _, stake := range []int64{0, cfg.MinStake - 1, cfg.MaxStake + 1, -500} {
		_, err := f.svc.Start(context.Background(), 1, stake)
		if !errors.Is(err, ErrInvalidStake) {
			t.Fatalf("stake %d: want ErrInvalidStake, got %v", stake, err)
		}
	}

	if got := f.wallet(t, 1); got != 1_000_000 {
		t.Fatalf("wallet touched by rejected start: %d", got)
	}
	if p := f.pool(t); p.Balance != 100_000 || p.TotalReserved != 0 {
		t.Fatalf("pool touched by rejected start: %+v", p)
	}
}

func TestStart_InsufficientFunds(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testConfig(), 100_000)
	f.deposit(t, 1, 500)

	_, err := f.svc.Start(context.Background(), 1, 1_000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("short wallet: want ErrInsufficientFunds, got %v", err)
	}

	// No wallet at all reads the same as a short one.
	_, err = f.svc.Start(context.Background(), 999, 1_000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("missing wallet: want ErrInsufficientFunds, got %v", err)
	}

	if got := f.wallet(t, 1); got != 500 {
		t.Fatalf("wallet touched by rejected start: %d", got)
	}
}

func TestStart_PoolLocked(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testConfig(), 100_000)
	f.deposit(t, 1, 5_000)

	if err := f.svc.SetPoolLocked(context.Background(), true); err != nil {
		t.Fatalf("lock pool: %v", err)
	}

	_, err := f.svc.Start(context.Background(), 1, 1_000)
	if !errors.Is(err, ErrPoolLocked) {
		t.Fatalf("want ErrPoolLocked, got %v", err)
	}

	if got := f.wallet(t, 1); got != 5_000 {
		t.Fatalf("wallet touched by rejected start: %d", got)
	}

	// Unlock reopens the gate.
	if err := f.svc.SetPoolLocked(context.Background(), false); err != nil {
		t.Fatalf("unlock pool: %v", err)
	}
	if _, err := f.svc.Start(context.Background(), 1, 1_000); err != nil {
		t.Fatalf("start after unlock: %v", err)
	}
}

func TestStart_InsufficientLiquidity(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	// The worst-case reservation for this stake far exceeds what a
	// nearly empty pool can back, even counting the incoming stake.
	f := newFixture(t, cfg, 100)
	f.deposit(t, 1, 5_000)

	_, err := f.svc.Start(context.Background(), 1, 1_000)
	if !errors.Is(err, ErrInsufficientLiquidity) {
		t.Fatalf("want ErrInsufficientLiquidity, got %v", err)
	}

	if got := f.wallet(t, 1); got != 5_000 {
		t.Fatalf("wallet touched by rejected start: %d", got)
	}
	if p := f.pool(t); p.Balance != 100 || p.TotalReserved != 0 {
		t.Fatalf("pool touched by rejected start: %+v", p)
	}
}

func TestStart_ConcurrentSessionsShareLiquidity(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	wantReserved := gamemath.MaxPayout(1_000, cfg.MaxRounds, cfg)

	// Room for exactly one worst-case reservation.
	f := newFixture(t, cfg, wantReserved)
	f.deposit(t, 1, 10_000)
	f.deposit(t, 2, 10_000)

	if _, err := f.svc.Start(context.Background(), 1, 1_000); err != nil {
		t.Fatalf("first start: %v", err)
	}

	_, err := f.svc.Start(context.Background(), 2, 1_000)
	if !errors.Is(err, ErrInsufficientLiquidity) {
		t.Fatalf("second start: want ErrInsufficientLiquidity, got %v", err)
	}

	f.requireSolvent(t)
}
