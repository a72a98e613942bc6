package pools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/divegame/internal/infra/pgtestutil"
	"github.com/fastprodman/divegame/internal/repos/pools"
)

func TestPools_CreateIsIdempotent(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repo.Create(ctx, pools.Pool{ID: "house", Balance: 5_000}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Provisioning again must not reset the balance.
	if err := repo.Create(ctx, pools.Pool{ID: "house", Balance: 0}); err != nil {
		t.Fatalf("re-create: %v", err)
	}

	p, err := repo.Get(ctx, "house")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Balance != 5_000 {
		t.Fatalf("balance reset by re-create: %d", p.Balance)
	}

	_, err = repo.Get(ctx, "nope")
	if !errors.Is(err, pools.ErrPoolNotFound) {
		t.Fatalf("unknown get: want ErrPoolNotFound, got %v", err)
	}
}

func TestPools_ReserveReleaseGuards(t *testing.T) {
	t.Parallel()

	type step struct {
		name    string
		op      func(ctx context.Context, repo *poolsRepo) error
		wantErr error
	}

	steps := []step{
		{
			name: "reserve_within_liquidity",
			op: func(ctx context.Context, repo *poolsRepo) error {
				return repo.Reserve(ctx, "house", 800)
			},
		},
		{
			name: "reserve_over_liquidity",
			op: func(ctx context.Context, repo *poolsRepo) error {
				return repo.Reserve(ctx, "house", 300)
			},
			wantErr: pools.ErrInsufficientLiquidity,
		},
		{
			name: "release_over_reserved",
			op: func(ctx context.Context, repo *poolsRepo) error {
				return repo.Release(ctx, "house", 900)
			},
			wantErr: pools.ErrReservationUnderflow,
		},
		{
			name: "release_exact",
			op: func(ctx context.Context, repo *poolsRepo) error {
				return repo.Release(ctx, "house", 800)
			},
		},
	}

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.Create(ctx, pools.Pool{ID: "house", Balance: 1_000}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, st := range steps {
		err := st.op(ctx, repo)
		if !errors.Is(err, st.wantErr) {
			t.Fatalf("%s: want %v, got %v", st.name, st.wantErr, err)
		}
	}

	p, err := repo.Get(ctx, "house")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.TotalReserved != 0 || p.Balance != 1_000 {
		t.Fatalf("unexpected final pool: %+v", p)
	}
}

func TestPools_SubBalanceProtectsReservations(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.Create(ctx, pools.Pool{ID: "house", Balance: 1_000}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Reserve(ctx, "house", 600); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	err := repo.SubBalance(ctx, "house", 500)
	if !errors.Is(err, pools.ErrInsufficientBalance) {
		t.Fatalf("debit into reserved funds: want ErrInsufficientBalance, got %v", err)
	}

	if err := repo.SubBalance(ctx, "house", 400); err != nil {
		t.Fatalf("debit unreserved: %v", err)
	}

	if err := repo.AddBalance(ctx, "house", 150); err != nil {
		t.Fatalf("add: %v", err)
	}

	p, err := repo.Get(ctx, "house")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Balance != 750 || p.TotalReserved != 600 {
		t.Fatalf("unexpected pool: %+v", p)
	}
}

func TestPools_SetLocked(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := repo.Create(ctx, pools.Pool{ID: "house"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.SetLocked(ctx, "house", true); err != nil {
		t.Fatalf("lock: %v", err)
	}

	p, err := repo.Get(ctx, "house")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !p.Locked {
		t.Fatalf("pool not locked")
	}

	err = repo.SetLocked(ctx, "nope", true)
	if !errors.Is(err, pools.ErrPoolNotFound) {
		t.Fatalf("lock unknown: want ErrPoolNotFound, got %v", err)
	}
}
