package memory

import (
	"context"

	"github.com/fastprodman/divegame/internal/repos/pools"
)

// Pools returns the pools.Pools view of the store.
func (s *Store) Pools() pools.Pools {
	return poolsView{st: s}
}

type poolsView struct {
	st *Store
}

func (v poolsView) Create(ctx context.Context, p pools.Pool) error {
	defer v.st.lock(ctx)()

	if _, ok := v.st.pools[p.ID]; !ok {
		v.st.pools[p.ID] = p
	}

	return nil
}

func (v poolsView) Get(ctx context.Context, id string) (pools.Pool, error) {
	defer v.st.lock(ctx)()

	p, ok := v.st.pools[id]
	if !ok {
		return pools.Pool{}, pools.ErrPoolNotFound
	}

	return p, nil
}

func (v poolsView) LockAndGet(ctx context.Context, id string) (pools.Pool, error) {
	return v.Get(ctx, id)
}

func (v poolsView) Reserve(ctx context.Context, id string, amount int64) error {
	defer v.st.lock(ctx)()

	p, ok := v.st.pools[id]
	if !ok {
		return pools.ErrPoolNotFound
	}
	if p.Balance-p.TotalReserved < amount {
		return pools.ErrInsufficientLiquidity
	}

	p.TotalReserved += amount
	v.st.pools[id] = p

	return nil
}

func (v poolsView) Release(ctx context.Context, id string, amount int64) error {
	defer v.st.lock(ctx)()

	p, ok := v.st.pools[id]
	if !ok {
		return pools.ErrPoolNotFound
	}
	if p.TotalReserved < amount {
		return pools.ErrReservationUnderflow
	}

	p.TotalReserved -= amount
	v.st.pools[id] = p

	return nil
}

func (v poolsView) AddBalance(ctx context.Context, id string, amount int64) error {
	defer v.st.lock(ctx)()

	p, ok := v.st.pools[id]
	if !ok {
		return pools.ErrPoolNotFound
	}

	p.Balance += amount
	v.st.pools[id] = p

	return nil
}

func (v poolsView) SubBalance(ctx context.Context, id string, amount int64) error {
	defer v.st.lock(ctx)()

	p, ok := v.st.pools[id]
	if !ok {
		return pools.ErrPoolNotFound
	}
	if p.Balance-amount < p.TotalReserved {
		return pools.ErrInsufficientBalance
	}

	p.Balance -= amount
	v.st.pools[id] = p

	return nil
}

func (v poolsView) SetLocked(ctx context.Context, id string, locked bool) error {
	defer v.st.lock(ctx)()

	p, ok := v.st.pools[id]
	if !ok {
		return pools.ErrPoolNotFound
	}

	p.Locked = locked
	v.st.pools[id] = p

	return nil
}
