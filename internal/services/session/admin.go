package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fastprodman/divegame/internal/repos/pools"
)

// PoolStatus returns the pool counters (no locks; read-only surface).
func (s *Service) PoolStatus(ctx context.Context) (pools.Pool, error) {
	pool, err := s.pools.Get(ctx, s.poolID)
	if err != nil {
		return pools.Pool{}, fmt.Errorf("get pool: %w", err)
	}

	return pool, nil
}

// SetPoolLocked toggles the administrative lock. A locked pool refuses
// new sessions; existing sessions keep playing and cashing out.
func (s *Service) SetPoolLocked(ctx context.Context, locked bool) error {
	err := s.pools.SetLocked(ctx, s.poolID, locked)
	if err != nil {
		return fmt.Errorf("set pool lock: %w", err)
	}

	slog.Info("pool lock changed", "pool", s.poolID, "locked", locked)

	return nil
}

// FundPool records an inbound house transfer.
func (s *Service) FundPool(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: funding amount %d must be > 0", ErrInvalidStake, amount)
	}

	err := s.pools.AddBalance(ctx, s.poolID, amount)
	if err != nil {
		return fmt.Errorf("fund pool: %w", err)
	}

	slog.Info("pool funded", "pool", s.poolID, "amount", amount)

	return nil
}

// WithdrawHouse pays house profit out of the pool, limited to the
// unreserved balance so open sessions stay fully covered.
func (s *Service) WithdrawHouse(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: withdrawal amount %d must be > 0", ErrInvalidStake, amount)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		pool, err := s.pools.LockAndGet(txCtx, s.poolID)
		if err != nil {
			return fmt.Errorf("lock pool: %w", err)
		}

		if amount > pool.Available() {
			return fmt.Errorf("%w: available %d, requested %d",
				ErrInsufficientLiquidity, pool.Available(), amount)
		}

		err = s.pools.SubBalance(txCtx, s.poolID, amount)
		if err != nil {
			return fmt.Errorf("debit pool: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("house withdrawal", "pool", s.poolID, "amount", amount)

	return nil
}
