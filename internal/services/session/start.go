package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fastprodman/divegame/internal/gamemath"
	"github.com/fastprodman/divegame/internal/repos/sessions"
	"github.com/fastprodman/divegame/internal/repos/wallets"
)

// Start opens a new session in a single transaction:
//
// 1) Validate the stake against the configured bounds.
// 2) Lock the wallet and check it covers the stake.
// 3) Lock the pool; reject if administratively locked.
// 4) Check unreserved liquidity covers the worst-case payout for the
//    full MaxRounds horizon (with the stake already captured).
// 5) Capture the stake, reserve the payout, create the session.
//
// Nothing is mutated on any failure path.
func (s *Service) Start(ctx context.Context, owner uint64, stake int64) (StartResult, error) {
	if stake < s.cfg.MinStake || stake > s.cfg.MaxStake {
		return StartResult{}, fmt.Errorf("%w: stake %d, allowed %d..%d",
			ErrInvalidStake, stake, s.cfg.MinStake, s.cfg.MaxStake)
	}

	// Reserve for the entire horizon, not for whatever the player
	// intends to play: the session may legally continue to MaxRounds.
	reserved := gamemath.MaxPayout(stake, s.cfg.MaxRounds, s.cfg)
	key := uuid.NewString()

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.wallets.LockAndGetBalance(txCtx, owner)
		if err != nil {
			if errors.Is(err, wallets.ErrWalletNotFound) {
				return fmt.Errorf("%w: no wallet for owner %d", ErrInsufficientFunds, owner)
			}

			return fmt.Errorf("lock wallet: %w", err)
		}
		if balance < stake {
			return fmt.Errorf("%w: balance %d, stake %d", ErrInsufficientFunds, balance, stake)
		}

		pool, err := s.pools.LockAndGet(txCtx, s.poolID)
		if err != nil {
			return fmt.Errorf("lock pool: %w", err)
		}
		if pool.Locked {
			return ErrPoolLocked
		}

		// The stake lands in the pool before the reservation is taken,
		// so it counts toward the liquidity that backs this session.
		if pool.Balance+stake-pool.TotalReserved < reserved {
			return fmt.Errorf("%w: available %d, required %d",
				ErrInsufficientLiquidity, pool.Balance+stake-pool.TotalReserved, reserved)
		}

		err = s.wallets.Debit(txCtx, owner, stake)
		if err != nil {
			return fmt.Errorf("capture stake: %w", err)
		}

		err = s.pools.AddBalance(txCtx, s.poolID, stake)
		if err != nil {
			return fmt.Errorf("credit pool: %w", err)
		}

		err = s.pools.Reserve(txCtx, s.poolID, reserved)
		if err != nil {
			return fmt.Errorf("reserve payout: %w", err)
		}

		err = s.sessions.Create(txCtx, sessions.Session{
			Key:            key,
			Owner:          owner,
			PoolID:         s.poolID,
			Stake:          stake,
			CurrentValue:   stake,
			RoundNumber:    1,
			Status:         sessions.StatusActive,
			ReservedAmount: reserved,
			LastActiveAt:   s.now().Unix(),
		})
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		return nil
	})
	if err != nil {
		return StartResult{}, err
	}

	slog.Info("session started",
		"session", key, "owner", owner, "stake", stake, "reserved", reserved)

	return StartResult{
		SessionKey:     key,
		InitialValue:   stake,
		ReservedAmount: reserved,
	}, nil
}
