package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

// Forfeit lets the owner surrender an active session. No payout; the
// reservation is released and the stake stays with the pool.
func (s *Service) Forfeit(ctx context.Context, owner uint64, key string) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		sess, err := s.lockActiveOwned(txCtx, key, owner)
		if err != nil {
			return err
		}

		return s.finishLost(txCtx, sess)
	})
	if err != nil {
		return err
	}

	slog.Info("session forfeited", "session", key, "owner", owner)

	return nil
}

// ReapExpired force-closes a session abandoned past the configured
// timeout. Callable by anyone; the timeout gate is what stops a third
// party from killing a live session prematurely. Prevents pool
// liquidity from staying reserved forever.
func (s *Service) ReapExpired(ctx context.Context, key string) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		sess, err := s.lockActive(txCtx, key)
		if err != nil {
			return err
		}

		idle := s.now().Unix() - sess.LastActiveAt
		if idle < s.cfg.SessionTimeoutSecs {
			return fmt.Errorf("%w: idle %ds, timeout %ds",
				ErrSessionNotExpired, idle, s.cfg.SessionTimeoutSecs)
		}

		return s.finishLost(txCtx, sess)
	})
	if err != nil {
		return err
	}

	slog.Info("expired session reaped", "session", key)

	return nil
}

func (s *Service) finishLost(ctx context.Context, sess sessions.Session) error {
	err := s.sessions.Finish(ctx, sess.Key, sessions.StatusLost)
	if err != nil {
		return fmt.Errorf("mark session lost: %w", err)
	}

	err = s.pools.Release(ctx, sess.PoolID, sess.ReservedAmount)
	if err != nil {
		return fmt.Errorf("release reservation: %w", err)
	}

	return nil
}
