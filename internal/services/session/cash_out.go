package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

// CashOut terminates a session and pays out its authoritative value.
// The caller-supplied value is only ever compared, never paid: payout
// is always the session's own CurrentValue.
//
// Pipeline checks 1, 2 and 4 apply. Requiring the value to exceed the
// stake is product policy behind cfg.RequireProfitableCashOut, not an
// engine invariant.
func (s *Service) CashOut(ctx context.Context, owner uint64, key string, finalValue int64) (CashOutResult, error) {
	var res CashOutResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		sess, err := s.lockActiveOwned(txCtx, key, owner)
		if err != nil {
			return err
		}

		err = checkValue(sess, finalValue)
		if err != nil {
			return err
		}

		if s.cfg.RequireProfitableCashOut && sess.CurrentValue <= sess.Stake {
			return fmt.Errorf("%w: value %d, stake %d", ErrUnprofitableCashOut, sess.CurrentValue, sess.Stake)
		}

		payout := sess.CurrentValue

		err = s.sessions.Finish(txCtx, key, sessions.StatusCashedOut)
		if err != nil {
			return fmt.Errorf("mark session cashed out: %w", err)
		}

		// Release before the payout debit so the reserved counter never
		// exceeds the balance mid-transaction.
		err = s.pools.Release(txCtx, sess.PoolID, sess.ReservedAmount)
		if err != nil {
			return fmt.Errorf("release reservation: %w", err)
		}

		err = s.pools.SubBalance(txCtx, sess.PoolID, payout)
		if err != nil {
			return fmt.Errorf("debit pool for payout: %w", err)
		}

		err = s.wallets.Credit(txCtx, owner, payout)
		if err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}

		res = CashOutResult{PaidAmount: payout}

		return nil
	})
	if err != nil {
		return CashOutResult{}, err
	}

	slog.Info("session cashed out", "session", key, "owner", owner, "paid", res.PaidAmount)

	return res, nil
}
