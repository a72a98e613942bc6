package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fastprodman/divegame/internal/gamemath"
	"github.com/fastprodman/divegame/internal/repos/sessions"
)

// PlayRound applies one externally supplied roll to a session:
//
// 1) Pipeline checks, in their fixed order: active, owned, round
//    matches, value agrees, horizon not exhausted.
// 2) Roll against the curve for the session's authoritative round and
//    value, never the caller's copies.
// 3) Survived: advance value and round counter, refresh the activity
//    marker. Lost: mark the session Lost and release its reservation in
//    the same transaction; the stake, captured at Start, stays with the
//    pool.
func (s *Service) PlayRound(ctx context.Context, owner uint64, key string, round int, currentValue int64, roll int) (PlayResult, error) {
	var res PlayResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		sess, err := s.lockActiveOwned(txCtx, key, owner)
		if err != nil {
			return err
		}

		err = checkRound(sess, round)
		if err != nil {
			return err
		}

		err = checkValue(sess, currentValue)
		if err != nil {
			return err
		}

		err = s.checkHorizon(sess)
		if err != nil {
			return err
		}

		outcome, err := gamemath.Play(sess.RoundNumber, sess.CurrentValue, roll, s.cfg)
		if err != nil {
			return err
		}

		if !outcome.Survived {
			err = s.sessions.Finish(txCtx, key, sessions.StatusLost)
			if err != nil {
				return fmt.Errorf("mark session lost: %w", err)
			}

			err = s.pools.Release(txCtx, sess.PoolID, sess.ReservedAmount)
			if err != nil {
				return fmt.Errorf("release reservation: %w", err)
			}

			res = PlayResult{Survived: false, NewValue: 0, NewRoundNumber: sess.RoundNumber}

			return nil
		}

		newValue := outcome.NewValue
		// The accumulated value may never outgrow what was reserved
		// for it.
		if newValue > sess.ReservedAmount {
			newValue = sess.ReservedAmount
		}

		err = s.sessions.AdvanceRound(txCtx, key, newValue, sess.RoundNumber+1, s.now().Unix())
		if err != nil {
			return fmt.Errorf("advance round: %w", err)
		}

		res = PlayResult{Survived: true, NewValue: newValue, NewRoundNumber: sess.RoundNumber + 1}

		return nil
	})
	if err != nil {
		return PlayResult{}, err
	}

	slog.Info("round played",
		"session", key, "owner", owner, "round", round,
		"survived", res.Survived, "value", res.NewValue)

	return res, nil
}
