package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

// valueTolerance absorbs representation rounding between client and
// server, in minor units. It is not slack for business-logic drift.
const valueTolerance = 1

// The pipeline order below is part of the error contract, not an
// implementation detail: status before ownership before round before
// value. A request that is wrong on several axes must always fail on
// the earliest one, so error classification never reveals which single
// change would have made it valid.

// lockActive is checks 1 of the pipeline: the session must exist and be
// Active. The row lock makes the whole read-validate-write sequence a
// compare-and-set.
func (s *Service) lockActive(ctx context.Context, key string) (sessions.Session, error) {
	sess, err := s.sessions.LockAndGet(ctx, key)
	if err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return sessions.Session{}, ErrInvalidSession
		}

		return sessions.Session{}, fmt.Errorf("load session: %w", err)
	}

	if sess.Status != sessions.StatusActive {
		return sessions.Session{}, ErrInvalidSession
	}

	return sess, nil
}

// lockActiveOwned adds check 2: ownership. It runs before any value
// comparison so a wrong owner learns nothing from the error kind.
func (s *Service) lockActiveOwned(ctx context.Context, key string, owner uint64) (sessions.Session, error) {
	sess, err := s.lockActive(ctx, key)
	if err != nil {
		return sessions.Session{}, err
	}

	if sess.Owner != owner {
		return sessions.Session{}, ErrNotOwner
	}

	return sess, nil
}

// checkRound is check 3: the caller-supplied round number must equal
// the session's next round exactly.
func checkRound(sess sessions.Session, round int) error {
	if round != sess.RoundNumber {
		return fmt.Errorf("%w: expected round %d, got %d", ErrRoundMismatch, sess.RoundNumber, round)
	}

	return nil
}

// checkValue is check 4, the primary anti-cheat control: the caller's
// view of the accumulated value must agree with the authoritative one.
func checkValue(sess sessions.Session, value int64) error {
	diff := value - sess.CurrentValue
	if diff < 0 {
		diff = -diff
	}

	if diff > valueTolerance {
		return fmt.Errorf("%w: expected value %d, got %d", ErrValueMismatch, sess.CurrentValue, value)
	}

	return nil
}

// checkHorizon is check 5: a session past its horizon may still cash
// out, but not play.
func (s *Service) checkHorizon(sess sessions.Session) error {
	if sess.RoundNumber > s.cfg.MaxRounds {
		return fmt.Errorf("%w: round %d, max %d", ErrMaxRoundsReached, sess.RoundNumber, s.cfg.MaxRounds)
	}

	return nil
}
