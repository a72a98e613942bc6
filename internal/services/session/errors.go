package session

import "errors"

// The full rejection taxonomy. Everything is detected before any
// mutation; the engine never retries internally. Where a comparison
// failed, the wrapped message carries both the expected and the
// offending value so a legitimate client can resynchronize.
var (
	ErrInvalidStake = errors.New("invalid stake")

	// ErrInvalidSession covers unknown keys and terminal sessions
	// alike, so probing cannot distinguish the two.
	ErrInvalidSession = errors.New("session does not exist or is not active")

	ErrNotOwner = errors.New("caller does not own this session")

	ErrRoundMismatch = errors.New("round number mismatch")
	ErrValueMismatch = errors.New("value mismatch")

	ErrMaxRoundsReached = errors.New("session has reached the maximum number of rounds")

	ErrPoolLocked            = errors.New("pool is administratively locked")
	ErrInsufficientLiquidity = errors.New("pool cannot cover the required reservation")
	ErrInsufficientFunds     = errors.New("insufficient wallet funds")

	ErrSessionNotExpired = errors.New("session has not been idle long enough to reap")

	ErrUnprofitableCashOut = errors.New("cash-out value does not exceed the stake")
)
