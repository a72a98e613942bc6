package sessions

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExists = errors.New("session already exists")
var ErrNotActive = errors.New("session is not active")

type Status string

const (
	StatusActive    Status = "active"
	StatusLost      Status = "lost"
	StatusCashedOut Status = "cashed_out"
)

// Session is the per-player record. Stake and ReservedAmount are fixed
// at creation; RoundNumber is the next round to be played.
type Session struct {
	Key            string
	Owner          uint64
	PoolID         string
	Stake          int64
	CurrentValue   int64
	RoundNumber    int
	Status         Status
	ReservedAmount int64
	// LastActiveAt is a monotonically increasing marker (unix seconds)
	// bumped on every successful round; reaping compares against it.
	LastActiveAt int64
}

type Sessions interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, key string) (Session, error)

	// LockAndGet reads the session under a row lock so that at most one
	// of play/cash-out/forfeit/reap can act on it per transaction.
	LockAndGet(ctx context.Context, key string) (Session, error)

	// AdvanceRound records a survived round: new value, next round
	// number, refreshed activity marker. Fails ErrNotActive unless the
	// session is still Active.
	AdvanceRound(ctx context.Context, key string, newValue int64, newRound int, lastActiveAt int64) error

	// Finish moves an Active session to a terminal status. The
	// Active-only guard is the compare-and-set that makes reserve and
	// release fire exactly once per session.
	Finish(ctx context.Context, key string, status Status) error
}
