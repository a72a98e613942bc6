package pools

import (
	"context"
	"errors"
)

var ErrPoolNotFound = errors.New("pool not found")
var ErrInsufficientLiquidity = errors.New("insufficient unreserved pool balance")
var ErrInsufficientBalance = errors.New("insufficient pool balance")
var ErrReservationUnderflow = errors.New("release exceeds total reserved")

// Pool is one custodian pool: the balance it actually holds and the
// slice of it committed to open sessions. Invariant at every mutation:
// TotalReserved <= Balance.
type Pool struct {
	ID            string
	Balance       int64
	TotalReserved int64
	Locked        bool
}

// Available is the balance not committed to any open session.
func (p Pool) Available() int64 {
	return p.Balance - p.TotalReserved
}

type Pools interface {
	Create(ctx context.Context, p Pool) error
	Get(ctx context.Context, id string) (Pool, error)

	// LockAndGet reads the pool under a row lock; every mutation below
	// must run inside the same transaction as that lock.
	LockAndGet(ctx context.Context, id string) (Pool, error)

	// Reserve commits amount of unreserved balance to a session.
	// Fails ErrInsufficientLiquidity if balance - total_reserved < amount.
	Reserve(ctx context.Context, id string, amount int64) error

	// Release returns a session's reservation. Fails
	// ErrReservationUnderflow rather than letting the counter go
	// negative.
	Release(ctx context.Context, id string, amount int64) error

	// AddBalance records an inbound transfer (stake capture, funding).
	AddBalance(ctx context.Context, id string, amount int64) error

	// SubBalance records an outbound transfer (payout, withdrawal).
	// Fails ErrInsufficientBalance if the pool does not hold amount.
	SubBalance(ctx context.Context, id string, amount int64) error

	SetLocked(ctx context.Context, id string, locked bool) error
}
