// Package session orchestrates the wagering state machine: start,
// play-round, cash-out, forfeit and reaping, against the sessions,
// pools and wallets stores. Every mutating operation runs its full
// validation pipeline first and commits all of its writes in a single
// transaction.
package session

import (
	"fmt"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/fastprodman/divegame/internal/gamemath"
	"github.com/fastprodman/divegame/internal/repos/pools"
	"github.com/fastprodman/divegame/internal/repos/sessions"
	"github.com/fastprodman/divegame/internal/repos/wallets"
)

type Service struct {
	cfg       gamemath.Config
	poolID    string
	sessions  sessions.Sessions
	pools     pools.Pools
	wallets   wallets.Wallets
	txManager trm.Manager

	// now is swappable so expiry tests do not have to sleep.
	now func() time.Time
}

// New validates the game config and wires the service. The storage
// backend (Postgres or in-memory) is fixed here and never branched on
// again.
func New(
	cfg gamemath.Config,
	poolID string,
	sessionsRepo sessions.Sessions,
	poolsRepo pools.Pools,
	walletsRepo wallets.Wallets,
	txManager trm.Manager,
) (*Service, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("session service: %w", err)
	}

	return &Service{
		cfg:       cfg,
		poolID:    poolID,
		sessions:  sessionsRepo,
		pools:     poolsRepo,
		wallets:   walletsRepo,
		txManager: txManager,
		now:       time.Now,
	}, nil
}

type StartResult struct {
	SessionKey     string
	InitialValue   int64
	ReservedAmount int64
}

type PlayResult struct {
	Survived       bool
	NewValue       int64
	NewRoundNumber int
}

type CashOutResult struct {
	PaidAmount int64
}

// StatsFor exposes the curve for client display. It calls the exact
// function the engine enforces with, so displayed and enforced values
// cannot diverge.
func (s *Service) StatsFor(round int) (gamemath.Stats, error) {
	return gamemath.StatsFor(round, s.cfg)
}
