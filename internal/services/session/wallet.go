package session

import (
	"context"
	"fmt"
)

// WalletBalance reads an owner's balance (no locks).
func (s *Service) WalletBalance(ctx context.Context, owner uint64) (int64, error) {
	balance, err := s.wallets.GetBalance(ctx, owner)
	if err != nil {
		return 0, fmt.Errorf("get wallet balance: %w", err)
	}

	return balance, nil
}

// Deposit credits an owner's wallet. Deposits arrive from outside the
// engine; this is the narrow interface they come through.
func (s *Service) Deposit(ctx context.Context, owner uint64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit amount %d must be > 0", ErrInvalidStake, amount)
	}

	err := s.wallets.Credit(ctx, owner, amount)
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	return nil
}
