package wallets

import (
	"context"
	"errors"
)

var ErrWalletNotFound = errors.New("wallet not found")
var ErrInsufficientFunds = errors.New("insufficient funds")

// Wallets holds player balances in minor units. The engine only ever
// needs transfer semantics: debit a stake in, credit a payout out.
type Wallets interface {
	GetBalance(ctx context.Context, owner uint64) (int64, error)

	// LockAndGetBalance reads the balance under a row lock so a
	// concurrent start cannot double-spend the same funds.
	LockAndGetBalance(ctx context.Context, owner uint64) (int64, error)

	Credit(ctx context.Context, owner uint64, amount int64) error

	// Debit fails ErrInsufficientFunds when the balance cannot cover
	// amount; the balance is never driven negative.
	Debit(ctx context.Context, owner uint64, amount int64) error
}
