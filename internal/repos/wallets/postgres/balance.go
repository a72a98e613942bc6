package wallets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fastprodman/divegame/internal/repos/wallets"
)

func (r *walletsRepo) GetBalance(ctx context.Context, owner uint64) (int64, error) {
	var balance int64

	err := r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, `
		SELECT balance
		FROM wallets
		WHERE owner = $1
	`, owner).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, wallets.ErrWalletNotFound
		}

		return 0, fmt.Errorf("get wallet balance: %w", err)
	}

	return balance, nil
}

func (r *walletsRepo) LockAndGetBalance(ctx context.Context, owner uint64) (int64, error) {
	var balance int64

	err := r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, `
		SELECT balance
		FROM wallets
		WHERE owner = $1
		FOR UPDATE
	`, owner).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, wallets.ErrWalletNotFound
		}

		return 0, fmt.Errorf("lock/get wallet balance: %w", err)
	}

	return balance, nil
}

// Credit upserts so a payout to a brand-new owner cannot be lost.
func (r *walletsRepo) Credit(ctx context.Context, owner uint64, amount int64) error {
	_, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, `
		INSERT INTO wallets (owner, balance) VALUES ($1, $2)
		ON CONFLICT (owner) DO UPDATE SET balance = wallets.balance + EXCLUDED.balance
	`, owner, amount)
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
	}

	return nil
}

func (r *walletsRepo) Debit(ctx context.Context, owner uint64, amount int64) error {
	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, `
		UPDATE wallets
		SET balance = balance - $2
		WHERE owner = $1
		  AND balance >= $2
	`, owner, amount)
	if err != nil {
		return fmt.Errorf("debit wallet: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return wallets.ErrInsufficientFunds
	}

	return nil
}
