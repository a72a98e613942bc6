package memory

import (
	"context"

	"github.com/fastprodman/divegame/internal/repos/wallets"
)

// Wallets returns the wallets.Wallets view of the store.
func (s *Store) Wallets() wallets.Wallets {
	return walletsView{st: s}
}

type walletsView struct {
	st *Store
}

func (v walletsView) GetBalance(ctx context.Context, owner uint64) (int64, error) {
	defer v.st.lock(ctx)()

	balance, ok := v.st.wallets[owner]
	if !ok {
		return 0, wallets.ErrWalletNotFound
	}

	return balance, nil
}

func (v walletsView) LockAndGetBalance(ctx context.Context, owner uint64) (int64, error) {
	return v.GetBalance(ctx, owner)
}

func (v walletsView) Credit(ctx context.Context, owner uint64, amount int64) error {
	defer v.st.lock(ctx)()

	v.st.wallets[owner] += amount

	return nil
}

func (v walletsView) Debit(ctx context.Context, owner uint64, amount int64) error {
	defer v.st.lock(ctx)()

	balance, ok := v.st.wallets[owner]
	if !ok || balance < amount {
		return wallets.ErrInsufficientFunds
	}

	v.st.wallets[owner] = balance - amount

	return nil
}
