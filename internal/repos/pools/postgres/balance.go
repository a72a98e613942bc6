package pools

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastprodman/divegame/internal/repos/pools"
)

func (r *poolsRepo) AddBalance(ctx context.Context, id string, amount int64) error {
	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, `
		UPDATE pools
		SET balance = balance + $2
		WHERE id = $1
	`, id, amount)
	if err != nil {
		return fmt.Errorf("add pool balance: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return pools.ErrPoolNotFound
	}

	return nil
}

// SubBalance pays funds out. The guard keeps total_reserved <= balance
// after the debit, so callers must release any reservation the payout
// was counted against before calling this.
func (r *poolsRepo) SubBalance(ctx context.Context, id string, amount int64) error {
	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, `
		UPDATE pools
		SET balance = balance - $2
		WHERE id = $1
		  AND balance - $2 >= total_reserved
	`, id, amount)
	if err != nil {
		return fmt.Errorf("sub pool balance: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return pools.ErrInsufficientBalance
	}

	return nil
}

func (r *poolsRepo) SetLocked(ctx context.Context, id string, locked bool) error {
	query := sq.Update(table).
		Set(colLocked, locked).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build set pool lock: %w", err)
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("set pool lock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return pools.ErrPoolNotFound
	}

	return nil
}
