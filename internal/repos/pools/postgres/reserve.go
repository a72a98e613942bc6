package pools

import (
	"context"
	"fmt"

	"github.com/fastprodman/divegame/internal/repos/pools"
)

// Reserve commits amount of the unreserved balance. The guard in the
// WHERE clause keeps total_reserved <= balance even if a caller skipped
// the row lock.
func (r *poolsRepo) Reserve(ctx context.Context, id string, amount int64) error {
	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, `
		UPDATE pools
		SET total_reserved = total_reserved + $2
		WHERE id = $1
		  AND balance - total_reserved >= $2
	`, id, amount)
	if err != nil {
		return fmt.Errorf("reserve pool funds: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return pools.ErrInsufficientLiquidity
	}

	return nil
}

func (r *poolsRepo) Release(ctx context.Context, id string, amount int64) error {
	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, `
		UPDATE pools
		SET total_reserved = total_reserved - $2
		WHERE id = $1
		  AND total_reserved >= $2
	`, id, amount)
	if err != nil {
		return fmt.Errorf("release pool funds: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return pools.ErrReservationUnderflow
	}

	return nil
}
