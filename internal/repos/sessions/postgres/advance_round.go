package sessions

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

func (r *sessionsRepo) AdvanceRound(ctx context.Context, key string, newValue int64, newRound int, lastActiveAt int64) error {
	query := sq.Update(table).
		Set(colCurrentValue, newValue).
		Set(colRoundNumber, newRound).
		Set(colLastActiveAt, lastActiveAt).
		Where(sq.Eq{colKey: key, colStatus: string(sessions.StatusActive)}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build advance round: %w", err)
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("advance round: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return sessions.ErrNotActive
	}

	return nil
}
