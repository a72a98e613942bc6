package sessions

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

// Finish moves an Active session to a terminal status. The status guard
// in the WHERE clause means a session can leave Active exactly once; a
// second caller sees zero rows and ErrNotActive.
func (r *sessionsRepo) Finish(ctx context.Context, key string, status sessions.Status) error {
	query := sq.Update(table).
		Set(colStatus, string(status)).
		Where(sq.Eq{colKey: key, colStatus: string(sessions.StatusActive)}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build finish session: %w", err)
	}

	tag, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return sessions.ErrNotActive
	}

	return nil
}
