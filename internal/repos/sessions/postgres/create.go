package sessions

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

const uniqueViolation = "23505"

func (r *sessionsRepo) Create(ctx context.Context, s sessions.Session) error {
	query := sq.Insert(table).
		Columns(colKey, colOwner, colPoolID, colStake, colCurrentValue,
			colRoundNumber, colStatus, colReservedAmount, colLastActiveAt).
		Values(s.Key, s.Owner, s.PoolID, s.Stake, s.CurrentValue,
			s.RoundNumber, string(s.Status), s.ReservedAmount, s.LastActiveAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert session: %w", err)
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sessions.ErrSessionExists
		}

		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}
