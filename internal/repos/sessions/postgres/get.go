package sessions

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

func (r *sessionsRepo) Get(ctx context.Context, key string) (sessions.Session, error) {
	return r.get(ctx, key, false)
}

// LockAndGet reads the session FOR UPDATE. Must run inside a
// transaction; it is the compare-and-set read for every mutation.
func (r *sessionsRepo) LockAndGet(ctx context.Context, key string) (sessions.Session, error) {
	return r.get(ctx, key, true)
}

func (r *sessionsRepo) get(ctx context.Context, key string, forUpdate bool) (sessions.Session, error) {
	query := sq.Select(colKey, colOwner, colPoolID, colStake, colCurrentValue,
		colRoundNumber, colStatus, colReservedAmount, colLastActiveAt).
		From(table).
		Where(sq.Eq{colKey: key}).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return sessions.Session{}, fmt.Errorf("build select session: %w", err)
	}

	var s sessions.Session
	var status string

	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&s.Key, &s.Owner, &s.PoolID, &s.Stake, &s.CurrentValue,
			&s.RoundNumber, &status, &s.ReservedAmount, &s.LastActiveAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sessions.Session{}, sessions.ErrSessionNotFound
		}

		return sessions.Session{}, fmt.Errorf("select session: %w", err)
	}

	s.Status = sessions.Status(status)

	return s, nil
}
