package pools

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fastprodman/divegame/internal/repos/pools"
)

const uniqueViolation = "23505"

func (r *poolsRepo) Create(ctx context.Context, p pools.Pool) error {
	query := sq.Insert(table).
		Columns(colID, colBalance, colTotalReserved, colLocked).
		Values(p.ID, p.Balance, p.TotalReserved, p.Locked).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert pool: %w", err)
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil // already provisioned
		}

		return fmt.Errorf("insert pool: %w", err)
	}

	return nil
}

func (r *poolsRepo) Get(ctx context.Context, id string) (pools.Pool, error) {
	return r.get(ctx, id, false)
}

func (r *poolsRepo) LockAndGet(ctx context.Context, id string) (pools.Pool, error) {
	return r.get(ctx, id, true)
}

func (r *poolsRepo) get(ctx context.Context, id string, forUpdate bool) (pools.Pool, error) {
	query := sq.Select(colID, colBalance, colTotalReserved, colLocked).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return pools.Pool{}, fmt.Errorf("build select pool: %w", err)
	}

	var p pools.Pool
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&p.ID, &p.Balance, &p.TotalReserved, &p.Locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pools.Pool{}, pools.ErrPoolNotFound
		}

		return pools.Pool{}, fmt.Errorf("select pool: %w", err)
	}

	return p, nil
}
