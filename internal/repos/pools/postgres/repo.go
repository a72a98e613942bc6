package pools

import (
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "pools"
	colID            = "id"
	colBalance       = "balance"
	colTotalReserved = "total_reserved"
	colLocked        = "locked"
)

type poolsRepo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func New(dbc *pgxpool.Pool) *poolsRepo {
	return &poolsRepo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}
