package wallets

import (
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type walletsRepo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func New(dbc *pgxpool.Pool) *walletsRepo {
	return &walletsRepo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}
