package sessions

import (
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table             = "sessions"
	colKey            = "key"
	colOwner          = "owner"
	colPoolID         = "pool_id"
	colStake          = "stake"
	colCurrentValue   = "current_value"
	colRoundNumber    = "round_number"
	colStatus         = "status"
	colReservedAmount = "reserved_amount"
	colLastActiveAt   = "last_active_at"
)

type sessionsRepo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

// New returns a Postgres-backed sessions store. Queries run on the pool
// unless the context carries a transaction started by the trm manager.
func New(dbc *pgxpool.Pool) *sessionsRepo {
	return &sessionsRepo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}
