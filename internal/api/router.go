package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/divegame/internal/services/session"
)

// NewRouter registers all API endpoints.
func NewRouter(svc *session.Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/sessions", h.StartHandler)
	r.Post("/sessions/{key}/rounds", h.PlayRoundHandler)
	r.Post("/sessions/{key}/cashout", h.CashOutHandler)
	r.Post("/sessions/{key}/forfeit", h.ForfeitHandler)
	r.Post("/sessions/{key}/reap", h.ReapHandler)

	r.Get("/rounds/{round}/stats", h.StatsHandler)

	r.Get("/pool", h.PoolStatusHandler)
	r.Post("/pool/lock", h.SetLockHandler)
	r.Post("/pool/fund", h.FundHandler)
	r.Post("/pool/withdraw", h.WithdrawHandler)

	r.Get("/wallets/{owner}", h.WalletBalanceHandler)
	r.Post("/wallets/{owner}/deposit", h.DepositHandler)

	return r
}
