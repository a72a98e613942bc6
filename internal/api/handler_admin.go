package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// PoolStatusHandler handles GET /pool.
func (h *HandlerProvider) PoolStatusHandler(w http.ResponseWriter, r *http.Request) {
	pool, err := h.svc.PoolStatus(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":            pool.ID,
		"balance":       pool.Balance,
		"totalReserved": pool.TotalReserved,
		"available":     pool.Available(),
		"locked":        pool.Locked,
	})
}

type lockRequest struct {
	Locked bool `json:"locked"`
}

// SetLockHandler handles POST /pool/lock.
func (h *HandlerProvider) SetLockHandler(w http.ResponseWriter, r *http.Request) {
	var req lockRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.SetPoolLocked(r.Context(), req.Locked)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"locked": req.Locked})
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// FundHandler handles POST /pool/fund.
func (h *HandlerProvider) FundHandler(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.FundPool(r.Context(), req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WithdrawHandler handles POST /pool/withdraw.
func (h *HandlerProvider) WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.WithdrawHouse(r.Context(), req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// WalletBalanceHandler handles GET /wallets/{owner}.
func (h *HandlerProvider) WalletBalanceHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := strconv.ParseUint(chi.URLParam(r, "owner"), 10, 64)
	if err != nil || owner == 0 {
		writeError(w, http.StatusBadRequest, "invalid owner in path")
		return
	}

	balance, err := h.svc.WalletBalance(r.Context(), owner)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"owner": owner, "balance": balance})
}

// DepositHandler handles POST /wallets/{owner}/deposit.
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := strconv.ParseUint(chi.URLParam(r, "owner"), 10, 64)
	if err != nil || owner == 0 {
		writeError(w, http.StatusBadRequest, "invalid owner in path")
		return
	}

	var req amountRequest
	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.Deposit(r.Context(), owner, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
