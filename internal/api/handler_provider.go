package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fastprodman/divegame/internal/gamemath"
	"github.com/fastprodman/divegame/internal/repos/wallets"
	"github.com/fastprodman/divegame/internal/services/session"
)

// HandlerProvider wraps the session service and exposes HTTP handlers.
type HandlerProvider struct {
	svc *session.Service
}

func NewHandler(svc *session.Service) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// playerID reads the caller identity from the X-Player-ID header.
// Real authentication lives outside this service.
func playerID(r *http.Request) (uint64, error) {
	raw := r.Header.Get("X-Player-ID")
	if raw == "" {
		return 0, fmt.Errorf("missing X-Player-ID header")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid X-Player-ID header")
	}

	return id, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

// writeServiceError maps the engine's rejection taxonomy onto HTTP
// status codes. The messages carry expected/got values straight from
// the engine; nothing extra is added here.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidSession):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, session.ErrRoundMismatch),
		errors.Is(err, session.ErrValueMismatch),
		errors.Is(err, session.ErrMaxRoundsReached),
		errors.Is(err, session.ErrSessionNotExpired),
		errors.Is(err, session.ErrUnprofitableCashOut),
		errors.Is(err, session.ErrInsufficientFunds):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrInvalidStake),
		errors.Is(err, gamemath.ErrRoundOutOfRange),
		errors.Is(err, gamemath.ErrInvalidRoll):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrPoolLocked),
		errors.Is(err, session.ErrInsufficientLiquidity):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, wallets.ErrWalletNotFound):
		writeError(w, http.StatusNotFound, "wallet not found")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- Handlers ---

type startRequest struct {
	Stake int64 `json:"stake"`
}

// StartHandler handles POST /sessions.
func (h *HandlerProvider) StartHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := playerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req startRequest
	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Start(r.Context(), owner, req.Stake)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"sessionKey":     res.SessionKey,
		"initialValue":   res.InitialValue,
		"reservedAmount": res.ReservedAmount,
	})
}

type playRequest struct {
	RoundNumber  int   `json:"roundNumber"`
	CurrentValue int64 `json:"currentValue"`
}

// PlayRoundHandler handles POST /sessions/{key}/rounds. The roll is
// drawn server-side; the client never supplies randomness.
func (h *HandlerProvider) PlayRoundHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := playerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req playRequest
	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	roll, err := gamemath.DrawRoll()
	if err != nil {
		slog.Error("draw roll", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	key := chi.URLParam(r, "key")

	res, err := h.svc.PlayRound(r.Context(), owner, key, req.RoundNumber, req.CurrentValue, roll)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"survived":       res.Survived,
		"newValue":       res.NewValue,
		"newRoundNumber": res.NewRoundNumber,
	})
}

type cashOutRequest struct {
	FinalValue int64 `json:"finalValue"`
}

// CashOutHandler handles POST /sessions/{key}/cashout.
func (h *HandlerProvider) CashOutHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := playerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req cashOutRequest
	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.CashOut(r.Context(), owner, chi.URLParam(r, "key"), req.FinalValue)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"paidAmount": res.PaidAmount})
}

// ForfeitHandler handles POST /sessions/{key}/forfeit.
func (h *HandlerProvider) ForfeitHandler(w http.ResponseWriter, r *http.Request) {
	owner, err := playerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.svc.Forfeit(r.Context(), owner, chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "forfeited"})
}

// ReapHandler handles POST /sessions/{key}/reap. Deliberately
// unauthenticated: anyone may reap a session once its timeout elapsed.
func (h *HandlerProvider) ReapHandler(w http.ResponseWriter, r *http.Request) {
	err := h.svc.ReapExpired(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reaped"})
}

// StatsHandler handles GET /rounds/{round}/stats.
func (h *HandlerProvider) StatsHandler(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid round in path")
		return
	}

	stats, err := h.svc.StatsFor(round)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"survivalProbability": stats.SurvivalProbability,
		"multiplier":          stats.Multiplier,
		"threshold":           stats.Threshold,
	})
}
