package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"pocket-casino/internal/economy"
	"pocket-casino/internal/game"
	"pocket-casino/internal/ledger"
	"pocket-casino/internal/logging"
	"pocket-casino/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
)

func apiLogMiddleware() func(http.Handler) http.Handler {
	return httplog.RequestLogger(
		slog.New(slog.NewJSONHandler(logging.Writer(), &slog.HandlerOptions{})),
		&httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.Schema{ResponseStatus: "status", ResponseDuration: "duration_ms"},
			LogExtraAttrs: func(req *http.Request, _ string, _ int) []slog.Attr {
				rc := chi.RouteContext(req.Context())
				route := req.URL.Path
				if rc != nil && rc.RoutePattern() != "" {
					route = rc.RoutePattern()
				}
				return []slog.Attr{
					slog.String("request_id", chimw.GetReqID(req.Context())),
					slog.String("method", req.Method),
					slog.String("route", route),
					slog.String("path", req.URL.Path),
				}
			},
		},
	)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTTPError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": code})
}

// writeDomainError maps service errors onto HTTP statuses. Cooldowns carry a
// retry hint so callers can back off without parsing the message.
func writeDomainError(w http.ResponseWriter, err error) {
	if cd, ok := economy.IsCooldown(err); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error":               "cooldown_active",
			"op":                  cd.Op,
			"retry_after_seconds": int64(math.Ceil(cd.Remaining.Seconds())),
		})
		return
	}
	switch {
	case errors.Is(err, economy.ErrInvalidAmount),
		errors.Is(err, economy.ErrSelfTarget),
		errors.Is(err, economy.ErrTargetTooPoor),
		errors.Is(err, game.ErrInvalidBet),
		errors.Is(err, game.ErrInvalidChoice),
		errors.Is(err, game.ErrInvalidGuess):
		writeHTTPError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, economy.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrNegativeBalance):
		writeHTTPError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, session.ErrSessionNotFound):
		writeHTTPError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrNotYourSession):
		writeHTTPError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, session.ErrSessionExists):
		writeHTTPError(w, http.StatusConflict, err.Error())
	default:
		writeHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeHTTPError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

func userIDParam(r *http.Request, name string) (ledger.UserID, bool) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return ledger.UserID(n), true
}

func userIDQuery(r *http.Request) (ledger.UserID, bool) {
	n, err := strconv.ParseUint(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return ledger.UserID(n), true
}

func accountPayload(a ledger.Account) map[string]any {
	return map[string]any{
		"wallet": a.Wallet,
		"bank":   a.Bank,
		"total":  a.Total(),
	}
}

func cardNames(cards []game.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func sessionPayload(v session.View) map[string]any {
	out := map[string]any{
		"session_id":   v.ID,
		"user_id":      v.Owner,
		"bet":          v.Bet,
		"player":       cardNames(v.Player),
		"player_total": v.PlayerTotal,
		"state":        v.State,
	}
	if v.State == session.StateResolved {
		out["dealer"] = cardNames(v.Dealer)
		out["dealer_total"] = v.DealerTotal
		out["outcome"] = v.Outcome
		out["payout"] = v.Payout
		out["wallet"] = v.Wallet
	} else {
		out["dealer_up"] = v.DealerUp.String()
	}
	return out
}

func parsePagination(r *http.Request) (int, int) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
