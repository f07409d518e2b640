package main

import (
	"net/http"

	"pocket-casino/internal/game"
	"pocket-casino/internal/ledger"
	"pocket-casino/internal/session"

	"github.com/go-chi/chi/v5"
)

type betRequest struct {
	UserID uint64 `json:"user_id"`
	Bet    int64  `json:"bet"`
}

func rouletteHandler(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			betRequest
			Color string `json:"color"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		choice, err := game.ParseColor(body.Color)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		res, err := eng.PlayRoulette(r.Context(), ledger.UserID(body.UserID), body.Bet, choice)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"pocket": res.Pocket,
			"color":  res.Color,
			"won":    res.Won,
			"payout": res.Payout,
			"wallet": res.Wallet,
		})
	}
}

func slotsHandler(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body betRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := eng.PlaySlots(r.Context(), ledger.UserID(body.UserID), body.Bet)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"reels":  res.Reels,
			"won":    res.Won,
			"payout": res.Payout,
			"wallet": res.Wallet,
		})
	}
}

func coinflipHandler(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			betRequest
			Call string `json:"call"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		call, err := game.ParseSide(body.Call)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		res, err := eng.PlayCoinflip(r.Context(), ledger.UserID(body.UserID), body.Bet, call)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"landed": res.Landed,
			"won":    res.Won,
			"payout": res.Payout,
			"wallet": res.Wallet,
		})
	}
}

func diceHandler(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			betRequest
			Guess int `json:"guess"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := eng.PlayDice(r.Context(), ledger.UserID(body.UserID), body.Bet, body.Guess)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"rolled": res.Rolled,
			"won":    res.Won,
			"payout": res.Payout,
			"wallet": res.Wallet,
		})
	}
}

func highlowHandler(eng *game.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			betRequest
			Call string `json:"call"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		call, err := game.ParseRange(body.Call)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		res, err := eng.PlayHighLow(r.Context(), ledger.UserID(body.UserID), body.Bet, call)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"number": res.Number,
			"won":    res.Won,
			"payout": res.Payout,
			"wallet": res.Wallet,
		})
	}
}

func blackjackCreateHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body betRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		v, err := reg.Create(r.Context(), ledger.UserID(body.UserID), body.Bet)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, sessionPayload(v))
	}
}

func blackjackHitHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body claimRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		v, err := reg.Hit(r.Context(), chi.URLParam(r, "session_id"), ledger.UserID(body.UserID))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, sessionPayload(v))
	}
}

func blackjackStandHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body claimRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		v, err := reg.Stand(r.Context(), chi.URLParam(r, "session_id"), ledger.UserID(body.UserID))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, sessionPayload(v))
	}
}

func blackjackGetHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userIDQuery(r)
		if !ok {
			writeHTTPError(w, http.StatusBadRequest, "invalid_user_id")
			return
		}
		v, err := reg.Get(chi.URLParam(r, "session_id"), uid)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, sessionPayload(v))
	}
}
