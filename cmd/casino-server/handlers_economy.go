package main

import (
	"context"
	"net/http"

	"pocket-casino/internal/economy"
	"pocket-casino/internal/ledger"
)

func balanceHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := userIDParam(r, "user_id")
		if !ok {
			writeHTTPError(w, http.StatusBadRequest, "invalid_user_id")
			return
		}
		bal := svc.Balance(uid)
		writeJSON(w, map[string]any{
			"user_id": uid,
			"wallet":  bal.Wallet,
			"bank":    bal.Bank,
			"total":   bal.Total,
		})
	}
}

func leaderboardHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := parsePagination(r)
		if r.URL.Query().Get("limit") == "" {
			limit = 0 // service default
		}
		entries := svc.Leaderboard(limit)
		out := make([]map[string]any, 0, len(entries))
		for i, e := range entries {
			out = append(out, map[string]any{
				"rank":    i + 1,
				"user_id": e.UID,
				"total":   e.Total,
			})
		}
		writeJSON(w, map[string]any{"items": out})
	}
}

type bankRequest struct {
	UserID uint64 `json:"user_id"`
	Amount int64  `json:"amount"`
}

func depositHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bankRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		acct, err := svc.Deposit(r.Context(), ledger.UserID(body.UserID), body.Amount)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, accountPayload(acct))
	}
}

func withdrawHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bankRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		acct, err := svc.Withdraw(r.Context(), ledger.UserID(body.UserID), body.Amount)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, accountPayload(acct))
	}
}

func sendHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID   uint64 `json:"user_id"`
			TargetID uint64 `json:"target_id"`
			Amount   int64  `json:"amount"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		if err := svc.Send(r.Context(), ledger.UserID(body.UserID), ledger.UserID(body.TargetID), body.Amount); err != nil {
			writeDomainError(w, err)
			return
		}
		bal := svc.Balance(ledger.UserID(body.UserID))
		writeJSON(w, map[string]any{
			"ok":     true,
			"amount": body.Amount,
			"wallet": bal.Wallet,
		})
	}
}

type claimRequest struct {
	UserID uint64 `json:"user_id"`
}

func dailyHandler(svc *economy.Service) http.HandlerFunc {
	return claimHandler(svc.ClaimDaily)
}

func workHandler(svc *economy.Service) http.HandlerFunc {
	return claimHandler(svc.ClaimWork)
}

func claimHandler(claim func(ctx context.Context, uid ledger.UserID) (economy.ClaimResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body claimRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := claim(r.Context(), ledger.UserID(body.UserID))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"reward": res.Reward,
			"wallet": res.Account.Wallet,
			"bank":   res.Account.Bank,
		})
	}
}

func stealHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			UserID   uint64 `json:"user_id"`
			TargetID uint64 `json:"target_id"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		res, err := svc.ClaimSteal(r.Context(), ledger.UserID(body.UserID), ledger.UserID(body.TargetID))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"success": res.Success,
			"amount":  res.Amount,
			"wallet":  res.Account.Wallet,
		})
	}
}
