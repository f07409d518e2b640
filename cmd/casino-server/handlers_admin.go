package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pocket-casino/internal/economy"
	"pocket-casino/internal/ledger"
	"pocket-casino/internal/store"
)

func adminAuthMiddleware(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" || !checkAdminAuth(r, adminKey) {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkAdminAuth(r *http.Request, adminKey string) bool {
	if v := r.Header.Get("X-Admin-Key"); v == adminKey {
		return true
	}
	auth := r.Header.Get("Authorization")
	prefix := "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):] == adminKey
	}
	return false
}

func adminAdjustHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bankRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		acct, err := svc.AdminAdjust(r.Context(), ledger.UserID(body.UserID), body.Amount)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, accountPayload(acct))
	}
}

func adminResetHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body claimRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		acct, err := svc.AdminReset(r.Context(), ledger.UserID(body.UserID))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, accountPayload(acct))
	}
}

func adminResetAllHandler(svc *economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := svc.AdminResetAll(r.Context())
		writeJSON(w, map[string]any{"ok": true, "reset": n})
	}
}

// adminAuditHandler lists the Postgres audit trail. Without a configured DSN
// the sink is disabled and st is nil.
func adminAuditHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if st == nil {
			writeHTTPError(w, http.StatusServiceUnavailable, "audit_disabled")
			return
		}
		limit, offset := parsePagination(r)
		var userID uint64
		if v := r.URL.Query().Get("user_id"); v != "" {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				writeHTTPError(w, http.StatusBadRequest, "invalid_user_id")
				return
			}
			userID = n
		}
		items, err := st.ListAuditEntries(r.Context(), userID, limit, offset)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, map[string]any{
			"items":  items,
			"limit":  limit,
			"offset": offset,
		})
	}
}
