package main

import (
	"encoding/json"
	"net/http"

	"pocket-casino/internal/config"
	"pocket-casino/internal/economy"
	"pocket-casino/internal/game"
	"pocket-casino/internal/session"
	"pocket-casino/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func newRouter(cfg config.ServerConfig, svc *economy.Service, eng *game.Engine, reg *session.Registry, st *store.Store) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())

		r.Get("/balance/{user_id}", balanceHandler(svc))
		r.Get("/leaderboard", leaderboardHandler(svc))

		r.Route("/economy", func(r chi.Router) {
			r.Post("/deposit", depositHandler(svc))
			r.Post("/withdraw", withdrawHandler(svc))
			r.Post("/send", sendHandler(svc))
			r.Post("/daily", dailyHandler(svc))
			r.Post("/work", workHandler(svc))
			r.Post("/steal", stealHandler(svc))
		})

		r.Route("/games", func(r chi.Router) {
			r.Post("/roulette", rouletteHandler(eng))
			r.Post("/slots", slotsHandler(eng))
			r.Post("/coinflip", coinflipHandler(eng))
			r.Post("/dice", diceHandler(eng))
			r.Post("/highlow", highlowHandler(eng))

			r.Post("/blackjack", blackjackCreateHandler(reg))
			r.Get("/blackjack/{session_id}", blackjackGetHandler(reg))
			r.Post("/blackjack/{session_id}/hit", blackjackHitHandler(reg))
			r.Post("/blackjack/{session_id}/stand", blackjackStandHandler(reg))
		})

		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(cfg.AdminAPIKey))
			r.Post("/admin/adjust", adminAdjustHandler(svc))
			r.Post("/admin/reset", adminResetHandler(svc))
			r.Post("/admin/reset-all", adminResetAllHandler(svc))
			r.Get("/admin/audit", adminAuditHandler(st))
		})
	})

	return r
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := map[string]any{"ok": true}
		if st != nil {
			if err := st.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				out["ok"] = false
				out["db"] = "down"
				_ = json.NewEncoder(w).Encode(out)
				return
			}
			out["db"] = "up"
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
