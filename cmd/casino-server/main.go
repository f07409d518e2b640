package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"pocket-casino/internal/config"
	"pocket-casino/internal/economy"
	"pocket-casino/internal/game"
	"pocket-casino/internal/ledger"
	"pocket-casino/internal/logging"
	"pocket-casino/internal/persist"
	"pocket-casino/internal/session"
	"pocket-casino/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	led := ledger.NewStore(cfg.Economy.StartBalance)
	engine := persist.NewEngine(led, cfg.Persist)
	engine.Restore()

	var st *store.Store
	if cfg.Server.PostgresDSN != "" {
		st, err = store.New(cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		if err := st.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		if err := st.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("ensure schema failed")
		}
		defer st.Close()
	}

	var recorder economy.Recorder
	var svcOpts []economy.Option
	var engOpts []game.Option
	var regOpts []session.Option
	if st != nil {
		recorder = st
		svcOpts = append(svcOpts, economy.WithRecorder(recorder))
		engOpts = append(engOpts, game.WithRecorder(recorder))
		regOpts = append(regOpts, session.WithRecorder(recorder))
	}

	svc := economy.NewService(led, cfg.Economy, svcOpts...)
	eng := game.NewEngine(led, cfg.Game, engOpts...)
	reg := session.NewRegistry(led, cfg.Game, game.DefaultRng, regOpts...)
	reg.StartJanitor(ctx, 15*time.Second)

	persistDone := make(chan struct{})
	go func() {
		defer close(persistDone)
		engine.Run(ctx)
	}()

	r := newRouter(cfg.Server, svc, eng, reg, st)
	logRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
		}
		stop()
	}

	// Run flushes one last time when ctx is cancelled; wait for it so the
	// data file reflects the final state.
	<-persistDone
}

func logRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
