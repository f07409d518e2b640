package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pocket-casino/internal/config"
	"pocket-casino/internal/economy"
	"pocket-casino/internal/game"
	"pocket-casino/internal/ledger"
	"pocket-casino/internal/session"

	"github.com/go-chi/chi/v5"
)

// scriptRng replays a fixed sequence, reduced mod n per call.
type scriptRng struct {
	mu   sync.Mutex
	vals []int
	i    int
}

func (r *scriptRng) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

type scriptShoe struct {
	mu    sync.Mutex
	cards []game.Card
	i     int
}

func (s *scriptShoe) Draw() game.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cards[s.i%len(s.cards)]
	s.i++
	return c
}

func testEconomyConfig() config.EconomyConfig {
	return config.EconomyConfig{
		StartBalance:     500,
		DailyCooldown:    24 * time.Hour,
		DailyMin:         100,
		DailyMax:         500,
		WorkCooldown:     8 * time.Minute,
		WorkMin:          50,
		WorkMax:          250,
		StealCooldown:    15 * time.Minute,
		StealMinWallet:   200,
		StealCutMinPct:   10,
		StealCutMaxPct:   50,
		StealFineMin:     50,
		StealFineMax:     250,
		StealSuccessPct:  50,
		LeaderboardLimit: 10,
	}
}

func testGameConfig() config.GameConfig {
	return config.GameConfig{
		RouletteRedWeight:   48,
		RouletteBlackWeight: 48,
		RouletteGreenWeight: 4,
		RouletteGreenPays:   14,
		SlotsTriplePays:     5,
		SlotsPairPays:       2,
		DicePays:            6,
		BlackjackTimeout:    2 * time.Minute,
	}
}

// newTestRouter wires the full stack against an in-memory ledger with
// scripted randomness and no Postgres sink.
func newTestRouter(t *testing.T, rng game.Rng, shoeCards []game.Card) (*chi.Mux, *ledger.Store) {
	t.Helper()
	led := ledger.NewStore(testEconomyConfig().StartBalance)
	svc := economy.NewService(led, testEconomyConfig(), economy.WithRng(rng))
	eng := game.NewEngine(led, testGameConfig(), game.WithRng(rng))
	reg := session.NewRegistry(led, testGameConfig(), rng,
		session.WithShoe(func() game.Shoe { return &scriptShoe{cards: shoeCards} }))
	cfg := config.ServerConfig{AdminAPIKey: "admin-key"}
	return newRouter(cfg, svc, eng, reg, nil), led
}

func doJSON(t *testing.T, router *chi.Mux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
