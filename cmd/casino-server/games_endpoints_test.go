package main

import (
	"net/http"
	"testing"

	"pocket-casino/internal/game"
)

func TestRouletteEndpointWin(t *testing.T) {
	// First value lands in the red band, second picks pocket 1.
	router, _ := newTestRouter(t, &scriptRng{vals: []int{0, 0}}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/games/roulette", `{"user_id":1,"bet":100,"color":"red"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("roulette expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["color"] != "red" || body["won"] != true {
		t.Fatalf("expected red win, got %s", w.Body.String())
	}
	if body["payout"].(float64) != 200 || body["wallet"].(float64) != 600 {
		t.Fatalf("expected payout 200 wallet 600, got %s", w.Body.String())
	}
}

func TestRouletteRejectsUnknownColor(t *testing.T) {
	router, _ := newTestRouter(t, &scriptRng{vals: []int{0}}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/games/roulette", `{"user_id":1,"bet":100,"color":"blue"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["error"] != "invalid_choice" {
		t.Fatalf("expected invalid_choice, got %s", w.Body.String())
	}
}

func TestGameBetExceedingWallet(t *testing.T) {
	router, led := newTestRouter(t, &scriptRng{vals: []int{0}}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/games/slots", `{"user_id":1,"bet":10000}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["error"] != "insufficient_funds" {
		t.Fatalf("expected insufficient_funds, got %s", w.Body.String())
	}
	if got := led.Account(1).Wallet; got != 500 {
		t.Fatalf("rejected bet must not move funds, wallet %d", got)
	}
}

func TestDiceEndpointValidation(t *testing.T) {
	router, _ := newTestRouter(t, &scriptRng{vals: []int{0}}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/games/dice", `{"user_id":1,"bet":50,"guess":0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if decodeBody(t, w)["error"] != "invalid_guess" {
		t.Fatalf("expected invalid_guess, got %s", w.Body.String())
	}
}

func TestBlackjackFlowOverHTTP(t *testing.T) {
	shoe := []game.Card{10, 10, 10, 9} // player 20 vs dealer 19
	router, led := newTestRouter(t, &scriptRng{vals: []int{0}}, shoe)

	w := doJSON(t, router, http.MethodPost, "/api/games/blackjack", `{"user_id":1,"bet":100}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	id := body["session_id"].(string)
	if id == "" {
		t.Fatal("expected session id")
	}
	if body["state"] != "awaiting_action" || body["player_total"].(float64) != 20 {
		t.Fatalf("unexpected opening view %s", w.Body.String())
	}
	if body["dealer_up"] != "10" {
		t.Fatalf("expected dealer upcard 10, got %v", body["dealer_up"])
	}
	if _, leaked := body["dealer"]; leaked {
		t.Fatal("live view must hide the dealer hand")
	}
	if got := led.Account(1).Wallet; got != 400 {
		t.Fatalf("bet not escrowed, wallet %d", got)
	}

	w = doJSON(t, router, http.MethodGet, "/api/games/blackjack/"+id+"?user_id=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/games/blackjack/"+id+"/stand", `{"user_id":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("stand expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if body["outcome"] != "win" || body["payout"].(float64) != 200 {
		t.Fatalf("expected win paying 200, got %s", w.Body.String())
	}
	if body["wallet"].(float64) != 600 {
		t.Fatalf("wallet expected 600, got %v", body["wallet"])
	}
	if body["dealer_total"].(float64) != 19 {
		t.Fatalf("dealer total expected 19, got %v", body["dealer_total"])
	}

	w = doJSON(t, router, http.MethodPost, "/api/games/blackjack/"+id+"/stand", `{"user_id":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("resolved session expected 404, got %d", w.Code)
	}
}

func TestBlackjackOwnershipAndDuplicates(t *testing.T) {
	shoe := []game.Card{10, 7, 10, 9}
	router, _ := newTestRouter(t, &scriptRng{vals: []int{0}}, shoe)

	w := doJSON(t, router, http.MethodPost, "/api/games/blackjack", `{"user_id":1,"bet":50}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create expected 200, got %d", w.Code)
	}
	id := decodeBody(t, w)["session_id"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/games/blackjack", `{"user_id":1,"bet":50}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate session expected 409, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/games/blackjack/"+id+"/hit", `{"user_id":2}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("foreign hit expected 403, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/games/blackjack/missing/hit", `{"user_id":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown session expected 404, got %d", w.Code)
	}
}
