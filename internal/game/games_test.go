package game

import (
	"context"
	"errors"
	"testing"

	"pocket-casino/internal/config"
	"pocket-casino/internal/ledger"
)

type scriptRng struct {
	vals []int
	i    int
}

func (r *scriptRng) Intn(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
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
	}
}

func newTestEngine(start int64, rng Rng) (*Engine, *ledger.Store) {
	st := ledger.NewStore(start)
	return NewEngine(st, testGameConfig(), WithRng(rng)), st
}

func TestBetValidatedBeforeAnyDraw(t *testing.T) {
	rng := &scriptRng{vals: []int{0}}
	eng, st := newTestEngine(100, rng)
	ctx := context.Background()

	if _, err := eng.PlayRoulette(ctx, 1, 0, Red); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("zero bet error = %v, want ErrInvalidBet", err)
	}
	if _, err := eng.PlayRoulette(ctx, 1, -10, Red); !errors.Is(err, ErrInvalidBet) {
		t.Fatalf("negative bet error = %v, want ErrInvalidBet", err)
	}
	if _, err := eng.PlaySlots(ctx, 1, 500); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("oversized bet error = %v, want ErrInsufficientFunds", err)
	}
	if rng.i != 0 {
		t.Fatalf("rng drawn %d times on rejected bets, want 0", rng.i)
	}
	if got := st.Account(1).Wallet; got != 100 {
		t.Fatalf("wallet = %d, want untouched 100", got)
	}
}

func TestRouletteRedWin(t *testing.T) {
	// Weight draw 0 lands red; pocket draw 3 gives pocket 7.
	rng := &scriptRng{vals: []int{0, 3}}
	eng, _ := newTestEngine(100, rng)

	res, err := eng.PlayRoulette(context.Background(), 1, 50, Red)
	if err != nil {
		t.Fatalf("PlayRoulette: %v", err)
	}
	if res.Color != Red || !res.Won {
		t.Fatalf("result = %+v, want red win", res)
	}
	if res.Pocket%2 != 1 {
		t.Fatalf("red pocket = %d, want odd", res.Pocket)
	}
	if res.Payout != 100 {
		t.Fatalf("payout = %d, want gross 2x bet", res.Payout)
	}
	if res.Wallet != 150 {
		t.Fatalf("wallet = %d, want 100-50+100", res.Wallet)
	}
}

func TestRouletteGreenPaysConfiguredMultiplier(t *testing.T) {
	// Weight draw 97 falls past red(48)+black(48) into green.
	rng := &scriptRng{vals: []int{97}}
	eng, _ := newTestEngine(100, rng)

	res, err := eng.PlayRoulette(context.Background(), 1, 10, Green)
	if err != nil {
		t.Fatalf("PlayRoulette: %v", err)
	}
	if res.Color != Green || res.Pocket != 0 {
		t.Fatalf("result = %+v, want green pocket 0", res)
	}
	if res.Payout != 140 {
		t.Fatalf("payout = %d, want 14x bet", res.Payout)
	}
	if res.Wallet != 230 {
		t.Fatalf("wallet = %d, want 100-10+140", res.Wallet)
	}
}

func TestRouletteLossDebitsBet(t *testing.T) {
	rng := &scriptRng{vals: []int{0, 3}} // red
	eng, _ := newTestEngine(100, rng)

	res, err := eng.PlayRoulette(context.Background(), 1, 40, Black)
	if err != nil {
		t.Fatalf("PlayRoulette: %v", err)
	}
	if res.Won || res.Payout != 0 {
		t.Fatalf("result = %+v, want loss", res)
	}
	if res.Wallet != 60 {
		t.Fatalf("wallet = %d, want 60", res.Wallet)
	}
}

func TestParseColor(t *testing.T) {
	if _, err := ParseColor("blue"); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("ParseColor(blue) error = %v, want ErrInvalidChoice", err)
	}
	if c, err := ParseColor("green"); err != nil || c != Green {
		t.Fatalf("ParseColor(green) = %v, %v", c, err)
	}
}

func TestSlotsTriple(t *testing.T) {
	rng := &scriptRng{vals: []int{2, 2, 2}}
	eng, _ := newTestEngine(100, rng)
	res, err := eng.PlaySlots(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("PlaySlots: %v", err)
	}
	if !res.Won || res.Payout != 100 {
		t.Fatalf("result = %+v, want 5x triple payout", res)
	}
	if res.Wallet != 180 {
		t.Fatalf("wallet = %d, want 100-20+100", res.Wallet)
	}
}

func TestSlotsPair(t *testing.T) {
	rng := &scriptRng{vals: []int{1, 1, 3}}
	eng, _ := newTestEngine(100, rng)
	res, err := eng.PlaySlots(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("PlaySlots: %v", err)
	}
	if !res.Won || res.Payout != 40 {
		t.Fatalf("result = %+v, want 2x pair payout", res)
	}
}

func TestSlotsMiss(t *testing.T) {
	rng := &scriptRng{vals: []int{0, 1, 2}}
	eng, _ := newTestEngine(100, rng)
	res, err := eng.PlaySlots(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("PlaySlots: %v", err)
	}
	if res.Won || res.Wallet != 80 {
		t.Fatalf("result = %+v, want loss at wallet 80", res)
	}
}

func TestCoinflip(t *testing.T) {
	rng := &scriptRng{vals: []int{1, 0}}
	eng, _ := newTestEngine(100, rng)
	ctx := context.Background()

	res, err := eng.PlayCoinflip(ctx, 1, 25, Tails)
	if err != nil {
		t.Fatalf("PlayCoinflip: %v", err)
	}
	if !res.Won || res.Landed != Tails || res.Payout != 50 {
		t.Fatalf("result = %+v, want tails win paying 2x", res)
	}

	res, err = eng.PlayCoinflip(ctx, 1, 25, Tails)
	if err != nil {
		t.Fatalf("PlayCoinflip: %v", err)
	}
	if res.Won || res.Landed != Heads {
		t.Fatalf("result = %+v, want heads loss", res)
	}
}

func TestDice(t *testing.T) {
	rng := &scriptRng{vals: []int{3}} // rolls 4
	eng, _ := newTestEngine(100, rng)
	ctx := context.Background()

	if _, err := eng.PlayDice(ctx, 1, 10, 0); !errors.Is(err, ErrInvalidGuess) {
		t.Fatalf("guess 0 error = %v, want ErrInvalidGuess", err)
	}
	if _, err := eng.PlayDice(ctx, 1, 10, 7); !errors.Is(err, ErrInvalidGuess) {
		t.Fatalf("guess 7 error = %v, want ErrInvalidGuess", err)
	}

	res, err := eng.PlayDice(ctx, 1, 10, 4)
	if err != nil {
		t.Fatalf("PlayDice: %v", err)
	}
	if !res.Won || res.Rolled != 4 || res.Payout != 60 {
		t.Fatalf("result = %+v, want rolled 4 paying 6x", res)
	}
}

func TestHighLowBoundary(t *testing.T) {
	// Draw 49 -> number 50, which counts as low.
	rng := &scriptRng{vals: []int{49}}
	eng, _ := newTestEngine(100, rng)
	res, err := eng.PlayHighLow(context.Background(), 1, 10, High)
	if err != nil {
		t.Fatalf("PlayHighLow: %v", err)
	}
	if res.Number != 50 || res.Won {
		t.Fatalf("result = %+v, want 50 counted as low", res)
	}

	// Draw 50 -> number 51, strictly above 50.
	rng = &scriptRng{vals: []int{50}}
	eng, _ = newTestEngine(100, rng)
	res, err = eng.PlayHighLow(context.Background(), 1, 10, High)
	if err != nil {
		t.Fatalf("PlayHighLow: %v", err)
	}
	if res.Number != 51 || !res.Won || res.Payout != 20 {
		t.Fatalf("result = %+v, want 51 high win paying 2x", res)
	}
}
