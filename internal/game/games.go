package game

import (
	"context"
	"errors"
	"math/rand"

	"pocket-casino/internal/config"
	"pocket-casino/internal/economy"
	"pocket-casino/internal/ledger"
)

var (
	ErrInvalidBet        = errors.New("invalid_bet")
	ErrInvalidChoice     = errors.New("invalid_choice")
	ErrInvalidGuess      = errors.New("invalid_guess")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)

// Rng is the randomness source for all games.
type Rng interface {
	Intn(n int) int
}

// DefaultRng draws from the shared math/rand source, which is safe for
// concurrent use.
var DefaultRng Rng = systemRng{}

type systemRng struct{}

func (systemRng) Intn(n int) int { return rand.Intn(n) }

// Engine resolves the single-shot games. Each play is one atomic ledger
// mutation: the bet is validated before any draw, debited, and the gross
// payout (stake included) credited on a win.
type Engine struct {
	ledger *ledger.Store
	cfg    config.GameConfig
	rng    Rng
	audit  economy.Recorder
}

type Option func(*Engine)

func WithRng(rng Rng) Option {
	return func(e *Engine) { e.rng = rng }
}

func WithRecorder(r economy.Recorder) Option {
	return func(e *Engine) { e.audit = r }
}

func NewEngine(st *ledger.Store, cfg config.GameConfig, opts ...Option) *Engine {
	e := &Engine{
		ledger: st,
		cfg:    cfg,
		rng:    DefaultRng,
		audit:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, economy.Entry) error { return nil }

type Color string

const (
	Red   Color = "red"
	Black Color = "black"
	Green Color = "green"
)

func ParseColor(s string) (Color, error) {
	switch Color(s) {
	case Red, Black, Green:
		return Color(s), nil
	default:
		return "", ErrInvalidChoice
	}
}

type RouletteResult struct {
	Pocket int
	Color  Color
	Won    bool
	Payout int64
	Wallet int64
}

func (e *Engine) PlayRoulette(ctx context.Context, uid ledger.UserID, bet int64, choice Color) (RouletteResult, error) {
	if bet <= 0 {
		return RouletteResult{}, ErrInvalidBet
	}
	var res RouletteResult
	acct, err := e.ledger.Mutate(uid, func(a *ledger.Account) error {
		if bet > a.Wallet {
			return ErrInsufficientFunds
		}
		color, pocket := e.spinWheel()
		res = RouletteResult{Pocket: pocket, Color: color}
		a.Wallet -= bet
		if color == choice {
			res.Won = true
			if color == Green {
				res.Payout = bet * e.cfg.RouletteGreenPays
			} else {
				res.Payout = bet * 2
			}
			a.Wallet += res.Payout
		}
		return nil
	})
	if err != nil {
		return RouletteResult{}, err
	}
	res.Wallet = acct.Wallet
	_ = e.audit.Record(ctx, economy.Entry{Op: "roulette", UID: uid, Amount: bet, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return res, nil
}

// spinWheel picks a color from the configured weight table, then a display
// pocket consistent with it: 0 for green, odd 1-35 for red, even 2-36 for
// black.
func (e *Engine) spinWheel() (Color, int) {
	red, black, green := e.cfg.RouletteRedWeight, e.cfg.RouletteBlackWeight, e.cfg.RouletteGreenWeight
	total := red + black + green
	if total <= 0 {
		red, black, green = 1, 1, 1
		total = 3
	}
	v := e.rng.Intn(total)
	switch {
	case v < red:
		return Red, 2*e.rng.Intn(18) + 1
	case v < red+black:
		return Black, 2 * (e.rng.Intn(18) + 1)
	default:
		return Green, 0
	}
}

var slotSymbols = []string{"cherry", "lemon", "bell", "grape", "seven"}

type SlotsResult struct {
	Reels  [3]string
	Won    bool
	Payout int64
	Wallet int64
}

func (e *Engine) PlaySlots(ctx context.Context, uid ledger.UserID, bet int64) (SlotsResult, error) {
	if bet <= 0 {
		return SlotsResult{}, ErrInvalidBet
	}
	var res SlotsResult
	acct, err := e.ledger.Mutate(uid, func(a *ledger.Account) error {
		if bet > a.Wallet {
			return ErrInsufficientFunds
		}
		for i := range res.Reels {
			res.Reels[i] = slotSymbols[e.rng.Intn(len(slotSymbols))]
		}
		a.Wallet -= bet
		switch matchCount(res.Reels) {
		case 3:
			res.Won = true
			res.Payout = bet * e.cfg.SlotsTriplePays
		case 2:
			res.Won = true
			res.Payout = bet * e.cfg.SlotsPairPays
		}
		a.Wallet += res.Payout
		return nil
	})
	if err != nil {
		return SlotsResult{}, err
	}
	res.Wallet = acct.Wallet
	_ = e.audit.Record(ctx, economy.Entry{Op: "slots", UID: uid, Amount: bet, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return res, nil
}

// matchCount returns 3 for three of a kind, 2 for exactly one pair, else 1.
func matchCount(reels [3]string) int {
	switch {
	case reels[0] == reels[1] && reels[1] == reels[2]:
		return 3
	case reels[0] == reels[1] || reels[1] == reels[2] || reels[0] == reels[2]:
		return 2
	default:
		return 1
	}
}

type Side string

const (
	Heads Side = "heads"
	Tails Side = "tails"
)

func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Heads, Tails:
		return Side(s), nil
	default:
		return "", ErrInvalidChoice
	}
}

type CoinflipResult struct {
	Landed Side
	Won    bool
	Payout int64
	Wallet int64
}

func (e *Engine) PlayCoinflip(ctx context.Context, uid ledger.UserID, bet int64, call Side) (CoinflipResult, error) {
	if bet <= 0 {
		return CoinflipResult{}, ErrInvalidBet
	}
	var res CoinflipResult
	acct, err := e.ledger.Mutate(uid, func(a *ledger.Account) error {
		if bet > a.Wallet {
			return ErrInsufficientFunds
		}
		res.Landed = Heads
		if e.rng.Intn(2) == 1 {
			res.Landed = Tails
		}
		a.Wallet -= bet
		if res.Landed == call {
			res.Won = true
			res.Payout = bet * 2
			a.Wallet += res.Payout
		}
		return nil
	})
	if err != nil {
		return CoinflipResult{}, err
	}
	res.Wallet = acct.Wallet
	_ = e.audit.Record(ctx, economy.Entry{Op: "coinflip", UID: uid, Amount: bet, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return res, nil
}

type DiceResult struct {
	Rolled int
	Won    bool
	Payout int64
	Wallet int64
}

func (e *Engine) PlayDice(ctx context.Context, uid ledger.UserID, bet int64, guess int) (DiceResult, error) {
	if bet <= 0 {
		return DiceResult{}, ErrInvalidBet
	}
	if guess < 1 || guess > 6 {
		return DiceResult{}, ErrInvalidGuess
	}
	var res DiceResult
	acct, err := e.ledger.Mutate(uid, func(a *ledger.Account) error {
		if bet > a.Wallet {
			return ErrInsufficientFunds
		}
		res.Rolled = e.rng.Intn(6) + 1
		a.Wallet -= bet
		if res.Rolled == guess {
			res.Won = true
			res.Payout = bet * e.cfg.DicePays
			a.Wallet += res.Payout
		}
		return nil
	})
	if err != nil {
		return DiceResult{}, err
	}
	res.Wallet = acct.Wallet
	_ = e.audit.Record(ctx, economy.Entry{Op: "dice", UID: uid, Amount: bet, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return res, nil
}

type Range string

const (
	High Range = "high"
	Low  Range = "low"
)

func ParseRange(s string) (Range, error) {
	switch Range(s) {
	case High, Low:
		return Range(s), nil
	default:
		return "", ErrInvalidChoice
	}
}

type HighLowResult struct {
	Number int
	Won    bool
	Payout int64
	Wallet int64
}

// PlayHighLow draws 1-100; "high" wins on anything strictly above 50.
func (e *Engine) PlayHighLow(ctx context.Context, uid ledger.UserID, bet int64, call Range) (HighLowResult, error) {
	if bet <= 0 {
		return HighLowResult{}, ErrInvalidBet
	}
	var res HighLowResult
	acct, err := e.ledger.Mutate(uid, func(a *ledger.Account) error {
		if bet > a.Wallet {
			return ErrInsufficientFunds
		}
		res.Number = e.rng.Intn(100) + 1
		landed := Low
		if res.Number > 50 {
			landed = High
		}
		a.Wallet -= bet
		if landed == call {
			res.Won = true
			res.Payout = bet * 2
			a.Wallet += res.Payout
		}
		return nil
	})
	if err != nil {
		return HighLowResult{}, err
	}
	res.Wallet = acct.Wallet
	_ = e.audit.Record(ctx, economy.Entry{Op: "highlow", UID: uid, Amount: bet, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return res, nil
}
