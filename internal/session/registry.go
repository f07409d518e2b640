package session

import (
	"context"
	"sync"
	"time"

	"pocket-casino/internal/config"
	"pocket-casino/internal/economy"
	"pocket-casino/internal/game"
	"pocket-casino/internal/ledger"
	"pocket-casino/internal/store"

	"github.com/rs/zerolog/log"
)

type State string

const (
	StateAwaitingAction State = "awaiting_action"
	StateResolved       State = "resolved"
)

// Session is one in-flight blackjack hand. The bet left the owner's wallet
// when the session was created; resolution credits the gross payout once.
type Session struct {
	ID    string
	Owner ledger.UserID
	Bet   int64

	mu         sync.Mutex
	player     []game.Card
	dealer     []game.Card
	state      State
	lastAction time.Time
}

// View is a caller-safe copy of the session state. The dealer's hole card
// stays hidden while the hand is live.
type View struct {
	ID          string
	Owner       ledger.UserID
	Bet         int64
	Player      []game.Card
	PlayerTotal int
	DealerUp    game.Card
	Dealer      []game.Card
	DealerTotal int
	State       State
	Outcome     game.BlackjackOutcome
	Payout      int64
	Wallet      int64
}

// Registry tracks live blackjack sessions and owns their transitions.
// Creation couples the escrow debit with the one-session-per-owner check;
// per-session locks make duplicate Hit/Stand deliveries harmless.
type Registry struct {
	ledger *ledger.Store
	cfg    config.GameConfig
	shoe   func() game.Shoe
	now    func() time.Time
	audit  economy.Recorder

	mu      sync.Mutex
	byID    map[string]*Session
	byOwner map[ledger.UserID]*Session
}

type Option func(*Registry)

func WithShoe(shoe func() game.Shoe) Option {
	return func(r *Registry) { r.shoe = shoe }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func WithRecorder(rec economy.Recorder) Option {
	return func(r *Registry) { r.audit = rec }
}

func NewRegistry(st *ledger.Store, cfg config.GameConfig, rng game.Rng, opts ...Option) *Registry {
	r := &Registry{
		ledger:  st,
		cfg:     cfg,
		shoe:    func() game.Shoe { return game.NewShoe(rng) },
		now:     time.Now,
		audit:   noRecorder{},
		byID:    map[string]*Session{},
		byOwner: map[ledger.UserID]*Session{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type noRecorder struct{}

func (noRecorder) Record(context.Context, economy.Entry) error { return nil }

// Create escrows the bet and deals the opening hands. The owner check and
// the wallet debit succeed or fail together under the registry lock.
func (r *Registry) Create(ctx context.Context, owner ledger.UserID, bet int64) (View, error) {
	if bet <= 0 {
		return View{}, game.ErrInvalidBet
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byOwner[owner]; exists {
		return View{}, ErrSessionExists
	}
	acct, err := r.ledger.Mutate(owner, func(a *ledger.Account) error {
		if bet > a.Wallet {
			return game.ErrInsufficientFunds
		}
		a.Wallet -= bet
		return nil
	})
	if err != nil {
		return View{}, err
	}

	shoe := r.shoe()
	s := &Session{
		ID:         store.NewID(),
		Owner:      owner,
		Bet:        bet,
		player:     game.DealHand(shoe),
		dealer:     game.DealHand(shoe),
		state:      StateAwaitingAction,
		lastAction: r.now(),
	}
	r.byID[s.ID] = s
	r.byOwner[owner] = s
	_ = r.audit.Record(ctx, economy.Entry{Op: "blackjack_bet", UID: owner, Amount: bet, WalletAfter: acct.Wallet, BankAfter: acct.Bank})

	v := s.viewLocked(false)
	v.Wallet = acct.Wallet
	return v, nil
}

// Hit draws one card for the player. Busting resolves the hand as a loss of
// the escrowed bet.
func (r *Registry) Hit(ctx context.Context, id string, actor ledger.UserID) (View, error) {
	s, err := r.lookup(id, actor)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateResolved {
		return View{}, ErrSessionNotFound
	}
	s.player = append(s.player, r.shoe().Draw())
	s.lastAction = r.now()
	if game.HandTotal(s.player) > 21 {
		return r.resolveLocked(ctx, s, game.BlackjackLoss)
	}
	return s.viewLocked(false), nil
}

// Stand plays out the dealer and settles the hand.
func (r *Registry) Stand(ctx context.Context, id string, actor ledger.UserID) (View, error) {
	s, err := r.lookup(id, actor)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateResolved {
		return View{}, ErrSessionNotFound
	}
	s.dealer = game.DealerPlay(r.shoe(), s.dealer)
	return r.resolveLocked(ctx, s, game.ResolveStand(s.player, s.dealer))
}

// Get returns the live view of a session.
func (r *Registry) Get(id string, actor ledger.UserID) (View, error) {
	s, err := r.lookup(id, actor)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateResolved {
		return View{}, ErrSessionNotFound
	}
	return s.viewLocked(false), nil
}

func (r *Registry) lookup(id string, actor ledger.UserID) (*Session, error) {
	r.mu.Lock()
	s, ok := r.byID[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.Owner != actor {
		return nil, ErrNotYourSession
	}
	return s, nil
}

// resolveLocked settles the hand, credits the payout, and drops the session
// from the registry. Caller holds s.mu.
func (r *Registry) resolveLocked(ctx context.Context, s *Session, outcome game.BlackjackOutcome) (View, error) {
	s.state = StateResolved
	payout := game.BlackjackPayout(outcome, s.Bet)
	var acct ledger.Account
	if payout > 0 {
		var err error
		acct, err = r.ledger.Mutate(s.Owner, func(a *ledger.Account) error {
			a.Wallet += payout
			return nil
		})
		if err != nil {
			return View{}, err
		}
	} else {
		acct = r.ledger.Account(s.Owner)
	}

	r.mu.Lock()
	delete(r.byID, s.ID)
	delete(r.byOwner, s.Owner)
	r.mu.Unlock()

	_ = r.audit.Record(ctx, economy.Entry{Op: "blackjack_" + string(outcome), UID: s.Owner, Amount: payout, WalletAfter: acct.Wallet, BankAfter: acct.Bank})

	v := s.viewLocked(true)
	v.Outcome = outcome
	v.Payout = payout
	v.Wallet = acct.Wallet
	return v, nil
}

func (s *Session) viewLocked(showDealer bool) View {
	v := View{
		ID:          s.ID,
		Owner:       s.Owner,
		Bet:         s.Bet,
		Player:      append([]game.Card(nil), s.player...),
		PlayerTotal: game.HandTotal(s.player),
		DealerUp:    s.dealer[0],
		State:       s.state,
	}
	if showDealer {
		v.Dealer = append([]game.Card(nil), s.dealer...)
		v.DealerTotal = game.HandTotal(s.dealer)
	}
	return v
}

// SweepExpired force-resolves sessions idle past the configured timeout as
// forfeits. The escrowed bet stays gone; re-crediting it would reward
// abandoning a bad hand.
func (r *Registry) SweepExpired(ctx context.Context) int {
	timeout := r.cfg.BlackjackTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	cutoff := r.now().Add(-timeout)

	r.mu.Lock()
	stale := make([]*Session, 0)
	for _, s := range r.byID {
		stale = append(stale, s)
	}
	r.mu.Unlock()

	expired := 0
	for _, s := range stale {
		s.mu.Lock()
		if s.state != StateResolved && s.lastAction.Before(cutoff) {
			if _, err := r.resolveLocked(ctx, s, game.BlackjackLoss); err == nil {
				expired++
				log.Info().Str("session_id", s.ID).Uint64("owner", uint64(s.Owner)).Msg("blackjack session timed out")
			}
		}
		s.mu.Unlock()
	}
	return expired
}

// StartJanitor sweeps expired sessions on interval until ctx is cancelled.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = r.SweepExpired(ctx)
			}
		}
	}()
}
