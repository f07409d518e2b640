package economy

import (
	"context"
	"math/rand"
	"time"

	"pocket-casino/internal/config"
	"pocket-casino/internal/ledger"
)

// Rng is the randomness source for rewards and the steal coin. Tests
// substitute fixed sequences. Implementations must be safe for concurrent
// use; one Service serves every request.
type Rng interface {
	Intn(n int) int
}

// defaultRng draws from the shared math/rand source, which is locked
// internally.
var defaultRng Rng = systemRng{}

type systemRng struct{}

func (systemRng) Intn(n int) int { return rand.Intn(n) }

type Service struct {
	ledger *ledger.Store
	cfg    config.EconomyConfig
	rng    Rng
	now    func() time.Time
	audit  Recorder
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRng(rng Rng) Option {
	return func(s *Service) { s.rng = rng }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.audit = r }
}

func NewService(st *ledger.Store, cfg config.EconomyConfig, opts ...Option) *Service {
	s := &Service{
		ledger: st,
		cfg:    cfg,
		rng:    defaultRng,
		now:    time.Now,
		audit:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type BalanceView struct {
	Wallet int64
	Bank   int64
	Total  int64
}

func (s *Service) Balance(uid ledger.UserID) BalanceView {
	acct := s.ledger.Account(uid)
	return BalanceView{Wallet: acct.Wallet, Bank: acct.Bank, Total: acct.Total()}
}

// Deposit moves amount from wallet to bank.
func (s *Service) Deposit(ctx context.Context, uid ledger.UserID, amount int64) (ledger.Account, error) {
	if amount <= 0 {
		return ledger.Account{}, ErrInvalidAmount
	}
	acct, err := s.ledger.Mutate(uid, func(a *ledger.Account) error {
		if amount > a.Wallet {
			return ErrInsufficientFunds
		}
		a.Wallet -= amount
		a.Bank += amount
		return nil
	})
	if err != nil {
		return acct, err
	}
	_ = s.audit.Record(ctx, Entry{Op: "deposit", UID: uid, Amount: amount, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return acct, nil
}

// Withdraw moves amount from bank to wallet.
func (s *Service) Withdraw(ctx context.Context, uid ledger.UserID, amount int64) (ledger.Account, error) {
	if amount <= 0 {
		return ledger.Account{}, ErrInvalidAmount
	}
	acct, err := s.ledger.Mutate(uid, func(a *ledger.Account) error {
		if amount > a.Bank {
			return ErrInsufficientFunds
		}
		a.Bank -= amount
		a.Wallet += amount
		return nil
	})
	if err != nil {
		return acct, err
	}
	_ = s.audit.Record(ctx, Entry{Op: "withdraw", UID: uid, Amount: amount, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return acct, nil
}

// Send moves amount from src's wallet to dst's wallet, atomically across
// both accounts.
func (s *Service) Send(ctx context.Context, src, dst ledger.UserID, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if src == dst {
		return ErrSelfTarget
	}
	err := s.ledger.Transfer(src, dst, func(from, to *ledger.Account) error {
		if amount > from.Wallet {
			return ErrInsufficientFunds
		}
		from.Wallet -= amount
		to.Wallet += amount
		return nil
	})
	if err != nil {
		return err
	}
	_ = s.audit.Record(ctx, Entry{Op: "send", UID: src, Target: dst, Amount: amount})
	return nil
}

// ClaimResult reports a successful timed claim.
type ClaimResult struct {
	Reward  int64
	Account ledger.Account
}

func (s *Service) ClaimDaily(ctx context.Context, uid ledger.UserID) (ClaimResult, error) {
	return s.claim(ctx, uid, "daily", s.cfg.DailyCooldown, s.cfg.DailyMin, s.cfg.DailyMax,
		func(a *ledger.Account) *int64 { return &a.LastDaily })
}

func (s *Service) ClaimWork(ctx context.Context, uid ledger.UserID) (ClaimResult, error) {
	return s.claim(ctx, uid, "work", s.cfg.WorkCooldown, s.cfg.WorkMin, s.cfg.WorkMax,
		func(a *ledger.Account) *int64 { return &a.LastWork })
}

func (s *Service) claim(ctx context.Context, uid ledger.UserID, op string, cooldown time.Duration, min, max int64, stamp func(*ledger.Account) *int64) (ClaimResult, error) {
	now := s.now()
	var reward int64
	acct, err := s.ledger.Mutate(uid, func(a *ledger.Account) error {
		if remaining := cooldownRemaining(*stamp(a), cooldown, now); remaining > 0 {
			return &CooldownError{Op: op, Remaining: remaining}
		}
		reward = s.randRange(min, max)
		a.Wallet += reward
		*stamp(a) = now.Unix()
		return nil
	})
	if err != nil {
		return ClaimResult{}, err
	}
	_ = s.audit.Record(ctx, Entry{Op: op, UID: uid, Amount: reward, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return ClaimResult{Reward: reward, Account: acct}, nil
}

// StealResult reports a resolved steal attempt. On success Amount is the cut
// taken from the target; on failure it is the fine paid by the actor.
type StealResult struct {
	Success bool
	Amount  int64
	Account ledger.Account
}

// ClaimSteal attempts to rob target's wallet. Both outcomes stamp the
// cooldown. A failed attempt fines the actor; the fine is clamped to the
// actor's wallet so the balance invariant holds (documented policy choice).
func (s *Service) ClaimSteal(ctx context.Context, uid, target ledger.UserID) (StealResult, error) {
	if uid == target {
		return StealResult{}, ErrSelfTarget
	}
	now := s.now()
	var res StealResult
	err := s.ledger.Transfer(uid, target, func(actor, tgt *ledger.Account) error {
		if remaining := cooldownRemaining(actor.LastSteal, s.cfg.StealCooldown, now); remaining > 0 {
			return &CooldownError{Op: "steal", Remaining: remaining}
		}
		if tgt.Wallet < s.cfg.StealMinWallet {
			return ErrTargetTooPoor
		}
		actor.LastSteal = now.Unix()
		if s.rng.Intn(100) < s.cfg.StealSuccessPct {
			pct := s.randRange(int64(s.cfg.StealCutMinPct), int64(s.cfg.StealCutMaxPct))
			cut := tgt.Wallet * pct / 100
			tgt.Wallet -= cut
			actor.Wallet += cut
			res = StealResult{Success: true, Amount: cut, Account: *actor}
			return nil
		}
		fine := s.randRange(s.cfg.StealFineMin, s.cfg.StealFineMax)
		if fine > actor.Wallet {
			fine = actor.Wallet
		}
		actor.Wallet -= fine
		res = StealResult{Success: false, Amount: fine, Account: *actor}
		return nil
	})
	if err != nil {
		return StealResult{}, err
	}
	_ = s.audit.Record(ctx, Entry{Op: "steal", UID: uid, Target: target, Amount: res.Amount, WalletAfter: res.Account.Wallet, BankAfter: res.Account.Bank})
	return res, nil
}

// AdminAdjust adds amount (may be negative) to uid's wallet, bypassing
// cooldowns. Driving the wallet negative is rejected.
func (s *Service) AdminAdjust(ctx context.Context, uid ledger.UserID, amount int64) (ledger.Account, error) {
	if amount == 0 {
		return ledger.Account{}, ErrInvalidAmount
	}
	acct, err := s.ledger.Mutate(uid, func(a *ledger.Account) error {
		a.Wallet += amount
		return nil
	})
	if err != nil {
		return acct, err
	}
	_ = s.audit.Record(ctx, Entry{Op: "admin_adjust", UID: uid, Amount: amount, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return acct, nil
}

// AdminReset restores uid's account to the configured defaults.
func (s *Service) AdminReset(ctx context.Context, uid ledger.UserID) (ledger.Account, error) {
	acct, err := s.ledger.Mutate(uid, func(a *ledger.Account) error {
		*a = ledger.Account{Wallet: s.cfg.StartBalance}
		return nil
	})
	if err != nil {
		return acct, err
	}
	_ = s.audit.Record(ctx, Entry{Op: "admin_reset", UID: uid, WalletAfter: acct.Wallet, BankAfter: acct.Bank})
	return acct, nil
}

// AdminResetAll resets every known account. Returns the number reset.
func (s *Service) AdminResetAll(ctx context.Context) int {
	count := 0
	for uid := range s.ledger.Snapshot() {
		if _, err := s.AdminReset(ctx, uid); err == nil {
			count++
		}
	}
	return count
}

func (s *Service) Leaderboard(n int) []ledger.LeaderboardEntry {
	if n <= 0 {
		n = s.cfg.LeaderboardLimit
	}
	return s.ledger.Leaderboard(n)
}

func (s *Service) randRange(min, max int64) int64 {
	if max <= min {
		return min
	}
	// config validation bounds spans below 2^31, so the int conversion
	// holds on 32-bit platforms
	return min + int64(s.rng.Intn(int(max-min+1)))
}

func cooldownRemaining(last int64, window time.Duration, now time.Time) time.Duration {
	if last == 0 {
		return 0
	}
	elapsed := now.Sub(time.Unix(last, 0))
	if elapsed >= window {
		return 0
	}
	return window - elapsed
}
