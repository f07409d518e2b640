package ledger

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"
)

var (
	ErrNegativeBalance = errors.New("negative_balance")
	ErrSameAccount     = errors.New("same_account")
)

// UserID is the platform-assigned user identifier.
type UserID uint64

// Account holds one user's monetary state. Cooldown stamps are unix seconds,
// zero meaning never claimed.
type Account struct {
	Wallet    int64
	Bank      int64
	LastDaily int64
	LastWork  int64
	LastSteal int64
}

func (a Account) Total() int64 {
	return a.Wallet + a.Bank
}

const shardCount = 32

type entry struct {
	acct Account
	seq  uint64
}

type shard struct {
	mu       sync.Mutex
	accounts map[UserID]*entry
}

// Store is the single source of truth for balances and cooldowns. Mutations
// on the same account are serialized by shard locks; mutations on different
// accounts proceed independently. Whole-store passes (snapshot, leaderboard,
// interest) take the guard exclusively so they observe a consistent point in
// time; per-account mutations share it.
type Store struct {
	guard        sync.RWMutex
	shards       [shardCount]shard
	startBalance int64
	nextSeq      atomic.Uint64
	dirty        atomic.Bool
}

func NewStore(startBalance int64) *Store {
	s := &Store{startBalance: startBalance}
	for i := range s.shards {
		s.shards[i].accounts = make(map[UserID]*entry)
	}
	return s
}

func (s *Store) shardFor(uid UserID) *shard {
	return &s.shards[uid%shardCount]
}

// getLocked returns the entry for uid, creating the default account on first
// reference. Caller holds the shard lock.
func (s *Store) getLocked(sh *shard, uid UserID) *entry {
	e, ok := sh.accounts[uid]
	if !ok {
		e = &entry{
			acct: Account{Wallet: s.startBalance},
			seq:  s.nextSeq.Add(1),
		}
		sh.accounts[uid] = e
		s.dirty.Store(true)
	}
	return e
}

// Account returns a copy of uid's account, creating it if absent.
func (s *Store) Account(uid UserID) Account {
	s.guard.RLock()
	defer s.guard.RUnlock()
	sh := s.shardFor(uid)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return s.getLocked(sh, uid).acct
}

// Mutate applies fn to uid's account as one atomic read-modify-write. fn
// receives a working copy; a non-nil error from fn, or a resulting negative
// balance, leaves the stored account untouched. The committed account is
// returned.
func (s *Store) Mutate(uid UserID, fn func(*Account) error) (Account, error) {
	s.guard.RLock()
	defer s.guard.RUnlock()
	sh := s.shardFor(uid)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	e := s.getLocked(sh, uid)
	work := e.acct
	if err := fn(&work); err != nil {
		return e.acct, err
	}
	if work.Wallet < 0 || work.Bank < 0 {
		return e.acct, ErrNegativeBalance
	}
	e.acct = work
	s.dirty.Store(true)
	return work, nil
}

// Transfer applies fn to both accounts under both locks, acquired in shard
// order so opposite-direction transfers cannot deadlock. Either both commits
// land or neither does.
func (s *Store) Transfer(src, dst UserID, fn func(src, dst *Account) error) error {
	if src == dst {
		return ErrSameAccount
	}
	s.guard.RLock()
	defer s.guard.RUnlock()

	shSrc, shDst := s.shardFor(src), s.shardFor(dst)
	first, second := shSrc, shDst
	if src%shardCount > dst%shardCount {
		first, second = shDst, shSrc
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	if second != first {
		second.mu.Lock()
		defer second.mu.Unlock()
	}

	eSrc := s.getLocked(shSrc, src)
	eDst := s.getLocked(shDst, dst)
	workSrc, workDst := eSrc.acct, eDst.acct
	if err := fn(&workSrc, &workDst); err != nil {
		return err
	}
	if workSrc.Wallet < 0 || workSrc.Bank < 0 || workDst.Wallet < 0 || workDst.Bank < 0 {
		return ErrNegativeBalance
	}
	eSrc.acct = workSrc
	eDst.acct = workDst
	s.dirty.Store(true)
	return nil
}

// Snapshot returns a consistent copy of every account.
func (s *Store) Snapshot() map[UserID]Account {
	s.guard.Lock()
	defer s.guard.Unlock()
	out := make(map[UserID]Account)
	for i := range s.shards {
		for uid, e := range s.shards[i].accounts {
			out[uid] = e.acct
		}
	}
	return out
}

// Load replaces the store contents with accounts restored from a snapshot.
// Discovery order for leaderboard ties is assigned by ascending user id.
func (s *Store) Load(accounts map[UserID]Account) {
	s.guard.Lock()
	defer s.guard.Unlock()
	for i := range s.shards {
		s.shards[i].accounts = make(map[UserID]*entry)
	}
	uids := make([]UserID, 0, len(accounts))
	for uid := range accounts {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	for _, uid := range uids {
		sh := s.shardFor(uid)
		sh.accounts[uid] = &entry{acct: accounts[uid], seq: s.nextSeq.Add(1)}
	}
}

// LeaderboardEntry is one ranked row, richest first.
type LeaderboardEntry struct {
	UID   UserID
	Total int64
}

// Leaderboard returns the top n accounts by wallet+bank, ties broken by
// discovery order.
func (s *Store) Leaderboard(n int) []LeaderboardEntry {
	s.guard.Lock()
	defer s.guard.Unlock()
	type row struct {
		uid   UserID
		total int64
		seq   uint64
	}
	rows := make([]row, 0)
	for i := range s.shards {
		for uid, e := range s.shards[i].accounts {
			rows = append(rows, row{uid: uid, total: e.acct.Total(), seq: e.seq})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total > rows[j].total
		}
		return rows[i].seq < rows[j].seq
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	out := make([]LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, LeaderboardEntry{UID: r.uid, Total: r.total})
	}
	return out
}

// ApplyInterest credits every bank balance with rate interest, capped per
// account, in one pass. Returns the number of accounts credited.
func (s *Store) ApplyInterest(rate float64, perAccountCap int64) int {
	if rate <= 0 {
		return 0
	}
	s.guard.Lock()
	defer s.guard.Unlock()
	credited := 0
	for i := range s.shards {
		for _, e := range s.shards[i].accounts {
			if e.acct.Bank <= 0 {
				continue
			}
			gain := int64(float64(e.acct.Bank) * rate)
			if gain <= 0 {
				continue
			}
			if perAccountCap > 0 && gain > perAccountCap {
				gain = perAccountCap
			}
			e.acct.Bank += gain
			credited++
		}
	}
	if credited > 0 {
		s.dirty.Store(true)
	}
	return credited
}

// Dirty reports whether the store changed since the last ClearDirty.
func (s *Store) Dirty() bool {
	return s.dirty.Load()
}

func (s *Store) ClearDirty() {
	s.dirty.Store(false)
}
