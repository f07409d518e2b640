package persist

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"pocket-casino/internal/config"
	"pocket-casino/internal/ledger"

	"github.com/rs/zerolog/log"
)

// Engine keeps the ledger store durable: it restores the snapshot on
// startup, flushes dirty state on a fixed interval, and writes a final
// snapshot on shutdown. Balances changed between ticks ride the interval;
// that durability window is the documented trade-off for not rewriting the
// file on every mutation.
type Engine struct {
	store *ledger.Store
	cfg   config.PersistConfig

	mu    sync.Mutex
	extra map[string]json.RawMessage
}

func NewEngine(store *ledger.Store, cfg config.PersistConfig) *Engine {
	return &Engine{store: store, cfg: cfg, extra: map[string]json.RawMessage{}}
}

// Restore loads the snapshot into the store. Read failures fall back to an
// empty store so a corrupt file never refuses startup.
func (e *Engine) Restore() {
	snap, err := ReadSnapshot(e.cfg.DataFile)
	if err != nil {
		log.Warn().Err(err).Str("file", e.cfg.DataFile).Msg("snapshot load failed, starting empty")
	}
	e.mu.Lock()
	e.extra = snap.Extra
	e.mu.Unlock()
	e.store.Load(snap.Balances)
	e.store.ClearDirty()
	log.Info().Int("accounts", len(snap.Balances)).Str("file", e.cfg.DataFile).Msg("snapshot restored")
}

// Flush writes the current store state if anything changed since the last
// flush, or unconditionally when force is set. The store copy is taken under
// its own locks; the disk write happens outside any critical section.
func (e *Engine) Flush(force bool) {
	if !force && !e.store.Dirty() {
		return
	}
	e.store.ClearDirty()
	balances := e.store.Snapshot()
	e.mu.Lock()
	extra := e.extra
	e.mu.Unlock()
	if err := WriteSnapshot(e.cfg.DataFile, Snapshot{Balances: balances, Extra: extra}); err != nil {
		log.Error().Err(err).Str("file", e.cfg.DataFile).Msg("snapshot save failed")
		return
	}
	log.Debug().Int("accounts", len(balances)).Msg("snapshot saved")
}

// Run drives the autosave loop until ctx is cancelled, then performs the
// final flush. Bank interest, when configured, accrues store-wide once per
// tick so the rate is independent of command volume.
func (e *Engine) Run(ctx context.Context) {
	interval := e.cfg.AutosaveInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			e.Flush(true)
			log.Info().Msg("final snapshot flushed")
			return
		case <-ticker.C:
			if n := e.store.ApplyInterest(e.cfg.InterestRate, e.cfg.InterestPerTickCap); n > 0 {
				log.Debug().Int("accounts", n).Msg("bank interest accrued")
			}
			e.Flush(false)
		}
	}
}
