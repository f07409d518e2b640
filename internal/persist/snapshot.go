package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pocket-casino/internal/ledger"
)

// accountRecord is the on-disk shape of one account. Older files may omit
// newer fields; absent fields decode to zero, which matches their defaults.
type accountRecord struct {
	Wallet    int64 `json:"wallet"`
	Bank      int64 `json:"bank"`
	LastDaily int64 `json:"last_daily"`
	LastWork  int64 `json:"last_work"`
	LastSteal int64 `json:"last_steal"`
}

// Snapshot is the decoded data file. Top-level keys other than "balances"
// (the original file is shared with sibling features: "config", "tickets",
// "levels", ...) are carried as raw JSON and written back untouched.
type Snapshot struct {
	Balances map[ledger.UserID]ledger.Account
	Extra    map[string]json.RawMessage
}

func emptySnapshot() Snapshot {
	return Snapshot{
		Balances: map[ledger.UserID]ledger.Account{},
		Extra:    map[string]json.RawMessage{"config": json.RawMessage(`{}`)},
	}
}

// ReadSnapshot loads the data file. A missing file yields an empty snapshot
// and no error; a malformed file yields an empty snapshot and the parse
// error so the caller can log the fallback.
func ReadSnapshot(path string) (Snapshot, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return emptySnapshot(), err
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return emptySnapshot(), fmt.Errorf("parse %s: %w", path, err)
	}

	snap := emptySnapshot()
	for key, val := range top {
		if key != "balances" {
			snap.Extra[key] = val
		}
	}
	if rawBalances, ok := top["balances"]; ok {
		var records map[string]accountRecord
		if err := json.Unmarshal(rawBalances, &records); err != nil {
			return emptySnapshot(), fmt.Errorf("parse balances: %w", err)
		}
		for key, rec := range records {
			uid, err := strconv.ParseUint(key, 10, 64)
			if err != nil {
				continue
			}
			snap.Balances[ledger.UserID(uid)] = ledger.Account{
				Wallet:    rec.Wallet,
				Bank:      rec.Bank,
				LastDaily: rec.LastDaily,
				LastWork:  rec.LastWork,
				LastSteal: rec.LastSteal,
			}
		}
	}
	return snap, nil
}

// WriteSnapshot serializes the snapshot with stable keys and writes it
// atomically (temp file in the same directory, then rename).
func WriteSnapshot(path string, snap Snapshot) error {
	records := make(map[string]accountRecord, len(snap.Balances))
	for uid, acct := range snap.Balances {
		records[strconv.FormatUint(uint64(uid), 10)] = accountRecord{
			Wallet:    acct.Wallet,
			Bank:      acct.Bank,
			LastDaily: acct.LastDaily,
			LastWork:  acct.LastWork,
			LastSteal: acct.LastSteal,
		}
	}
	rawBalances, err := json.Marshal(records)
	if err != nil {
		return err
	}

	top := make(map[string]json.RawMessage, len(snap.Extra)+1)
	for key, val := range snap.Extra {
		top[key] = val
	}
	top["balances"] = rawBalances

	buf, err := json.MarshalIndent(top, "", "    ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
