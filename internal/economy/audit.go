package economy

import (
	"context"

	"pocket-casino/internal/ledger"
)

// Entry describes one committed monetary mutation for the audit trail.
type Entry struct {
	Op          string
	UID         ledger.UserID
	Target      ledger.UserID
	Amount      int64
	WalletAfter int64
	BankAfter   int64
}

// Recorder receives every committed mutation. Implementations must not
// block the ledger path on failure; the in-memory state stays authoritative.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Entry) error { return nil }
