package store

import (
	"context"
	"time"

	"pocket-casino/internal/economy"
)

// AuditEntry is one persisted row of the audit trail.
type AuditEntry struct {
	ID          string    `json:"id"`
	Op          string    `json:"op"`
	UserID      uint64    `json:"user_id"`
	TargetID    uint64    `json:"target_id"`
	Amount      int64     `json:"amount"`
	WalletAfter int64     `json:"wallet_after"`
	BankAfter   int64     `json:"bank_after"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record implements economy.Recorder.
func (s *Store) Record(ctx context.Context, e economy.Entry) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO audit_entries (id, op, user_id, target_id, amount, wallet_after, bank_after)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		NewID(), e.Op, int64(e.UID), int64(e.Target), e.Amount, e.WalletAfter, e.BankAfter)
	return err
}

// ListAuditEntries returns recent entries, newest first. A zero userID
// lists across all users.
func (s *Store) ListAuditEntries(ctx context.Context, userID uint64, limit, offset int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT id, op, user_id, target_id, amount, wallet_after, bank_after, created_at
         FROM audit_entries
         WHERE ($1 = 0 OR user_id = $1)
         ORDER BY created_at DESC
         LIMIT $2 OFFSET $3`,
		int64(userID), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AuditEntry, 0, limit)
	for rows.Next() {
		var e AuditEntry
		var uid, target int64
		if err := rows.Scan(&e.ID, &e.Op, &uid, &target, &e.Amount, &e.WalletAfter, &e.BankAfter, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.UserID = uint64(uid)
		e.TargetID = uint64(target)
		out = append(out, e)
	}
	return out, rows.Err()
}
