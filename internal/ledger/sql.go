// internal/ledger/sql.go
//
// Ledger backed by a SQL key-value table:
//   ledger(player TEXT, key TEXT, value INTEGER, PRIMARY KEY(player, key))
// Works with both SQLite drivers ("sqlite3" cgo, "sqlite" pure Go).

package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

// SQL is a Ledger over an open *sql.DB whose schema is already migrated.
type SQL struct {
	db *sql.DB
}

// NewSQL wraps db.
func NewSQL(db *sql.DB) *SQL { return &SQL{db: db} }

// Load reads both counters for player.
func (s *SQL) Load(ctx context.Context, player string) (Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM ledger WHERE player=? AND key IN (?, ?)`,
		player, KeyWins, KeyLosses,
	)
	if err != nil {
		return Score{}, fmt.Errorf("ledger: load: %w", err)
	}
	defer rows.Close()

	var sc Score
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return Score{}, fmt.Errorf("ledger: scan: %w", err)
		}
		switch key {
		case KeyWins:
			sc.Wins = value
		case KeyLosses:
			sc.Losses = value
		}
	}
	if err := rows.Err(); err != nil {
		return Score{}, fmt.Errorf("ledger: rows: %w", err)
	}
	return sc, nil
}

// RecordWin increments the wins counter.
func (s *SQL) RecordWin(ctx context.Context, player string) error {
	return s.incr(ctx, player, KeyWins)
}

// RecordLoss increments the losses counter.
func (s *SQL) RecordLoss(ctx context.Context, player string) error {
	return s.incr(ctx, player, KeyLosses)
}

func (s *SQL) incr(ctx context.Context, player, key string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO ledger (player, key, value) VALUES (?, ?, 1)
        ON CONFLICT(player, key) DO UPDATE SET value = value + 1`,
		player, key,
	)
	if err != nil {
		return fmt.Errorf("ledger: record %s: %w", key, err)
	}
	return nil
}
