// internal/ledger/ledger.go
//
// Score ledger: cumulative wins and losses per player.
// Counters are only ever incremented, once per finished round; nothing in
// the game resets them.

package ledger

import "context"

// Keys under which the counters are stored.
const (
	KeyWins   = "wins"
	KeyLosses = "losses"
)

// Score is a snapshot of a player's counters.
type Score struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Ledger persists the counters. Absent counters read as zero.
type Ledger interface {
	Load(ctx context.Context, player string) (Score, error)
	RecordWin(ctx context.Context, player string) error
	RecordLoss(ctx context.Context, player string) error
}
