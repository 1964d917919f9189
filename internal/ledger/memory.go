// internal/ledger/memory.go
//
// In-memory Ledger. Counters are lost when the process restarts; used by
// tests and when no database path is configured.

package ledger

import (
	"context"
	"sync"
)

type memory struct {
	mu     sync.RWMutex     // guards scores
	scores map[string]Score // keyed by player
}

// NewMemory constructs an empty in-memory Ledger.
func NewMemory() Ledger {
	return &memory{scores: make(map[string]Score)}
}

func (m *memory) Load(ctx context.Context, player string) (Score, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scores[player], nil
}

func (m *memory) RecordWin(ctx context.Context, player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc := m.scores[player]
	sc.Wins++
	m.scores[player] = sc
	return nil
}

func (m *memory) RecordLoss(ctx context.Context, player string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sc := m.scores[player]
	sc.Losses++
	m.scores[player] = sc
	return nil
}
