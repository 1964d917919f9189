// internal/store/memory.go
//
// In-memory round sessions.
// Rounds are ephemeral: only the score ledger outlives the process.
//
// Characteristics:
//   - Stores *Session values keyed by round ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get returns ErrNotFound for unknown IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

// ErrNotFound is returned for unknown round IDs.
var ErrNotFound = errors.New("store: round not found")

// Session is one player's round plus the context it was started in.
type Session struct {
	ID           string
	Player       string
	Language     words.Language
	Daily        bool
	SourceFailed bool // The word source failed and Round holds the sentinel.
	StartedAt    time.Time
	Round        game.Round
}

// Store defines the persistence interface for round sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete drops a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

type memory struct {
	mu       sync.RWMutex        // guards sessions
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save stores a copy so later caller mutations do not leak in.
func (m *memory) Save(ctx context.Context, s *Session) error {
	cp := *s
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &cp
	return nil
}

// Get returns a copy of the stored session.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
