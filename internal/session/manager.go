// internal/session/manager.go
//
// Session manager: the single place where rounds change.
// Responsibilities:
//   - Acquire a word and start a round for a player, replacing the previous one.
//   - Cancel a player's in-flight acquisition when a newer one starts, and
//     discard any result that still arrives for the older request.
//   - Apply guesses through the engine and record terminal results in the ledger.
//
// Notes:
//   - Round mutations happen under one mutex; word fetches run outside it.
//   - The ledger is written before the finished round is saved, so a failed
//     write leaves the round in progress and the guess can be retried. A
//     round whose result is already in the ledger is remembered until it is
//     saved, so a failed save never counts twice.
//   - Players idle for longer than Config.IdleTTL are forgotten together with
//     their rounds; their ledger counters stay.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

var (
	// ErrSuperseded is returned to a round request overtaken by a newer
	// request of the same player.
	ErrSuperseded = errors.New("session: superseded by a newer round request")

	// ErrStaleRound is returned for guesses on a round that is no longer
	// the player's current one.
	ErrStaleRound = errors.New("session: round replaced")

	// ErrLedger wraps failures to record a finished round.
	ErrLedger = errors.New("session: ledger write failed")
)

// Options selects the word for a new round.
type Options struct {
	Language words.Language
	Daily    bool // Word of the day instead of a random pick; always Spanish.
}

// DefaultIdleTTL is how long a player's rounds are kept without activity.
const DefaultIdleTTL = 24 * time.Hour

// pruneEvery throttles the idle sweep run by NewRound.
const pruneEvery = time.Minute

// Config wires a Manager.
type Config struct {
	Source  words.Source // Per-language source, usually a words.Mux.
	Daily   words.Source // Optional; required for Options.Daily.
	Rounds  store.Store
	Ledger  ledger.Ledger
	Metrics *Metrics // Optional.
	Now     func() time.Time
	IdleTTL time.Duration // 0 selects DefaultIdleTTL.
}

// Manager coordinates rounds for any number of independent players.
type Manager struct {
	cfg Config

	mu       sync.Mutex
	gen      uint64
	current  map[string]string    // player -> current round ID
	previous map[string]string    // player -> the round current replaced
	pending  map[string]*pending  // player -> in-flight acquisition
	seen     map[string]time.Time // player -> last round start or guess
	recorded map[string]bool      // round ID -> result in ledger, save pending
	pruned   time.Time
}

type pending struct {
	gen    uint64
	cancel context.CancelFunc
}

// New builds a Manager.
func New(cfg Config) *Manager {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	return &Manager{
		cfg:      cfg,
		current:  make(map[string]string),
		previous: make(map[string]string),
		pending:  make(map[string]*pending),
		seen:     make(map[string]time.Time),
		recorded: make(map[string]bool),
	}
}

// NewRound acquires a word and starts a round for player.
// When the word source fails, or hands out a word that cannot be spelled
// with the language's letters, the round starts with words.Sentinel and
// SourceFailed is set; the error is only logged.
func (m *Manager) NewRound(ctx context.Context, player string, opts Options) (*store.Session, error) {
	src := m.cfg.Source
	if opts.Daily {
		if m.cfg.Daily == nil {
			return nil, fmt.Errorf("session: daily word not configured")
		}
		src = m.cfg.Daily
		// The word of the day comes from the Spanish list.
		opts.Language = words.Spanish
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.mu.Lock()
	if p, ok := m.pending[player]; ok {
		p.cancel()
	}
	m.gen++
	gen := m.gen
	m.pending[player] = &pending{gen: gen, cancel: cancel}
	m.mu.Unlock()

	word, srcErr := words.Acquire(ctx, src, opts.Language)

	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.pending[player]; !ok || p.gen != gen {
		return nil, ErrSuperseded
	}
	delete(m.pending, player)
	if word == "" {
		if srcErr == nil {
			srcErr = game.ErrEmptyWord
		}
		return nil, srcErr
	}
	if srcErr == nil {
		if w := words.Fold(word); words.Playable(opts.Language, w) {
			word = w
		} else {
			srcErr = fmt.Errorf("%w: %q has letters outside the %s alphabet", words.ErrSourceUnavailable, word, opts.Language)
			word = words.Sentinel
		}
	}
	if srcErr != nil {
		log.Warn().Err(srcErr).Str("player", player).Str("language", string(opts.Language)).
			Msg("word source failed, using sentinel")
	}

	r, err := game.Start(word)
	if err != nil {
		return nil, err
	}
	sess := &store.Session{
		ID:           uuid.NewString(),
		Player:       player,
		Language:     opts.Language,
		Daily:        opts.Daily,
		SourceFailed: srcErr != nil,
		StartedAt:    m.cfg.Now().UTC(),
		Round:        r,
	}
	if err := m.cfg.Rounds.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("session: save round: %w", err)
	}
	// The replaced round stays readable (guesses on it fail with
	// ErrStaleRound); the one before it is dropped.
	if old, ok := m.previous[player]; ok {
		if err := m.cfg.Rounds.Delete(ctx, old); err != nil {
			log.Warn().Err(err).Str("round", old).Msg("drop old round")
		}
		delete(m.previous, player)
	}
	if prev, ok := m.current[player]; ok {
		m.previous[player] = prev
	}
	m.current[player] = sess.ID
	now := m.cfg.Now()
	m.seen[player] = now
	if now.Sub(m.pruned) >= pruneEvery {
		m.prune(ctx, now)
	}
	m.cfg.Metrics.roundStarted(string(opts.Language), sess.SourceFailed)

	log.Debug().Str("player", player).Str("round", sess.ID).Int("letters", len(r.Secret)).Msg("round started")
	return sess, nil
}

// Guess applies letter to the player's round roundID.
func (m *Manager) Guess(ctx context.Context, player, roundID, letter string) (*store.Session, game.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := m.owned(ctx, player, roundID)
	if err != nil {
		return nil, game.Event{}, err
	}
	if m.current[player] != roundID {
		return sess, game.Event{}, ErrStaleRound
	}

	next, ev, err := sess.Round.GuessString(letter)
	if err != nil {
		m.cfg.Metrics.guess("rejected")
		return sess, ev, err
	}

	m.seen[player] = m.cfg.Now()

	if ev.Terminal && !m.recorded[roundID] {
		if err := m.record(ctx, player, ev.State); err != nil {
			return sess, game.Event{State: sess.Round.State}, err
		}
		m.recorded[roundID] = true
	}

	prev := sess.Round
	sess.Round = next
	if err := m.cfg.Rounds.Save(ctx, sess); err != nil {
		sess.Round = prev
		return sess, game.Event{State: prev.State}, fmt.Errorf("session: save round: %w", err)
	}
	delete(m.recorded, roundID)

	if ev.Hit {
		m.cfg.Metrics.guess("hit")
	} else {
		m.cfg.Metrics.guess("miss")
	}
	if ev.Terminal {
		m.cfg.Metrics.roundFinished(string(ev.State))
		log.Info().Str("player", player).Str("round", roundID).Str("result", string(ev.State)).
			Int("mistakes", next.Mistakes).Msg("round finished")
	}
	return sess, ev, nil
}

// Round returns the player's session roundID.
func (m *Manager) Round(ctx context.Context, player, roundID string) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owned(ctx, player, roundID)
}

// Current returns the player's current round, or store.ErrNotFound.
func (m *Manager) Current(ctx context.Context, player string) (*store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.current[player]
	if !ok {
		return nil, store.ErrNotFound
	}
	return m.owned(ctx, player, id)
}

// Scores reads the player's counters.
func (m *Manager) Scores(ctx context.Context, player string) (ledger.Score, error) {
	return m.cfg.Ledger.Load(ctx, player)
}

// Prune forgets players idle for longer than the configured TTL and drops
// their rounds. It returns the number of players removed.
func (m *Manager) Prune(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prune(ctx, m.cfg.Now())
}

// prune is Prune with m.mu held.
func (m *Manager) prune(ctx context.Context, now time.Time) int {
	m.pruned = now
	n := 0
	for player, last := range m.seen {
		if now.Sub(last) < m.cfg.IdleTTL {
			continue
		}
		if _, busy := m.pending[player]; busy {
			continue
		}
		for _, id := range []string{m.current[player], m.previous[player]} {
			if id == "" {
				continue
			}
			if err := m.cfg.Rounds.Delete(ctx, id); err != nil {
				log.Warn().Err(err).Str("round", id).Msg("drop idle round")
			}
			delete(m.recorded, id)
		}
		delete(m.current, player)
		delete(m.previous, player)
		delete(m.seen, player)
		n++
	}
	if n > 0 {
		log.Debug().Int("players", n).Msg("pruned idle players")
	}
	return n
}

// owned loads roundID and hides rounds of other players. Caller holds m.mu.
func (m *Manager) owned(ctx context.Context, player, roundID string) (*store.Session, error) {
	sess, err := m.cfg.Rounds.Get(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if sess.Player != player {
		return nil, store.ErrNotFound
	}
	return sess, nil
}

func (m *Manager) record(ctx context.Context, player string, st game.State) error {
	var err error
	switch st {
	case game.StateWon:
		err = m.cfg.Ledger.RecordWin(ctx, player)
	case game.StateLost:
		err = m.cfg.Ledger.RecordLoss(ctx, player)
	}
	if err != nil {
		log.Error().Err(err).Str("player", player).Str("result", string(st)).Msg("record result")
		return fmt.Errorf("%w: %v", ErrLedger, err)
	}
	return nil
}
