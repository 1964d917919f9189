package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

type fixed string

func (f fixed) Word(context.Context, words.Language) (string, error) { return string(f), nil }

type broken struct{}

func (broken) Word(context.Context, words.Language) (string, error) {
	return "", words.ErrSourceUnavailable
}

// flakyLedger fails RecordWin while fail is set.
type flakyLedger struct {
	ledger.Ledger
	mu   sync.Mutex
	fail bool
}

func (f *flakyLedger) RecordWin(ctx context.Context, player string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("disk full")
	}
	return f.Ledger.RecordWin(ctx, player)
}

func newManager(t *testing.T, src words.Source, l ledger.Ledger) (*Manager, *Metrics) {
	t.Helper()
	if l == nil {
		l = ledger.NewMemory()
	}
	metrics := NewMetrics(prometheus.NewRegistry())
	return New(Config{Source: src, Rounds: store.NewMemoryStore(), Ledger: l, Metrics: metrics}), metrics
}

func guessAll(t *testing.T, m *Manager, player, id, letters string) (*store.Session, game.Event) {
	t.Helper()
	var sess *store.Session
	var ev game.Event
	for _, l := range letters {
		var err error
		sess, ev, err = m.Guess(context.Background(), player, id, string(l))
		require.NoError(t, err, "letter %c", l)
	}
	return sess, ev
}

func TestManager_WinRecordsOnce(t *testing.T) {
	ctx := context.Background()
	m, metrics := newManager(t, fixed("gato"), nil)

	sess, err := m.NewRound(ctx, "p1", Options{Language: words.Spanish})
	require.NoError(t, err)
	assert.Equal(t, "____", sess.Round.Masked())
	assert.False(t, sess.SourceFailed)

	sess, _ = guessAll(t, m, "p1", sess.ID, "G")
	assert.Equal(t, "G___", sess.Round.Masked())
	sc, _ := m.Scores(ctx, "p1")
	assert.Equal(t, ledger.Score{}, sc, "no increment on non-terminal guesses")

	sess, ev := guessAll(t, m, "p1", sess.ID, "ATO")
	assert.Equal(t, game.StateWon, sess.Round.State)
	assert.True(t, ev.Terminal)

	_, _, err = m.Guess(ctx, "p1", sess.ID, "Z")
	assert.ErrorIs(t, err, game.ErrRoundOver)

	sc, err = m.Scores(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, ledger.Score{Wins: 1}, sc)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.roundsFinished.WithLabelValues("won")))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.guesses.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.guesses.WithLabelValues("rejected")))
}

func TestManager_Loss(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, fixed("SOL"), nil)

	sess, err := m.NewRound(ctx, "p1", Options{Language: words.Spanish})
	require.NoError(t, err)
	sess, ev := guessAll(t, m, "p1", sess.ID, "BCDFHJKMNP")

	assert.Equal(t, game.StateLost, sess.Round.State)
	assert.Equal(t, 10, ev.Step)
	sc, _ := m.Scores(ctx, "p1")
	assert.Equal(t, ledger.Score{Losses: 1}, sc)
}

func TestManager_SourceFailureUsesSentinel(t *testing.T) {
	ctx := context.Background()
	m, metrics := newManager(t, broken{}, nil)

	sess, err := m.NewRound(ctx, "p1", Options{Language: words.English})
	require.NoError(t, err)
	assert.True(t, sess.SourceFailed)
	assert.Equal(t, words.Sentinel, sess.Round.Word())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.roundsStarted.WithLabelValues("EN", "fallback")))

	sess, _ = guessAll(t, m, "p1", sess.ID, "EXRO")
	assert.Equal(t, game.StateWon, sess.Round.State)
	assert.Equal(t, 1, sess.Round.Mistakes)
}

// gate blocks the first call until its context is cancelled.
type gate struct {
	entered chan struct{}
	once    sync.Once
}

func (g *gate) Word(ctx context.Context, _ words.Language) (string, error) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-ctx.Done()
		return "", ctx.Err()
	}
	return "LUNA", nil
}

func TestManager_SupersededRequestIsDiscarded(t *testing.T) {
	ctx := context.Background()
	g := &gate{entered: make(chan struct{})}
	m, _ := newManager(t, g, nil)

	errc := make(chan error, 1)
	go func() {
		_, err := m.NewRound(ctx, "p1", Options{Language: words.English})
		errc <- err
	}()
	<-g.entered

	sess, err := m.NewRound(ctx, "p1", Options{Language: words.English})
	require.NoError(t, err)
	assert.Equal(t, "LUNA", sess.Round.Word())

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(5 * time.Second):
		t.Fatal("first request was not cancelled")
	}

	cur, err := m.Current(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, cur.ID)
}

func TestManager_StaleAndForeignRounds(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, fixed("GATO"), nil)

	first, err := m.NewRound(ctx, "p1", Options{})
	require.NoError(t, err)
	second, err := m.NewRound(ctx, "p1", Options{})
	require.NoError(t, err)

	_, _, err = m.Guess(ctx, "p1", first.ID, "G")
	assert.ErrorIs(t, err, ErrStaleRound)

	_, _, err = m.Guess(ctx, "p2", second.ID, "G")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = m.Round(ctx, "p2", second.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// a third round drops the first entirely
	_, err = m.NewRound(ctx, "p1", Options{})
	require.NoError(t, err)
	_, err = m.Round(ctx, "p1", first.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestManager_LedgerFailureKeepsRoundOpen(t *testing.T) {
	ctx := context.Background()
	fl := &flakyLedger{Ledger: ledger.NewMemory(), fail: true}
	m, _ := newManager(t, fixed("SOL"), fl)

	sess, err := m.NewRound(ctx, "p1", Options{})
	require.NoError(t, err)
	guessAll(t, m, "p1", sess.ID, "SO")

	_, _, err = m.Guess(ctx, "p1", sess.ID, "L")
	assert.ErrorIs(t, err, ErrLedger)
	got, err := m.Round(ctx, "p1", sess.ID)
	require.NoError(t, err)
	assert.Equal(t, game.StateInProgress, got.Round.State)

	fl.mu.Lock()
	fl.fail = false
	fl.mu.Unlock()
	got, _ = guessAll(t, m, "p1", sess.ID, "L")
	assert.Equal(t, game.StateWon, got.Round.State)
	sc, _ := m.Scores(ctx, "p1")
	assert.Equal(t, ledger.Score{Wins: 1}, sc)
}

func TestManager_Daily(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, fixed("GATO"), nil)
	_, err := m.NewRound(ctx, "p1", Options{Daily: true})
	assert.Error(t, err)

	list, err := words.NewList([]string{"SOL"})
	require.NoError(t, err)
	m = New(Config{
		Source: fixed("GATO"),
		Daily:  &words.Daily{List: list, Salt: "x"},
		Rounds: store.NewMemoryStore(),
		Ledger: ledger.NewMemory(),
	})
	sess, err := m.NewRound(ctx, "p1", Options{Daily: true})
	require.NoError(t, err)
	assert.Equal(t, "SOL", sess.Round.Word())
	assert.True(t, sess.Daily)
}

func TestManager_DailyIsSpanish(t *testing.T) {
	ctx := context.Background()
	list, err := words.NewList([]string{"MONTAÑA"})
	require.NoError(t, err)
	m := New(Config{
		Source: fixed("CAT"),
		Daily:  &words.Daily{List: list, Salt: "x"},
		Rounds: store.NewMemoryStore(),
		Ledger: ledger.NewMemory(),
	})

	sess, err := m.NewRound(ctx, "p1", Options{Language: words.English, Daily: true})
	require.NoError(t, err)
	assert.Equal(t, words.Spanish, sess.Language)
	assert.False(t, sess.SourceFailed)

	sess, _ = guessAll(t, m, "p1", sess.ID, "MONTAÑ")
	assert.Equal(t, game.StateWon, sess.Round.State)
}

func TestManager_UnspellableWordUsesSentinel(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, fixed("piñata"), nil)

	sess, err := m.NewRound(ctx, "p1", Options{Language: words.English})
	require.NoError(t, err)
	assert.True(t, sess.SourceFailed)
	assert.Equal(t, words.Sentinel, sess.Round.Word())

	// accents are folded rather than rejected
	m, _ = newManager(t, fixed("canción"), nil)
	sess, err = m.NewRound(ctx, "p1", Options{Language: words.Spanish})
	require.NoError(t, err)
	assert.False(t, sess.SourceFailed)
	assert.Equal(t, "CANCION", sess.Round.Word())
}

// flakyStore fails Save while fail is set.
type flakyStore struct {
	store.Store
	fail bool
}

func (f *flakyStore) Save(ctx context.Context, s *store.Session) error {
	if f.fail {
		return errors.New("write failed")
	}
	return f.Store.Save(ctx, s)
}

func TestManager_SaveFailureDoesNotCountTwice(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: store.NewMemoryStore()}
	l := ledger.NewMemory()
	m := New(Config{Source: fixed("SOL"), Rounds: fs, Ledger: l})

	sess, err := m.NewRound(ctx, "p1", Options{})
	require.NoError(t, err)
	guessAll(t, m, "p1", sess.ID, "SO")

	fs.fail = true
	got, _, err := m.Guess(ctx, "p1", sess.ID, "L")
	require.Error(t, err)
	assert.Equal(t, game.StateInProgress, got.Round.State)

	fs.fail = false
	got, ev := guessAll(t, m, "p1", sess.ID, "L")
	assert.True(t, ev.Terminal)
	assert.Equal(t, game.StateWon, got.Round.State)

	sc, _ := m.Scores(ctx, "p1")
	assert.Equal(t, ledger.Score{Wins: 1}, sc)
}

func TestManager_PruneIdlePlayers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rounds := store.NewMemoryStore()
	l := ledger.NewMemory()
	m := New(Config{
		Source:  fixed("SOL"),
		Rounds:  rounds,
		Ledger:  l,
		IdleTTL: time.Hour,
		Now:     func() time.Time { return now },
	})

	first, err := m.NewRound(ctx, "idle", Options{})
	require.NoError(t, err)
	second, err := m.NewRound(ctx, "idle", Options{})
	require.NoError(t, err)
	guessAll(t, m, "idle", second.ID, "SOL")

	now = now.Add(30 * time.Minute)
	active, err := m.NewRound(ctx, "active", Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Prune(ctx))

	now = now.Add(45 * time.Minute)
	// NewRound sweeps once the throttle interval has passed
	_, err = m.NewRound(ctx, "late", Options{})
	require.NoError(t, err)

	for _, id := range []string{first.ID, second.ID} {
		_, err := rounds.Get(ctx, id)
		assert.ErrorIs(t, err, store.ErrNotFound)
	}
	_, err = m.Current(ctx, "idle")
	assert.ErrorIs(t, err, store.ErrNotFound)

	cur, err := m.Current(ctx, "active")
	require.NoError(t, err)
	assert.Equal(t, active.ID, cur.ID)

	sc, _ := m.Scores(ctx, "idle")
	assert.Equal(t, ledger.Score{Wins: 1}, sc, "counters outlive the rounds")
}
