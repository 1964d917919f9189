package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/database"
	"github.com/robalobadob/hangman/internal/i18n"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/words"
)

func TestOpenLedger_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.DBDriver = database.DriverPureGo
	cfg.DBPath = filepath.Join(t.TempDir(), "nested", "hangman.db")

	l, closer, err := openLedger(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, closer)
	require.NoError(t, l.RecordWin(ctx, "local"))
	require.NoError(t, closer.Close())

	l, closer, err = openLedger(ctx, cfg)
	require.NoError(t, err)
	defer closer.Close()
	sc, err := l.Load(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, ledger.Score{Wins: 1}, sc)
}

func TestOpenLedger_Memory(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = ""
	l, closer, err := openLedger(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.NotNil(t, l)
}

func TestNewApp_DailyRound(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.DBPath = ""

	a, err := newApp(ctx, cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	sess, err := a.manager.NewRound(ctx, "p1", session.Options{Language: words.Spanish, Daily: true})
	require.NoError(t, err)
	assert.False(t, sess.SourceFailed)
	assert.Contains(t, a.list.Words(), sess.Round.Word())
}

func TestRenderScores(t *testing.T) {
	out := renderScores(i18n.For(words.English), "local", ledger.Score{Wins: 3, Losses: 2})
	assert.Contains(t, out, "Hangman")
	assert.Contains(t, out, "local")
	assert.Contains(t, out, "Wins")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "Losses")
}
