package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

type perLang map[words.Language]string

func (p perLang) Word(_ context.Context, lang words.Language) (string, error) {
	return p[lang], nil
}

func newModel(t *testing.T) Model {
	t.Helper()
	return newModelIn(t, words.Spanish)
}

func newModelIn(t *testing.T, lang words.Language) Model {
	t.Helper()
	list, err := words.NewList([]string{"MONTAÑA"})
	require.NoError(t, err)
	mgr := session.New(session.Config{
		Source: perLang{words.Spanish: "SOL", words.English: "SUN"},
		Daily:  &words.Daily{List: list, Salt: "test"},
		Rounds: store.NewMemoryStore(),
		Ledger: ledger.NewMemory(),
	})
	m := New(mgr, "", lang)
	return update(t, m, m.Init()())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	for _, r := range keys {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_StartsRound(t *testing.T) {
	m := newModel(t)
	require.NotNil(t, m.Session())
	assert.Equal(t, "___", m.Session().Round.Masked())
	assert.Contains(t, m.View(), "_ _ _")
	assert.Contains(t, m.View(), "El Ahorcado")
}

func TestModel_GuessAndWin(t *testing.T) {
	m := newModel(t)

	m = press(t, m, "s")
	assert.Equal(t, "S__", m.Session().Round.Masked())

	m = press(t, m, "xol")
	assert.Equal(t, game.StateWon, m.Session().Round.State)
	assert.Equal(t, 1, m.Session().Round.Mistakes)
	assert.Equal(t, ledger.Score{Wins: 1}, m.scores)
	assert.Contains(t, m.View(), "¡Ganaste!")

	// further keys do nothing once the round is over
	m = press(t, m, "z")
	assert.Equal(t, 1, m.Session().Round.Mistakes)
}

func TestModel_IgnoresNonLetters(t *testing.T) {
	m := newModel(t)
	m = press(t, m, "1 -")
	assert.Empty(t, m.Session().Round.Guessed)
	assert.Nil(t, m.err)
}

func TestModel_RepeatIsNotAMistake(t *testing.T) {
	m := newModel(t)
	m = press(t, m, "xx")
	assert.Equal(t, 1, m.Session().Round.Mistakes)
	assert.Nil(t, m.err)
}

func TestModel_Lose(t *testing.T) {
	m := newModel(t)
	m = press(t, m, "bcdfghjkmn")
	assert.Equal(t, game.StateLost, m.Session().Round.State)
	assert.Equal(t, ledger.Score{Losses: 1}, m.scores)
	assert.Contains(t, m.View(), "SOL")
}

func TestModel_SwitchLanguage(t *testing.T) {
	m := newModel(t)
	old := m.Session().ID

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, words.English, m.Language())
	assert.Nil(t, m.Session())

	m = update(t, m, cmd())
	require.NotNil(t, m.Session())
	assert.NotEqual(t, old, m.Session().ID)
	assert.Equal(t, "SUN", m.Session().Round.Word())
	assert.Contains(t, m.View(), "Hangman")
	assert.NotContains(t, m.View(), "Ñ")
}

func TestModel_StaleReplyDropped(t *testing.T) {
	m := newModel(t)

	next, first := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	next, second := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)

	reply := second()
	m = update(t, m, reply)
	id := m.Session().ID

	// the older request completes last and must not replace the screen
	m = update(t, m, first())
	assert.Equal(t, id, m.Session().ID)
}

func TestModel_Quit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewShowsGallows(t *testing.T) {
	m := newModel(t)
	m = press(t, m, "abcd")
	view := m.View()
	assert.True(t, strings.Contains(view, "_"), view)
	assert.Contains(t, view, "4/10")
}

func TestModel_DailyWord(t *testing.T) {
	m := newModelIn(t, words.English)
	require.Equal(t, "SUN", m.Session().Round.Word())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	require.NotNil(t, m.Session())
	assert.True(t, m.Session().Daily)
	assert.Equal(t, words.Spanish, m.Language(), "the word of the day is Spanish")
	assert.Contains(t, m.View(), "Palabra del Día")

	m = press(t, m, "montañ")
	assert.Equal(t, game.StateWon, m.Session().Round.State)
}
