// internal/tui/model.go
//
// Terminal front end for the hangman manager.
// Responsibilities:
//   - Start rounds through the session manager (tab switches ES/EN,
//     ctrl+d plays the Spanish word of the day).
//   - Turn letter keys into guesses; keys outside the alphabet are ignored.
//   - Render the gallows, the masked word, guessed letters and the counters.
//
// Notes:
//   - Round requests run as tea.Cmds; a reply for an older request is
//     dropped (the manager reports it as superseded).
//   - Guesses are applied synchronously in Update; the manager call is
//     in-memory plus at most one ledger write.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/gallows"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/i18n"
	"github.com/robalobadob/hangman/internal/ledger"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// LocalPlayer is the ledger namespace used by the terminal client.
const LocalPlayer = "local"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	wordStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	hitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	winStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	loseStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// roundMsg carries the result of a round request.
type roundMsg struct {
	seq  int
	sess *store.Session
	err  error
}

// Model is the bubbletea model of the game screen.
type Model struct {
	mgr    *session.Manager
	player string
	lang   words.Language

	seq     int // last issued round request
	loading bool
	sess    *store.Session
	scores  ledger.Score
	last    string // feedback for the previous key
	err     error

	keys KeyMap
	help help.Model
}

// New creates a model playing as player in lang.
func New(mgr *session.Manager, player string, lang words.Language) Model {
	if player == "" {
		player = LocalPlayer
	}
	return Model{
		mgr:     mgr,
		player:  player,
		lang:    lang,
		seq:     1,
		loading: true,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init requests the first round.
func (m Model) Init() tea.Cmd {
	return m.fetch(m.seq, false)
}

// Session returns the round on screen, nil while loading.
func (m Model) Session() *store.Session { return m.sess }

// Language returns the selected language.
func (m Model) Language() words.Language { return m.lang }

func (m *Model) requestRound(daily bool) tea.Cmd {
	m.seq++
	m.loading = true
	m.sess = nil
	return m.fetch(m.seq, daily)
}

func (m Model) fetch(seq int, daily bool) tea.Cmd {
	mgr, player, opts := m.mgr, m.player, session.Options{Language: m.lang, Daily: daily}
	return func() tea.Msg {
		sess, err := mgr.NewRound(context.Background(), player, opts)
		return roundMsg{seq: seq, sess: sess, err: err}
	}
}

// Update handles key presses and round replies.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case roundMsg:
		if msg.seq != m.seq || errors.Is(msg.err, session.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.last = ""
		if msg.err == nil {
			m.sess = msg.sess
			m.lang = msg.sess.Language
		}
		m.refreshScores()
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Language):
			if m.lang == words.Spanish {
				m.lang = words.English
			} else {
				m.lang = words.Spanish
			}
			return m, m.requestRound(false)
		case key.Matches(msg, m.keys.Restart):
			return m, m.requestRound(false)
		case key.Matches(msg, m.keys.Daily):
			return m, m.requestRound(true)
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			m.guess(msg.Runes[0])
		}
	}
	return m, nil
}

// guess applies letter to the current round. Letters outside the
// language's alphabet and keys pressed while loading are ignored.
func (m *Model) guess(letter rune) {
	if m.sess == nil || m.sess.Round.State.Terminal() {
		return
	}
	l := strings.ToUpper(string(letter))
	if !inAlphabet(m.sess.Language, l) {
		return
	}
	sess, ev, err := m.mgr.Guess(context.Background(), m.player, m.sess.ID, l)
	switch {
	case errors.Is(err, game.ErrAlreadyGuessed):
		m.last = dimStyle.Render("=" + l)
		return
	case err != nil:
		m.err = err
		return
	}
	m.err = nil
	m.sess = sess
	if ev.Hit {
		m.last = hitStyle.Render("+" + l)
	} else {
		m.last = missStyle.Render("-" + l)
	}
	if ev.Terminal {
		m.refreshScores()
	}
}

func (m *Model) refreshScores() {
	sc, err := m.mgr.Scores(context.Background(), m.player)
	if err != nil {
		log.Warn().Err(err).Msg("load scores")
		return
	}
	m.scores = sc
}

func inAlphabet(lang words.Language, l string) bool {
	for _, a := range i18n.Alphabet(lang) {
		if a == l {
			return true
		}
	}
	return false
}

// View renders the screen.
func (m Model) View() string {
	labels := i18n.For(m.lang)
	var b strings.Builder

	b.WriteString(titleStyle.Render(labels.Title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  [%s: %s]", labels.Language, m.lang)))
	if m.sess != nil && m.sess.Daily {
		b.WriteString(dimStyle.Render("  · " + labels.Daily))
	}
	b.WriteString("\n\n")

	if m.sess == nil {
		if m.err != nil && !m.loading {
			b.WriteString(errStyle.Render(m.err.Error()))
		} else {
			b.WriteString(dimStyle.Render("..."))
		}
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	r := m.sess.Round
	b.WriteString(boxStyle.Render(strings.Join(gallows.Render(r.Mistakes), "\n")))
	b.WriteString("\n\n")
	b.WriteString(wordStyle.Render(r.Display()))
	b.WriteString("\n\n")

	b.WriteString(m.alphabetLine(r))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s: %d/%d   %s: %d   %s: %d",
		labels.Mistakes, r.Mistakes, game.MaxMistakes,
		labels.Wins, m.scores.Wins, labels.Losses, m.scores.Losses)
	if m.last != "" {
		b.WriteString("   " + m.last)
	}
	b.WriteString("\n")

	switch msg := i18n.Message(m.sess.Language, r, m.sess.SourceFailed); {
	case r.State == game.StateWon:
		b.WriteString(winStyle.Render(msg) + "\n")
	case r.State == game.StateLost:
		b.WriteString(loseStyle.Render(msg) + "\n")
	case msg != "":
		b.WriteString(errStyle.Render(msg) + "\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// alphabetLine shows every letter of the alphabet, coloured once guessed.
func (m Model) alphabetLine(r game.Round) string {
	letters := i18n.Alphabet(m.sess.Language)
	parts := make([]string, len(letters))
	for i, l := range letters {
		rn := []rune(l)[0]
		switch {
		case !r.Guessed[rn]:
			parts[i] = l
		case strings.ContainsRune(r.Word(), rn):
			parts[i] = hitStyle.Render(l)
		default:
			parts[i] = missStyle.Render(l)
		}
	}
	return strings.Join(parts, " ")
}

// Run starts the program on the terminal.
func Run(mgr *session.Manager, player string, lang words.Language) error {
	_, err := tea.NewProgram(New(mgr, player, lang), tea.WithAltScreen()).Run()
	return err
}
