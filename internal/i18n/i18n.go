// Package i18n holds the ES/EN interface text.
package i18n

import (
	"fmt"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

// Labels is the text of the interface controls.
type Labels struct {
	Title       string `json:"title"`
	Language    string `json:"language"`
	Restart     string `json:"restart"`
	Daily       string `json:"daily"`
	PlayMusic   string `json:"playMusic"`
	PauseMusic  string `json:"pauseMusic"`
	Wins        string `json:"wins"`
	Losses      string `json:"losses"`
	Mistakes    string `json:"mistakes"`
	SourceError string `json:"sourceError"`
	Win         string `json:"win"`
	Lose        string `json:"lose"` // Format string taking the secret word.
}

var labels = map[words.Language]Labels{
	words.Spanish: {
		Title:       "El Ahorcado",
		Language:    "Idioma",
		Restart:     "Reiniciar Juego",
		Daily:       "Palabra del Día",
		PlayMusic:   "Reproducir Música",
		PauseMusic:  "Pausar Música",
		Wins:        "Victorias",
		Losses:      "Derrotas",
		Mistakes:    "Errores",
		SourceError: "Error al obtener la palabra, inténtalo de nuevo.",
		Win:         "¡Ganaste!",
		Lose:        "¡Fin del juego! La palabra era: %s",
	},
	words.English: {
		Title:       "Hangman",
		Language:    "Language",
		Restart:     "Restart Game",
		Daily:       "Word of the Day",
		PlayMusic:   "Play Music",
		PauseMusic:  "Pause Music",
		Wins:        "Wins",
		Losses:      "Losses",
		Mistakes:    "Mistakes",
		SourceError: "Error fetching word, try again.",
		Win:         "You Win!",
		Lose:        "Game Over! The word was: %s",
	},
}

// For returns the labels of lang; unknown languages get English.
func For(lang words.Language) Labels {
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels[words.English]
}

// Message is the status line for a round: the result once it is over, the
// source error while a sentinel round is in progress, otherwise empty.
func Message(lang words.Language, r game.Round, sourceFailed bool) string {
	l := For(lang)
	switch r.State {
	case game.StateWon:
		return l.Win
	case game.StateLost:
		return fmt.Sprintf(l.Lose, r.Word())
	}
	if sourceFailed {
		return l.SourceError
	}
	return ""
}

// Alphabet is the set of guess controls offered for lang. Word sources only
// hand out words spelled with these letters.
func Alphabet(lang words.Language) []string {
	return words.Letters(lang)
}
