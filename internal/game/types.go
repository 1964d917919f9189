// internal/game/types.go
//
// Core type definitions for the hangman round engine.
// Defines:
//   - State: lifecycle of a round (in_progress → won | lost).
//   - Round: secret word, revealed positions, mistakes and guessed letters.
//   - Event: what a single guess did to the round.

package game

import "errors"

// MaxMistakes is the mistake budget of a round; the round is lost exactly
// when the count reaches it.
const MaxMistakes = 10

// Placeholder marks an unrevealed position.
const Placeholder = '_'

// State represents where a round is in its lifecycle.
// Possible values:
//   - "in_progress": guesses are accepted.
//   - "won":         every position is revealed (terminal).
//   - "lost":        the mistake budget is exhausted (terminal).
type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether no further guesses are processed in s.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Round holds the state of a single round. It is a value: Guess returns a
// new Round and never mutates its receiver.
type Round struct {
	Secret   []rune        // The word to find (uppercase, one rune per letter).
	Revealed []rune        // Same length as Secret; Placeholder or the letter.
	Mistakes int           // Wrong guesses so far (0..MaxMistakes).
	Guessed  map[rune]bool // Letters already attempted this round.
	State    State
}

// Event describes the effect of one accepted guess.
type Event struct {
	Letter    rune  `json:"-"`
	Hit       bool  `json:"hit"`
	Positions []int `json:"positions,omitempty"` // Indexes revealed by a hit.
	Step      int   `json:"step,omitempty"`      // New mistake count on a miss (1..10).
	State     State `json:"state"`
	Terminal  bool  `json:"terminal"` // True only on the transition into won/lost.
}

var (
	ErrEmptyWord      = errors.New("game: empty word")
	ErrInvalidLetter  = errors.New("game: guess must be a single letter")
	ErrAlreadyGuessed = errors.New("game: letter already guessed")
	ErrRoundOver      = errors.New("game: round is over")
)
