// internal/game/engine.go
//
// Core engine for a single hangman round.
// Responsibilities:
//   - Start a round from a secret word (all positions hidden, zero mistakes).
//   - Validate and apply letter guesses.
//   - Reveal every occurrence of a correct letter in one call.
//   - Track state transitions: in_progress → won/lost.
//
// Notes:
//   - Words are handled as runes so accented letters (Ñ) are a single unit.
//   - The engine has no side effects; the caller records terminal results.
package game

import (
	"sort"
	"strings"
	"unicode"
)

// Start constructs a new round for word.
// The word is uppercased; any non-empty word is accepted, including the
// sentinel the word source substitutes on failure.
func Start(word string) (Round, error) {
	secret := []rune(strings.ToUpper(strings.TrimSpace(word)))
	if len(secret) == 0 {
		return Round{}, ErrEmptyWord
	}
	revealed := make([]rune, len(secret))
	for i := range revealed {
		revealed[i] = Placeholder
	}
	return Round{
		Secret:   secret,
		Revealed: revealed,
		Guessed:  make(map[rune]bool),
		State:    StateInProgress,
	}, nil
}

// Guess applies letter to the round and returns the resulting round and event.
// The receiver is left untouched; on error the returned round equals it.
//
// Validation rules:
//   - Round must be in progress.
//   - letter must be a letter (lowercase is folded to uppercase).
//   - letter must not have been guessed before in this round.
//
// State transitions, evaluated after the update:
//   - Mistakes reaching MaxMistakes → lost.
//   - Otherwise, every position revealed → won.
func (r Round) Guess(letter rune) (Round, Event, error) {
	if r.State.Terminal() {
		return r, Event{State: r.State}, ErrRoundOver
	}
	if !unicode.IsLetter(letter) {
		return r, Event{State: r.State}, ErrInvalidLetter
	}
	letter = unicode.ToUpper(letter)
	if r.Guessed[letter] {
		return r, Event{State: r.State}, ErrAlreadyGuessed
	}

	next := r.clone()
	next.Guessed[letter] = true
	ev := Event{Letter: letter}

	for i, c := range next.Secret {
		if c == letter {
			next.Revealed[i] = letter
			ev.Positions = append(ev.Positions, i)
		}
	}
	if len(ev.Positions) > 0 {
		ev.Hit = true
	} else {
		next.Mistakes++
		ev.Step = next.Mistakes
	}

	if next.Mistakes >= MaxMistakes {
		next.State = StateLost
	} else if next.solved() {
		next.State = StateWon
	}
	ev.State = next.State
	ev.Terminal = next.State.Terminal()
	return next, ev, nil
}

// GuessString is Guess for text input such as a request field.
// Anything other than exactly one rune is rejected as ErrInvalidLetter.
func (r Round) GuessString(s string) (Round, Event, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 1 {
		if r.State.Terminal() {
			return r, Event{State: r.State}, ErrRoundOver
		}
		return r, Event{State: r.State}, ErrInvalidLetter
	}
	return r.Guess(runes[0])
}

// Word returns the secret word.
func (r Round) Word() string { return string(r.Secret) }

// Masked returns the revealed positions, e.g. "G_T_".
func (r Round) Masked() string { return string(r.Revealed) }

// Display returns the revealed positions separated by spaces, e.g. "G _ T _".
func (r Round) Display() string {
	parts := make([]string, len(r.Revealed))
	for i, c := range r.Revealed {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}

// Remaining is the number of mistakes left before the round is lost.
func (r Round) Remaining() int { return MaxMistakes - r.Mistakes }

// Letters returns the guessed letters in alphabetical order.
func (r Round) Letters() []string {
	out := make([]string, 0, len(r.Guessed))
	for l := range r.Guessed {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}

func (r Round) solved() bool {
	for i, c := range r.Secret {
		if r.Revealed[i] != c {
			return false
		}
	}
	return true
}

func (r Round) clone() Round {
	c := r
	c.Secret = append([]rune(nil), r.Secret...)
	c.Revealed = append([]rune(nil), r.Revealed...)
	c.Guessed = make(map[rune]bool, len(r.Guessed)+1)
	for l := range r.Guessed {
		c.Guessed[l] = true
	}
	return c
}
