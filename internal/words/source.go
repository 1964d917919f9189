// internal/words/source.go
//
// Word acquisition for a round.
// Responsibilities:
//   - Language flag (ES | EN) parsing.
//   - Source interface shared by the list, remote and daily variants.
//   - Mux: route a language to its source.
//   - Acquire: apply the sentinel fallback when a source fails.

package words

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Language selects the word source for a round.
type Language string

const (
	Spanish Language = "ES"
	English Language = "EN"
)

// Sentinel is the word substituted when acquisition fails. The round still
// starts with it.
const Sentinel = "ERROR"

var (
	// ErrSourceUnavailable reports a failed remote fetch (transport error,
	// non-success status or an unusable body).
	ErrSourceUnavailable = errors.New("words: source unavailable")
	ErrUnknownLanguage   = errors.New("words: unknown language")
)

// ParseLanguage accepts "es"/"en" in any case; empty selects Spanish.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case "", Spanish:
		return Spanish, nil
	case English:
		return English, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Source supplies one word per call.
type Source interface {
	Word(ctx context.Context, lang Language) (string, error)
}

// Mux routes each language to its own Source.
type Mux map[Language]Source

// Word implements Source.
func (m Mux) Word(ctx context.Context, lang Language) (string, error) {
	src, ok := m[lang]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return src.Word(ctx, lang)
}

// Acquire fetches a word for lang. When the source fails the Sentinel is
// returned together with the error so the caller can start the round and
// surface the failure. A cancelled ctx returns no word.
func Acquire(ctx context.Context, src Source, lang Language) (string, error) {
	w, err := src.Word(ctx, lang)
	if err == nil {
		return w, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	return Sentinel, err
}
