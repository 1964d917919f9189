// internal/words/words.go
//
// Fixed word list for the local (Spanish) source.
//
// Initialization behavior (LoadList):
//   1. If a path is given, read it: one word per line, "#" comments.
//   2. Otherwise fall back to the list embedded in assets.
//
// Constraints:
//   • Accented vowels are folded (CAFÉ → CAFE); words with any other letter
//     outside A–Z/Ñ, digits, spaces or punctuation are dropped.
//   • Lists are normalized to uppercase.
//   • Pick is uniform, using crypto/rand.

package words

import (
	"bufio"
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/hangman/assets"
)

// ErrEmptyList is returned when a list ends up with no usable words.
var ErrEmptyList = errors.New("words: list is empty")

// List is a concurrency-safe fixed list; Replace swaps it on reload.
type List struct {
	mu    sync.RWMutex
	words []string
}

// NewList builds a List from words after normalization.
func NewList(words []string) (*List, error) {
	l := &List{}
	if err := l.Replace(words); err != nil {
		return nil, err
	}
	return l, nil
}

// DefaultSpanish returns the built-in Spanish list.
func DefaultSpanish() (*List, error) {
	ws, err := assets.SpanishWords()
	if err != nil {
		return nil, err
	}
	return NewList(ws)
}

// LoadList reads path, or the built-in list when path is empty.
func LoadList(path string) (*List, error) {
	if path == "" {
		return DefaultSpanish()
	}
	ws, err := readWordFile(path)
	if err != nil {
		return nil, err
	}
	return NewList(ws)
}

// Replace swaps the contents. An empty result leaves the list unchanged.
func (l *List) Replace(words []string) error {
	norm := normalize(words)
	if len(norm) == 0 {
		return ErrEmptyList
	}
	l.mu.Lock()
	l.words = norm
	l.mu.Unlock()
	return nil
}

// Words returns a copy of the current list.
func (l *List) Words() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.words...)
}

// Len is the number of words.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.words)
}

// At returns the word at i modulo the list length.
func (l *List) At(i int) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.words) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return l.words[i%len(l.words)]
}

// Pick returns a cryptographically random word.
func (l *List) Pick() string {
	n := l.Len()
	if n == 0 {
		return ""
	}
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return l.At(0)
	}
	return l.At(int(i.Int64()))
}

// Word implements Source; the language is ignored.
func (l *List) Word(ctx context.Context, _ Language) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	w := l.Pick()
	if w == "" {
		return "", ErrEmptyList
	}
	return w, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// normalize folds accents and keeps only words playable with the Spanish
// controls, the widest alphabet.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = Fold(w)
		if Playable(Spanish, w) {
			out = append(out, w)
		}
	}
	return out
}
