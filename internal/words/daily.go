// internal/words/daily.go
//
// Word of the day: a deterministic pick from a List, stable for one UTC day.
// Everyone asking on the same date with the same salt gets the same word.

package words

import (
	"context"
	"time"

	"github.com/robalobadob/hangman/internal/daily"
)

// Daily selects List.At(HMAC(salt, date) % len).
type Daily struct {
	List *List
	Salt string
	Now  func() time.Time
}

// Word implements Source; the language is ignored.
func (d *Daily) Word(ctx context.Context, _ Language) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := d.List.Len()
	if n == 0 {
		return "", ErrEmptyList
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return d.List.At(daily.DayOf(now()).Index(d.Salt, n)), nil
}
