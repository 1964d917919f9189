// Package daily maps a calendar day to the word of the day.
//
// The position is HMAC-SHA256(salt, "YYYY-MM-DD") reduced modulo the list
// length, so every player sees the same word until UTC midnight.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"time"
)

// Day is a UTC calendar date in YYYY-MM-DD form.
type Day string

// DayOf returns the UTC day containing t.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Format(time.DateOnly))
}

// Index is the word position for the day in a list of n words.
// An empty list yields 0.
func (d Day) Index(salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	_, _ = io.WriteString(mac, string(d))
	return int(binary.BigEndian.Uint64(mac.Sum(nil)) % uint64(n))
}
