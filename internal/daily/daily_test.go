package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2026, 3, 1, 22, 0, 0, 0, loc)
	assert.Equal(t, Day("2026-03-02"), DayOf(ts))
}

func TestIndex(t *testing.T) {
	day := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	i := DayOf(day).Index("salt", 20)
	assert.GreaterOrEqual(t, i, 0)
	assert.Less(t, i, 20)
	assert.Equal(t, i, DayOf(later).Index("salt", 20), "same day, same word")
	assert.Equal(t, 0, DayOf(day).Index("salt", 0))

	// a month of days does not collapse onto one position
	seen := map[int]bool{}
	for d := 0; d < 30; d++ {
		seen[DayOf(day.AddDate(0, 0, d)).Index("salt", 20)] = true
	}
	assert.Greater(t, len(seen), 1)
}
