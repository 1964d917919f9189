package gallows

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	all := All()
	require.Len(t, all, Steps)
	for i, s := range all {
		assert.Equal(t, i+1, s.Step)
	}
	head, ok := At(5)
	require.True(t, ok)
	assert.Equal(t, Arc, head.Kind)
	assert.Equal(t, 20.0, head.R)

	_, ok = At(0)
	assert.False(t, ok)
	_, ok = At(11)
	assert.False(t, ok)
}

func TestUpto(t *testing.T) {
	assert.Empty(t, Upto(0))
	assert.Len(t, Upto(3), 3)
	assert.Len(t, Upto(42), Steps)

	segs := Upto(2)
	segs[0].Name = "changed"
	first, _ := At(1)
	assert.Equal(t, "base", first.Name)
}

func TestRender_Empty(t *testing.T) {
	lines := Render(0)
	require.Len(t, lines, Rows)
	for _, l := range lines {
		assert.Empty(t, l)
	}
}

func TestRender_Cumulative(t *testing.T) {
	prev := Render(0)
	for step := 1; step <= Steps; step++ {
		cur := Render(step)
		require.Len(t, cur, Rows)
		assert.NotEqual(t, prev, cur, "step %d draws something", step)
		for r := range prev {
			for c, ch := range []rune(prev[r]) {
				if ch != ' ' {
					assert.Equal(t, ch, []rune(cur[r])[c], "step %d keeps cell %d,%d", step, r, c)
				}
			}
		}
		prev = cur
	}
	assert.Contains(t, strings.Join(prev, "\n"), "O")
}
