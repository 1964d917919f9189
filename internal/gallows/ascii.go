package gallows

import (
	"math"
	"strings"
)

// Terminal grid the canvas is scaled onto.
const (
	Cols = 26
	Rows = 13
)

// Render rasterises the segments visible after step mistakes into Rows
// lines of Cols characters. Trailing spaces are trimmed.
func Render(step int) []string {
	grid := make([][]rune, Rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", Cols))
	}
	for _, s := range Upto(step) {
		switch s.Kind {
		case Line:
			drawLine(grid, s)
		case Arc:
			drawArc(grid, s)
		}
	}
	out := make([]string, Rows)
	for i, row := range grid {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return out
}

func toCell(x, y float64) (int, int) {
	c := int(math.Round(x / Width * (Cols - 1)))
	r := int(math.Round(y / Height * (Rows - 1)))
	return c, r
}

// plot keeps the first glyph drawn into a cell so joints stay readable.
func plot(grid [][]rune, c, r int, ch rune) {
	if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
		return
	}
	if grid[r][c] == ' ' {
		grid[r][c] = ch
	}
}

// drawLine walks the longer axis so every cell on the segment is filled.
func drawLine(grid [][]rune, s Segment) {
	c1, r1 := toCell(s.X1, s.Y1)
	c2, r2 := toCell(s.X2, s.Y2)
	dc, dr := c2-c1, r2-r1

	var ch rune
	switch {
	case dr == 0:
		ch = '_'
	case dc == 0:
		ch = '|'
	case (dc > 0) == (dr > 0):
		ch = '\\'
	default:
		ch = '/'
	}

	n := max(abs(dc), abs(dr))
	if n == 0 {
		plot(grid, c1, r1, ch)
		return
	}
	for i := 0; i <= n; i++ {
		c := c1 + int(math.Round(float64(dc*i)/float64(n)))
		r := r1 + int(math.Round(float64(dr*i)/float64(n)))
		plot(grid, c, r, ch)
	}
}

// drawArc marks the cell under the centre; at this scale a head is one glyph.
func drawArc(grid [][]rune, s Segment) {
	c, r := toCell(s.X1, s.Y1)
	plot(grid, c, r, 'O')
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
