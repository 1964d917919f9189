// Package gallows holds the fixed drawing table for wrong guesses.
//
// Step k (1..10) maps to exactly one segment; drawing is cumulative, so a
// round with k mistakes shows segments 1..k. Coordinates are in the 300x300
// canvas space the browser client draws into.
package gallows

import "math"

// Steps is the number of segments, equal to the mistake budget.
const Steps = 10

// Canvas dimensions the coordinates are expressed in.
const (
	Width  = 300
	Height = 300
)

// Kind is the primitive used for a segment.
type Kind string

const (
	Line Kind = "line"
	Arc  Kind = "arc"
)

// Segment is one drawing instruction. Lines use X1,Y1→X2,Y2; arcs use the
// centre X1,Y1, radius R and the angles Start..End in radians.
type Segment struct {
	Step  int     `json:"step"`
	Name  string  `json:"name"`
	Kind  Kind    `json:"kind"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	R     float64 `json:"r,omitempty"`
	Start float64 `json:"start,omitempty"`
	End   float64 `json:"end,omitempty"`
}

var table = [Steps]Segment{
	{Step: 1, Name: "base", Kind: Line, X1: 50, Y1: 280, X2: 250, Y2: 280},
	{Step: 2, Name: "post", Kind: Line, X1: 100, Y1: 280, X2: 100, Y2: 50},
	{Step: 3, Name: "beam", Kind: Line, X1: 100, Y1: 50, X2: 200, Y2: 50},
	{Step: 4, Name: "rope", Kind: Line, X1: 200, Y1: 50, X2: 200, Y2: 80},
	{Step: 5, Name: "head", Kind: Arc, X1: 200, Y1: 100, R: 20, Start: 0, End: 2 * math.Pi},
	{Step: 6, Name: "torso", Kind: Line, X1: 200, Y1: 120, X2: 200, Y2: 180},
	{Step: 7, Name: "left arm", Kind: Line, X1: 200, Y1: 130, X2: 170, Y2: 160},
	{Step: 8, Name: "right arm", Kind: Line, X1: 200, Y1: 130, X2: 230, Y2: 160},
	{Step: 9, Name: "left leg", Kind: Line, X1: 200, Y1: 180, X2: 170, Y2: 230},
	{Step: 10, Name: "right leg", Kind: Line, X1: 200, Y1: 180, X2: 230, Y2: 230},
}

// At returns the segment for step. ok is false outside 1..Steps.
func At(step int) (Segment, bool) {
	if step < 1 || step > Steps {
		return Segment{}, false
	}
	return table[step-1], true
}

// Upto returns the segments visible after step mistakes, in drawing order.
// Values above Steps are clamped.
func Upto(step int) []Segment {
	if step <= 0 {
		return []Segment{}
	}
	if step > Steps {
		step = Steps
	}
	out := make([]Segment, step)
	copy(out, table[:step])
	return out
}

// All returns the whole table.
func All() []Segment { return Upto(Steps) }
