// Package snake implements the board simulation: body movement on the torus,
// input latching, food placement, eating, growth and the per-frame signal
// queue that connects them.
//
// The package does no I/O and holds no clock of its own. Callers drive it
// with explicit durations and direction requests.
package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/grid"
)

// Body is the ordered list of occupied cells, head first.
type Body struct {
	segments []grid.Cell
	heading  grid.Direction
}

// NewBody builds a body from head to tail. It panics on an empty or
// self-overlapping layout.
func NewBody(heading grid.Direction, cells ...grid.Cell) *Body {
	if len(cells) == 0 {
		panic("snake: body needs at least one segment")
	}
	b := &Body{
		segments: append([]grid.Cell(nil), cells...),
		heading:  heading,
	}
	b.validate()
	return b
}

// Len returns the segment count.
func (b *Body) Len() int { return len(b.segments) }

// Head returns the first segment.
func (b *Body) Head() grid.Cell { return b.segments[0] }

// Tail returns the last segment.
func (b *Body) Tail() grid.Cell { return b.segments[len(b.segments)-1] }

// Heading returns the last committed movement direction.
func (b *Body) Heading() grid.Direction { return b.heading }

// At returns segment i.
func (b *Body) At(i int) grid.Cell { return b.segments[i] }

// Segments returns a copy of the cells, head first.
func (b *Body) Segments() []grid.Cell {
	return append([]grid.Cell(nil), b.segments...)
}

// Occupies reports whether any segment sits on c.
func (b *Body) Occupies(c grid.Cell) bool {
	for _, s := range b.segments {
		if s == c {
			return true
		}
	}
	return false
}

// append adds a new tail segment.
func (b *Body) append(c grid.Cell) {
	if b.Occupies(c) {
		panic(fmt.Sprintf("snake: growth cell %v already occupied", c))
	}
	b.segments = append(b.segments, c)
}

// validate panics when two segments share a cell.
func (b *Body) validate() {
	seen := make(map[grid.Cell]struct{}, len(b.segments))
	for i, s := range b.segments {
		if _, dup := seen[s]; dup {
			panic(fmt.Sprintf("snake: segment %d duplicates cell %v", i, s))
		}
		seen[s] = struct{}{}
	}
}
