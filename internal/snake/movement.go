package snake

import "github.com/vovakirdan/tui-snake/internal/grid"

// Move describes the outcome of one movement tick.
type Move struct {
	// Head is the head cell after the tick. On collision it is the cell the
	// head tried to enter.
	Head grid.Cell
	// Collided is set when the new head hit any pre-move segment. The body is
	// left untouched in that case.
	Collided bool
	// LastTail is where the tail sat before the shift. Zero on collision.
	LastTail grid.Cell
}

// Engine advances a body one cell per tick on a wrapping board.
type Engine struct {
	size grid.Size
}

// NewEngine creates a movement engine for the board.
func NewEngine(size grid.Size) Engine {
	return Engine{size: size}
}

// Advance commits heading and moves the body one cell.
//
// The collision test runs against the snapshot taken before the shift, so
// entering the cell the tail is about to leave still counts as a hit.
func (e Engine) Advance(b *Body, heading grid.Direction) Move {
	snapshot := b.Segments()
	b.heading = heading

	next := e.size.Step(snapshot[0], heading)
	for _, s := range snapshot {
		if s == next {
			return Move{Head: next, Collided: true}
		}
	}

	for i := len(b.segments) - 1; i > 0; i-- {
		b.segments[i] = snapshot[i-1]
	}
	b.segments[0] = next

	return Move{Head: next, LastTail: snapshot[len(snapshot)-1]}
}
