package snake

import "github.com/vovakirdan/tui-snake/internal/grid"

// InputLatch buffers the most recent accepted direction between ticks.
type InputLatch struct {
	dir grid.Direction
}

// NewInputLatch starts the latch at the given direction.
func NewInputLatch(d grid.Direction) InputLatch {
	return InputLatch{dir: d}
}

// Request latches d unless it reverses heading. Reports whether d was kept.
func (l *InputLatch) Request(d, heading grid.Direction) bool {
	if d == heading.Opposite() {
		return false
	}
	l.dir = d
	return true
}

// Direction returns the latched direction.
func (l InputLatch) Direction() grid.Direction {
	return l.dir
}
