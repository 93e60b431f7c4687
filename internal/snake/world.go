package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/grid"
)

// Signal is a pending notification raised by one frame stage and consumed
// by a later one.
type Signal int

const (
	SignalGameOver Signal = iota
	SignalGrowth
	SignalFoodRequested
	SignalPlaySound
	SignalBoardFull
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalGameOver:
		return "game_over"
	case SignalGrowth:
		return "growth"
	case SignalFoodRequested:
		return "food_requested"
	case SignalPlaySound:
		return "play_sound"
	case SignalBoardFull:
		return "board_full"
	default:
		return "unknown"
	}
}

// Layout is the starting body, head first.
type Layout struct {
	Heading  grid.Direction
	Segments []grid.Cell
}

// DefaultLayout is the two-segment snake at (5,5),(5,4) heading up.
func DefaultLayout() Layout {
	return Layout{
		Heading:  grid.Up,
		Segments: []grid.Cell{{X: 5, Y: 5}, {X: 5, Y: 4}},
	}
}

// World owns one life of the simulation: body, food, score and the pending
// signal list.
type World struct {
	size    grid.Size
	engine  Engine
	spawner *Spawner

	body        *Body
	food        *Food
	score       int
	ticks       uint64
	lastTail    grid.Cell
	hasLastTail bool
	boardFull   bool

	pending []Signal
}

// NewWorld places the starting body and queues exactly one food request.
func NewWorld(size grid.Size, layout Layout, spawner *Spawner) *World {
	for _, c := range layout.Segments {
		if !size.Contains(c) {
			panic(fmt.Sprintf("snake: start segment %v outside %dx%d board", c, size.W, size.H))
		}
	}
	w := &World{
		size:    size,
		engine:  NewEngine(size),
		spawner: spawner,
		body:    NewBody(layout.Heading, layout.Segments...),
	}
	w.emit(SignalFoodRequested)
	return w
}

// Size returns the board dimensions.
func (w *World) Size() grid.Size { return w.size }

// Body returns the live body.
func (w *World) Body() *Body { return w.body }

// Food returns the live food, if any.
func (w *World) Food() (Food, bool) {
	if w.food == nil {
		return Food{}, false
	}
	return *w.food, true
}

// Score returns food eaten this life.
func (w *World) Score() int { return w.score }

// Ticks returns movement ticks this life.
func (w *World) Ticks() uint64 { return w.ticks }

// BoardFull reports whether food placement has failed for lack of space.
func (w *World) BoardFull() bool { return w.boardFull }

// Tick runs one movement step with the latched heading.
func (w *World) Tick(heading grid.Direction) Move {
	w.ticks++
	m := w.engine.Advance(w.body, heading)
	if m.Collided {
		w.emit(SignalGameOver)
		return m
	}
	w.body.validate()
	w.lastTail = m.LastTail
	w.hasLastTail = true
	return m
}

// Eat consumes the food under the head. It runs every frame, not only on
// movement ticks.
func (w *World) Eat() bool {
	if w.food == nil || w.food.Cell != w.body.Head() {
		return false
	}
	w.food = nil
	w.score++
	w.emit(SignalGrowth)
	return true
}

// Grow drains growth signals, appending a segment where the tail last was.
func (w *World) Grow() int {
	n := w.Drain(SignalGrowth)
	for i := 0; i < n; i++ {
		if !w.hasLastTail {
			panic("snake: growth before any movement tick")
		}
		w.body.append(w.lastTail)
		w.emit(SignalFoodRequested)
		w.emit(SignalPlaySound)
	}
	return n
}

// SpawnFood drains food requests and places food when none is live.
// A full board raises SignalBoardFull once and stops further requests.
func (w *World) SpawnFood() error {
	if w.Drain(SignalFoodRequested) == 0 || w.food != nil || w.boardFull {
		return nil
	}
	f, err := w.spawner.Spawn(w.body)
	if errors.Is(err, ErrBoardFull) {
		w.boardFull = true
		w.emit(SignalBoardFull)
		return err
	}
	if err != nil {
		return err
	}
	w.food = &f
	return nil
}

// PlaceFood puts food on a specific free cell, replacing any live food.
// Used for scripted boards and replays.
func (w *World) PlaceFood(f Food) error {
	if !w.size.Contains(f.Cell) {
		return fmt.Errorf("snake: food cell %v outside board", f.Cell)
	}
	if w.body.Occupies(f.Cell) {
		return fmt.Errorf("snake: food cell %v is occupied", f.Cell)
	}
	w.food = &f
	return nil
}

// Pending returns a copy of the undrained signals.
func (w *World) Pending() []Signal {
	return append([]Signal(nil), w.pending...)
}

// Drain removes every occurrence of sig and returns how many there were.
func (w *World) Drain(sig Signal) int {
	n := 0
	kept := w.pending[:0]
	for _, s := range w.pending {
		if s == sig {
			n++
			continue
		}
		kept = append(kept, s)
	}
	w.pending = kept
	return n
}

func (w *World) emit(s Signal) {
	w.pending = append(w.pending, s)
}
