// Package controller implements the on-screen directional pad: pointer hit
// testing in board space and the short press animation of each button.
package controller

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/sprite"
)

// Button is one pad key. X and Y are board coordinates of the tile's
// lower-left corner, so the tile spans [X, X+1) x [Y, Y+1).
type Button struct {
	Dir  grid.Direction
	X, Y float64
}

// Center returns the middle of the button tile.
func (b Button) Center() (float64, float64) {
	return b.X + 0.5, b.Y + 0.5
}

// Layout positions the pad on the board.
type Layout struct {
	Buttons    []Button
	HitHalf    float64       // half the hit box side, in tiles
	StepPeriod time.Duration // duration of each animation step
}

// DefaultLayout places the pad near the bottom centre of an 8-wide board.
func DefaultLayout() Layout {
	return Layout{
		Buttons: []Button{
			{Dir: grid.Up, X: 3.5, Y: 2.75},
			{Dir: grid.Down, X: 3.5, Y: 1.25},
			{Dir: grid.Left, X: 2.75, Y: 2.0},
			{Dir: grid.Right, X: 4.25, Y: 2.0},
		},
		HitHalf:    0.35,
		StepPeriod: 50 * time.Millisecond,
	}
}

// animSteps is the length of the press sequence: half, pressed, half, normal.
const animSteps = 4

type anim struct {
	step    int // 0 idle, 1..3 running
	elapsed time.Duration
}

// Pad tracks press animations for the layout's buttons.
type Pad struct {
	layout Layout
	anims  map[grid.Direction]*anim
}

// NewPad creates a pad with every button idle.
func NewPad(layout Layout) *Pad {
	if layout.StepPeriod <= 0 {
		layout.StepPeriod = DefaultLayout().StepPeriod
	}
	if layout.HitHalf <= 0 {
		layout.HitHalf = DefaultLayout().HitHalf
	}
	p := &Pad{layout: layout, anims: make(map[grid.Direction]*anim, len(layout.Buttons))}
	for _, b := range layout.Buttons {
		p.anims[b.Dir] = &anim{}
	}
	return p
}

// Buttons returns the configured buttons.
func (p *Pad) Buttons() []Button {
	return p.layout.Buttons
}

// HitTest returns the button under a board-space point.
func (p *Pad) HitTest(px, py float64) (grid.Direction, bool) {
	for _, b := range p.layout.Buttons {
		cx, cy := b.Center()
		if math.Abs(px-cx) <= p.layout.HitHalf && math.Abs(py-cy) <= p.layout.HitHalf {
			return b.Dir, true
		}
	}
	return grid.Up, false
}

// Press hit-tests the point and, on a hit, restarts that button's animation.
func (p *Pad) Press(px, py float64) (grid.Direction, bool) {
	dir, ok := p.HitTest(px, py)
	if !ok {
		return dir, false
	}
	a := p.anims[dir]
	a.step = 1
	a.elapsed = 0
	return dir, true
}

// Advance moves every running animation forward by dt.
func (p *Pad) Advance(dt time.Duration) {
	for _, a := range p.anims {
		if a.step == 0 {
			continue
		}
		a.elapsed += dt
		for a.step != 0 && a.elapsed >= p.layout.StepPeriod {
			a.elapsed -= p.layout.StepPeriod
			a.step++
			if a.step >= animSteps {
				a.step = 0
				a.elapsed = 0
			}
		}
	}
}

// Frame returns the atlas frame a button should show right now.
func (p *Pad) Frame(dir grid.Direction) sprite.PressFrame {
	a, ok := p.anims[dir]
	if !ok {
		return sprite.FrameNormal
	}
	switch a.step {
	case 1, 3:
		return sprite.FrameHalf
	case 2:
		return sprite.FramePressed
	default:
		return sprite.FrameNormal
	}
}

// Index returns the controller atlas tile for a button's current frame.
func (p *Pad) Index(dir grid.Direction) sprite.Index {
	return sprite.ControllerIndex(int(dir), p.Frame(dir))
}

// Animating reports whether any button is mid-press.
func (p *Pad) Animating() bool {
	for _, a := range p.anims {
		if a.step != 0 {
			return true
		}
	}
	return false
}

// Reset returns every button to idle.
func (p *Pad) Reset() {
	for _, a := range p.anims {
		a.step = 0
		a.elapsed = 0
	}
}
