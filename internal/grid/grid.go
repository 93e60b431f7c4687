// Package grid provides the toroidal board geometry shared by the snake
// simulation and the sprite resolver.
//
// Coordinates grow rightward in X and upward in Y. Moving off any edge
// re-enters from the opposite edge.
package grid

import "fmt"

// Cell is a single board coordinate.
type Cell struct {
	X, Y int
}

// String formats the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four board headings.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every heading in declaration order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	panic(fmt.Sprintf("snake: unknown direction %d", int(d)))
}

// Vector returns the unit step for the heading. Up is +Y.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	panic(fmt.Sprintf("snake: unknown direction %d", int(d)))
}

// String returns the lowercase heading name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a heading name back into a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return Up, fmt.Errorf("grid: unknown direction %q", s)
}

// Size holds the board dimensions.
type Size struct {
	W, H int
}

// Contains reports whether c lies on the board.
func (s Size) Contains(c Cell) bool {
	return c.X >= 0 && c.X < s.W && c.Y >= 0 && c.Y < s.H
}

// Area returns the number of cells on the board.
func (s Size) Area() int {
	return s.W * s.H
}

// Step moves one cell in the given heading, wrapping at the edges.
func (s Size) Step(c Cell, d Direction) Cell {
	dx, dy := d.Vector()
	return Cell{
		X: (c.X + dx + s.W) % s.W,
		Y: (c.Y + dy + s.H) % s.H,
	}
}

// Cells returns every board cell in row-major order starting at (0,0).
func (s Size) Cells() []Cell {
	out := make([]Cell, 0, s.Area())
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			out = append(out, Cell{X: x, Y: y})
		}
	}
	return out
}

// WrappedDelta returns the unit offset from one cell to an adjacent one,
// treating a jump across an edge as a single step the other way.
// Only meaningful for cells that are neighbours on the torus.
func WrappedDelta(from, to Cell) (dx, dy int) {
	return wrap(to.X - from.X), wrap(to.Y - from.Y)
}

func wrap(d int) int {
	switch {
	case d > 1:
		return -1
	case d < -1:
		return 1
	default:
		return d
	}
}

// Manhattan is the plain |dx|+|dy| distance without wrap-around.
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
