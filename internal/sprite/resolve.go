package sprite

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Role tells renderers which part of the scene a sprite belongs to.
type Role int

const (
	RoleHead Role = iota
	RoleBody
	RoleTail
	RoleFood
)

// Sprite is one tile to draw at a board cell.
type Sprite struct {
	Cell  grid.Cell
	Index Index
	Role  Role
}

// Frame is the full set of tiles for one rendered frame.
type Frame struct {
	Segments []Sprite // head first, parallel to the body
	Food     *Sprite
}

// Resolver picks atlas tiles for each body segment from its neighbours.
type Resolver struct {
	// MouthRadius is the Manhattan distance at which the mouth starts to open.
	MouthRadius int
	// MaxMouth caps the mouth frame offset.
	MaxMouth int
}

// DefaultResolver opens the mouth within four cells of food.
func DefaultResolver() Resolver {
	return Resolver{MouthRadius: 4, MaxMouth: MaxMouthOffset}
}

// Resolve computes every sprite for the body and the optional food.
func (r Resolver) Resolve(body *snake.Body, food snake.Food, hasFood bool) Frame {
	n := body.Len()
	out := Frame{Segments: make([]Sprite, n)}

	var foodCell *grid.Cell
	if hasFood {
		c := food.Cell
		foodCell = &c
		out.Food = &Sprite{Cell: food.Cell, Index: FoodIndex(food.Color), Role: RoleFood}
	}

	head := body.Head()
	out.Segments[0] = Sprite{
		Cell:  head,
		Index: HeadIndex(body.Heading(), r.MouthOffset(head, foodCell)),
		Role:  RoleHead,
	}
	if n == 1 {
		return out
	}

	for i := 1; i < n-1; i++ {
		cur := body.At(i)
		out.Segments[i] = Sprite{
			Cell:  cur,
			Index: BodyIndex(body.At(i-1), cur, body.At(i+1)),
			Role:  RoleBody,
		}
	}

	tail := body.Tail()
	out.Segments[n-1] = Sprite{
		Cell:  tail,
		Index: TailIndex(tail, body.At(n-2)),
		Role:  RoleTail,
	}
	return out
}

// MouthOffset returns how far the mouth is open given the food position.
// No food keeps the mouth closed.
func (r Resolver) MouthOffset(head grid.Cell, food *grid.Cell) int {
	if food == nil {
		return 0
	}
	d := grid.Manhattan(*food, head)
	if d > r.MouthRadius {
		return 0
	}
	offset := r.MouthRadius + 1 - d
	if offset < 0 {
		return 0
	}
	if offset > r.MaxMouth {
		return r.MaxMouth
	}
	return offset
}

// HeadIndex returns the head tile for heading with the mouth frame applied.
func HeadIndex(heading grid.Direction, mouth int) Index {
	var base Index
	switch heading {
	case grid.Up:
		base = HeadUp
	case grid.Down:
		base = HeadDown
	case grid.Left:
		base = HeadLeft
	case grid.Right:
		base = HeadRight
	default:
		panic(fmt.Sprintf("snake: unknown heading %d", int(heading)))
	}
	return base + Index(mouth)
}

// TailIndex orients the tail toward the segment in front of it.
func TailIndex(tail, prev grid.Cell) Index {
	dx, dy := grid.WrappedDelta(tail, prev)
	switch {
	case dx > 0:
		return TailRight
	case dx < 0:
		return TailLeft
	case dy > 0:
		return TailUp
	default:
		return TailDown
	}
}

// BodyIndex picks a straight or corner tile for cur, joined to prev (toward
// the head) and next (toward the tail).
func BodyIndex(prev, cur, next grid.Cell) Index {
	pdx, pdy := grid.WrappedDelta(cur, prev)
	ndx, ndy := grid.WrappedDelta(cur, next)

	switch {
	case pdy == 0 && ndy == 0:
		return BodyHorizontal
	case pdx == 0 && ndx == 0:
		return BodyVertical
	case (pdx < 0 && ndy < 0) || (pdy < 0 && ndx < 0):
		return CornerTopRight
	case (pdx > 0 && ndy < 0) || (pdy < 0 && ndx > 0):
		return CornerTopLeft
	case (pdx < 0 && ndy > 0) || (pdy > 0 && ndx < 0):
		return CornerBottomRight
	default:
		return CornerBottomLeft
	}
}

// FoodIndex returns the tile for a food variant.
func FoodIndex(c snake.FoodColor) Index {
	switch c {
	case snake.FoodGreen:
		return FoodGreen
	case snake.FoodYellow:
		return FoodYellow
	default:
		return FoodRed
	}
}
