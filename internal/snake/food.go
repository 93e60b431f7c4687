package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/grid"
)

// ErrBoardFull is returned when the body covers every cell.
var ErrBoardFull = errors.New("snake: no free cell for food")

// FoodColor selects one of the food sprite variants.
type FoodColor int

const (
	FoodRed FoodColor = iota
	FoodGreen
	FoodYellow
)

// FoodColors lists every variant.
var FoodColors = [...]FoodColor{FoodRed, FoodGreen, FoodYellow}

// String returns the variant name.
func (c FoodColor) String() string {
	switch c {
	case FoodRed:
		return "red"
	case FoodGreen:
		return "green"
	case FoodYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Food is a single edible item on the board.
type Food struct {
	Cell  grid.Cell
	Color FoodColor
}

// Spawner places food uniformly over free cells.
type Spawner struct {
	size          grid.Size
	rng           *rand.Rand
	maxRejections int
}

// NewSpawner creates a food spawner. maxRejections bounds the number of
// random draws before falling back to an explicit pick among free cells;
// zero selects 4*W*H.
func NewSpawner(size grid.Size, rng *rand.Rand, maxRejections int) *Spawner {
	if maxRejections <= 0 {
		maxRejections = 4 * size.Area()
	}
	return &Spawner{size: size, rng: rng, maxRejections: maxRejections}
}

// Spawn picks a cell not covered by the body.
func (s *Spawner) Spawn(body *Body) (Food, error) {
	if body.Len() >= s.size.Area() {
		return Food{}, ErrBoardFull
	}

	color := FoodColors[s.rng.Intn(len(FoodColors))]

	for i := 0; i < s.maxRejections; i++ {
		c := grid.Cell{X: s.rng.Intn(s.size.W), Y: s.rng.Intn(s.size.H)}
		if !body.Occupies(c) {
			return Food{Cell: c, Color: color}, nil
		}
	}

	// Crowded board: pick directly among what is left.
	free := make([]grid.Cell, 0, s.size.Area()-body.Len())
	for _, c := range s.size.Cells() {
		if !body.Occupies(c) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return Food{}, ErrBoardFull
	}
	return Food{Cell: free[s.rng.Intn(len(free))], Color: color}, nil
}
