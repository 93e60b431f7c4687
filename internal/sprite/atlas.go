// Package sprite maps board state to tile indices in the sprite atlases.
package sprite

// Snake atlas layout: 16 columns by 22 rows of 16px tiles.
const (
	AtlasColumns = 16
	AtlasRows    = 22
	TilePixels   = 16
)

// Index addresses one tile in an atlas, row-major.
type Index int

// AtlasIndex converts a row/column pair into an Index.
func AtlasIndex(row, col int) Index {
	return Index(row*AtlasColumns + col)
}

// Row returns the atlas row of the tile.
func (i Index) Row() int { return int(i) / AtlasColumns }

// Col returns the atlas column of the tile.
func (i Index) Col() int { return int(i) % AtlasColumns }

const (
	BodyVertical      Index = 32
	BodyHorizontal    Index = 33
	CornerBottomRight Index = 34
	CornerBottomLeft  Index = 35
	CornerTopRight    Index = 36
	CornerTopLeft     Index = 37
	TailUp            Index = 38
	TailLeft          Index = 39
	TailDown          Index = 40
	TailRight         Index = 41

	HeadUp    Index = 48
	HeadLeft  Index = 64
	HeadDown  Index = 80
	HeadRight Index = 96

	FoodRed    Index = 336
	FoodGreen  Index = 337
	FoodYellow Index = 338
)

// MaxMouthOffset is the widest open-mouth frame after the head base index.
const MaxMouthOffset = 4

// Controller atlas: one row per direction, three press frames per row.
const (
	ControllerColumns = 3
	ControllerRows    = 4
)

// PressFrame is a controller button animation frame.
type PressFrame int

const (
	FrameNormal PressFrame = iota
	FrameHalf
	FramePressed
)

// String returns the frame name.
func (f PressFrame) String() string {
	switch f {
	case FrameNormal:
		return "normal"
	case FrameHalf:
		return "half"
	case FramePressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// ControllerIndex addresses a button frame in the controller atlas.
// Rows follow grid.Direction order: up, down, left, right.
func ControllerIndex(row int, frame PressFrame) Index {
	return Index(row*ControllerColumns + int(frame))
}
