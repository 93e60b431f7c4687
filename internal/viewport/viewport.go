// Package viewport converts between board space and window pixels.
//
// Board space measures in tiles with the origin at the lower-left corner of
// cell (0,0). World space is window pixels centred on the window with Y up.
// Screen space is window pixels from the top-left corner with Y down.
package viewport

import "github.com/vovakirdan/tui-snake/internal/grid"

// Convert maps a board coordinate to the world-space centre of its tile.
func Convert(p, windowDim, gridDim float64) float64 {
	tile := windowDim / gridDim
	return p/gridDim*windowDim - windowDim/2 + tile/2
}

// Scale is the factor that stretches a sprite of spritePixels to one tile.
func Scale(windowDim, gridDim, spritePixels float64) float64 {
	return windowDim / gridDim / spritePixels
}

// Viewport binds a window size to a board.
type Viewport struct {
	WindowW, WindowH float64
	Board            grid.Size
	SpritePixels     float64
}

// New creates a viewport.
func New(windowW, windowH float64, board grid.Size, spritePixels float64) Viewport {
	return Viewport{WindowW: windowW, WindowH: windowH, Board: board, SpritePixels: spritePixels}
}

// Ready reports whether a window size is known. Every conversion is a
// no-op returning ok=false until it is.
func (v Viewport) Ready() bool {
	return v.WindowW > 0 && v.WindowH > 0 && v.Board.W > 0 && v.Board.H > 0
}

// TileSize returns the pixel size of one tile.
func (v Viewport) TileSize() (w, h float64, ok bool) {
	if !v.Ready() {
		return 0, 0, false
	}
	return v.WindowW / float64(v.Board.W), v.WindowH / float64(v.Board.H), true
}

// WorldAt returns the world-space centre for a board position given as the
// lower-left corner of a tile.
func (v Viewport) WorldAt(x, y float64) (wx, wy float64, ok bool) {
	if !v.Ready() {
		return 0, 0, false
	}
	return Convert(x, v.WindowW, float64(v.Board.W)), Convert(y, v.WindowH, float64(v.Board.H)), true
}

// CellCenter returns the world-space centre of a cell.
func (v Viewport) CellCenter(c grid.Cell) (wx, wy float64, ok bool) {
	return v.WorldAt(float64(c.X), float64(c.Y))
}

// SpriteScale returns the per-axis scale for atlas tiles.
func (v Viewport) SpriteScale() (sx, sy float64, ok bool) {
	if !v.Ready() || v.SpritePixels <= 0 {
		return 0, 0, false
	}
	return Scale(v.WindowW, float64(v.Board.W), v.SpritePixels),
		Scale(v.WindowH, float64(v.Board.H), v.SpritePixels), true
}

// ToScreen converts world space to screen space.
func (v Viewport) ToScreen(wx, wy float64) (sx, sy float64) {
	return wx + v.WindowW/2, v.WindowH/2 - wy
}

// ScreenToBoard converts a screen-space pointer to board space.
func (v Viewport) ScreenToBoard(sx, sy float64) (bx, by float64, ok bool) {
	tw, th, ok := v.TileSize()
	if !ok {
		return 0, 0, false
	}
	return sx / tw, (v.WindowH - sy) / th, true
}

// RectF is a screen-space rectangle.
type RectF struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r RectF) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Menu play button size as a fraction of the window.
const (
	MenuButtonWidth  = 0.40
	MenuButtonHeight = 0.10
)

// MenuButton returns the play button rectangle centred in a window. The same
// rectangle is used for drawing and for hit testing.
func MenuButton(windowW, windowH float64) RectF {
	w := windowW * MenuButtonWidth
	h := windowH * MenuButtonHeight
	return RectF{X: (windowW - w) / 2, Y: (windowH - h) / 2, W: w, H: h}
}
