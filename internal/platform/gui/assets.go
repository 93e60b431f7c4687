package gui

import (
	"fmt"
	"image"
	_ "image/png" // atlas sheets are PNG
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-snake/internal/sprite"
)

// Atlas file names inside the assets directory.
const (
	SnakeSheet      = "sprites/snake.png"
	ControllerSheet = "sprites/controller.png"
)

// sheets holds decoded atlases and the tile size each was cut with.
type sheets struct {
	snake, pad     image.Image
	snakePx, padPx int
	warnings       []error
}

// loadSheets decodes both atlases from dir. A missing or malformed sheet is
// replaced by a generated one and reported in warnings.
func loadSheets(dir string, px int) sheets {
	var s sheets

	img, tile, err := decodeSheet(filepath.Join(dir, SnakeSheet), sprite.AtlasColumns, sprite.AtlasRows)
	if err != nil {
		s.warnings = append(s.warnings, err)
		img, tile = sprite.Placeholder(px), px
	}
	s.snake, s.snakePx = img, tile

	img, tile, err = decodeSheet(filepath.Join(dir, ControllerSheet), sprite.ControllerColumns, sprite.ControllerRows)
	if err != nil {
		s.warnings = append(s.warnings, err)
		img, tile = sprite.ControllerPlaceholder(px), px
	}
	s.pad, s.padPx = img, tile

	return s
}

// decodeSheet reads a PNG atlas and derives its square tile size.
func decodeSheet(path string, cols, rows int) (image.Image, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("gui: open atlas: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("gui: decode %s: %w", path, err)
	}
	b := img.Bounds()
	px := b.Dx() / cols
	if px == 0 || b.Dx() != px*cols || b.Dy() != px*rows {
		return nil, 0, fmt.Errorf("gui: %s is %dx%d, want a %dx%d grid of square tiles", path, b.Dx(), b.Dy(), cols, rows)
	}
	return img, px, nil
}
