package sprite

import (
	"image"
	"image/color"
)

// TileRect returns the pixel rectangle of a tile in an atlas with the given
// number of columns and square tiles of px pixels.
func TileRect(i Index, columns, px int) image.Rectangle {
	col, row := int(i)%columns, int(i)/columns
	return image.Rect(col*px, row*px, (col+1)*px, (row+1)*px)
}

var (
	bodyColor  = color.RGBA{R: 60, G: 170, B: 70, A: 255}
	headColor  = color.RGBA{R: 80, G: 200, B: 90, A: 255}
	mouthColor = color.RGBA{R: 20, G: 40, B: 20, A: 255}

	foodRGBA = map[Index]color.RGBA{
		FoodRed:    {R: 220, G: 50, B: 50, A: 255},
		FoodGreen:  {R: 120, G: 220, B: 60, A: 255},
		FoodYellow: {R: 240, G: 210, B: 50, A: 255},
	}

	padRGBA = map[PressFrame]color.RGBA{
		FrameNormal:  {R: 150, G: 150, B: 150, A: 160},
		FrameHalf:    {R: 120, G: 200, B: 220, A: 200},
		FramePressed: {R: 255, G: 255, B: 255, A: 255},
	}
)

// arms lists which tile edges a segment connects to, in image space.
type arms struct {
	up, down, left, right bool
}

var segmentArms = map[Index]arms{
	BodyVertical:      {up: true, down: true},
	BodyHorizontal:    {left: true, right: true},
	CornerTopRight:    {left: true, down: true},
	CornerTopLeft:     {right: true, down: true},
	CornerBottomRight: {left: true, up: true},
	CornerBottomLeft:  {right: true, up: true},
	TailUp:            {up: true},
	TailDown:          {down: true},
	TailLeft:          {left: true},
	TailRight:         {right: true},
}

// Placeholder draws a plain snake atlas for running without the sprite
// sheet. Every index the resolver can produce gets a visible tile.
func Placeholder(px int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, AtlasColumns*px, AtlasRows*px))

	for idx, a := range segmentArms {
		drawArms(img, TileRect(idx, AtlasColumns, px), a)
	}

	heads := map[Index]arms{
		HeadUp:    {up: true},
		HeadDown:  {down: true},
		HeadLeft:  {left: true},
		HeadRight: {right: true},
	}
	for base, facing := range heads {
		for m := 0; m <= MaxMouthOffset; m++ {
			drawHead(img, TileRect(base+Index(m), AtlasColumns, px), facing, m)
		}
	}

	for idx, c := range foodRGBA {
		drawDiamond(img, TileRect(idx, AtlasColumns, px), c)
	}
	return img
}

// ControllerPlaceholder draws the 3x4 pad atlas: one arrow per row, one
// shade per press frame.
func ControllerPlaceholder(px int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ControllerColumns*px, ControllerRows*px))
	facing := []arms{{up: true}, {down: true}, {left: true}, {right: true}}
	for row, f := range facing {
		for frame, c := range padRGBA {
			drawArrow(img, TileRect(ControllerIndex(row, frame), ControllerColumns, px), f, c)
		}
	}
	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawArms draws a centre block plus a bar toward each connected edge.
func drawArms(img *image.RGBA, r image.Rectangle, a arms) {
	px := r.Dx()
	lo, hi := px/4, px-px/4
	fill(img, image.Rect(r.Min.X+lo, r.Min.Y+lo, r.Min.X+hi, r.Min.Y+hi), bodyColor)
	if a.up {
		fill(img, image.Rect(r.Min.X+lo, r.Min.Y, r.Min.X+hi, r.Min.Y+lo), bodyColor)
	}
	if a.down {
		fill(img, image.Rect(r.Min.X+lo, r.Min.Y+hi, r.Min.X+hi, r.Max.Y), bodyColor)
	}
	if a.left {
		fill(img, image.Rect(r.Min.X, r.Min.Y+lo, r.Min.X+lo, r.Min.Y+hi), bodyColor)
	}
	if a.right {
		fill(img, image.Rect(r.Min.X+hi, r.Min.Y+lo, r.Max.X, r.Min.Y+hi), bodyColor)
	}
}

// drawHead fills the tile and cuts a mouth into the facing edge whose depth
// grows with the mouth frame.
func drawHead(img *image.RGBA, r image.Rectangle, facing arms, mouth int) {
	px := r.Dx()
	inset := px / 8
	fill(img, r.Inset(inset), headColor)
	if mouth == 0 {
		return
	}
	depth := mouth * px / (2 * (MaxMouthOffset + 1))
	half := max(px/8, mouth*px/16)
	cx, cy := r.Min.X+px/2, r.Min.Y+px/2
	var m image.Rectangle
	switch {
	case facing.up:
		m = image.Rect(cx-half, r.Min.Y, cx+half, r.Min.Y+inset+depth)
	case facing.down:
		m = image.Rect(cx-half, r.Max.Y-inset-depth, cx+half, r.Max.Y)
	case facing.left:
		m = image.Rect(r.Min.X, cy-half, r.Min.X+inset+depth, cy+half)
	default:
		m = image.Rect(r.Max.X-inset-depth, cy-half, r.Max.X, cy+half)
	}
	fill(img, m.Intersect(r), mouthColor)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func drawDiamond(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	px := r.Dx()
	cx, cy, rad := px/2, px/2, px/2-px/8
	for y := 0; y < px; y++ {
		for x := 0; x < px; x++ {
			if abs(x-cx)+abs(y-cy) <= rad {
				img.SetRGBA(r.Min.X+x, r.Min.Y+y, c)
			}
		}
	}
}

// drawArrow draws a triangle pointing toward the single set edge.
func drawArrow(img *image.RGBA, r image.Rectangle, facing arms, c color.RGBA) {
	px := r.Dx()
	pad := px / 8
	span := px - 2*pad
	for y := 0; y < span; y++ {
		for x := 0; x < span; x++ {
			// along runs from the tip (0) to the base (span-1).
			var along, across int
			switch {
			case facing.up:
				along, across = y, x
			case facing.down:
				along, across = span-1-y, x
			case facing.left:
				along, across = x, y
			default:
				along, across = span-1-x, y
			}
			if 2*abs(across-span/2) <= along {
				img.SetRGBA(r.Min.X+pad+x, r.Min.Y+pad+y, c)
			}
		}
	}
}
