package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/sprite"
	"github.com/vovakirdan/tui-snake/internal/state"
	"github.com/vovakirdan/tui-snake/internal/viewport"
)

// cellW is the number of terminal columns per board cell.
const cellW = 2

const (
	hudHeight  = 2
	helpHeight = 1
)

// glyph is the terminal rendering of one atlas tile.
type glyph struct {
	r         rune
	joinRight bool // draw a connector in the second column
}

var glyphs = map[sprite.Index]glyph{
	sprite.BodyVertical:      {'┃', false},
	sprite.BodyHorizontal:    {'━', true},
	sprite.CornerTopRight:    {'┓', false},
	sprite.CornerTopLeft:     {'┏', true},
	sprite.CornerBottomRight: {'┛', false},
	sprite.CornerBottomLeft:  {'┗', true},
	sprite.TailUp:            {'╹', false},
	sprite.TailDown:          {'╻', false},
	sprite.TailLeft:          {'╸', false},
	sprite.TailRight:         {'╺', true},
}

var headRunes = map[grid.Direction]rune{
	grid.Up:    '▲',
	grid.Down:  '▼',
	grid.Left:  '◀',
	grid.Right: '▶',
}

var foodColors = map[sprite.Index]core.Color{
	sprite.FoodRed:    core.ColorBrightRed,
	sprite.FoodGreen:  core.ColorBrightGreen,
	sprite.FoodYellow: core.ColorBrightYellow,
}

// headGlyph decodes a head index into its heading and mouth frame.
func headGlyph(idx sprite.Index) (grid.Direction, int) {
	bases := []struct {
		dir  grid.Direction
		base sprite.Index
	}{
		{grid.Up, sprite.HeadUp},
		{grid.Left, sprite.HeadLeft},
		{grid.Down, sprite.HeadDown},
		{grid.Right, sprite.HeadRight},
	}
	for _, b := range bases {
		if idx >= b.base && idx <= b.base+sprite.MaxMouthOffset {
			return b.dir, int(idx - b.base)
		}
	}
	panic(fmt.Sprintf("snake: %d is not a head tile", idx))
}

func mouthColor(mouth int) core.Color {
	switch {
	case mouth >= 3:
		return core.ColorBrightYellow
	case mouth >= 1:
		return core.ColorBrightGreen
	default:
		return core.ColorGreen
	}
}

// boardRect returns the bordered board area on a w x h screen.
func (s *Session) boardRect(w, h int) (core.Rect, bool) {
	bw := s.size.W*cellW + 2
	bh := s.size.H + 2
	if w < bw || h < bh+hudHeight+helpHeight {
		return core.Rect{}, false
	}
	return core.NewRect((w-bw)/2, hudHeight, bw, bh), true
}

// cellOrigin returns the terminal position of a board cell.
func cellOrigin(box core.Rect, size grid.Size, c grid.Cell) (int, int) {
	return box.X + 1 + c.X*cellW, box.Y + 1 + (size.H - 1 - c.Y)
}

// ScreenToBoard converts a terminal cell into board space, using the middle
// of the character cell. ok is false outside the board.
func (s *Session) ScreenToBoard(w, h, col, row int) (x, y float64, ok bool) {
	box, fits := s.boardRect(w, h)
	if !fits {
		return 0, 0, false
	}
	ix, iy := col-(box.X+1), row-(box.Y+1)
	if ix < 0 || iy < 0 || ix >= s.size.W*cellW || iy >= s.size.H {
		return 0, 0, false
	}
	return (float64(ix) + 0.5) / cellW, float64(s.size.H) - (float64(iy) + 0.5), true
}

// menuRect is the play button on a w x h screen. Drawing and hit testing
// both use it.
func menuRect(w, h int) core.Rect {
	r := viewport.MenuButton(float64(w), float64(h))
	x, y := int(math.Round(r.X)), int(math.Round(r.Y))
	rw, rh := int(math.Round(r.W)), int(math.Round(r.H))
	return core.NewRect(x, y, max(rw, 1), max(rh, 1))
}

// MenuButtonHit reports whether a terminal cell lies on the play button.
func (s *Session) MenuButtonHit(w, h, col, row int) bool {
	return menuRect(w, h).Contains(col, row)
}

// Render draws the current frame into dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	st := s.machine.State()

	switch st.App {
	case state.Loading:
		dst.DrawTextCentered(dst.Height()/2, "Loading…", core.ColorGray)
	case state.Menu:
		s.renderMenu(dst)
	case state.Game:
		s.renderGame(dst, st)
	}
}

func (s *Session) renderMenu(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	btn := menuRect(w, h)

	dst.DrawTextCentered(max(btn.Y-4, 0), "S N A K E", core.ColorBrightGreen)
	dst.DrawTextCentered(max(btn.Y-2, 0), s.Title(), core.ColorGray)

	dst.DrawRect(btn, '░', core.ColorGreen)
	label := "PLAY"
	dst.DrawTextColor(btn.X+(btn.W-len(label))/2, btn.Y+btn.H/2, label, core.ColorBrightWhite)

	if s.bestScore > 0 {
		dst.DrawTextCentered(btn.Bottom()+1, fmt.Sprintf("Best: %d", s.bestScore), core.ColorYellow)
	}
	dst.DrawTextCentered(h-1, "enter/click play · ctrl+c exit", core.ColorGray)
}

func (s *Session) renderGame(dst *core.Screen, st state.Tuple) {
	w, h := dst.Width(), dst.Height()

	score := 0
	if s.world != nil {
		score = s.world.Score()
	}
	dst.DrawTextColor(1, 0, s.Title(), core.ColorBrightGreen)
	hud := fmt.Sprintf("Score: %d  Best: %d", score, max(s.bestScore, score))
	dst.DrawTextColor(w-len(hud)-1, 0, hud, core.ColorYellow)
	for x := 0; x < w; x++ {
		dst.SetCell(x, 1, '─', core.ColorGray)
	}

	box, ok := s.boardRect(w, h)
	if !ok {
		dst.DrawTextCentered(h/2, "Window too small", core.ColorBrightRed)
		dst.DrawTextCentered(h/2+1, "Resize to continue", core.ColorGray)
		return
	}
	dst.DrawBox(box, core.ColorGray)

	for _, c := range s.size.Cells() {
		x, y := cellOrigin(box, s.size, c)
		dst.SetCell(x, y, '·', core.ColorGray)
	}

	if s.ControllerVisible() {
		s.renderPad(dst, box)
	}
	s.renderSprites(dst, box)

	dst.DrawTextCentered(h-1, "arrows/wasd move · p pause · q menu · ctrl+c exit", core.ColorGray)

	switch {
	case st.Play == state.GameOver:
		renderOverlay(dst, "Game Over!", fmt.Sprintf("Your score: %d", score), "(Press Up to play again)")
	case st.Play == state.Won:
		renderOverlay(dst, "Board cleared!", fmt.Sprintf("Your score: %d", score), "(Press Up to play again)")
	case st.Pause == state.Paused:
		renderOverlay(dst, "Paused", "(Press P to continue)")
	}
}

func (s *Session) renderSprites(dst *core.Screen, box core.Rect) {
	frame := s.sprites
	if f := frame.Food; f != nil {
		x, y := cellOrigin(box, s.size, f.Cell)
		dst.SetCell(x, y, '●', foodColors[f.Index])
	}

	for i, sp := range frame.Segments {
		x, y := cellOrigin(box, s.size, sp.Cell)
		if sp.Role == sprite.RoleHead {
			dir, mouth := headGlyph(sp.Index)
			dst.SetCell(x, y, headRunes[dir], mouthColor(mouth))
			if dir == grid.Left && len(frame.Segments) > 1 {
				dst.SetCell(x+1, y, '━', core.ColorGreen)
			}
			continue
		}
		g, ok := glyphs[sp.Index]
		if !ok {
			panic(fmt.Sprintf("snake: segment %d has unknown tile %d", i, sp.Index))
		}
		dst.SetCell(x, y, g.r, core.ColorGreen)
		if g.joinRight {
			dst.SetCell(x+1, y, '━', core.ColorGreen)
		}
	}
}

var padRunes = map[grid.Direction][2]rune{
	grid.Up:    {'△', '▲'},
	grid.Down:  {'▽', '▼'},
	grid.Left:  {'◁', '◀'},
	grid.Right: {'▷', '▶'},
}

// renderPad draws each button at the terminal cell under its centre.
func (s *Session) renderPad(dst *core.Screen, box core.Rect) {
	for _, b := range s.pad.Buttons() {
		cx, cy := b.Center()
		col := box.X + 1 + int(math.Floor(cx*cellW))
		row := box.Y + 1 + (s.size.H - 1 - int(math.Floor(cy)))

		runes := padRunes[b.Dir]
		r, color := runes[0], core.ColorGray
		switch s.pad.Frame(b.Dir) {
		case sprite.FrameHalf:
			r, color = runes[1], core.ColorCyan
		case sprite.FramePressed:
			r, color = runes[1], core.ColorBrightWhite
		}
		dst.SetCell(col, row, r, color)
	}
}

// renderOverlay draws a centered message box.
func renderOverlay(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), width+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		color := core.ColorWhite
		if i == 0 {
			color = core.ColorBrightYellow
		}
		dst.DrawTextCentered(box.Y+1+i, l, color)
	}
}
