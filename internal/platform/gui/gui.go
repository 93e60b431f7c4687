// Package gui runs the snake session in a window with Ebitengine. It draws
// the sprite atlases through the viewport, and feeds keys, clicks and
// touches to the session as input frames.
package gui

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/sprite"
	"github.com/vovakirdan/tui-snake/internal/state"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/viewport"
)

var (
	backgroundColor = color.RGBA{R: 18, G: 24, B: 18, A: 255}
	checkerColor    = color.RGBA{R: 24, G: 32, B: 24, A: 255}
	buttonColor     = color.RGBA{R: 50, G: 140, B: 60, A: 255}
	buttonBorder    = color.RGBA{R: 120, G: 220, B: 130, A: 255}
	overlayColor    = color.RGBA{R: 0, G: 0, B: 0, A: 170}
	textColor       = color.RGBA{R: 230, G: 240, B: 230, A: 255}
	accentColor     = color.RGBA{R: 250, G: 220, B: 90, A: 255}
)

// Options wires the window's collaborators. Nil fields disable the feature.
type Options struct {
	Store  *storage.Store
	Audio  audio.Player
	Logger *log.Logger
	// Assets is the directory holding sprites/snake.png and
	// sprites/controller.png.
	Assets string
	// SpritePixels sizes generated atlases when the sheets are missing.
	SpritePixels int
}

// Game implements ebiten.Game around a session.
type Game struct {
	session *game.Session
	opts    Options
	face    text.Face
	input   core.InputFrame

	loaded <-chan sheets
	snake  *ebiten.Image
	pad    *ebiten.Image
	snakePx, padPx int

	width, height int
}

// New creates the window game and starts decoding the atlases. The session
// stays in Loading until they are ready.
func New(session *game.Session, opts Options) *Game {
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.SpritePixels <= 0 {
		opts.SpritePixels = sprite.TilePixels
	}

	ch := make(chan sheets, 1)
	go func() { ch <- loadSheets(opts.Assets, opts.SpritePixels) }()

	if opts.Store != nil {
		if best, err := opts.Store.HighScore(session.ID()); err == nil {
			session.SetBestScore(best)
		}
	}

	return &Game{
		session: session,
		opts:    opts,
		face:    text.NewGoXFace(basicfont.Face7x13),
		input:   core.NewInputFrame(),
		loaded:  ch,
	}
}

// Update runs one session frame at the engine's tick rate.
func (g *Game) Update() error {
	select {
	case s := <-g.loaded:
		g.install(s)
		g.loaded = nil
	default:
	}

	if g.session.State().App == state.Menu && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.collectInput()

	dt := time.Second / time.Duration(ebiten.TPS())
	res := g.session.Frame(dt, g.input)
	for range res.Sounds {
		g.opts.Audio.PlayGrowth()
	}
	if res.Finished != nil {
		g.saveRun(*res.Finished)
	}
	g.input.Clear()
	return nil
}

func (g *Game) install(s sheets) {
	for _, err := range s.warnings {
		g.opts.Logger.Warn("using generated atlas", "error", err)
	}
	g.snake = ebiten.NewImageFromImage(s.snake)
	g.pad = ebiten.NewImageFromImage(s.pad)
	g.snakePx, g.padPx = s.snakePx, s.padPx
	g.session.FinishLoading()
}

var keyActions = []struct {
	keys   []ebiten.Key
	action core.Action
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, core.ActionUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, core.ActionDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, core.ActionLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, core.ActionRight},
	{[]ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace}, core.ActionConfirm},
	{[]ebiten.Key{ebiten.KeyP}, core.ActionPause},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRestart},
	{[]ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}, core.ActionBack},
}

func (g *Game) collectInput() {
	for _, ka := range keyActions {
		for _, k := range ka.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.input.Set(ka.action)
				break
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyScore()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.pointer(float64(x), float64(y))
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.pointer(float64(x), float64(y))
	}
}

// pointer routes a screen-space press to the menu button or the pad.
func (g *Game) pointer(x, y float64) {
	switch g.session.State().App {
	case state.Menu:
		if viewport.MenuButton(float64(g.width), float64(g.height)).Contains(x, y) {
			g.input.Set(core.ActionConfirm)
		}
	case state.Game:
		if bx, by, ok := g.view().ScreenToBoard(x, y); ok {
			g.input.Press(bx, by)
		}
	}
}

func (g *Game) view() viewport.Viewport {
	return viewport.New(float64(g.width), float64(g.height), g.session.Board(), float64(g.snakePx))
}

func (g *Game) saveRun(r game.RunResult) {
	outcome := storage.OutcomeGameOver
	if r.Won {
		outcome = storage.OutcomeWon
	}
	g.opts.Logger.Info("run finished", "board", g.session.ID(), "score", r.Score, "outcome", outcome)
	if g.opts.Store == nil {
		return
	}
	if _, err := g.opts.Store.SaveRun(storage.Run{
		BoardID: g.session.ID(),
		Score:   r.Score,
		Length:  r.Length,
		Ticks:   r.Ticks,
		Outcome: outcome,
	}); err != nil {
		g.opts.Logger.Error("could not save run", "error", err)
	}
}

func (g *Game) copyScore() {
	w := g.session.World()
	if w == nil {
		return
	}
	if err := clipboard.WriteAll(fmt.Sprintf("%s: %d", g.session.Title(), w.Score())); err != nil {
		g.opts.Logger.Warn("clipboard unavailable", "error", err)
	}
}

// Draw renders the current state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	st := g.session.State()
	switch st.App {
	case state.Loading:
		g.drawCentered(screen, "Loading…", float64(g.height)/2, textColor)
	case state.Menu:
		g.drawMenu(screen)
	case state.Game:
		g.drawGame(screen, st)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	r := viewport.MenuButton(float64(g.width), float64(g.height))
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), buttonColor, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, buttonBorder, false)

	g.drawCentered(screen, "S N A K E", r.Y-3*lineHeight, accentColor)
	g.drawCentered(screen, "PLAY", r.Y+r.H/2, textColor)
}

const lineHeight = 16

func (g *Game) drawGame(screen *ebiten.Image, st state.Tuple) {
	v := g.view()
	tw, th, ok := v.TileSize()
	if !ok || g.snake == nil {
		return
	}

	size := g.session.Board()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if (x+y)%2 == 0 {
				continue
			}
			sx, sy := float64(x)*tw, float64(g.height)-float64(y+1)*th
			vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(tw), float32(th), checkerColor, false)
		}
	}

	frame := g.session.Sprites()
	if f := frame.Food; f != nil {
		g.drawTile(screen, g.snake, sprite.AtlasColumns, g.snakePx, f.Index, float64(f.Cell.X), float64(f.Cell.Y))
	}
	for _, s := range frame.Segments {
		g.drawTile(screen, g.snake, sprite.AtlasColumns, g.snakePx, s.Index, float64(s.Cell.X), float64(s.Cell.Y))
	}

	if g.session.ControllerVisible() {
		pad := g.session.Pad()
		for _, b := range pad.Buttons() {
			g.drawTile(screen, g.pad, sprite.ControllerColumns, g.padPx, pad.Index(b.Dir), b.X, b.Y)
		}
	}

	score := 0
	if w := g.session.World(); w != nil {
		score = w.Score()
	}
	hud := &text.DrawOptions{}
	hud.GeoM.Translate(6, 4)
	hud.ColorScale.ScaleWithColor(accentColor)
	text.Draw(screen, fmt.Sprintf("Score: %d", score), g.face, hud)

	switch {
	case st.Play == state.GameOver:
		g.drawOverlay(screen, "Game Over!", fmt.Sprintf("Your score: %d", score), "(Press Up to play again)")
	case st.Play == state.Won:
		g.drawOverlay(screen, "Board cleared!", fmt.Sprintf("Your score: %d", score), "(Press Up to play again)")
	case st.Pause == state.Paused:
		g.drawOverlay(screen, "Paused", "(Press P to continue)")
	}
}

// drawTile draws one atlas tile with its lower-left corner at board
// position (bx, by), stretched to the tile size.
func (g *Game) drawTile(dst, atlas *ebiten.Image, cols, px int, idx sprite.Index, bx, by float64) {
	v := viewport.New(float64(g.width), float64(g.height), g.session.Board(), float64(px))
	wx, wy, ok := v.WorldAt(bx, by)
	if !ok {
		return
	}
	sx, sy, _ := v.SpriteScale()
	tw, th, _ := v.TileSize()
	cx, cy := v.ToScreen(wx, wy)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sx, sy)
	op.GeoM.Translate(cx-tw/2, cy-th/2)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(atlas.SubImage(sprite.TileRect(idx, cols, px)).(*ebiten.Image), op)
}

func (g *Game) drawOverlay(screen *ebiten.Image, lines ...string) {
	h := float64(len(lines)+1) * lineHeight
	top := (float64(g.height) - h) / 2
	vector.DrawFilledRect(screen, 0, float32(top), float32(g.width), float32(h), overlayColor, false)
	for i, l := range lines {
		c := textColor
		if i == 0 {
			c = accentColor
		}
		g.drawCentered(screen, l, top+float64(i+1)*lineHeight, c)
	}
}

// drawCentered draws one line of text centred horizontally with its
// vertical middle at y.
func (g *Game) drawCentered(screen *ebiten.Image, s string, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(g.width)/2, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, g.face, op)
}

// Layout follows the window size so the board stretches with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(session *game.Session, opts Options) error {
	cfg := session.Config().Window
	ebiten.SetWindowTitle(session.Title())
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(New(session, opts))
}
