package game

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/state"
)

const tick = 150 * time.Millisecond

// tinyConfig is a 2x2 board where heading up wraps the head onto the tail.
func tinyConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Width: 2, Height: 2}
	cfg.Snake = config.StartConfig{
		Head:    config.CellConfig{X: 1, Y: 1},
		Tail:    config.CellConfig{X: 1, Y: 0},
		Heading: "up",
	}
	cfg.Controller.Enabled = false
	return cfg
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// startGame drives a fresh session through Loading and Menu into Game.
func startGame(t *testing.T, cfg config.SnakeConfig, seed int64) *Session {
	t.Helper()
	s, err := New(cfg, seed)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := s.Frame(0, input()).State.App; got != state.Loading {
		t.Fatalf("app before loading finished = %v, want loading", got)
	}
	s.FinishLoading()
	if got := s.Frame(0, input()).State.App; got != state.Menu {
		t.Fatalf("app after loading = %v, want menu", got)
	}
	if got := s.Frame(0, input(core.ActionConfirm)).State.App; got != state.Game {
		t.Fatalf("app after confirm = %v, want game", got)
	}
	return s
}

// placeFoodFar moves the food out of the snake's way.
func placeFoodFar(t *testing.T, s *Session) {
	t.Helper()
	if err := s.World().PlaceFood(snake.Food{Cell: grid.Cell{X: 0, Y: 15}}); err != nil {
		t.Fatalf("PlaceFood() failed: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Board.Width = 1
	if _, err := New(cfg, 1); err == nil {
		t.Error("New() accepted a 1-wide board")
	}
}

func TestEnterGameBuildsFreshWorld(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)

	w := s.World()
	if w == nil {
		t.Fatal("World() = nil after entering game")
	}
	want := []grid.Cell{{X: 5, Y: 5}, {X: 5, Y: 4}}
	if got := w.Body().Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("body = %v, want %v", got, want)
	}
	if got := w.Pending(); !reflect.DeepEqual(got, []snake.Signal{snake.SignalFoodRequested}) {
		t.Errorf("pending = %v, want one food request", got)
	}
	if w.Score() != 0 {
		t.Errorf("score = %d, want 0", w.Score())
	}

	s.Frame(0, input())
	if _, ok := w.Food(); !ok {
		t.Error("no food after the first game frame")
	}
}

func TestMovementFollowsTickTimer(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	placeFoodFar(t, s)

	if res := s.Frame(100*time.Millisecond, input()); res.Ticked {
		t.Error("ticked before the period elapsed")
	}
	if res := s.Frame(50*time.Millisecond, input()); !res.Ticked {
		t.Error("did not tick once the period elapsed")
	}
	if got := s.World().Body().Head(); got != (grid.Cell{X: 5, Y: 6}) {
		t.Errorf("head = %v, want (5,6)", got)
	}

	s.Frame(time.Second, input())
	if got := s.World().Ticks(); got != 2 {
		t.Errorf("ticks after a long frame = %d, want 2", got)
	}
}

func TestReversalIsIgnored(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	placeFoodFar(t, s)

	s.Frame(tick, input(core.ActionDown))
	if got := s.World().Body().Head(); got != (grid.Cell{X: 5, Y: 6}) {
		t.Errorf("head = %v, want (5,6)", got)
	}
}

func TestLastDirectionInFrameWins(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	placeFoodFar(t, s)

	s.Frame(tick, input(core.ActionLeft, core.ActionRight))
	if got := s.World().Body().Head(); got != (grid.Cell{X: 6, Y: 5}) {
		t.Errorf("head = %v, want (6,5)", got)
	}
}

func TestCollisionEndsRun(t *testing.T) {
	s := startGame(t, tinyConfig(), 1)

	res := s.Frame(tick, input(core.ActionUp))
	if res.State.Play != state.GameOver {
		t.Fatalf("play = %v, want game_over", res.State.Play)
	}
	if res.Finished == nil {
		t.Fatal("Finished not reported on the collision frame")
	}
	if res.Finished.Won || res.Finished.Score != 0 || res.Finished.Length != 2 || res.Finished.Ticks != 1 {
		t.Errorf("Finished = %+v", *res.Finished)
	}
	want := []grid.Cell{{X: 1, Y: 1}, {X: 1, Y: 0}}
	if got := s.World().Body().Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("body after collision = %v, want %v", got, want)
	}

	// The world is frozen while the run is over.
	if res := s.Frame(time.Second, input()); res.Ticked {
		t.Error("world ticked after game over")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	s := startGame(t, tinyConfig(), 1)
	s.Frame(tick, input())
	old := s.World()

	res := s.Frame(16*time.Millisecond, input(core.ActionUp))
	if res.State.Play != state.Playing {
		t.Fatalf("play after restart = %v, want playing", res.State.Play)
	}
	w := s.World()
	if w == old {
		t.Error("restart reused the old world")
	}
	if w.Score() != 0 || w.Ticks() != 0 {
		t.Errorf("score/ticks after restart = %d/%d", w.Score(), w.Ticks())
	}
	if got := w.Pending(); !reflect.DeepEqual(got, []snake.Signal{snake.SignalFoodRequested}) {
		t.Errorf("pending after restart = %v, want one food request", got)
	}
}

func TestRestartKeys(t *testing.T) {
	for _, a := range []core.Action{core.ActionUp, core.ActionRestart, core.ActionConfirm} {
		t.Run(a.String(), func(t *testing.T) {
			s := startGame(t, tinyConfig(), 1)
			s.Frame(tick, input())
			if got := s.Frame(0, input(a)).State.Play; got != state.Playing {
				t.Errorf("play = %v, want playing", got)
			}
		})
	}

	s := startGame(t, tinyConfig(), 1)
	s.Frame(tick, input())
	if got := s.Frame(0, input(core.ActionLeft)).State.Play; got != state.GameOver {
		t.Errorf("Left restarted the run: play = %v", got)
	}
}

func TestAutoRestart(t *testing.T) {
	cfg := tinyConfig()
	cfg.Timing.AutoRestart = 500 * time.Millisecond
	s := startGame(t, cfg, 1)

	s.Frame(tick, input())
	if got := s.Frame(200*time.Millisecond, input()).State.Play; got != state.GameOver {
		t.Fatalf("restarted too early: play = %v", got)
	}
	if got := s.Frame(300*time.Millisecond, input()).State.Play; got != state.Playing {
		t.Errorf("play after auto restart delay = %v, want playing", got)
	}
}

func TestBoardFullWins(t *testing.T) {
	s := startGame(t, tinyConfig(), 1)
	if err := s.World().PlaceFood(snake.Food{Cell: grid.Cell{X: 0, Y: 1}}); err != nil {
		t.Fatalf("PlaceFood() failed: %v", err)
	}

	res := s.Frame(tick, input(core.ActionLeft))
	if !res.Ate {
		t.Fatal("did not eat the food at (0,1)")
	}
	if len(res.Sounds) != 1 || res.Sounds[0] != SoundGrowth {
		t.Errorf("sounds = %v, want one growth sound", res.Sounds)
	}
	if got := s.World().Body().Len(); got != 3 {
		t.Errorf("length after eating = %d, want 3", got)
	}
	food, ok := s.World().Food()
	if !ok || food.Cell != (grid.Cell{X: 0, Y: 0}) {
		t.Fatalf("food = %v, %v, want the last free cell (0,0)", food, ok)
	}

	res = s.Frame(tick, input(core.ActionDown))
	if res.State.Play != state.Won {
		t.Fatalf("play = %v, want won", res.State.Play)
	}
	if res.Finished == nil || !res.Finished.Won || res.Finished.Score != 2 || res.Finished.Length != 4 {
		t.Errorf("Finished = %+v", res.Finished)
	}
	if !s.World().BoardFull() {
		t.Error("BoardFull() = false")
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	placeFoodFar(t, s)

	if got := s.Frame(0, input(core.ActionPause)).State.Pause; got != state.Paused {
		t.Fatalf("pause = %v, want paused", got)
	}
	if res := s.Frame(time.Second, input(core.ActionLeft)); res.Ticked {
		t.Error("world ticked while paused")
	}
	s.Frame(0, input(core.ActionPause))
	s.Frame(tick, input())
	if got := s.World().Body().Head(); got != (grid.Cell{X: 5, Y: 6}) {
		t.Errorf("head = %v, want (5,6); input while paused must be ignored", got)
	}
}

func TestPadPressIgnoredWhilePaused(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	placeFoodFar(t, s)
	s.Frame(0, input(core.ActionPause))

	in := input()
	in.Press(3.25, 2.5)
	s.Frame(0, in)
	if s.Pad().Animating() {
		t.Error("pad animating after a press while paused")
	}
	s.Frame(0, input(core.ActionPause))
	s.Frame(tick, input())
	if got := s.World().Body().Head(); got != (grid.Cell{X: 5, Y: 6}) {
		t.Errorf("head = %v, want (5,6)", got)
	}
}

func TestRestartKeepsPause(t *testing.T) {
	s := startGame(t, tinyConfig(), 1)
	s.Frame(tick, input())
	s.Frame(0, input(core.ActionPause))

	res := s.Frame(0, input(core.ActionRestart))
	if res.State.App != state.Game || res.State.Play != state.Playing {
		t.Fatalf("state after restart = %+v", res.State)
	}
	if res.State.Pause != state.Paused {
		t.Errorf("pause after restart = %v, want paused", res.State.Pause)
	}
	if res := s.Frame(time.Second, input()); res.Ticked {
		t.Error("restarted world ticked while paused")
	}
}

func TestRestartTakesPrecedenceOverPause(t *testing.T) {
	s := startGame(t, tinyConfig(), 1)
	s.Frame(tick, input())

	res := s.Frame(0, input(core.ActionPause, core.ActionRestart))
	if res.State.Play != state.Playing {
		t.Errorf("play = %v, want playing", res.State.Play)
	}
	if res.State.Pause != state.Running {
		t.Errorf("pause = %v, want running", res.State.Pause)
	}
}

func TestQuitToMenu(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	s.Frame(0, input(core.ActionPause))

	res := s.Frame(0, input(core.ActionQuit))
	if res.State.App != state.Menu {
		t.Fatalf("app = %v, want menu", res.State.App)
	}
	if res.State.Pause != state.Running {
		t.Errorf("pause after leaving game = %v, want running", res.State.Pause)
	}
	if s.World() != nil {
		t.Error("world kept after leaving game")
	}
	if res.Finished != nil {
		t.Error("quitting reported a finished run")
	}
}

func TestControllerPressLatchesDirection(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	placeFoodFar(t, s)

	in := input()
	in.Press(3.25, 2.5) // centre of the left button
	s.Frame(0, in)
	if !s.Pad().Animating() {
		t.Error("pad not animating after a press")
	}

	s.Frame(tick, input())
	if got := s.World().Body().Head(); got != (grid.Cell{X: 4, Y: 5}) {
		t.Errorf("head = %v, want (4,5)", got)
	}
}

func TestControllerDisabledIgnoresPresses(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Controller.Enabled = false
	s := startGame(t, cfg, 1)
	placeFoodFar(t, s)

	in := input()
	in.Press(3.25, 2.5)
	s.Frame(tick, in)
	if got := s.World().Body().Head(); got != (grid.Cell{X: 5, Y: 6}) {
		t.Errorf("head = %v, want (5,6)", got)
	}
	if s.ControllerVisible() {
		t.Error("ControllerVisible() = true with the pad disabled")
	}
}

func TestBestScoreTracksFinishedRuns(t *testing.T) {
	s := startGame(t, tinyConfig(), 1)
	s.SetBestScore(7)
	s.Frame(tick, input())
	if s.bestScore != 7 {
		t.Errorf("bestScore = %d, want 7 kept over a lower run", s.bestScore)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := startGame(t, config.DefaultSnakeConfig(), 12345)
		script := map[int]core.Action{
			10: core.ActionLeft,
			25: core.ActionDown,
			40: core.ActionRight,
			60: core.ActionUp,
			75: core.ActionLeft,
		}
		for i := 0; i < 120; i++ {
			in := input()
			if a, ok := script[i]; ok {
				in.Set(a)
			}
			s.Frame(50*time.Millisecond, in)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
	if a.App != "game" || a.Frame != 123 {
		t.Errorf("snapshot = %+v, want game state after 123 frames", a)
	}
}

func TestRenderMenu(t *testing.T) {
	s, err := New(config.DefaultSnakeConfig(), 1)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	s.FinishLoading()
	s.Frame(0, input())

	scr := core.NewScreen(80, 24)
	s.Render(scr)
	if !strings.Contains(scr.String(), "PLAY") {
		t.Error("menu does not show the play button")
	}
	if !s.MenuButtonHit(80, 24, 40, 12) {
		t.Error("centre of the screen misses the play button")
	}
	if s.MenuButtonHit(80, 24, 0, 0) {
		t.Error("corner hits the play button")
	}
}

func TestRenderGame(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	placeFoodFar(t, s)
	s.Frame(0, input())

	scr := core.NewScreen(80, 24)
	s.Render(scr)

	// 8x16 board: box at x=31, y=2; head (5,5) lands at col 42, row 13.
	if got := scr.Get(42, 13); got != '▲' {
		t.Errorf("head glyph = %q, want ▲", got)
	}
	if got := scr.Get(32, 3); got != '●' {
		t.Errorf("food glyph = %q, want ●", got)
	}
	if !strings.Contains(scr.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", scr.Row(0))
	}

	x, y, ok := s.ScreenToBoard(80, 24, 42, 13)
	if !ok || int(x) != 5 || int(y) != 5 {
		t.Errorf("ScreenToBoard(42, 13) = %v, %v, %v, want cell (5,5)", x, y, ok)
	}
	if _, _, ok := s.ScreenToBoard(80, 24, 0, 0); ok {
		t.Error("ScreenToBoard(0, 0) reported a board point")
	}
}

func TestRenderTooSmall(t *testing.T) {
	s := startGame(t, config.DefaultSnakeConfig(), 1)
	scr := core.NewScreen(20, 10)
	s.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Error("small terminal does not show the resize hint")
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	s := startGame(t, tinyConfig(), 1)
	s.Frame(tick, input())

	scr := core.NewScreen(40, 12)
	s.Render(scr)
	out := scr.String()
	for _, want := range []string{"Game Over!", "Your score: 0", "(Press Up to play again)"} {
		if !strings.Contains(out, want) {
			t.Errorf("overlay missing %q", want)
		}
	}
}
