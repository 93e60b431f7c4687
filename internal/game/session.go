// Package game wires the simulation pieces into one session driven by an
// explicit per-frame function. Front ends call Frame once per rendered frame
// with the elapsed time and the input collected since the previous frame.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/controller"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/sprite"
	"github.com/vovakirdan/tui-snake/internal/state"
)

// Sound is a sound effect request for the audio collaborator.
type Sound int

const (
	SoundGrowth Sound = iota
)

// RunResult describes a life that just ended.
type RunResult struct {
	Score  int
	Length int
	Ticks  uint64
	Won    bool
}

// Result reports what happened during one frame.
type Result struct {
	State    state.Tuple
	Ticked   bool
	Ate      bool
	Sounds   []Sound
	Finished *RunResult // set on the frame a life ends
}

// Session owns the state machine and, while in Game, the world.
type Session struct {
	cfg        config.SnakeConfig
	size       grid.Size
	layout     snake.Layout
	resolver   sprite.Resolver
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	machine *state.Machine
	loaded  bool

	world    *snake.World
	latch    snake.InputLatch
	timer    snake.TickTimer
	pad      *controller.Pad
	sprites  sprite.Frame
	finished time.Duration // time spent in GameOver/Won

	frames    uint64
	bestScore int
}

// New creates a session in the Loading state.
func New(cfg config.SnakeConfig, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:        cfg,
		size:       cfg.BoardSize(),
		layout:     layout,
		resolver:   cfg.Resolver(),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewSource(seed)),
		machine:    state.New(),
		latch:      snake.NewInputLatch(layout.Heading),
		timer:      snake.NewTickTimer(cfg.Timing.TickPeriod),
		pad:        controller.NewPad(cfg.ControllerLayout()),
	}, nil
}

// ID returns the board identifier used for score keeping.
func (s *Session) ID() string { return s.cfg.BoardID() }

// Title returns the display name.
func (s *Session) Title() string {
	return fmt.Sprintf("Snake %dx%d", s.size.W, s.size.H)
}

// Config returns the session configuration.
func (s *Session) Config() config.SnakeConfig { return s.cfg }

// Board returns the board size.
func (s *Session) Board() grid.Size { return s.size }

// State returns the current state tuple.
func (s *Session) State() state.Tuple { return s.machine.State() }

// World returns the live world, or nil outside Game.
func (s *Session) World() *snake.World { return s.world }

// Sprites returns the tiles resolved on the last frame.
func (s *Session) Sprites() sprite.Frame { return s.sprites }

// Pad returns the on-screen controller.
func (s *Session) Pad() *controller.Pad { return s.pad }

// ControllerVisible reports whether the pad should be drawn and hit-tested.
func (s *Session) ControllerVisible() bool {
	st := s.machine.State()
	return s.cfg.Controller.Enabled && st.App == state.Game && st.Play == state.Playing
}

// SetBestScore sets the record shown in the HUD.
func (s *Session) SetBestScore(n int) { s.bestScore = n }

// FinishLoading tells the session its assets are ready. The Loading to Menu
// transition happens on the next frame.
func (s *Session) FinishLoading() { s.loaded = true }

// Frame runs one frame: input latch, movement, eating, growth, food,
// orientation, state transitions, presentation.
func (s *Session) Frame(dt time.Duration, in core.InputFrame) Result {
	s.frames++
	var res Result

	s.latchInput(in)

	if s.world != nil && s.machine.CanTickWorld() {
		s.timer.SetPeriod(s.difficulty.TickPeriod(s.cfg.Timing.TickPeriod, s.world.Score(), s.world.Ticks()))
		if s.timer.Advance(dt) {
			s.world.Tick(s.latch.Direction())
			res.Ticked = true
		}
		res.Ate = s.world.Eat()
		s.world.Grow()
		s.world.SpawnFood() //nolint:errcheck // a full board surfaces as SignalBoardFull
	}

	if s.world != nil {
		food, ok := s.world.Food()
		s.sprites = s.resolver.Resolve(s.world.Body(), food, ok)
	}

	s.transition(dt, in, &res)

	s.pad.Advance(dt)
	res.State = s.machine.State()
	return res
}

// latchInput feeds keyboard directions and pad presses into the latch.
func (s *Session) latchInput(in core.InputFrame) {
	if s.world == nil || !s.machine.CanTickWorld() {
		return
	}
	heading := s.world.Body().Heading()
	for _, d := range in.Directions() {
		s.latch.Request(d, heading)
	}
	if !s.cfg.Controller.Enabled {
		return
	}
	for _, p := range in.Presses {
		if d, ok := s.pad.Press(p.X, p.Y); ok {
			s.latch.Request(d, heading)
		}
	}
}

// transition applies world signals and input commands to the state machine
// and runs the resulting hooks.
func (s *Session) transition(dt time.Duration, in core.InputFrame, res *Result) {
	var hooks []state.Hook
	endedBefore := s.machine.State().Play != state.Playing

	if s.world != nil {
		for i := s.world.Drain(snake.SignalPlaySound); i > 0; i-- {
			res.Sounds = append(res.Sounds, SoundGrowth)
		}
		if s.world.Drain(snake.SignalGameOver) > 0 {
			hooks = append(hooks, s.machine.EndRun()...)
		}
		if s.world.Drain(snake.SignalBoardFull) > 0 {
			hooks = append(hooks, s.machine.Win()...)
		}
	}
	s.apply(hooks, res)

	st := s.machine.State()

	// A life that ended during this frame cannot restart in it.
	restart := false
	if st.App == state.Game && st.Play != state.Playing && endedBefore {
		s.finished += dt
		restart = in.Has(core.ActionRestart) || in.Has(core.ActionUp) || in.Has(core.ActionConfirm) ||
			(s.cfg.Timing.AutoRestart > 0 && s.finished >= s.cfg.Timing.AutoRestart)
	}

	switch {
	case st.App == state.Loading:
		if s.loaded {
			s.machine.FinishLoading()
		}
	case st.App == state.Menu:
		if in.Has(core.ActionConfirm) {
			s.apply(s.machine.StartGame(), res)
		}
	case in.Has(core.ActionQuit) || in.Has(core.ActionBack):
		s.apply(s.machine.QuitToMenu(), res)
	case restart:
		s.apply(s.machine.Restart(), res)
	case in.Has(core.ActionPause):
		s.machine.TogglePause()
	}
}

func (s *Session) apply(hooks []state.Hook, res *Result) {
	for _, h := range hooks {
		switch h {
		case state.EnterWorld:
			s.enterWorld()
		case state.ExitWorld:
			s.exitWorld()
		case state.RunEnded:
			if s.world == nil {
				continue
			}
			r := RunResult{
				Score:  s.world.Score(),
				Length: s.world.Body().Len(),
				Ticks:  s.world.Ticks(),
				Won:    s.machine.State().Play == state.Won,
			}
			if r.Score > s.bestScore {
				s.bestScore = r.Score
			}
			res.Finished = &r
		}
	}
}

func (s *Session) enterWorld() {
	spawner := snake.NewSpawner(s.size, s.rng, s.cfg.Food.MaxRejections)
	s.world = snake.NewWorld(s.size, s.layout, spawner)
	s.latch = snake.NewInputLatch(s.layout.Heading)
	s.timer = snake.NewTickTimer(s.cfg.Timing.TickPeriod)
	s.pad.Reset()
	s.finished = 0
	food, ok := s.world.Food()
	s.sprites = s.resolver.Resolve(s.world.Body(), food, ok)
}

func (s *Session) exitWorld() {
	s.world = nil
	s.sprites = sprite.Frame{}
	s.pad.Reset()
	s.finished = 0
}
