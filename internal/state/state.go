// Package state holds the three independent phase axes of a session and the
// legal transitions between them.
package state

// App is the top-level screen.
type App int

const (
	Loading App = iota
	Menu
	Game
)

func (a App) String() string {
	switch a {
	case Loading:
		return "loading"
	case Menu:
		return "menu"
	case Game:
		return "game"
	default:
		return "unknown"
	}
}

// Play is the phase of the current life.
type Play int

const (
	Playing Play = iota
	GameOver
	Won
)

func (p Play) String() string {
	switch p {
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Pause is the pause toggle.
type Pause int

const (
	Running Pause = iota
	Paused
)

func (p Pause) String() string {
	if p == Paused {
		return "paused"
	}
	return "running"
}

// Tuple is a snapshot of all three axes.
type Tuple struct {
	App   App
	Play  Play
	Pause Pause
}

// CanTickWorld reports whether the simulation may advance.
func CanTickWorld(app App, play Play, pause Pause) bool {
	return app == Game && play == Playing && pause == Running
}

// CanTickWorld reports whether the simulation may advance in this tuple.
func (t Tuple) CanTickWorld() bool {
	return CanTickWorld(t.App, t.Play, t.Pause)
}

// Hook is a side effect the owner must apply after a transition.
type Hook int

const (
	// EnterWorld means a fresh world must be built: score, body and latch
	// reset and one food request queued.
	EnterWorld Hook = iota
	// ExitWorld means the world must be discarded.
	ExitWorld
	// RunEnded means the current life finished with a final score.
	RunEnded
)

// Machine tracks the state tuple. Each command returns the hooks it triggered,
// empty when the command is not legal in the current state.
type Machine struct {
	t Tuple
}

// New starts in Loading/Playing/Running.
func New() *Machine {
	return &Machine{t: Tuple{App: Loading, Play: Playing, Pause: Running}}
}

// State returns the current tuple.
func (m *Machine) State() Tuple { return m.t }

// CanTickWorld reports whether the simulation may advance.
func (m *Machine) CanTickWorld() bool { return m.t.CanTickWorld() }

// FinishLoading moves Loading to Menu once assets are ready.
func (m *Machine) FinishLoading() []Hook {
	if m.t.App != Loading {
		return nil
	}
	m.t.App = Menu
	return nil
}

// StartGame moves Menu to Game with a fresh world.
func (m *Machine) StartGame() []Hook {
	if m.t.App != Menu {
		return nil
	}
	m.t.App = Game
	m.t.Play = Playing
	return []Hook{EnterWorld}
}

// QuitToMenu leaves Game. A finished life is reset to Playing and the pause
// is lifted so the next StartGame begins cleanly.
func (m *Machine) QuitToMenu() []Hook {
	if m.t.App != Game {
		return nil
	}
	m.t.App = Menu
	m.t.Play = Playing
	m.t.Pause = Running
	return []Hook{ExitWorld}
}

// EndRun marks the life as lost.
func (m *Machine) EndRun() []Hook {
	return m.finish(GameOver)
}

// Win marks the life as won after the board filled up.
func (m *Machine) Win() []Hook {
	return m.finish(Won)
}

func (m *Machine) finish(p Play) []Hook {
	if m.t.App != Game || m.t.Play != Playing {
		return nil
	}
	m.t.Play = p
	return []Hook{RunEnded}
}

// Restart begins a new life after GameOver or Won.
func (m *Machine) Restart() []Hook {
	if m.t.App != Game || m.t.Play == Playing {
		return nil
	}
	m.t.Play = Playing
	return []Hook{ExitWorld, EnterWorld}
}

// TogglePause flips Running and Paused. It is independent of the other axes.
func (m *Machine) TogglePause() []Hook {
	if m.t.Pause == Running {
		m.t.Pause = Paused
	} else {
		m.t.Pause = Running
	}
	return nil
}
