package core

import "github.com/vovakirdan/tui-snake/internal/grid"

// Action represents a semantic game action, abstracted from physical key presses.
// Front ends map keys, buttons and clicks onto these; the session never sees raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow
	ActionDown           // S, J, Down arrow
	ActionLeft           // A, H, Left arrow
	ActionRight          // D, L, Right arrow
	ActionConfirm        // Enter, Space - start from the menu
	ActionBack           // Esc, B - back to the menu
	ActionRestart        // R - new life after game over
	ActionQuit           // Q - leave the game for the menu
	ActionPause          // P - toggle pause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Direction returns the board heading for a movement action.
func (a Action) Direction() (grid.Direction, bool) {
	switch a {
	case ActionUp:
		return grid.Up, true
	case ActionDown:
		return grid.Down, true
	case ActionLeft:
		return grid.Left, true
	case ActionRight:
		return grid.Right, true
	}
	return grid.Up, false
}

// ActionFor returns the movement action for a heading.
func ActionFor(d grid.Direction) Action {
	switch d {
	case grid.Up:
		return ActionUp
	case grid.Down:
		return ActionDown
	case grid.Left:
		return ActionLeft
	case grid.Right:
		return ActionRight
	}
	return ActionNone
}

// PointF is a pointer position in board space (tiles, Y up).
type PointF struct {
	X, Y float64
}

// InputFrame collects everything the player did since the previous frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Order keeps movement actions in arrival order so the last key wins.
	Order []Action
	// Presses are pointer presses in board space, for the on-screen pad.
	Presses []PointF
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	if _, ok := a.Direction(); ok {
		f.Order = append(f.Order, a)
	}
}

// Press records a pointer press in board space.
func (f *InputFrame) Press(x, y float64) {
	f.Presses = append(f.Presses, PointF{X: x, Y: y})
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Directions returns the movement requests in arrival order.
func (f InputFrame) Directions() []grid.Direction {
	out := make([]grid.Direction, 0, len(f.Order))
	for _, a := range f.Order {
		if d, ok := a.Direction(); ok {
			out = append(out, d)
		}
	}
	return out
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Presses) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Order = f.Order[:0]
	f.Presses = f.Presses[:0]
}
