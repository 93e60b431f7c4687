package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// KeyMapper translates Bubble Tea key messages to session actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action. exit is true for keys that
// close the program regardless of screen.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, exit bool) {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionNone, true
	case "up", "w", "k":
		return core.ActionUp, false
	case "down", "s", "j":
		return core.ActionDown, false
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "q":
		return core.ActionQuit, false
	case "esc", "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame adds the key's action to the frame. Returns true on exit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, exit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return exit
}
