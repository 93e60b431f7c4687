package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/state"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
		exit bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionNone, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, exit := km.MapKey(tt.msg)
			if got != tt.want || exit != tt.exit {
				t.Errorf("MapKey(%q) = %v, %v, want %v, %v", tt.msg.String(), got, exit, tt.want, tt.exit)
			}
		})
	}
}

func newTestModel(t *testing.T, cfg config.SnakeConfig, store *storage.Store) Model {
	t.Helper()
	session, err := game.New(cfg, 7)
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	rt := core.DefaultConfig()
	m := NewModel(session, rt, Options{Store: store, ScreenshotDir: t.TempDir()})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestModelMenuToGame(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), nil)
	start := time.Now()

	m = update(t, m, TickMsg(start))
	if got := m.session.State().App; got != state.Menu {
		t.Fatalf("app after first tick = %v, want menu", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(start.Add(16*time.Millisecond)))
	if got := m.session.State().App; got != state.Game {
		t.Fatalf("app after enter = %v, want game", got)
	}

	if !strings.Contains(m.View(), "Score: 0") {
		t.Error("game view has no score")
	}
}

func TestModelMenuClick(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), nil)
	start := time.Now()
	m = update(t, m, TickMsg(start))

	m = update(t, m, tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg(start.Add(16*time.Millisecond)))
	if got := m.session.State().App; got != state.Game {
		t.Errorf("app after clicking play = %v, want game", got)
	}
}

func TestModelQuitFromMenuExits(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), nil)
	m = update(t, m, TickMsg(time.Now()))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q in menu returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q in menu did not quit")
	}
	if next.(Model).View() != "" {
		t.Error("view not cleared after quitting")
	}
}

func TestModelSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	// 2x2 board heading up: the first move wraps onto the tail.
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Width: 2, Height: 2}
	cfg.Snake = config.StartConfig{
		Head:    config.CellConfig{X: 1, Y: 1},
		Tail:    config.CellConfig{X: 1, Y: 0},
		Heading: "up",
	}
	cfg.Controller.Enabled = false

	m := newTestModel(t, cfg, store)
	start := time.Now()
	m = update(t, m, TickMsg(start))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, TickMsg(start.Add(10*time.Millisecond)))
	m = update(t, m, TickMsg(start.Add(200*time.Millisecond)))

	if got := m.session.State().Play; got != state.GameOver {
		t.Fatalf("play = %v, want game_over", got)
	}
	scores, err := store.TopScores("snake-2x2", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Outcome != storage.OutcomeGameOver || scores[0].Length != 2 {
		t.Errorf("stored runs = %+v", scores)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawTextColor(0, 0, "snake", core.ColorGreen)
	scr.DrawTextColor(0, 1, "food", core.ColorBrightRed)

	out := RenderScreen(scr)
	if !strings.Contains(out, "snake") || !strings.Contains(out, "food") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen rows = %d, want 2", strings.Count(out, "\n")+1)
	}
}
