package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/state"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options wires the model's collaborators. Nil fields disable the feature.
type Options struct {
	Store  *storage.Store
	Audio  audio.Player
	Logger *log.Logger
	// Clipboard enables ctrl+y. Remote sessions have no local clipboard.
	Clipboard bool
	// ScreenshotDir overrides ~/.snake/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model driving one snake session.
type Model struct {
	session  *game.Session
	screen   *core.Screen
	runtime  core.RuntimeConfig
	opts     Options
	keys     *KeyMapper
	input    core.InputFrame
	last     time.Time
	quitting bool
}

// NewModel creates a model around an existing session.
func NewModel(session *game.Session, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return Model{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		runtime: cfg,
		opts:    opts,
		keys:    NewKeyMapper(),
		input:   core.NewInputFrame(),
	}
}

// Init loads the best score and starts the frame loop. A terminal has no
// assets to load, so loading finishes immediately.
func (m Model) Init() tea.Cmd {
	if m.opts.Store != nil {
		best, err := m.opts.Store.HighScore(m.session.ID())
		if err != nil {
			m.opts.Logger.Warn("could not load high score", "board", m.session.ID(), "error", err)
		}
		m.session.SetBestScore(best)
	}
	m.session.FinishLoading()
	return tickCmd(m.runtime.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copyScore()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.input) {
		m.quitting = true
		return m, tea.Quit
	}

	// Leaving the menu leaves the program.
	if m.session.State().App == state.Menu && (m.input.Has(core.ActionQuit) || m.input.Has(core.ActionBack)) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns left clicks into a menu confirm or a pad press.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	w, h := m.screen.Width(), m.screen.Height()

	switch m.session.State().App {
	case state.Menu:
		if m.session.MenuButtonHit(w, h, msg.X, msg.Y) {
			m.input.Set(core.ActionConfirm)
		}
	case state.Game:
		if x, y, ok := m.session.ScreenToBoard(w, h, msg.X, msg.Y); ok {
			m.input.Press(x, y)
		}
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.last.IsZero() {
		dt = now.Sub(m.last)
	}
	m.last = now

	res := m.session.Frame(dt, m.input)
	for range res.Sounds {
		m.opts.Audio.PlayGrowth()
	}
	if res.Finished != nil {
		m.saveRun(*res.Finished)
	}

	m.input.Clear()
	return m, tickCmd(m.runtime.FPS)
}

func (m Model) saveRun(r game.RunResult) {
	outcome := storage.OutcomeGameOver
	if r.Won {
		outcome = storage.OutcomeWon
	}
	m.opts.Logger.Info("run finished",
		"board", m.session.ID(),
		"score", r.Score,
		"length", r.Length,
		"outcome", outcome,
	)
	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveRun(storage.Run{
		BoardID: m.session.ID(),
		Score:   r.Score,
		Length:  r.Length,
		Ticks:   r.Ticks,
		Outcome: outcome,
	}); err != nil {
		m.opts.Logger.Error("could not save run", "error", err)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.session.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// copyScore puts the current score on the system clipboard.
func (m *Model) copyScore() {
	if !m.opts.Clipboard {
		return
	}
	score := 0
	if w := m.session.World(); w != nil {
		score = w.Score()
	}
	text := fmt.Sprintf("%s: %d", m.session.Title(), score)
	if err := clipboard.WriteAll(text); err != nil {
		m.opts.Logger.Warn("clipboard unavailable", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.session.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts a Bubble Tea program for the session.
func Run(session *game.Session, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(session, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
