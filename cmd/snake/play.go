package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/platform/gui"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Arrows/WASD/HJKL - Steer
  Enter/Click      - Start from the menu
  Click            - Press the on-screen pad
  P                - Pause
  Up/R/Enter       - Play again after a run ends
  Q/Esc            - Back to the menu (quits from the menu)
  Ctrl+S           - Save a text screenshot
  Ctrl+Y           - Copy the score to the clipboard
  Ctrl+C           - Quit

Difficulty options:
  easy   - Slow steady pace
  normal - Standard pace
  hard   - Fast, and speeds up as you score
  fixed  - Use the config's timing unchanged

Examples:
  snake play
  snake play --difficulty easy
  snake play --config ./my-snake.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a window",
	Long: `Open a window and play with the sprite atlases from the config's
assets directory. Missing sheets are replaced by generated tiles.

Controls are the same as in the terminal; C copies the score.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	guiCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

// openStore opens the scores database. Failure only disables persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// newPlayer opens the speaker when sound is wanted and available.
func newPlayer(cfg config.SnakeConfig, logger *log.Logger) audio.Player {
	if flagMute || !cfg.Audio.Enabled {
		return audio.Nop{}
	}
	p := audio.NewBeepPlayer(cfg.Audio.Volume)
	if err := p.Initialize(); err != nil {
		logger.Warn("audio unavailable", "error", err)
		return audio.Nop{}
	}
	return p
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger("snake", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	rt.FPS = flagFPS
	rt.Seed = seed()

	session, err := game.New(cfg, rt.Seed)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	player := newPlayer(cfg, logger)
	defer player.Close()

	logger.Info("starting", "board", session.ID(), "seed", rt.Seed)
	return tui.Run(session, rt, tui.Options{
		Store:     store,
		Audio:     player,
		Logger:    logger,
		Clipboard: true,
	})
}

func runGUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger("snake-gui", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	session, err := game.New(cfg, seed())
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	player := newPlayer(cfg, logger)
	defer player.Close()

	return gui.Run(session, gui.Options{
		Store:        store,
		Audio:        player,
		Logger:       logger,
		Assets:       cfg.Window.Assets,
		SpritePixels: cfg.Window.SpritePixels,
	})
}
