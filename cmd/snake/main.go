// snake is a wrap-around snake game for the terminal, a window, or SSH.
//
// Usage:
//
//	snake play             - Play in the terminal
//	snake gui              - Play in a window with sprites
//	snake serve            - Start SSH server for remote play
//	snake scores           - Show high scores
//	snake config init      - Write the default config file
//
// Global flags:
//
//	--fps <rate>          - Frame rate of the terminal loop (default: 60)
//	--seed <value>        - RNG seed for reproducible food placement
//	--db <path>           - Database path (default: ~/.snake/scores.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake on a wrap-around board",
	Long: `Snake on a board whose edges wrap around. Eat food to grow; running
into yourself ends the run; filling the whole board wins it.

Available commands:
  play     - Play in the terminal
  gui      - Play in a window
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Manage the config file

Examples:
  snake play
  snake play --difficulty hard
  snake gui --config ./big-board.yaml
  snake serve --ssh :2222
  snake scores --tui`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate of the terminal loop")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies the difficulty preset.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplySnakePreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// seed returns the --seed value, or a time-based one when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newLogger writes to --log-file when set and to fallback otherwise. The
// returned closer releases the file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	out, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closer, nil
}
