package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagBoard      string
	flagScoresTUI  bool
	flagClear      bool
	flagScoreLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best runs for a board. The board defaults to the one
described by the current config, e.g. snake-8x16.

Examples:
  snake scores
  snake scores --board snake-12x12
  snake scores --tui
  snake scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagBoard, "board", "", "Board ID (default: from config)")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse every board interactively")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every run for the board")
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, _ []string) error {
	board := flagBoard
	if board == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		board = cfg.BoardID()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(board); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", board)
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, board, width, height)
	}

	scores, err := store.TopScores(board, flagScoreLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", board)
	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-8s  %s\n", "Rank", "Score", "Length", "Result", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "------", "------", "----")
	for i, e := range scores {
		result := "crashed"
		if e.Outcome == storage.OutcomeWon {
			result = "cleared"
		}
		fmt.Printf("  %-4d  %-6d  %-6d  %-8s  %s\n", i+1, e.Score, e.Length, result, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetBoardStats(board); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Cleared: %d  Best: %d  Avg: %.1f\n", stats.GamesCount, stats.Wins, stats.HighScore, stats.AvgScore)
	}
	return nil
}
