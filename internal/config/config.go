// Package config provides YAML-based configuration loading and difficulty
// management for the snake session.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/controller"
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/snake"
	"github.com/vovakirdan/tui-snake/internal/sprite"
)

// SnakeConfig contains all configuration for a snake session.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Snake      StartConfig      `yaml:"snake"`
	Timing     TimingConfig     `yaml:"timing"`
	Food       FoodConfig       `yaml:"food"`
	Mouth      MouthConfig      `yaml:"mouth"`
	Controller ControllerConfig `yaml:"controller"`
	Window     WindowConfig     `yaml:"window"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the board size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CellConfig is a board cell.
type CellConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// StartConfig defines the two-segment starting body.
type StartConfig struct {
	Head    CellConfig `yaml:"head"`
	Tail    CellConfig `yaml:"tail"`
	Heading string     `yaml:"heading"`
}

// TimingConfig defines simulation timing.
type TimingConfig struct {
	TickPeriod  time.Duration `yaml:"tick_period"`
	AutoRestart time.Duration `yaml:"auto_restart"` // 0 disables
}

// FoodConfig tunes food placement.
type FoodConfig struct {
	MaxRejections int `yaml:"max_rejections"` // 0 means 4*W*H
}

// MouthConfig tunes the head's open-mouth animation.
type MouthConfig struct {
	Radius    int `yaml:"radius"`
	MaxOffset int `yaml:"max_offset"`
}

// PointConfig is a position in board space (tiles).
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ControllerConfig positions the on-screen pad.
type ControllerConfig struct {
	Enabled     bool                   `yaml:"enabled"`
	HitHalfSize float64                `yaml:"hit_half_size"`
	StepPeriod  time.Duration          `yaml:"step_period"`
	Buttons     map[string]PointConfig `yaml:"buttons"`
}

// WindowConfig defines the graphical window and its assets.
type WindowConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	SpritePixels int    `yaml:"sprite_pixels"`
	Assets       string `yaml:"assets"`
}

// AudioConfig controls sound effects.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 silent .. 1.0 full
}

// BoardSize returns the board dimensions.
func (c SnakeConfig) BoardSize() grid.Size {
	return grid.Size{W: c.Board.Width, H: c.Board.Height}
}

// BoardID names the board for score keeping, e.g. "snake-8x16".
func (c SnakeConfig) BoardID() string {
	return fmt.Sprintf("snake-%dx%d", c.Board.Width, c.Board.Height)
}

// Layout returns the starting body.
func (c SnakeConfig) Layout() (snake.Layout, error) {
	heading, err := grid.ParseDirection(c.Snake.Heading)
	if err != nil {
		return snake.Layout{}, fmt.Errorf("config: snake.heading: %w", err)
	}
	return snake.Layout{
		Heading: heading,
		Segments: []grid.Cell{
			{X: c.Snake.Head.X, Y: c.Snake.Head.Y},
			{X: c.Snake.Tail.X, Y: c.Snake.Tail.Y},
		},
	}, nil
}

// Resolver returns the sprite resolver with the configured mouth settings.
func (c SnakeConfig) Resolver() sprite.Resolver {
	return sprite.Resolver{MouthRadius: c.Mouth.Radius, MaxMouth: c.Mouth.MaxOffset}
}

// ControllerLayout returns the pad layout. Buttons missing from the file
// keep their default position.
func (c SnakeConfig) ControllerLayout() controller.Layout {
	layout := controller.DefaultLayout()
	layout.HitHalf = c.Controller.HitHalfSize
	layout.StepPeriod = c.Controller.StepPeriod
	for i, b := range layout.Buttons {
		if p, ok := c.Controller.Buttons[b.Dir.String()]; ok {
			layout.Buttons[i].X = p.X
			layout.Buttons[i].Y = p.Y
		}
	}
	return layout
}

// Validate checks that the configuration describes a playable board.
func (c SnakeConfig) Validate() error {
	size := c.BoardSize()
	if size.W < 2 || size.H < 2 {
		return fmt.Errorf("config: board must be at least 2x2, got %dx%d", size.W, size.H)
	}
	layout, err := c.Layout()
	if err != nil {
		return err
	}
	head, tail := layout.Segments[0], layout.Segments[1]
	for _, cell := range layout.Segments {
		if !size.Contains(cell) {
			return fmt.Errorf("config: start cell %v outside %dx%d board", cell, size.W, size.H)
		}
	}
	if size.Step(head, layout.Heading.Opposite()) != tail {
		return fmt.Errorf("config: tail %v must sit directly behind head %v heading %v", tail, head, layout.Heading)
	}
	if c.Timing.TickPeriod <= 0 {
		return fmt.Errorf("config: timing.tick_period must be positive, got %v", c.Timing.TickPeriod)
	}
	if c.Timing.AutoRestart < 0 {
		return fmt.Errorf("config: timing.auto_restart must not be negative, got %v", c.Timing.AutoRestart)
	}
	if c.Mouth.Radius < 0 || c.Mouth.MaxOffset < 0 || c.Mouth.MaxOffset > sprite.MaxMouthOffset {
		return fmt.Errorf("config: mouth radius %d / max_offset %d out of range", c.Mouth.Radius, c.Mouth.MaxOffset)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	}
	for name := range c.Controller.Buttons {
		if _, err := grid.ParseDirection(name); err != nil {
			return fmt.Errorf("config: controller.buttons: %w", err)
		}
	}
	return nil
}

// DifficultyConfig defines the optional speed-up as the score grows.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base speed, 1.0 = top speed
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a life.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.0
	case DifficultyHard:
		return 0.3
	default:
		return 0.0
	}
}
