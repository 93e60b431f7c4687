package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration. It matches
// defaults/snake.yaml and is used when the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{Width: 8, Height: 16},
		Snake: StartConfig{
			Head:    CellConfig{X: 5, Y: 5},
			Tail:    CellConfig{X: 5, Y: 4},
			Heading: "up",
		},
		Timing: TimingConfig{
			TickPeriod:  150 * time.Millisecond,
			AutoRestart: 0,
		},
		Food:  FoodConfig{MaxRejections: 0},
		Mouth: MouthConfig{Radius: 4, MaxOffset: 4},
		Controller: ControllerConfig{
			Enabled:     true,
			HitHalfSize: 0.35,
			StepPeriod:  50 * time.Millisecond,
			Buttons: map[string]PointConfig{
				"up":    {X: 3.5, Y: 2.75},
				"down":  {X: 3.5, Y: 1.25},
				"left":  {X: 2.75, Y: 2.0},
				"right": {X: 4.25, Y: 2.0},
			},
		},
		Window: WindowConfig{
			Width:        400,
			Height:       800,
			SpritePixels: 16,
			Assets:       "assets",
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}
