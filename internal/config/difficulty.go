package config

import (
	"math"
	"time"
)

// DifficultyManager derives the current tick period from score or ticks.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the speed multiplier, from 1 up to 1+speed_multiplier.
func (d *DifficultyManager) Speed(score int, ticks uint64) float64 {
	return 1.0 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
}

// TickPeriod shortens base by the current speed multiplier. With
// progression disabled and a zero initial level it returns base unchanged.
func (d *DifficultyManager) TickPeriod(base time.Duration, score int, ticks uint64) time.Duration {
	speed := d.Speed(score, ticks)
	if speed <= 1.0 {
		return base
	}
	p := time.Duration(float64(base) / speed)
	if p < time.Millisecond {
		p = time.Millisecond
	}
	return p
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
