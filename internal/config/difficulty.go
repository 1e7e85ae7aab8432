package config

import "math"

// DifficultyManager calculates dynamic game parameters based on height/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on rows climbed or ticks.
func (d *DifficultyManager) Level(height int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "height":
		progress = float64(height) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// LineSpeed returns the current death-line speed based on difficulty level.
func (d *DifficultyManager) LineSpeed(baseSpeed float64, height int, ticks int) float64 {
	level := d.Level(height, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// RungSpacing returns the current platform spacing based on difficulty level.
func (d *DifficultyManager) RungSpacing(baseSpacing int, height int, ticks int) int {
	level := d.Level(height, ticks)
	// Platforms spread apart as difficulty increases
	return baseSpacing + int(level*float64(d.cfg.Scaling.SpacingIncrease))
}

// MagneticChance returns the current magnetic-platform fraction.
// More magnets at higher difficulty: stronger fields cut both ways.
func (d *DifficultyManager) MagneticChance(baseChance float64, height int, ticks int) float64 {
	level := d.Level(height, ticks)
	return clampF(baseChance+level*d.cfg.Scaling.MagneticIncrease, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
