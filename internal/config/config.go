// Package config provides YAML-based game configuration loading and
// difficulty management for the tower platform.
package config

// TowerConfig contains all tunables for the tower game.
type TowerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Bounce     BounceConfig     `yaml:"bounce"`
	Combo      ComboConfig      `yaml:"combo"`
	Magnet     MagnetConfig     `yaml:"magnet"`
	DeathLine  DeathLineConfig  `yaml:"deathline"`
	Score      ScoreConfig      `yaml:"score"`
	Items      ItemsConfig      `yaml:"items"`
	Level      LevelConfig      `yaml:"level"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines the player movement parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // Downward acceleration per tick
	MoveAccel    float64 `yaml:"move_accel"`     // Horizontal acceleration per tick of held input
	MaxSpeedX    float64 `yaml:"max_speed_x"`    // Horizontal speed cap
	JumpImpulse  float64 `yaml:"jump_impulse"`   // Upward velocity on jump (negative = up)
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal velocity
	Friction     float64 `yaml:"friction"`       // Horizontal damping applied when grounded
}

// BounceConfig defines the wall-bounce timing window and rewards.
type BounceConfig struct {
	WindowMs      int64   `yaml:"window_ms"`      // How long the window stays open after contact
	PerfectMs     int64   `yaml:"perfect_ms"`     // Input within this elapsed time is PERFECT
	GoodMs        int64   `yaml:"good_ms"`        // ...within this is GOOD, later is LATE
	PerfectMult   float64 `yaml:"perfect_mult"`   // Momentum multiplier per quality tier
	GoodMult      float64 `yaml:"good_mult"`
	LateMult      float64 `yaml:"late_mult"`
	PerfectPoints int     `yaml:"perfect_points"` // Combo base value per quality tier
	GoodPoints    int     `yaml:"good_points"`
	LatePoints    int     `yaml:"late_points"`
}

// ComboConfig defines the combo chain scoring parameters.
type ComboConfig struct {
	WindowMs      int64   `yaml:"window_ms"`      // Max gap between chained events
	Step          float64 `yaml:"step"`           // Multiplier increase per chain link
	MaxMultiplier float64 `yaml:"max_multiplier"` // Multiplier cap
}

// MagnetConfig defines magnetic platform behavior.
type MagnetConfig struct {
	ChainWindowMs int64   `yaml:"chain_window_ms"` // Recency window for chain links
	ReactivateMs  int64   `yaml:"reactivate_ms"`   // Delay before a discharged field comes back
	LandCharge    float64 `yaml:"land_charge"`     // Charge added when the player lands
	ChainPoints   int     `yaml:"chain_points"`    // Combo base value for a magnetic chain link
}

// DeathLineConfig defines the pursuing hazard.
type DeathLineConfig struct {
	StartDelayMs      int64   `yaml:"start_delay_ms"`      // Activation by elapsed time
	MinHeight         float64 `yaml:"min_height"`          // Activation by rows climbed
	Speed             float64 `yaml:"speed"`               // Auto-scroll speed; 0 = stationary line
	Offset            float64 `yaml:"offset"`              // Rows below the camera bottom edge
	WarningDistance   float64 `yaml:"warning_distance"`    // Danger-band distance for warnings
	WarningIntervalMs int64   `yaml:"warning_interval_ms"` // Min gap between warning notifications
}

// ScoreConfig defines the height-score component and climb milestones.
type ScoreConfig struct {
	PointsPerRow    int `yaml:"points_per_row"`
	MilestoneRows   int `yaml:"milestone_rows"`   // Rows climbed between milestone bonuses
	MilestonePoints int `yaml:"milestone_points"` // Combo base value for a milestone
}

// ItemsConfig defines the consumable inventory.
type ItemsConfig struct {
	Slots        int     `yaml:"slots"`         // Inventory capacity
	SpawnChance  float64 `yaml:"spawn_chance"`  // Per-platform pickup probability
	BoostImpulse float64 `yaml:"boost_impulse"` // Upward velocity from a BOOST item
}

// LevelConfig defines tower generation.
type LevelConfig struct {
	RungSpacingMin int     `yaml:"rung_spacing_min"` // Min rows between platforms
	RungSpacingMax int     `yaml:"rung_spacing_max"` // Max rows between platforms
	PlatformWidth  int     `yaml:"platform_width"`   // Columns per platform
	MagneticChance float64 `yaml:"magnetic_chance"`  // Fraction of platforms that are magnetic
	FieldStrength  float64 `yaml:"field_strength"`   // Base magnetic field strength
	FieldRadius    float64 `yaml:"field_radius"`     // Base magnetic field radius
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "height", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Rows/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to death-line speed at max difficulty
	SpacingIncrease  int     `yaml:"spacing_increase"`  // Extra rung spacing at max difficulty
	MagneticIncrease float64 `yaml:"magnetic_increase"` // Extra magnetic-platform fraction at max
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
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
