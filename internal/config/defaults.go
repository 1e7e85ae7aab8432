package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the default tower configuration.
// Kept in sync with defaults/tower.yaml; used as the last-resort fallback.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Physics: PhysicsConfig{
			Gravity:      0.12,
			MoveAccel:    0.35,
			MaxSpeedX:    1.6,
			JumpImpulse:  -1.9,
			MaxFallSpeed: 2.2,
			Friction:     0.82,
		},
		Bounce: BounceConfig{
			WindowMs:      250,
			PerfectMs:     100,
			GoodMs:        200,
			PerfectMult:   1.5,
			GoodMult:      1.2,
			LateMult:      0.8,
			PerfectPoints: 50,
			GoodPoints:    25,
			LatePoints:    10,
		},
		Combo: ComboConfig{
			WindowMs:      2000,
			Step:          0.2,
			MaxMultiplier: 4.0,
		},
		Magnet: MagnetConfig{
			ChainWindowMs: 2000,
			ReactivateMs:  3000,
			LandCharge:    25,
			ChainPoints:   40,
		},
		DeathLine: DeathLineConfig{
			StartDelayMs:      10000,
			MinHeight:         40,
			Speed:             0.08,
			Offset:            2,
			WarningDistance:   8,
			WarningIntervalMs: 1000,
		},
		Score: ScoreConfig{
			PointsPerRow:    10,
			MilestoneRows:   50,
			MilestonePoints: 100,
		},
		Items: ItemsConfig{
			Slots:        3,
			SpawnChance:  0.12,
			BoostImpulse: -3.2,
		},
		Level: LevelConfig{
			RungSpacingMin: 3,
			RungSpacingMax: 5,
			PlatformWidth:  8,
			MagneticChance: 0.25,
			FieldStrength:  0.06,
			FieldRadius:    7,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "height",
				MaxAt: 400,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.5,
				SpacingIncrease:  2,
				MagneticIncrease: 0.15,
			},
		},
	}
}
