package tower

import (
	"math"

	"github.com/TomNeyland/endless-tower/internal/config"
)

// DeathLine is the pursuing hazard. INACTIVE until either enough time passes
// or the player climbs far enough; once ACTIVE it never deactivates within a
// session, and its position only ever advances toward the player.
type DeathLine struct {
	cfg config.DeathLineConfig

	active      bool
	y           float64
	activatedMs int64

	startY   float64 // Player Y at session start; climb baseline
	highestY float64 // Smallest player Y seen (highest point reached)

	closest    float64 // Closest approach distance while active
	lastWarnMs int64
	dead       bool
}

// NewDeathLine creates a death line in its inactive state.
func NewDeathLine(cfg config.DeathLineConfig) *DeathLine {
	d := &DeathLine{cfg: cfg}
	d.Reset(0)
	return d
}

// Reset returns the line to INACTIVE with a fresh activation baseline.
func (d *DeathLine) Reset(startY float64) {
	d.active = false
	d.dead = false
	d.y = 0
	d.activatedMs = 0
	d.startY = startY
	d.highestY = startY
	d.closest = math.Inf(1)
	// Sentinel keeps the first in-band tick eligible without overflowing
	// the nowMs-lastWarnMs subtraction.
	d.lastWarnMs = -d.cfg.WarningIntervalMs
}

// Active reports whether the pursuit has begun.
func (d *DeathLine) Active() bool {
	return d.active
}

// Y returns the line's current world row. Meaningful only while active.
func (d *DeathLine) Y() float64 {
	return d.y
}

// HeightClimbed returns how many rows the player has gained since the start.
func (d *DeathLine) HeightClimbed() float64 {
	return d.startY - d.highestY
}

// ClosestApproach returns the closest the player has come to the line, in
// rows. +Inf if the line never activated.
func (d *DeathLine) ClosestApproach() float64 {
	return d.closest
}

// NoteHeight records the player's highest point. Called every tick so the
// activation-by-height check sees the current best.
func (d *DeathLine) NoteHeight(playerY float64) {
	if playerY < d.highestY {
		d.highestY = playerY
	}
}

// WouldKill reports whether the line is in lethal contact with a player at
// the given bottom edge. Pure query.
func (d *DeathLine) WouldKill(playerBottom float64) bool {
	return d.active && !d.dead && playerBottom >= d.y
}

// Danger returns the distance from the player's bottom edge to the line and
// whether that is inside the warning band. Pure query, no side effects.
func (d *DeathLine) Danger(playerBottom float64) (dist float64, inBand bool) {
	if !d.active {
		return math.Inf(1), false
	}
	dist = d.y - playerBottom
	return dist, dist >= 0 && dist <= d.cfg.WarningDistance
}

// Update advances the pursuit one tick. cameraBottom is the bottom edge of
// the visible playfield in world rows; speed is the current auto-scroll speed
// (already difficulty-scaled, 0 means a stationary line). The player's bottom
// edge drives contact and warnings.
//
// Returned events: DeathLineActivated once, throttled DeathLineWarning while
// in the band, and GameOver exactly once on lethal contact.
func (d *DeathLine) Update(nowMs int64, playerBottom, cameraBottom, speed float64) []Event {
	if d.dead {
		return nil // Game over already delivered; later ticks are no-ops.
	}

	var events []Event

	if !d.active {
		if nowMs >= d.cfg.StartDelayMs || d.HeightClimbed() >= d.cfg.MinHeight {
			d.active = true
			d.activatedMs = nowMs
			d.y = cameraBottom + d.cfg.Offset
			events = append(events, DeathLineActivated{Y: d.y})
		} else {
			return nil
		}
	} else if speed > 0 {
		// Track the camera, but never retreat: pursuit is monotonic.
		candidate := cameraBottom + d.cfg.Offset
		if candidate < d.y {
			d.y = candidate
		}
	}

	dist := d.y - playerBottom
	if dist < d.closest {
		d.closest = dist
	}

	if playerBottom >= d.y {
		d.dead = true
		events = append(events, GameOver{
			Cause:      CauseDeathLine,
			SurvivalMs: nowMs,
			Height:     int(d.HeightClimbed()),
			Y:          d.y,
		})
		return events
	}

	if dist <= d.cfg.WarningDistance && nowMs-d.lastWarnMs >= d.cfg.WarningIntervalMs {
		d.lastWarnMs = nowMs
		urgency := 1 - dist/d.cfg.WarningDistance
		if urgency < 0 {
			urgency = 0
		}
		events = append(events, DeathLineWarning{Distance: dist, Urgency: urgency, Y: d.y})
	}

	return events
}
