package tower

import (
	"github.com/TomNeyland/endless-tower/internal/core"
)

// Player hitbox in cells.
const (
	playerW = 1.0
	playerH = 1.0
)

// hardSpeedCap bounds horizontal velocity after bounce amplification so a
// long perfect streak cannot tunnel through a wall in one tick.
const hardSpeedCap = 5.0

// PlayerKinematics is the player's per-tick kinematic state. Velocity is
// written only by physics integration, the magnetic field engine and the
// wall-bounce state machine.
type PlayerKinematics struct {
	X, Y     float64 // Top-left corner, world coordinates (Y grows downward)
	VX, VY   float64
	Grounded bool
	Facing   int // -1 left, +1 right
}

// Bottom returns the player's bottom edge.
func (p *PlayerKinematics) Bottom() float64 {
	return p.Y + playerH
}

// stepPhysics advances kinematics one tick: magnetic forces, input
// acceleration, gravity, integration, wall and platform collision.
// Returns the wall contact produced this tick (if any) and the platform
// landed on (if any).
func (g *Game) stepPhysics(in core.InputFrame, nowMs int64) (contact WallContact, hitWall bool, landed PlatformHandle, didLand bool) {
	p := &g.player
	phys := g.tcfg.Physics

	// Magnetic field forces adjust velocity before integration.
	force := g.magnet.TotalForce(g.level, p.X+playerW/2, p.Y+playerH/2)
	p.VX += force.X
	p.VY += force.Y

	// Horizontal input. MaxSpeedX caps input-driven speed only; bounce
	// amplification may carry the player faster and decays on its own.
	switch {
	case in.Has(core.ActionLeft) && !in.Has(core.ActionRight):
		if p.VX > -phys.MaxSpeedX {
			p.VX = core.ClampF(p.VX-phys.MoveAccel, -phys.MaxSpeedX, p.VX)
		}
		p.Facing = -1
	case in.Has(core.ActionRight) && !in.Has(core.ActionLeft):
		if p.VX < phys.MaxSpeedX {
			p.VX = core.ClampF(p.VX+phys.MoveAccel, p.VX, phys.MaxSpeedX)
		}
		p.Facing = 1
	}
	if p.VX > hardSpeedCap {
		p.VX = hardSpeedCap
	}
	if p.VX < -hardSpeedCap {
		p.VX = -hardSpeedCap
	}

	// Jump from the ground. While a bounce window is open the same input is
	// the bounce attempt instead, consumed by the bounce machine.
	if in.Has(core.ActionJump) && p.Grounded && !g.bounce.Open() {
		p.VY = phys.JumpImpulse
		p.Grounded = false
	}

	if p.Grounded {
		p.VX *= phys.Friction
	} else {
		p.VY += phys.Gravity
		if p.VY > phys.MaxFallSpeed {
			p.VY = phys.MaxFallSpeed
		}
	}

	prevBottom := p.Bottom()
	p.X += p.VX
	p.Y += p.VY

	// Shaft walls. A touch while airborne and moving into the wall opens a
	// bounce window; grounded slides just stop.
	leftWall := float64(g.shaftLeft)
	rightWall := float64(g.shaftLeft + g.shaftWidth)
	if p.X <= leftWall {
		p.X = leftWall
		if p.VX < 0 && !p.Grounded {
			contact = WallContact{Side: WallLeft, X: p.X, Y: p.Y, AtMs: nowMs, VX: p.VX}
			hitWall = true
		}
		if p.VX < 0 {
			p.VX = 0
		}
	} else if p.X+playerW >= rightWall {
		p.X = rightWall - playerW
		if p.VX > 0 && !p.Grounded {
			contact = WallContact{Side: WallRight, X: p.X, Y: p.Y, AtMs: nowMs, VX: p.VX}
			hitWall = true
		}
		if p.VX > 0 {
			p.VX = 0
		}
	}

	// One-way platform landing while falling.
	if p.VY > 0 {
		if h, ok := g.level.FindLanding(prevBottom, p.Bottom(), p.X, playerW); ok {
			if plat, live := g.level.At(h); live {
				p.Y = float64(plat.Row) - playerH
				p.VY = 0
				p.Grounded = true
				landed = h
				didLand = true
			}
		}
	} else if p.Grounded && !g.level.Supported(p.Bottom(), p.X, playerW) {
		// Walked off the edge (or the platform scrolled out).
		p.Grounded = false
	}

	return contact, hitWall, landed, didLand
}
