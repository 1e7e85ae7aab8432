package tower

import (
	"math"

	"github.com/TomNeyland/endless-tower/internal/config"
	"github.com/TomNeyland/endless-tower/internal/core"
)

// maxCharge is the charge ceiling for a magnetic platform.
const maxCharge = 100.0

// ForceAt computes the force a magnetic platform exerts on a point.
// Outside the field radius (or with the field down) the force is zero and
// inField is false. Inside, the magnitude falls off as
// strength * (1 - (d/r)^2): maximal at the center, vanishing smoothly at the
// boundary. REPEL flips the direction.
func ForceAt(p *Platform, px, py float64) (force core.Vec2, inField bool) {
	if p == nil || !p.Magnetic || !p.FieldActive || p.Radius <= 0 || p.Strength <= 0 {
		return core.Vec2{}, false
	}

	cx := float64(p.X) + float64(p.W)/2
	cy := float64(p.Row)
	out := core.Vec2{X: px - cx, Y: py - cy}
	d := out.Len()
	if d > p.Radius {
		return core.Vec2{}, false
	}

	mag := p.Strength * (1 - (d/p.Radius)*(d/p.Radius))
	if d < 1e-9 {
		// Player exactly at the center: direction is undefined, push straight up.
		out = core.Vec2{X: 0, Y: -1}
		d = 1
	}

	// ATTRACT pulls the player toward the platform (against the outward vector).
	if p.Polarity == Attract {
		mag = -mag
	}
	return out.Scale(mag / d), true
}

// AddCharge raises a platform's charge, clamped to [0, 100], and stamps the
// chain timestamp. Negative amounts are rejected as a no-op.
func AddCharge(p *Platform, amount float64, nowMs int64) {
	if p == nil || !p.Magnetic || amount < 0 {
		return
	}
	p.Charge = math.Min(maxCharge, p.Charge+amount)
	p.LastChainMs = nowMs
}

// Discharge resets a platform's charge to zero, drops its field, and returns
// the released amount. The caller decides what the released charge is worth.
func Discharge(p *Platform) float64 {
	if p == nil || !p.Magnetic {
		return 0
	}
	released := p.Charge
	p.Charge = 0
	p.FieldActive = false
	return released
}

// CanChainWith reports whether a jump between two magnetic platforms counts
// as a chain link: either platform must have been charged within windowMs of now.
func CanChainWith(a, b *Platform, nowMs, windowMs int64) bool {
	if a == nil || b == nil || !a.Magnetic || !b.Magnetic {
		return false
	}
	if a.LastChainMs > 0 && nowMs-a.LastChainMs <= windowMs {
		return true
	}
	if b.LastChainMs > 0 && nowMs-b.LastChainMs <= windowMs {
		return true
	}
	return false
}

// MagnetEngine sums field forces on the player and tracks magnetic chains
// across landings.
type MagnetEngine struct {
	cfg config.MagnetConfig

	lastLanded    PlatformHandle
	hasLast       bool
	chainLen      int
	totalChains   int
	chargeFreed   float64
	reactivateTks uint64 // reactivate delay in ticks, derived from config
}

// NewMagnetEngine creates a magnet engine.
func NewMagnetEngine(cfg config.MagnetConfig, tickRate int) *MagnetEngine {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &MagnetEngine{
		cfg:           cfg,
		reactivateTks: uint64(cfg.ReactivateMs) * uint64(tickRate) / 1000,
	}
}

// Reset zeroes chain tracking between sessions.
func (e *MagnetEngine) Reset() {
	e.hasLast = false
	e.chainLen = 0
	e.totalChains = 0
	e.chargeFreed = 0
}

// TotalForce is the vector sum of every in-range field acting on the point.
// Overlapping fields stack by plain summation.
func (e *MagnetEngine) TotalForce(lvl *Level, px, py float64) core.Vec2 {
	var sum core.Vec2
	lvl.ForEach(func(_ PlatformHandle, p *Platform) {
		if f, in := ForceAt(p, px, py); in {
			sum = sum.Add(f)
		}
	})
	return sum
}

// OnLanding records a landing on a platform. If it extends a magnetic chain,
// charge transfers from the previous platform to this one, the drained field
// is scheduled for reactivation, and the resulting events are returned.
func (e *MagnetEngine) OnLanding(lvl *Level, h PlatformHandle, nowMs int64, nowTick uint64, sched *Scheduler) []Event {
	p, ok := lvl.At(h)
	if !ok || !p.Magnetic {
		return nil
	}

	var events []Event
	if e.hasLast && e.lastLanded != h {
		if prev, ok := lvl.At(e.lastLanded); ok && CanChainWith(prev, p, nowMs, e.cfg.ChainWindowMs) {
			released := Discharge(prev)
			e.chargeFreed += released
			e.chainLen++
			e.totalChains++

			AddCharge(p, released, nowMs)

			// Bring the drained field back after the configured delay. If the
			// platform scrolls out first the handle goes stale and the
			// callback is dropped.
			sched.After(nowTick, e.reactivateTks, e.lastLanded, func(l *Level, hh PlatformHandle) {
				if drained, ok := l.At(hh); ok {
					drained.FieldActive = true
				}
			})

			events = append(events, MagneticChainCreated{
				From:        e.lastLanded,
				To:          h,
				Length:      e.chainLen,
				TotalCharge: p.Charge,
			})
		} else {
			e.chainLen = 0
		}
	}

	AddCharge(p, e.cfg.LandCharge, nowMs)
	e.lastLanded = h
	e.hasLast = true
	return events
}

// ChainLength returns the current magnetic chain length.
func (e *MagnetEngine) ChainLength() int {
	return e.chainLen
}

// TotalChains returns the number of chain links made this session.
func (e *MagnetEngine) TotalChains() int {
	return e.totalChains
}

// ChargeReleased returns the total charge freed by discharges this session.
func (e *MagnetEngine) ChargeReleased() float64 {
	return e.chargeFreed
}
