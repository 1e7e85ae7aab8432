package tower

import (
	"math"

	"github.com/TomNeyland/endless-tower/internal/config"
)

// WallSide identifies which shaft wall the player touched.
type WallSide int

const (
	WallLeft WallSide = iota
	WallRight
)

// String returns a human-readable wall side.
func (s WallSide) String() string {
	if s == WallRight {
		return "right"
	}
	return "left"
}

// BounceQuality classifies how quickly the player reacted after wall contact.
type BounceQuality int

const (
	BouncePerfect BounceQuality = iota
	BounceGood
	BounceLate
	BounceMissed
)

// String returns a human-readable quality tier.
func (q BounceQuality) String() string {
	switch q {
	case BouncePerfect:
		return "perfect"
	case BounceGood:
		return "good"
	case BounceLate:
		return "late"
	default:
		return "missed"
	}
}

// WallContact describes one wall touch: side, position, time and the
// horizontal velocity the player carried into the wall.
type WallContact struct {
	Side WallSide
	X, Y float64
	AtMs int64
	VX   float64
}

// BounceOutcome is the single terminal result of one timing window.
type BounceOutcome struct {
	Quality    BounceQuality
	Multiplier float64
	Points     int     // Combo base value; zero for MISSED
	NewVX      float64 // Velocity to apply; zero for MISSED
	Side       WallSide
	X, Y       float64
}

// BounceMachine is the wall-bounce timing state machine. A wall contact opens
// a window; a bounce input (or the window timing out) closes it with exactly
// one outcome. Contacts while a window is already open are ignored.
type BounceMachine struct {
	cfg config.BounceConfig

	open    bool
	contact WallContact

	total   int // Successful bounces (any non-missed tier)
	perfect int
}

// NewBounceMachine creates a bounce machine.
func NewBounceMachine(cfg config.BounceConfig) *BounceMachine {
	return &BounceMachine{cfg: cfg}
}

// Reset closes any open window without producing an outcome and zeroes the
// session counters.
func (m *BounceMachine) Reset() {
	m.open = false
	m.total = 0
	m.perfect = 0
}

// Open reports whether a timing window is currently open.
func (m *BounceMachine) Open() bool {
	return m.open
}

// OnContact opens a timing window for a wall touch. A contact arriving while
// a window is open is a no-op, not an error.
func (m *BounceMachine) OnContact(c WallContact) {
	if m.open {
		return
	}
	m.contact = c
	m.open = true
}

// Update advances the machine one tick. bouncePressed is whether the bounce
// input transitioned to pressed this tick. Returns an outcome and true when
// the window closed this tick.
func (m *BounceMachine) Update(nowMs int64, bouncePressed bool) (BounceOutcome, bool) {
	if !m.open {
		return BounceOutcome{}, false
	}

	if bouncePressed {
		elapsed := nowMs - m.contact.AtMs
		out := m.classify(elapsed)
		m.open = false
		m.total++
		if out.Quality == BouncePerfect {
			m.perfect++
		}
		return out, true
	}

	if nowMs-m.contact.AtMs > m.cfg.WindowMs {
		// Timed out: MISSED, no velocity change, not scoring-eligible.
		m.open = false
		return BounceOutcome{
			Quality: BounceMissed,
			Side:    m.contact.Side,
			X:       m.contact.X,
			Y:       m.contact.Y,
		}, true
	}

	return BounceOutcome{}, false
}

// classify maps reaction time to a tier and computes the reflected velocity.
func (m *BounceMachine) classify(elapsedMs int64) BounceOutcome {
	var (
		quality BounceQuality
		mult    float64
		points  int
	)
	switch {
	case elapsedMs <= m.cfg.PerfectMs:
		quality, mult, points = BouncePerfect, m.cfg.PerfectMult, m.cfg.PerfectPoints
	case elapsedMs <= m.cfg.GoodMs:
		quality, mult, points = BounceGood, m.cfg.GoodMult, m.cfg.GoodPoints
	default:
		quality, mult, points = BounceLate, m.cfg.LateMult, m.cfg.LatePoints
	}

	// Reflect the contact velocity away from the wall. The sign guard covers
	// contacts recorded with a zero or already-reflected velocity.
	newVX := -m.contact.VX * mult
	away := math.Abs(newVX)
	if away < 1e-9 {
		away = mult // Minimal push-off even from a dead stop
	}
	if m.contact.Side == WallLeft {
		newVX = away
	} else {
		newVX = -away
	}

	return BounceOutcome{
		Quality:    quality,
		Multiplier: mult,
		Points:     points,
		NewVX:      newVX,
		Side:       m.contact.Side,
		X:          m.contact.X,
		Y:          m.contact.Y,
	}
}

// Counts returns the session bounce counters (total non-missed, perfect subset).
func (m *BounceMachine) Counts() (total, perfect int) {
	return m.total, m.perfect
}
