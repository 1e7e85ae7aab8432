package tower

import (
	"math"

	"github.com/TomNeyland/endless-tower/internal/config"
)

// ComboEvent is one scoring-eligible occurrence (wall bounce, magnetic chain
// link, climb milestone).
type ComboEvent struct {
	AtMs          int64
	Base          int
	ChainEligible bool
}

// ComboStats is the pure read-out of the combo engine.
type ComboStats struct {
	Committed    int // Score from finalized chains and non-chain events
	LongestChain int
	TotalChains  int
}

// ComboEngine aggregates scoring events into time-windowed chains. A chain
// grows while events keep arriving within the window; its multiplier is a
// capped, monotonic function of length. Chains finalize only on window lapse
// or session end; there is no "broken by wrong action" path.
type ComboEngine struct {
	cfg config.ComboConfig

	open         bool
	length       int
	runningTotal float64
	lastMs       int64

	committed int
	longest   int
	chains    int
}

// NewComboEngine creates a combo engine.
func NewComboEngine(cfg config.ComboConfig) *ComboEngine {
	return &ComboEngine{cfg: cfg}
}

// multiplierFor is the chain multiplier at a given length:
// min(MaxMultiplier, 1 + (length-1)*Step). Monotonic and capped.
func (e *ComboEngine) multiplierFor(length int) float64 {
	if length < 1 {
		return 1
	}
	return math.Min(e.cfg.MaxMultiplier, 1+float64(length-1)*e.cfg.Step)
}

// Multiplier returns the open chain's current multiplier (1 when no chain).
func (e *ComboEngine) Multiplier() float64 {
	if !e.open {
		return 1
	}
	return e.multiplierFor(e.length)
}

// ChainLength returns the open chain's length (0 when no chain).
func (e *ComboEngine) ChainLength() int {
	if !e.open {
		return 0
	}
	return e.length
}

// RecordEvent folds one scoring event into chain state. If the previous chain
// lapsed, it is finalized first and a ChainBroken event is returned.
// Non-chain-eligible events credit their base value directly without touching
// the chain.
func (e *ComboEngine) RecordEvent(ev ComboEvent) []Event {
	if !ev.ChainEligible {
		e.committed += ev.Base
		return nil
	}

	var events []Event
	if e.open && ev.AtMs-e.lastMs > e.cfg.WindowMs {
		events = append(events, e.finalize(false)...)
	}

	if !e.open {
		e.open = true
		e.length = 0
		e.runningTotal = 0
	}

	e.length++
	e.runningTotal += float64(ev.Base) * e.multiplierFor(e.length)
	e.lastMs = ev.AtMs
	return events
}

// Tick performs the periodic idle check: a chain whose window lapsed without
// a new event is finalized.
func (e *ComboEngine) Tick(nowMs int64) []Event {
	if e.open && nowMs-e.lastMs > e.cfg.WindowMs {
		return e.finalize(false)
	}
	return nil
}

// Finalize commits the open chain at session end.
func (e *ComboEngine) Finalize() []Event {
	if !e.open {
		return nil
	}
	return e.finalize(true)
}

// Abort drops the open chain without crediting it. Used by session reset:
// nothing beyond what was already committed may score.
func (e *ComboEngine) Abort() {
	e.open = false
	e.length = 0
	e.runningTotal = 0
}

// finalize commits the open chain: running total into score, length into
// longest-if-greater, chain counter up.
func (e *ComboEngine) finalize(sessionEnd bool) []Event {
	delta := int(e.runningTotal + 0.5)
	e.committed += delta
	if e.length > e.longest {
		e.longest = e.length
	}
	e.chains++

	length := e.length
	e.open = false
	e.length = 0
	e.runningTotal = 0

	if sessionEnd {
		return []Event{ChainCompleted{Length: length, ScoreDelta: delta}}
	}
	return []Event{ChainBroken{Length: length, ScoreDelta: delta}}
}

// Stats returns the committed score, longest chain and chain count.
// Pure read, no side effects.
func (e *ComboEngine) Stats() ComboStats {
	return ComboStats{
		Committed:    e.committed,
		LongestChain: e.longest,
		TotalChains:  e.chains,
	}
}
