package tower

import "math"

// SessionStats is the final reduction of one session, computed at game end
// and compared against the persisted best record.
type SessionStats struct {
	Height         int   // Rows climbed
	SurvivalMs     int64 // Session duration
	TotalScore     int
	HeightScore    int
	ComboScore     int
	LongestChain   int
	TotalChains    int
	PerfectBounces int
	TotalBounces   int
	MagneticChains int
	ChargeReleased float64
	ClosestCall    float64 // Closest approach to the death line, rows; -1 if never active
}

// SessionStats reduces the current component state into final totals.
// Safe to call at any time; authoritative once the session is over (the open
// combo chain is finalized at game over before this is read).
func (g *Game) SessionStats() SessionStats {
	comboStats := g.combo.Stats()
	total, perfect := g.bounce.Counts()

	height := int(g.deathLine.HeightClimbed())
	heightScore := height * g.tcfg.Score.PointsPerRow
	comboScore := comboStats.Committed

	closest := g.deathLine.ClosestApproach()
	if math.IsInf(closest, 1) {
		closest = -1
	}

	return SessionStats{
		Height:         height,
		SurvivalMs:     g.nowMs(),
		TotalScore:     heightScore + comboScore,
		HeightScore:    heightScore,
		ComboScore:     comboScore,
		LongestChain:   comboStats.LongestChain,
		TotalChains:    comboStats.TotalChains,
		PerfectBounces: perfect,
		TotalBounces:   total,
		MagneticChains: g.magnet.TotalChains(),
		ChargeReleased: g.magnet.ChargeReleased(),
		ClosestCall:    closest,
	}
}
