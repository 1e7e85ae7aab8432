package tower

// Snapshot captures the observable game state for determinism testing and
// for collaborators that want a read-only view.
type Snapshot struct {
	Tick     uint64
	Score    int
	Height   int
	GameOver bool
	Paused   bool

	PlayerX, PlayerY   float64
	PlayerVX, PlayerVY float64
	Grounded           bool

	CameraY float64

	BounceWindowOpen bool
	TotalBounces     int
	PerfectBounces   int

	ChainLength     int
	ChainMultiplier float64
	ComboScore      int

	DeathLineActive bool
	DeathLineY      float64
	DeathLineDist   float64

	MagneticChain int
	Platforms     int
	Items         []ItemKind
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	total, perfect := g.bounce.Counts()
	dist, _ := g.deathLine.Danger(g.player.Bottom())

	return Snapshot{
		Tick:     g.tick,
		Score:    g.Score(),
		Height:   g.heightRows(),
		GameOver: g.gameOver,
		Paused:   g.paused,

		PlayerX:  g.player.X,
		PlayerY:  g.player.Y,
		PlayerVX: g.player.VX,
		PlayerVY: g.player.VY,
		Grounded: g.player.Grounded,

		CameraY: g.cameraY,

		BounceWindowOpen: g.bounce.Open(),
		TotalBounces:     total,
		PerfectBounces:   perfect,

		ChainLength:     g.combo.ChainLength(),
		ChainMultiplier: g.combo.Multiplier(),
		ComboScore:      g.combo.Stats().Committed,

		DeathLineActive: g.deathLine.Active(),
		DeathLineY:      g.deathLine.Y(),
		DeathLineDist:   dist,

		MagneticChain: g.magnet.ChainLength(),
		Platforms:     g.level.Count(),
		Items:         g.inv.Items(),
	}
}
