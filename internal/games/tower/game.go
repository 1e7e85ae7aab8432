// Package tower implements a vertical platformer: the player climbs an
// endless shaft of platforms while a death line rises from below, scoring
// through height gain, timed wall bounces, combo chains and magnetic
// platform chains.
//
// The package is pure simulation logic driven by a fixed-step Step call; it
// has no terminal, audio or storage dependencies. Each tick advances the
// components in a fixed order: kinematics, magnetic forces, the wall-bounce
// state machine, the combo engine, then the death-line check.
package tower

import (
	"github.com/TomNeyland/endless-tower/internal/config"
	"github.com/TomNeyland/endless-tower/internal/core"
)

// Rows the shield rescue lifts the player above the line.
const rescueRows = 12.0

// Package-level settings applied to the next created game, set by the CLI
// before construction.
var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom config file path for subsequently created games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for subsequently created games.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// Game implements the tower game logic.
type Game struct {
	cfg  core.RuntimeConfig
	tcfg config.TowerConfig
	diff *config.DifficultyManager

	tick   uint64
	player PlayerKinematics

	level     *Level
	magnet    *MagnetEngine
	bounce    *BounceMachine
	combo     *ComboEngine
	deathLine *DeathLine
	sched     *Scheduler
	inv       *Inventory

	shaftLeft  int // Leftmost playable column in world space
	shaftWidth int // Playable columns between the walls

	cameraY    float64 // World row at the top of the screen
	startY     float64
	milestones int

	gameOver  bool
	paused    bool
	lastStats SessionStats

	consumers  []Notifier
	tickEvents []Event
}

// New creates a new tower game instance.
func New() *Game {
	tcfg, err := config.LoadTower(configPath)
	if err != nil {
		tcfg = config.DefaultTowerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTowerPreset(&tcfg, config.DifficultyPreset(difficultyPreset))
	}

	g := &Game{tcfg: tcfg}
	g.diff = config.NewDifficultyManager(tcfg.Difficulty)
	if config.IsFixedPreset(config.DifficultyPreset(difficultyPreset)) {
		g.diff.SetEnabled(false)
	}
	return g
}

// NewWithConfig creates a game with an explicit config, bypassing file
// loading. Used by tests and the SSH server.
func NewWithConfig(tcfg config.TowerConfig) *Game {
	g := &Game{tcfg: tcfg}
	g.diff = config.NewDifficultyManager(tcfg.Difficulty)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tower"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Endless Tower"
}

// Subscribe appends a notification consumer. Consumers receive every event
// synchronously, in registration order, during the tick that emits it.
func (g *Game) Subscribe(n Notifier) {
	g.consumers = append(g.consumers, n)
}

// Reset initializes or restarts the game. Any open timing window closes
// without an outcome, the open combo chain is dropped without credit, the
// death line returns to inactive with a fresh baseline, all platform charge
// is zeroed (the tower is regenerated), and every pending timer is cancelled.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg

	g.shaftLeft = 1
	g.shaftWidth = core.Max(cfg.ScreenW-2, 10)

	g.tick = 0
	g.milestones = 0
	g.gameOver = false
	g.paused = false
	g.tickEvents = nil

	if g.sched == nil {
		g.sched = NewScheduler()
	}
	g.sched.CancelAll()

	if g.level == nil {
		g.level = NewLevel(g.tcfg.Level, g.tcfg.Items, g.diff)
	}
	startRow := 0
	g.level.Reset(cfg.Seed, g.shaftLeft, g.shaftWidth, startRow)

	g.player = PlayerKinematics{
		X:        float64(g.shaftLeft + g.shaftWidth/2),
		Y:        float64(startRow) - playerH,
		Facing:   1,
		Grounded: true,
	}
	g.startY = g.player.Y
	g.cameraY = float64(startRow) - float64(cfg.ScreenH) + 3

	if g.magnet == nil {
		g.magnet = NewMagnetEngine(g.tcfg.Magnet, cfg.TickRate)
	}
	g.magnet.Reset()

	if g.bounce == nil {
		g.bounce = NewBounceMachine(g.tcfg.Bounce)
	}
	g.bounce.Reset()

	g.combo = NewComboEngine(g.tcfg.Combo)

	if g.deathLine == nil {
		g.deathLine = NewDeathLine(g.tcfg.DeathLine)
	}
	g.deathLine.Reset(g.player.Y)

	if g.inv == nil {
		g.inv = NewInventory(g.tcfg.Items.Slots)
	}
	g.inv.Reset()

	g.generateAhead()
}

// nowMs returns the game clock in milliseconds. Tick-derived so the
// simulation is deterministic for a given seed and input script.
func (g *Game) nowMs() int64 {
	rate := g.cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	return int64(g.tick) * 1000 / int64(rate)
}

// heightRows returns the rows climbed so far.
func (g *Game) heightRows() int {
	return int(g.deathLine.HeightClimbed())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tickEvents = g.tickEvents[:0]

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	nowMs := g.nowMs()

	// Delayed one-shots (magnetic field reactivation) fire before physics so
	// a returning field affects this tick's forces.
	g.sched.Update(g.tick, g.level)

	// 1+2. Kinematics with magnetic forces folded in.
	jumpPressed := in.Has(core.ActionJump)
	bounceAttempt := jumpPressed && g.bounce.Open()
	contact, hitWall, landedOn, didLand := g.stepPhysics(in, nowMs)

	// 3. Wall-bounce state machine: contacts from this tick's collision are
	// visible to the machine before the combo engine runs.
	if hitWall {
		g.bounce.OnContact(contact)
		if jumpPressed && !bounceAttempt {
			// Same-tick contact plus input counts as an attempt.
			bounceAttempt = true
		}
	}
	if out, closed := g.bounce.Update(nowMs, bounceAttempt); closed {
		if out.Quality != BounceMissed {
			g.player.VX = out.NewVX
			g.player.Grounded = false
			g.recordCombo(ComboEvent{AtMs: nowMs, Base: out.Points, ChainEligible: true})
		}
		g.emit(WallBounceScored{
			Quality: out.Quality,
			Side:    out.Side,
			NewVX:   out.NewVX,
			X:       out.X,
			Y:       out.Y,
		})
	}

	// Landing side effects: magnetic chains and item pickup.
	if didLand {
		for _, ev := range g.magnet.OnLanding(g.level, landedOn, nowMs, g.tick, g.sched) {
			g.emit(ev)
			if _, ok := ev.(MagneticChainCreated); ok {
				g.recordCombo(ComboEvent{AtMs: nowMs, Base: g.tcfg.Magnet.ChainPoints, ChainEligible: true})
			}
		}
		g.collectItem(landedOn)
	}

	if in.Has(core.ActionUseItem) {
		g.useItem()
	}

	// 4. Combo engine idle check.
	g.deathLine.NoteHeight(g.player.Y)
	g.awardMilestones(nowMs)
	for _, ev := range g.combo.Tick(nowMs) {
		g.emit(ev)
	}

	// Camera follows the climb and never scrolls back down.
	g.updateCamera()
	g.generateAhead()

	// 5. Death-line pursuit.
	g.stepDeathLine(nowMs)

	// Falling out of view with no line active still ends the session.
	if !g.gameOver && !g.deathLine.Active() && g.player.Y > g.cameraBottom()+2 {
		g.endSession(GameOver{
			Cause:      CauseFellBehind,
			SurvivalMs: nowMs,
			Height:     g.heightRows(),
			X:          g.player.X,
			Y:          g.player.Y,
		})
	}

	return core.StepResult{State: g.State()}
}

// stepDeathLine runs the pursuit update, consuming a shield on lethal
// contact if the player holds one.
func (g *Game) stepDeathLine(nowMs int64) {
	speed := g.diff.LineSpeed(g.tcfg.DeathLine.Speed, g.heightRows(), int(g.tick))

	if g.deathLine.WouldKill(g.player.Bottom()) && g.inv.Take(ItemShield) {
		// Rescue: lift the player clear of the line instead of dying.
		g.player.Y = g.deathLine.Y() - rescueRows - playerH
		g.player.VY = 0
		g.player.Grounded = false
		g.emit(ItemUsed{Kind: ItemShield})
		g.updateCamera()
	}

	for _, ev := range g.deathLine.Update(nowMs, g.player.Bottom(), g.cameraBottom(), speed) {
		if over, ok := ev.(GameOver); ok {
			over.X = g.player.X
			g.endSession(over)
			continue
		}
		g.emit(ev)
	}
}

// endSession finalizes the combo chain, freezes session stats and delivers
// the game-over notification. Idempotent: later ticks are no-ops.
func (g *Game) endSession(over GameOver) {
	if g.gameOver {
		return
	}
	for _, ev := range g.combo.Finalize() {
		g.emit(ev)
	}
	g.gameOver = true
	g.lastStats = g.SessionStats()
	g.lastStats.SurvivalMs = over.SurvivalMs
	g.emit(over)
}

// recordCombo routes a scoring event into the combo engine and republishes
// any chain-finalization events it produced.
func (g *Game) recordCombo(ev ComboEvent) {
	for _, out := range g.combo.RecordEvent(ev) {
		g.emit(out)
	}
}

// awardMilestones emits a milestone (and a chain-eligible combo event) every
// configured number of rows climbed.
func (g *Game) awardMilestones(nowMs int64) {
	rows := g.tcfg.Score.MilestoneRows
	if rows <= 0 {
		return
	}
	for (g.milestones+1)*rows <= g.heightRows() {
		g.milestones++
		g.emit(MilestoneReached{Rows: g.milestones * rows})
		g.recordCombo(ComboEvent{AtMs: nowMs, Base: g.tcfg.Score.MilestonePoints, ChainEligible: true})
	}
}

// collectItem picks up whatever pickup sits on the landed platform.
func (g *Game) collectItem(h PlatformHandle) {
	p, ok := g.level.At(h)
	if !ok || p.Item == ItemNone {
		return
	}
	kind := p.Item
	p.Item = ItemNone
	replaced := g.inv.Add(kind)
	g.emit(ItemCollected{Kind: kind, Replaced: replaced})
}

// useItem consumes the oldest usable item. Shields are passive (consumed
// automatically on lethal contact), so they cycle to the back of the
// inventory instead of being spent here.
func (g *Game) useItem() {
	for n := g.inv.Len(); n > 0; n-- {
		k, ok := g.inv.UseOldest()
		if !ok {
			return
		}
		if k == ItemShield {
			g.inv.Add(k)
			continue
		}
		switch k {
		case ItemBoost:
			g.player.VY = g.tcfg.Items.BoostImpulse
			g.player.Grounded = false
		case ItemSpark:
			g.sparkNearestMagnet()
		}
		g.emit(ItemUsed{Kind: k})
		return
	}
}

// sparkNearestMagnet charges the closest active magnetic platform.
func (g *Game) sparkNearestMagnet() {
	var (
		best     *Platform
		bestDist float64
	)
	px, py := g.player.X, g.player.Y
	g.level.ForEach(func(_ PlatformHandle, p *Platform) {
		if !p.Magnetic {
			return
		}
		d := core.Dist(px, py, float64(p.X)+float64(p.W)/2, float64(p.Row))
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	})
	if best != nil {
		AddCharge(best, 50, g.nowMs())
		best.FieldActive = true
	}
}

// updateCamera moves the view up with the player (never down) and applies
// the auto-scroll once the pursuit is active.
func (g *Game) updateCamera() {
	if g.deathLine.Active() {
		speed := g.diff.LineSpeed(g.tcfg.DeathLine.Speed, g.heightRows(), int(g.tick))
		g.cameraY -= speed
	}
	target := g.player.Y - float64(g.cfg.ScreenH)*0.4
	if target < g.cameraY {
		g.cameraY = target
	}
}

// cameraBottom returns the bottom edge of the visible playfield in world rows.
func (g *Game) cameraBottom() float64 {
	return g.cameraY + float64(g.cfg.ScreenH)
}

// generateAhead keeps the tower built one screen above the view and prunes
// platforms that scrolled out below, invalidating their handles.
func (g *Game) generateAhead() {
	g.level.EnsureRows(int(g.cameraY)-g.cfg.ScreenH, g.heightRows(), int(g.tick))
	g.level.Prune(int(g.cameraBottom()) + 6)
}

// emit buffers an event for this tick and fans it out to every subscribed
// consumer in registration order.
func (g *Game) emit(ev Event) {
	g.tickEvents = append(g.tickEvents, ev)
	for _, n := range g.consumers {
		n.Notify(ev)
	}
}

// Events returns the events emitted during the most recent Step call, in
// emission order. The slice is reused across ticks.
func (g *Game) Events() []Event {
	return g.tickEvents
}

// Score is the current total: height component plus committed combo score.
func (g *Game) Score() int {
	return g.heightRows()*g.tcfg.Score.PointsPerRow + g.combo.Stats().Committed
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// FinalStats returns the stats frozen at game over. Zero value before then.
func (g *Game) FinalStats() SessionStats {
	return g.lastStats
}
