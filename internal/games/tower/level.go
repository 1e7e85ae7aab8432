package tower

import (
	"math/rand"

	"github.com/TomNeyland/endless-tower/internal/config"
)

// Polarity is the direction of a magnetic platform's field.
type Polarity int

const (
	Attract Polarity = iota
	Repel
)

// String returns a human-readable polarity name.
func (p Polarity) String() string {
	if p == Repel {
		return "repel"
	}
	return "attract"
}

// PlatformHandle is a generation-checked reference to a platform slot.
// Holding a handle never keeps a platform alive: resolving it after the
// platform scrolled out (and the slot was recycled) fails the generation
// check and yields nothing.
type PlatformHandle struct {
	Index int
	Gen   uint32
}

// Platform is one rung of the tower. Magnetic platforms additionally carry a
// force field and a charge level.
type Platform struct {
	Row  int // World row; smaller is higher
	X, W int // Column extent

	Magnetic    bool
	Polarity    Polarity
	Strength    float64
	Radius      float64
	Charge      float64 // 0..100, reset only by discharge
	LastChainMs int64   // Timestamp of the last charge, for chain eligibility
	FieldActive bool    // Field drops on discharge until reactivated

	Item ItemKind // Pickup sitting on this platform, ItemNone if empty

	inUse bool
	gen   uint32
}

// Level owns the platform table and generates the tower as the camera climbs.
// Platforms are stored in recyclable slots so handles stay cheap and
// generation-checked.
type Level struct {
	rng   *rand.Rand
	cfg   config.LevelConfig
	items config.ItemsConfig
	diff  *config.DifficultyManager

	width   int // Shaft inner width in columns (walls excluded)
	left    int // Leftmost playable column
	slots   []Platform
	nextRow int // Row the next generated platform will occupy
}

// NewLevel creates a tower generator for a shaft of the given inner extent.
func NewLevel(cfg config.LevelConfig, items config.ItemsConfig, diff *config.DifficultyManager) *Level {
	return &Level{
		cfg:   cfg,
		items: items,
		diff:  diff,
	}
}

// Reset clears the table and seeds generation starting just above startRow.
func (l *Level) Reset(seed int64, left, width, startRow int) {
	l.rng = rand.New(rand.NewSource(seed))
	l.left = left
	l.width = width
	l.slots = l.slots[:0]
	l.nextRow = startRow

	// Ground platform spanning the full shaft so the session starts grounded.
	l.place(Platform{Row: startRow, X: left, W: width})
	l.advance(0, 0)
}

// place stores a platform in a free slot (or appends) and returns its handle.
func (l *Level) place(p Platform) PlatformHandle {
	for i := range l.slots {
		if !l.slots[i].inUse {
			gen := l.slots[i].gen + 1
			p.inUse = true
			p.gen = gen
			l.slots[i] = p
			return PlatformHandle{Index: i, Gen: gen}
		}
	}
	p.inUse = true
	p.gen = 1
	l.slots = append(l.slots, p)
	return PlatformHandle{Index: len(l.slots) - 1, Gen: 1}
}

// advance computes the next rung row from the current difficulty level.
func (l *Level) advance(height, ticks int) {
	minSp := l.cfg.RungSpacingMin
	maxSp := l.cfg.RungSpacingMax
	if l.diff != nil {
		minSp = l.diff.RungSpacing(minSp, height, ticks)
		maxSp = l.diff.RungSpacing(maxSp, height, ticks)
	}
	if maxSp < minSp {
		maxSp = minSp
	}
	l.nextRow -= minSp + l.rng.Intn(maxSp-minSp+1)
}

// EnsureRows generates platforms until the tower reaches upToRow (exclusive,
// remembering that higher means smaller row numbers).
func (l *Level) EnsureRows(upToRow, height, ticks int) {
	for l.nextRow > upToRow {
		l.spawnRung(height, ticks)
		l.advance(height, ticks)
	}
}

// spawnRung places one platform at nextRow with random extent, magnetism and
// possibly an item pickup.
func (l *Level) spawnRung(height, ticks int) {
	w := l.cfg.PlatformWidth
	if w < 2 {
		w = 2
	}
	if w > l.width {
		w = l.width
	}
	x := l.left + l.rng.Intn(l.width-w+1)

	p := Platform{Row: l.nextRow, X: x, W: w}

	magChance := l.cfg.MagneticChance
	if l.diff != nil {
		magChance = l.diff.MagneticChance(magChance, height, ticks)
	}
	if l.rng.Float64() < magChance {
		p.Magnetic = true
		p.FieldActive = true
		p.Strength = l.cfg.FieldStrength * (0.75 + l.rng.Float64()*0.5)
		p.Radius = l.cfg.FieldRadius
		if l.rng.Float64() < 0.35 {
			p.Polarity = Repel
		}
	} else if l.rng.Float64() < l.items.SpawnChance {
		p.Item = randomItem(l.rng)
	}

	l.place(p)
}

// Prune frees every platform below belowRow (scrolled out of play). Freed
// slots fail the inUse check, so stale handles stop resolving immediately;
// the generation bump happens when place reuses the slot.
func (l *Level) Prune(belowRow int) {
	for i := range l.slots {
		if l.slots[i].inUse && l.slots[i].Row > belowRow {
			l.slots[i].inUse = false
		}
	}
}

// At resolves a handle. Returns nil, false if the slot is free or the
// generation does not match.
func (l *Level) At(h PlatformHandle) (*Platform, bool) {
	if h.Index < 0 || h.Index >= len(l.slots) {
		return nil, false
	}
	p := &l.slots[h.Index]
	if !p.inUse || p.gen != h.Gen {
		return nil, false
	}
	return p, true
}

// ForEach visits every live platform in slot order.
func (l *Level) ForEach(fn func(PlatformHandle, *Platform)) {
	for i := range l.slots {
		if l.slots[i].inUse {
			fn(PlatformHandle{Index: i, Gen: l.slots[i].gen}, &l.slots[i])
		}
	}
}

// Count returns the number of live platforms.
func (l *Level) Count() int {
	n := 0
	for i := range l.slots {
		if l.slots[i].inUse {
			n++
		}
	}
	return n
}

// FindLanding returns the platform the player crossed while falling from
// prevBottom to newBottom this tick, if any. Platforms are one-way: only a
// downward crossing with horizontal overlap counts.
func (l *Level) FindLanding(prevBottom, newBottom, x, w float64) (PlatformHandle, bool) {
	best := PlatformHandle{}
	bestRow := 0
	found := false
	for i := range l.slots {
		p := &l.slots[i]
		if !p.inUse {
			continue
		}
		row := float64(p.Row)
		if prevBottom > row || newBottom < row {
			continue
		}
		if x+w <= float64(p.X) || x >= float64(p.X+p.W) {
			continue
		}
		if !found || p.Row < bestRow {
			best = PlatformHandle{Index: i, Gen: p.gen}
			bestRow = p.Row
			found = true
		}
	}
	return best, found
}

// Supported reports whether a platform still holds the player standing at
// bottom with the given horizontal extent.
func (l *Level) Supported(bottom, x, w float64) bool {
	for i := range l.slots {
		p := &l.slots[i]
		if !p.inUse {
			continue
		}
		if bottom != float64(p.Row) {
			continue
		}
		if x+w > float64(p.X) && x < float64(p.X+p.W) {
			return true
		}
	}
	return false
}
