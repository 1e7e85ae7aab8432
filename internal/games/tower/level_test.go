package tower

import (
	"testing"

	"github.com/TomNeyland/endless-tower/internal/config"
)

func testLevelConfig() config.LevelConfig {
	return config.LevelConfig{
		RungSpacingMin: 3,
		RungSpacingMax: 5,
		PlatformWidth:  8,
		MagneticChance: 0.25,
		FieldStrength:  0.06,
		FieldRadius:    7,
	}
}

func newTestLevel(seed int64) *Level {
	l := NewLevel(testLevelConfig(), config.ItemsConfig{Slots: 3, SpawnChance: 0.12}, nil)
	l.Reset(seed, 1, 78, 0)
	return l
}

func TestLevelGeneration(t *testing.T) {
	l := newTestLevel(42)
	l.EnsureRows(-100, 0, 0)

	if l.Count() < 20 {
		t.Fatalf("expected at least 20 platforms over 100 rows, got %d", l.Count())
	}

	// Every rung sits inside the shaft, spaced 3 to 5 rows apart.
	rows := map[int]bool{}
	l.ForEach(func(_ PlatformHandle, p *Platform) {
		if p.X < 1 || p.X+p.W > 79 {
			t.Errorf("platform at row %d extends outside the shaft: x=%d w=%d", p.Row, p.X, p.W)
		}
		rows[p.Row] = true
	})

	prev := 0 // ground platform
	for row := -1; row >= -100; row-- {
		if !rows[row] {
			continue
		}
		gap := prev - row
		if gap < 3 || gap > 5 {
			t.Errorf("gap between rows %d and %d is %d, want 3..5", prev, row, gap)
		}
		prev = row
	}
}

func TestLevelDeterministicForSeed(t *testing.T) {
	l1 := newTestLevel(7)
	l2 := newTestLevel(7)
	l1.EnsureRows(-60, 0, 0)
	l2.EnsureRows(-60, 0, 0)

	var a, b []Platform
	l1.ForEach(func(_ PlatformHandle, p *Platform) { a = append(a, *p) })
	l2.ForEach(func(_ PlatformHandle, p *Platform) { b = append(b, *p) })

	if len(a) != len(b) {
		t.Fatalf("platform counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Row != b[i].Row || a[i].X != b[i].X || a[i].Magnetic != b[i].Magnetic {
			t.Fatalf("platform %d differs between identically seeded levels", i)
		}
	}
}

func TestLevelFindLanding(t *testing.T) {
	l := &Level{}
	l.place(Platform{Row: 10, X: 5, W: 4})

	// Falling through the platform row with horizontal overlap: lands.
	h, ok := l.FindLanding(9, 11, 6, 1)
	if !ok {
		t.Fatal("expected a landing")
	}
	if p, _ := l.At(h); p.Row != 10 {
		t.Errorf("landed on row %d, want 10", p.Row)
	}

	// No horizontal overlap: falls past.
	if _, ok := l.FindLanding(9, 11, 20, 1); ok {
		t.Error("landing without horizontal overlap")
	}

	// Moving upward through the platform (one-way): no landing.
	if _, ok := l.FindLanding(11, 9, 6, 1); ok {
		t.Error("platforms must be one-way; upward pass is not a landing")
	}
}

func TestLevelFindLandingPicksHighest(t *testing.T) {
	l := &Level{}
	l.place(Platform{Row: 10, X: 5, W: 4})
	l.place(Platform{Row: 12, X: 5, W: 4})

	// A fall crossing both rows lands on the higher one first.
	h, ok := l.FindLanding(9, 13, 6, 1)
	if !ok {
		t.Fatal("expected a landing")
	}
	if p, _ := l.At(h); p.Row != 10 {
		t.Errorf("landed on row %d, want the higher row 10", p.Row)
	}
}

func TestLevelSupported(t *testing.T) {
	l := &Level{}
	l.place(Platform{Row: 10, X: 5, W: 4})

	if !l.Supported(10, 6, 1) {
		t.Error("standing on the platform should be supported")
	}
	if l.Supported(10, 20, 1) {
		t.Error("standing beside the platform should not be supported")
	}
	if l.Supported(9, 6, 1) {
		t.Error("hovering above the platform should not be supported")
	}
}

func TestLevelPruneInvalidatesHandles(t *testing.T) {
	l := &Level{}
	h := l.place(Platform{Row: 30, X: 5, W: 4})

	if _, ok := l.At(h); !ok {
		t.Fatal("fresh handle should resolve")
	}

	l.Prune(20) // everything below row 20 scrolls out

	if _, ok := l.At(h); ok {
		t.Fatal("handle to a pruned platform should not resolve")
	}

	// Slot reuse bumps the generation; the old handle stays dead.
	h2 := l.place(Platform{Row: 5, X: 5, W: 4})
	if h2.Index != h.Index {
		t.Fatalf("expected slot reuse, got index %d vs %d", h2.Index, h.Index)
	}
	if h2.Gen == h.Gen {
		t.Error("recycled slot must carry a new generation")
	}
	if _, ok := l.At(h); ok {
		t.Error("stale handle resolves after slot reuse")
	}
	if _, ok := l.At(h2); !ok {
		t.Error("new handle should resolve")
	}
}
