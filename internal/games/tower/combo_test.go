package tower

import (
	"math"
	"testing"

	"github.com/TomNeyland/endless-tower/internal/config"
)

func testComboConfig() config.ComboConfig {
	return config.ComboConfig{
		WindowMs:      600,
		Step:          0.2,
		MaxMultiplier: 4.0,
	}
}

func TestComboChainGrowth(t *testing.T) {
	e := NewComboEngine(testComboConfig())

	// Three base-10 events inside the window: multipliers 1.0, 1.2, 1.4.
	e.RecordEvent(ComboEvent{AtMs: 0, Base: 10, ChainEligible: true})
	e.RecordEvent(ComboEvent{AtMs: 300, Base: 10, ChainEligible: true})
	e.RecordEvent(ComboEvent{AtMs: 550, Base: 10, ChainEligible: true})

	if e.ChainLength() != 3 {
		t.Errorf("chain length = %d, want 3", e.ChainLength())
	}
	if math.Abs(e.Multiplier()-1.4) > 1e-9 {
		t.Errorf("multiplier = %v, want 1.4", e.Multiplier())
	}

	// Nothing committed while the chain is open.
	if got := e.Stats().Committed; got != 0 {
		t.Errorf("committed before finalization = %d, want 0", got)
	}

	// Window lapses: 10*1.0 + 10*1.2 + 10*1.4 = 36.
	events := e.Tick(550 + 601)
	if len(events) != 1 {
		t.Fatalf("expected 1 finalization event, got %d", len(events))
	}
	broken, ok := events[0].(ChainBroken)
	if !ok {
		t.Fatalf("expected ChainBroken, got %T", events[0])
	}
	if broken.Length != 3 {
		t.Errorf("ChainBroken.Length = %d, want 3", broken.Length)
	}
	if broken.ScoreDelta != 36 {
		t.Errorf("ChainBroken.ScoreDelta = %d, want 36", broken.ScoreDelta)
	}

	stats := e.Stats()
	if stats.Committed != 36 {
		t.Errorf("committed = %d, want 36", stats.Committed)
	}
	if stats.LongestChain != 3 {
		t.Errorf("longest = %d, want 3", stats.LongestChain)
	}
	if stats.TotalChains != 1 {
		t.Errorf("total chains = %d, want 1", stats.TotalChains)
	}
}

func TestComboMultiplierCapped(t *testing.T) {
	cfg := testComboConfig()
	cfg.MaxMultiplier = 1.5
	e := NewComboEngine(cfg)

	prev := 0.0
	for i := 0; i < 10; i++ {
		e.RecordEvent(ComboEvent{AtMs: int64(i) * 100, Base: 5, ChainEligible: true})
		m := e.Multiplier()
		if m < prev {
			t.Fatalf("multiplier decreased: %v after %v", m, prev)
		}
		if m > 1.5 {
			t.Fatalf("multiplier %v exceeds cap 1.5", m)
		}
		prev = m
	}
	if prev != 1.5 {
		t.Errorf("multiplier after 10 links = %v, want cap 1.5", prev)
	}
}

func TestComboLapseStartsNewChain(t *testing.T) {
	e := NewComboEngine(testComboConfig())

	e.RecordEvent(ComboEvent{AtMs: 0, Base: 10, ChainEligible: true})

	// Next event past the window finalizes the old chain and starts fresh.
	events := e.RecordEvent(ComboEvent{AtMs: 700, Base: 10, ChainEligible: true})
	if len(events) != 1 {
		t.Fatalf("expected old chain to break, got %d events", len(events))
	}
	if _, ok := events[0].(ChainBroken); !ok {
		t.Fatalf("expected ChainBroken, got %T", events[0])
	}
	if e.ChainLength() != 1 {
		t.Errorf("new chain length = %d, want 1", e.ChainLength())
	}
	if e.Stats().Committed != 10 {
		t.Errorf("committed = %d, want 10 from the broken chain", e.Stats().Committed)
	}
}

func TestComboNonEligibleCommitsDirectly(t *testing.T) {
	e := NewComboEngine(testComboConfig())

	e.RecordEvent(ComboEvent{AtMs: 0, Base: 10, ChainEligible: true})
	e.RecordEvent(ComboEvent{AtMs: 100, Base: 7, ChainEligible: false})

	// Direct credit, chain untouched.
	if e.Stats().Committed != 7 {
		t.Errorf("committed = %d, want 7", e.Stats().Committed)
	}
	if e.ChainLength() != 1 {
		t.Errorf("chain length = %d, want 1", e.ChainLength())
	}
}

func TestComboFinalizeAtSessionEnd(t *testing.T) {
	e := NewComboEngine(testComboConfig())

	e.RecordEvent(ComboEvent{AtMs: 0, Base: 10, ChainEligible: true})
	e.RecordEvent(ComboEvent{AtMs: 200, Base: 10, ChainEligible: true})

	events := e.Finalize()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	done, ok := events[0].(ChainCompleted)
	if !ok {
		t.Fatalf("expected ChainCompleted, got %T", events[0])
	}
	if done.Length != 2 {
		t.Errorf("length = %d, want 2", done.Length)
	}
	if done.ScoreDelta != 22 { // 10*1.0 + 10*1.2
		t.Errorf("delta = %d, want 22", done.ScoreDelta)
	}

	// No open chain left.
	if e.Finalize() != nil {
		t.Error("second Finalize should be a no-op")
	}
}

func TestComboAbortDropsOpenChain(t *testing.T) {
	e := NewComboEngine(testComboConfig())

	e.RecordEvent(ComboEvent{AtMs: 0, Base: 100, ChainEligible: true})
	e.Abort()

	if e.ChainLength() != 0 {
		t.Errorf("chain length after abort = %d, want 0", e.ChainLength())
	}
	if e.Stats().Committed != 0 {
		t.Errorf("aborted chain must not score, committed = %d", e.Stats().Committed)
	}
	if e.Stats().TotalChains != 0 {
		t.Errorf("aborted chain must not count, chains = %d", e.Stats().TotalChains)
	}
}
