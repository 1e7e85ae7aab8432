package tower

import (
	"math"
	"testing"

	"github.com/TomNeyland/endless-tower/internal/config"
	"github.com/TomNeyland/endless-tower/internal/core"
)

func testMagnetConfig() config.MagnetConfig {
	return config.MagnetConfig{
		ChainWindowMs: 2000,
		ReactivateMs:  3000,
		LandCharge:    25,
		ChainPoints:   40,
	}
}

func magneticPlatform(row int) Platform {
	return Platform{
		Row:         row,
		X:           5,
		W:           4,
		Magnetic:    true,
		FieldActive: true,
		Strength:    1.0,
		Radius:      5,
	}
}

func TestForceAtFalloff(t *testing.T) {
	p := magneticPlatform(10) // center at (7, 10)

	// Directly above the center at distance 4: magnitude 1*(1-(4/5)^2) = 0.36,
	// attract pulls the point down toward the platform.
	f, in := ForceAt(&p, 7, 6)
	if !in {
		t.Fatal("point at distance 4 should be inside radius 5")
	}
	if math.Abs(f.X) > 1e-9 {
		t.Errorf("force.X = %v, want 0", f.X)
	}
	if math.Abs(f.Y-0.36) > 1e-9 {
		t.Errorf("force.Y = %v, want 0.36 (toward platform)", f.Y)
	}

	// Closer is stronger.
	near, _ := ForceAt(&p, 7, 9)
	if near.Y <= f.Y {
		t.Errorf("force at distance 1 (%v) should exceed force at distance 4 (%v)", near.Y, f.Y)
	}
}

func TestForceAtOutsideRadius(t *testing.T) {
	p := magneticPlatform(10)

	f, in := ForceAt(&p, 7, 4) // distance 6 > radius 5
	if in || f != (core.Vec2{}) {
		t.Errorf("outside radius: got (%v, %v), want (zero vector, false)", f, in)
	}

	// Boundary itself still counts, with zero magnitude.
	edge, inEdge := ForceAt(&p, 7, 5)
	if !inEdge {
		t.Error("point exactly at the radius should be in-field")
	}
	if edge.Len() > 1e-9 {
		t.Errorf("force at the boundary = %v, want 0", edge)
	}
}

func TestForceAtRepelFlipsDirection(t *testing.T) {
	p := magneticPlatform(10)
	p.Polarity = Repel

	f, in := ForceAt(&p, 7, 6)
	if !in {
		t.Fatal("expected in-field")
	}
	if f.Y >= 0 {
		t.Errorf("repel should push the point away (up), force.Y = %v", f.Y)
	}
}

func TestForceAtInactiveField(t *testing.T) {
	p := magneticPlatform(10)
	p.FieldActive = false

	if _, in := ForceAt(&p, 7, 9); in {
		t.Error("a discharged field must exert no force")
	}

	q := Platform{Row: 10, X: 5, W: 4} // not magnetic at all
	if _, in := ForceAt(&q, 7, 9); in {
		t.Error("a non-magnetic platform must exert no force")
	}
}

func TestChargeClampAndDischarge(t *testing.T) {
	p := magneticPlatform(10)

	AddCharge(&p, 60, 100)
	AddCharge(&p, 60, 200)
	if p.Charge != 100 {
		t.Errorf("charge = %v, want clamped to 100", p.Charge)
	}
	if p.LastChainMs != 200 {
		t.Errorf("LastChainMs = %d, want 200", p.LastChainMs)
	}

	// Negative amounts are rejected.
	AddCharge(&p, -10, 300)
	if p.Charge != 100 || p.LastChainMs != 200 {
		t.Error("negative charge amount must be a no-op")
	}

	released := Discharge(&p)
	if released != 100 {
		t.Errorf("released = %v, want 100", released)
	}
	if p.Charge != 0 {
		t.Errorf("charge after discharge = %v, want 0", p.Charge)
	}
	if p.FieldActive {
		t.Error("discharge must drop the field")
	}
}

func TestCanChainWithWindow(t *testing.T) {
	a := magneticPlatform(20)
	b := magneticPlatform(10)
	a.LastChainMs = 100

	if !CanChainWith(&a, &b, 2000, 2000) { // gap 1900 <= 2000
		t.Error("landing 1900ms after the charge should chain")
	}
	if CanChainWith(&a, &b, 2200, 2000) { // gap 2100 > 2000
		t.Error("landing 2100ms after the charge should not chain")
	}

	// Non-magnetic partners never chain.
	c := Platform{Row: 5, X: 5, W: 4}
	if CanChainWith(&a, &c, 2000, 2000) {
		t.Error("chaining onto a non-magnetic platform should fail")
	}
}

func TestTotalForceSumsOverlappingFields(t *testing.T) {
	lvl := &Level{}
	a := magneticPlatform(10)
	b := magneticPlatform(14)
	lvl.place(a)
	lvl.place(b)

	// Point between the two platforms, inside both radii.
	px, py := 7.0, 12.0
	fa, _ := ForceAt(&a, px, py)
	fb, _ := ForceAt(&b, px, py)
	want := fa.Add(fb)

	e := NewMagnetEngine(testMagnetConfig(), 60)
	got := e.TotalForce(lvl, px, py)
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("TotalForce = %v, want plain sum %v", got, want)
	}
}

func TestMagnetChainTransfersCharge(t *testing.T) {
	lvl := &Level{}
	ha := lvl.place(magneticPlatform(20))
	hb := lvl.place(magneticPlatform(10))

	e := NewMagnetEngine(testMagnetConfig(), 60)
	sched := NewScheduler()

	// First landing: no previous platform, just the landing charge.
	events := e.OnLanding(lvl, ha, 1000, 60, sched)
	if len(events) != 0 {
		t.Fatalf("first landing should not chain, got %d events", len(events))
	}
	a, _ := lvl.At(ha)
	if a.Charge != 25 {
		t.Errorf("charge after first landing = %v, want 25", a.Charge)
	}

	// Second landing 1500ms later: inside the chain window.
	events = e.OnLanding(lvl, hb, 2500, 150, sched)
	if len(events) != 1 {
		t.Fatalf("expected a chain event, got %d", len(events))
	}
	chain, ok := events[0].(MagneticChainCreated)
	if !ok {
		t.Fatalf("expected MagneticChainCreated, got %T", events[0])
	}
	if chain.Length != 1 {
		t.Errorf("chain length = %d, want 1", chain.Length)
	}

	// Charge moved from the first platform to the second.
	a, _ = lvl.At(ha)
	b, _ := lvl.At(hb)
	if a.Charge != 0 {
		t.Errorf("source charge = %v, want 0 after transfer", a.Charge)
	}
	if a.FieldActive {
		t.Error("drained field should be down")
	}
	if b.Charge != 50 { // 25 transferred + 25 landing charge
		t.Errorf("destination charge = %v, want 50", b.Charge)
	}
	if e.ChargeReleased() != 25 {
		t.Errorf("charge released = %v, want 25", e.ChargeReleased())
	}

	// Reactivation fires after ReactivateMs worth of ticks (180 at 60fps).
	sched.Update(150+179, lvl)
	a, _ = lvl.At(ha)
	if a.FieldActive {
		t.Error("field should still be down one tick early")
	}
	sched.Update(150+180, lvl)
	a, _ = lvl.At(ha)
	if !a.FieldActive {
		t.Error("field should be reactivated after the delay")
	}
}

func TestMagnetChainBreaksOutsideWindow(t *testing.T) {
	lvl := &Level{}
	ha := lvl.place(magneticPlatform(20))
	hb := lvl.place(magneticPlatform(10))

	e := NewMagnetEngine(testMagnetConfig(), 60)
	sched := NewScheduler()

	e.OnLanding(lvl, ha, 1000, 60, sched)

	// 2500ms between landings: past the 2000ms window.
	events := e.OnLanding(lvl, hb, 3500, 210, sched)
	if len(events) != 0 {
		t.Fatalf("landing outside the window must not chain, got %d events", len(events))
	}
	if e.ChainLength() != 0 {
		t.Errorf("chain length = %d, want 0", e.ChainLength())
	}

	a, _ := lvl.At(ha)
	if a.Charge != 25 {
		t.Errorf("source keeps its charge on a broken chain, got %v", a.Charge)
	}
}
