package tower

import "testing"

func TestSchedulerFiresAtTick(t *testing.T) {
	lvl := &Level{}
	h := lvl.place(Platform{Row: 10, X: 1, W: 4})

	s := NewScheduler()
	fired := false
	s.After(100, 50, h, func(*Level, PlatformHandle) { fired = true })

	s.Update(149, lvl)
	if fired {
		t.Fatal("fired one tick early")
	}
	s.Update(150, lvl)
	if !fired {
		t.Fatal("should fire at the target tick")
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0 after firing", s.Pending())
	}

	// One-shot: does not fire again.
	fired = false
	s.Update(151, lvl)
	if fired {
		t.Error("entry fired twice")
	}
}

func TestSchedulerDropsStaleHandles(t *testing.T) {
	lvl := &Level{}
	h := lvl.place(Platform{Row: 30, X: 1, W: 4})

	s := NewScheduler()
	fired := false
	s.After(0, 10, h, func(*Level, PlatformHandle) { fired = true })

	// Platform scrolls out before the timer fires; its slot may be recycled.
	lvl.Prune(20)
	lvl.place(Platform{Row: 5, X: 1, W: 4})

	s.Update(10, lvl)
	if fired {
		t.Error("callback for a recycled slot must be dropped")
	}
}

func TestSchedulerFiringOrder(t *testing.T) {
	lvl := &Level{}
	h := lvl.place(Platform{Row: 10, X: 1, W: 4})

	s := NewScheduler()
	var order []int
	s.After(0, 20, h, func(*Level, PlatformHandle) { order = append(order, 2) })
	s.After(0, 10, h, func(*Level, PlatformHandle) { order = append(order, 1) })
	s.After(0, 20, h, func(*Level, PlatformHandle) { order = append(order, 3) })

	s.Update(25, lvl)
	if len(order) != 3 {
		t.Fatalf("fired %d entries, want 3", len(order))
	}
	for i, want := range []int{1, 2, 3} {
		if order[i] != want {
			t.Errorf("order[%d] = %d, want %d (fire tick, then insertion order)", i, order[i], want)
		}
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	lvl := &Level{}
	h := lvl.place(Platform{Row: 10, X: 1, W: 4})

	s := NewScheduler()
	fired := false
	s.After(0, 5, h, func(*Level, PlatformHandle) { fired = true })
	s.CancelAll()

	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0 after CancelAll", s.Pending())
	}
	s.Update(100, lvl)
	if fired {
		t.Error("cancelled entry fired")
	}
}
