package tower

import "sort"

// timerEntry is a pending one-shot callback bound to a platform handle.
type timerEntry struct {
	fireTick uint64
	seq      uint64
	handle   PlatformHandle
	fn       func(*Level, PlatformHandle)
}

// Scheduler runs delayed one-shot callbacks inside the simulation loop.
// Entries are keyed by fire tick plus a generation-checked platform handle:
// if the platform was destroyed (or recycled) before the entry fires, the
// callback is silently dropped instead of touching a dead entity.
type Scheduler struct {
	entries []timerEntry
	seq     uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once, delayTicks after nowTick, bound to handle.
// A zero delay fires on the next Update.
func (s *Scheduler) After(nowTick, delayTicks uint64, h PlatformHandle, fn func(*Level, PlatformHandle)) {
	s.seq++
	s.entries = append(s.entries, timerEntry{
		fireTick: nowTick + delayTicks,
		seq:      s.seq,
		handle:   h,
		fn:       fn,
	})
}

// Update fires all entries due at nowTick, in (fireTick, insertion) order.
// Entries whose handle generation no longer resolves are dropped without
// invoking the callback.
func (s *Scheduler) Update(nowTick uint64, lvl *Level) {
	if len(s.entries) == 0 {
		return
	}

	var due, rest []timerEntry
	for _, e := range s.entries {
		if e.fireTick <= nowTick {
			due = append(due, e)
		} else {
			rest = append(rest, e)
		}
	}
	if len(due) == 0 {
		return
	}
	s.entries = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].fireTick != due[j].fireTick {
			return due[i].fireTick < due[j].fireTick
		}
		return due[i].seq < due[j].seq
	})

	for _, e := range due {
		if _, ok := lvl.At(e.handle); !ok {
			continue // stale generation: the platform is gone
		}
		e.fn(lvl, e.handle)
	}
}

// Pending returns the number of scheduled entries.
func (s *Scheduler) Pending() int {
	return len(s.entries)
}

// CancelAll drops every pending entry. Called on session reset so that no
// timer from the old session can fire into the new one.
func (s *Scheduler) CancelAll() {
	s.entries = s.entries[:0]
}
