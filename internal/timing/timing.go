// Package timing provides frame-polled timers. Every call takes the current
// time explicitly so callers can drive them from a render loop or a test.
package timing

import "time"

// Slot holds at most one pending deadline. Arming a slot cancels whatever
// was pending and replaces it.
type Slot struct {
	deadline time.Time
	armed    bool
	gen      uint64
}

// Arm schedules the slot to fire at deadline and returns the generation of
// the new arming. Earlier generations become stale.
func (s *Slot) Arm(deadline time.Time) uint64 {
	s.gen++
	s.deadline = deadline
	s.armed = true
	return s.gen
}

// Cancel discards the pending deadline, if any.
func (s *Slot) Cancel() {
	s.armed = false
}

// Pending reports whether a deadline is armed.
func (s *Slot) Pending() bool { return s.armed }

// Deadline returns the armed deadline. It is the zero time when idle.
func (s *Slot) Deadline() time.Time {
	if !s.armed {
		return time.Time{}
	}
	return s.deadline
}

// Due fires the slot if its deadline has passed. It reports true at most
// once per arming.
func (s *Slot) Due(now time.Time) bool {
	if !s.armed || now.Before(s.deadline) {
		return false
	}
	s.armed = false
	return true
}

// Claim fires the slot if gen is the current arming, regardless of the
// clock. Hosts that schedule their own wake-up per arming (tea.Tick) use it
// to drop wake-ups that were superseded.
func (s *Slot) Claim(gen uint64) bool {
	if !s.armed || gen != s.gen {
		return false
	}
	s.armed = false
	return true
}

// Debouncer collapses a burst of triggers into one trailing fire, Wait after
// the last trigger.
type Debouncer struct {
	Wait time.Duration
	slot Slot
}

// NewDebouncer returns a Debouncer with the given quiet period.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{Wait: wait}
}

// Trigger restarts the quiet period and returns its generation.
func (d *Debouncer) Trigger(now time.Time) uint64 {
	return d.slot.Arm(now.Add(d.Wait))
}

func (d *Debouncer) Pending() bool          { return d.slot.Pending() }
func (d *Debouncer) Due(now time.Time) bool { return d.slot.Due(now) }
func (d *Debouncer) Claim(gen uint64) bool  { return d.slot.Claim(gen) }
func (d *Debouncer) Cancel()                { d.slot.Cancel() }
func (d *Debouncer) Deadline() time.Time    { return d.slot.Deadline() }

// Throttle lets the first call through and ignores further calls until
// Window has elapsed.
type Throttle struct {
	Window time.Duration
	until  time.Time
}

// NewThrottle returns a leading-edge Throttle.
func NewThrottle(window time.Duration) *Throttle {
	return &Throttle{Window: window}
}

// Allow reports whether the caller may act now.
func (t *Throttle) Allow(now time.Time) bool {
	if now.Before(t.until) {
		return false
	}
	t.until = now.Add(t.Window)
	return true
}

// Reset reopens the throttle immediately.
func (t *Throttle) Reset() {
	t.until = time.Time{}
}
