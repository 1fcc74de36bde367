package clock

import (
	"time"

	"github.com/kamstrup/intmap"
)

// Group is a cancellation scope: every timer created through it can be
// stopped with a single Cancel call. A game session holds one Group so that
// ending the session can never leave a stray callback behind.
type Group struct {
	clock  *Clock
	timers *intmap.Set[Timer]
}

// NewGroup creates an empty cancellation scope on c.
func (c *Clock) NewGroup() *Group {
	c.groups++
	return &Group{
		clock:  c,
		timers: intmap.NewSet[Timer](16),
	}
}

// Clock returns the clock the group schedules on.
func (g *Group) Clock() *Clock {
	return g.clock
}

// After schedules a one-shot timer in the group.
func (g *Group) After(d time.Duration, fn func()) Timer {
	return g.clock.schedule(d, 0, fn, g)
}

// Every schedules a repeating timer in the group.
func (g *Group) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("clock: Every requires a positive interval")
	}
	return g.clock.schedule(d, d, fn, g)
}

// Stop cancels one timer. It reports whether the timer was pending.
func (g *Group) Stop(t Timer) bool {
	if !g.timers.Has(t) {
		return false
	}
	return g.clock.Stop(t)
}

// Len returns the number of pending timers in the group.
func (g *Group) Len() int {
	return g.timers.Len()
}

// Cancel stops every pending timer in the group. The group stays usable.
func (g *Group) Cancel() {
	ids := make([]Timer, 0, g.timers.Len())
	g.timers.ForEach(func(t Timer) bool {
		ids = append(ids, t)
		return true
	})
	for _, t := range ids {
		g.clock.Stop(t)
	}
}
