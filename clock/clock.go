// Package clock provides a deterministic, single-threaded timer scheduler.
//
// A Clock stands in for "wait N milliseconds then resume" in game code. Time only
// moves when Advance is called (or when Run drives it from a wall clock ticker),
// which makes every timer sequence reproducible in tests.
package clock

import (
	"context"
	"time"

	"github.com/kamstrup/intmap"
)

// Timer identifies a scheduled callback. The zero Timer is never issued.
type Timer uint64

// Stats summarises clock activity.
type Stats struct {
	Now       time.Duration
	Pending   int
	Repeating int
	Groups    int
	Fired     int64
	Cancelled int64
}

type task struct {
	id       Timer
	seq      uint64
	deadline time.Duration
	interval time.Duration
	fn       func()
	group    *Group
}

// Clock owns a set of pending timers and a simulated current time.
type Clock struct {
	now       time.Duration
	tasks     *intmap.Map[Timer, *task]
	nextID    Timer
	nextSeq   uint64
	groups    int
	fired     int64
	cancelled int64
	advancing bool
}

// New creates a clock at time zero with no pending timers.
func New() *Clock {
	return &Clock{
		tasks: intmap.New[Timer, *task](64),
	}
}

// Now returns the simulated time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// After schedules fn to run once, d from now.
func (c *Clock) After(d time.Duration, fn func()) Timer {
	return c.schedule(d, 0, fn, nil)
}

// Every schedules fn to run every d, first after d.
func (c *Clock) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		panic("clock: Every requires a positive interval")
	}
	return c.schedule(d, d, fn, nil)
}

func (c *Clock) schedule(delay, interval time.Duration, fn func(), g *Group) Timer {
	if fn == nil {
		panic("clock: nil timer callback")
	}
	if delay < 0 {
		delay = 0
	}

	c.nextID++
	c.nextSeq++
	t := &task{
		id:       c.nextID,
		seq:      c.nextSeq,
		deadline: c.now + delay,
		interval: interval,
		fn:       fn,
		group:    g,
	}
	c.tasks.Put(t.id, t)
	if g != nil {
		g.timers.Add(t.id)
	}
	return t.id
}

// Pending reports whether timer t is still scheduled.
func (c *Clock) Pending(t Timer) bool {
	return c.tasks.Has(t)
}

// Stop cancels timer t. It reports whether the timer was pending.
func (c *Clock) Stop(t Timer) bool {
	tk, ok := c.tasks.Get(t)
	if !ok {
		return false
	}
	c.drop(tk)
	c.cancelled++
	return true
}

func (c *Clock) drop(tk *task) {
	c.tasks.Del(tk.id)
	if tk.group != nil {
		tk.group.timers.Del(tk.id)
	}
}

// CancelAll stops every pending timer, grouped or not.
func (c *Clock) CancelAll() {
	var all []*task
	c.tasks.ForEach(func(_ Timer, tk *task) bool {
		all = append(all, tk)
		return true
	})
	for _, tk := range all {
		c.drop(tk)
		c.cancelled++
	}
}

// Advance moves the clock forward by d, firing every timer that falls due in
// deadline order. Timers scheduled by callbacks fire within the same call when
// their deadline lies inside the window. A repeating timer is rescheduled only
// after its callback returns, so its invocations never overlap.
func (c *Clock) Advance(d time.Duration) {
	if c.advancing {
		panic("clock: Advance called from a timer callback")
	}
	c.advancing = true
	defer func() { c.advancing = false }()

	target := c.now + max(d, 0)
	for {
		tk := c.nextDue(target)
		if tk == nil {
			break
		}

		c.now = tk.deadline
		if tk.interval == 0 {
			c.drop(tk)
		}

		c.fired++
		tk.fn()

		if tk.interval > 0 && c.tasks.Has(tk.id) {
			c.nextSeq++
			tk.seq = c.nextSeq
			tk.deadline += tk.interval
		}
	}
	c.now = target
}

func (c *Clock) nextDue(target time.Duration) *task {
	var next *task
	c.tasks.ForEach(func(_ Timer, tk *task) bool {
		if tk.deadline > target {
			return true
		}
		if next == nil || tk.deadline < next.deadline || (tk.deadline == next.deadline && tk.seq < next.seq) {
			next = tk
		}
		return true
	})
	return next
}

// Run advances the clock from a wall clock ticker until ctx is cancelled.
func (c *Clock) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			c.Advance(dt)
		}
	}
}

// Stats returns a snapshot of the clock's counters.
func (c *Clock) Stats() Stats {
	stats := Stats{
		Now:       c.now,
		Pending:   c.tasks.Len(),
		Groups:    c.groups,
		Fired:     c.fired,
		Cancelled: c.cancelled,
	}
	c.tasks.ForEach(func(_ Timer, tk *task) bool {
		if tk.interval > 0 {
			stats.Repeating++
		}
		return true
	})
	return stats
}
