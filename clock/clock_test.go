package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/gridarcade/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterFiresOnce(t *testing.T) {
	c := clock.New()
	calls := 0
	timer := c.After(100*time.Millisecond, func() { calls++ })

	c.Advance(99 * time.Millisecond)
	assert.Equal(t, 0, calls)
	assert.True(t, c.Pending(timer))

	c.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, c.Pending(timer))

	c.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestEveryRepeats(t *testing.T) {
	c := clock.New()
	var at []time.Duration
	c.Every(100*time.Millisecond, func() { at = append(at, c.Now()) })

	c.Advance(350 * time.Millisecond)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}, at)
	assert.Equal(t, 350*time.Millisecond, c.Now())
}

func TestEveryRejectsNonPositiveInterval(t *testing.T) {
	c := clock.New()
	assert.Panics(t, func() { c.Every(0, func() {}) })
	assert.Panics(t, func() { c.NewGroup().Every(-time.Second, func() {}) })
}

func TestDeadlineOrdering(t *testing.T) {
	c := clock.New()
	var order []string
	c.After(30*time.Millisecond, func() { order = append(order, "c") })
	c.After(10*time.Millisecond, func() { order = append(order, "a") })
	c.After(20*time.Millisecond, func() { order = append(order, "b1") })
	c.After(20*time.Millisecond, func() { order = append(order, "b2") })

	c.Advance(time.Second)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
}

func TestStop(t *testing.T) {
	c := clock.New()
	calls := 0
	timer := c.Every(10*time.Millisecond, func() { calls++ })

	c.Advance(25 * time.Millisecond)
	require.Equal(t, 2, calls)

	assert.True(t, c.Stop(timer))
	assert.False(t, c.Stop(timer))

	c.Advance(time.Second)
	assert.Equal(t, 2, calls)
}

func TestCallbackStopsItself(t *testing.T) {
	c := clock.New()
	calls := 0
	var timer clock.Timer
	timer = c.Every(10*time.Millisecond, func() {
		calls++
		if calls == 3 {
			c.Stop(timer)
		}
	})

	c.Advance(time.Second)
	assert.Equal(t, 3, calls)
}

func TestCallbackSchedulesWithinWindow(t *testing.T) {
	c := clock.New()
	var order []time.Duration
	c.After(10*time.Millisecond, func() {
		order = append(order, c.Now())
		c.After(10*time.Millisecond, func() { order = append(order, c.Now()) })
	})

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, order)
}

func TestDelayThenRepeat(t *testing.T) {
	// the pattern used by held keys: one delay, then a steady interval
	c := clock.New()
	var fires []time.Duration
	var repeat clock.Timer
	c.After(200*time.Millisecond, func() {
		fires = append(fires, c.Now())
		repeat = c.Every(100*time.Millisecond, func() { fires = append(fires, c.Now()) })
	})

	c.Advance(450 * time.Millisecond)
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 300 * time.Millisecond, 400 * time.Millisecond}, fires)
	assert.True(t, c.Stop(repeat))
}

func TestAdvanceIsNotReentrant(t *testing.T) {
	c := clock.New()
	c.After(time.Millisecond, func() { c.Advance(time.Millisecond) })
	assert.Panics(t, func() { c.Advance(time.Second) })

	// the clock recovers for the next call
	calls := 0
	c.After(time.Millisecond, func() { calls++ })
	c.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestCancelAll(t *testing.T) {
	c := clock.New()
	calls := 0
	c.After(10*time.Millisecond, func() { calls++ })
	c.Every(10*time.Millisecond, func() { calls++ })
	c.NewGroup().After(10*time.Millisecond, func() { calls++ })

	c.CancelAll()
	c.Advance(time.Second)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, c.Stats().Pending)
}

func TestGroupCancel(t *testing.T) {
	c := clock.New()
	session := c.NewGroup()
	other := c.NewGroup()

	var fired []string
	session.After(10*time.Millisecond, func() { fired = append(fired, "session-once") })
	session.Every(10*time.Millisecond, func() { fired = append(fired, "session-every") })
	other.After(10*time.Millisecond, func() { fired = append(fired, "other") })
	assert.Equal(t, 2, session.Len())

	session.Cancel()
	assert.Equal(t, 0, session.Len())

	c.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"other"}, fired)

	// a cancelled group can schedule again
	session.After(10*time.Millisecond, func() { fired = append(fired, "again") })
	c.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"other", "again"}, fired)
}

func TestGroupForgetsFiredTimers(t *testing.T) {
	c := clock.New()
	g := c.NewGroup()
	timer := g.After(10*time.Millisecond, func() {})
	c.Advance(10 * time.Millisecond)

	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Stop(timer))
}

func TestGroupStopIgnoresForeignTimers(t *testing.T) {
	c := clock.New()
	g := c.NewGroup()
	foreign := c.After(time.Second, func() {})

	assert.False(t, g.Stop(foreign))
	assert.True(t, c.Pending(foreign))
}

func TestStats(t *testing.T) {
	c := clock.New()
	g := c.NewGroup()
	g.Every(10*time.Millisecond, func() {})
	stop := c.After(time.Second, func() {})
	c.After(5*time.Millisecond, func() {})

	c.Advance(20 * time.Millisecond)
	c.Stop(stop)

	stats := c.Stats()
	assert.Equal(t, 20*time.Millisecond, stats.Now)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Repeating)
	assert.Equal(t, 1, stats.Groups)
	assert.Equal(t, int64(3), stats.Fired)
	assert.Equal(t, int64(1), stats.Cancelled)
}

func TestRunStopsWithContext(t *testing.T) {
	c := clock.New()
	fired := false
	c.After(time.Millisecond, func() { fired = true })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	c.Run(ctx, 5*time.Millisecond)

	assert.True(t, fired)
	assert.Greater(t, c.Now(), time.Duration(0))
}
