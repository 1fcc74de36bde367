package input

import "github.com/plus3/gridarcade/geom"

// Direction is one of the four cardinal drag directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Classify reports whether delta moved further than precision in direction d.
// Screen y grows downward, so Up means a negative y delta.
func (d Direction) Classify(delta geom.Vec, precision float64) bool {
	switch d {
	case Up:
		return float64(delta.Y) < -precision
	case Down:
		return float64(delta.Y) > precision
	case Left:
		return float64(delta.X) < -precision
	case Right:
		return float64(delta.X) > precision
	default:
		return false
	}
}

// GestureTracker follows one pointer device from press to release: where the
// drag started, where the pointer is now, and whether the gesture has already
// been claimed by a direction or consumed by a repeat timer.
type GestureTracker struct {
	pos      geom.Vec
	start    geom.Vec
	pressed  bool
	claimed  bool
	dir      Direction
	consumed bool
}

// Press starts a gesture at pos. A press during a gesture, such as a second
// mouse button, keeps the gesture as it is.
func (g *GestureTracker) Press(pos geom.Vec) {
	if g.pressed {
		return
	}
	g.pressed = true
	g.start = pos
	g.pos = pos
	g.claimed = false
	g.consumed = false
}

// Move records the current pointer position.
func (g *GestureTracker) Move(pos geom.Vec) {
	g.pos = pos
}

// Release ends the gesture. Every direction's claim is reset the same way.
func (g *GestureTracker) Release() {
	g.pressed = false
	g.start = geom.Vec{}
	g.claimed = false
	g.dir = Up
	g.consumed = false
}

// Pressed reports whether a gesture is in progress.
func (g *GestureTracker) Pressed() bool {
	return g.pressed
}

// Start returns the position of the press that began the gesture.
func (g *GestureTracker) Start() geom.Vec {
	return g.start
}

// Position returns the last known pointer position.
func (g *GestureTracker) Position() geom.Vec {
	return g.pos
}

// Delta returns the movement since the press.
func (g *GestureTracker) Delta() geom.Vec {
	return g.pos.Sub(g.start)
}

// Claim commits the gesture to dir. Only the first claim of a gesture wins.
func (g *GestureTracker) Claim(dir Direction) bool {
	if !g.pressed || g.claimed {
		return false
	}
	g.claimed = true
	g.dir = dir
	g.consumed = true
	return true
}

// Claimed returns the direction the gesture committed to, if any.
func (g *GestureTracker) Claimed() (Direction, bool) {
	return g.dir, g.claimed
}

// Consume marks the press as used up so that a tap must not also fire on release.
func (g *GestureTracker) Consume() {
	g.consumed = true
}

// Consumed reports whether the press was claimed or consumed.
func (g *GestureTracker) Consumed() bool {
	return g.consumed
}
