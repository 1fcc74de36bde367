// Package input turns raw keyboard, mouse and touch events into named game
// actions.
//
// Raw events are matched against Matchers (stateless predicates with a stable
// identity and a priority). Matchers are bound to symbolic binding names, and
// binding names are linked to callbacks. The Dispatcher owns all of the
// stateful parts: press/release edges, hold durations, delayed repeat timers
// and drag/swipe gesture claims.
package input

import "github.com/plus3/gridarcade/geom"

// Event is a raw device event delivered by the host. It is either a KeyEvent
// or a PointerEvent.
type Event interface {
	isEvent()
}

// KeyAction distinguishes key presses from releases.
type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
)

// KeyEvent is a keyboard transition. Key is the produced key name ("a",
// "ArrowLeft", "Escape") and Code the physical key code ("KeyA", "ArrowLeft").
// Repeat marks auto-repeat events generated by the OS while a key is held.
type KeyEvent struct {
	Action KeyAction
	Key    string
	Code   string
	Repeat bool
}

func (KeyEvent) isEvent() {}

// Device is the kind of pointing device behind a PointerEvent.
type Device int

const (
	Mouse Device = iota
	Touch

	deviceCount
)

func (d Device) String() string {
	switch d {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	default:
		return "unknown"
	}
}

// PointerAction is the phase of a pointer event.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
)

// PointerEvent is a mouse or touch event in screen coordinates. Button follows
// the DOM numbering: 0 primary, 1 middle, 2 secondary. Touches use button 0.
type PointerEvent struct {
	Action PointerAction
	Device Device
	Button int
	Pos    geom.Vec
}

func (PointerEvent) isEvent() {}
