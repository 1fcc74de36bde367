package input

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DragPriority is evaluated before ButtonPriority so that a drag claiming
	// the pointer wins over a click or tap of the same gesture.
	DragPriority   = 10
	ButtonPriority = 100

	// DefaultPrecision is the distance in pixels a drag must travel before it
	// is classified.
	DefaultPrecision = 50.0
)

type matcherKind int

const (
	kindKey matcherKind = iota
	kindButton
	kindDrag
)

// Matcher is a stateless predicate over raw events with a stable identity and
// a dispatch priority. Two matchers built from the same arguments have the
// same ID and collapse into one dispatcher entry.
type Matcher struct {
	id        string
	stateKey  string
	kind      matcherKind
	priority  int
	key       string
	device    Device
	button    int
	dir       Direction
	precision float64
	trigger   Trigger
}

// Key matches a keyboard key by name or code, case-insensitively. A nil
// trigger fires on release.
func Key(key string, t Trigger) Matcher {
	key = strings.ToLower(key)
	t = defaultTrigger(t)
	m := Matcher{
		stateKey: "keyboard_" + key,
		kind:     kindKey,
		priority: ButtonPriority,
		key:      key,
		trigger:  t,
	}
	return m.identify()
}

// MouseButton matches a mouse button press and release. A nil trigger fires on release.
func MouseButton(button int, t Trigger) Matcher {
	return pointerButton(Mouse, button, t)
}

// Tap matches a touch press and release. A nil trigger fires on release.
func Tap(t Trigger) Matcher {
	return pointerButton(Touch, 0, t)
}

func pointerButton(device Device, button int, t Trigger) Matcher {
	if button < 0 {
		panic("input: negative pointer button")
	}
	t = defaultTrigger(t)
	m := Matcher{
		stateKey: device.String() + "_" + strconv.Itoa(button),
		kind:     kindButton,
		priority: ButtonPriority,
		device:   device,
		button:   button,
		trigger:  t,
	}
	return m.identify()
}

// DragOption configures MouseDrag and Swipe matchers.
type DragOption func(*Matcher)

// Precision sets the distance a drag must travel before it is classified.
func Precision(px float64) DragOption {
	return func(m *Matcher) {
		if px < 0 {
			panic("input: negative drag precision")
		}
		m.precision = px
	}
}

// RepeatWhileHeld keeps firing a claimed drag after delay, every interval,
// until the pointer is released.
func RepeatWhileHeld(delay, interval time.Duration) DragOption {
	return func(m *Matcher) {
		r := Repeat{Delay: delay, Interval: interval}
		r.validate()
		m.trigger = r
	}
}

// MouseDrag matches a mouse drag in direction dir.
func MouseDrag(dir Direction, opts ...DragOption) Matcher {
	return pointerDrag(Mouse, dir, opts)
}

// Swipe matches a touch swipe in direction dir.
func Swipe(dir Direction, opts ...DragOption) Matcher {
	return pointerDrag(Touch, dir, opts)
}

func pointerDrag(device Device, dir Direction, opts []DragOption) Matcher {
	if dir < Up || dir > Right {
		panic(fmt.Sprintf("input: unknown drag direction %d", dir))
	}
	m := Matcher{
		stateKey:  device.String() + "_drag",
		kind:      kindDrag,
		priority:  DragPriority,
		device:    device,
		dir:       dir,
		precision: DefaultPrecision,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m.identify()
}

func defaultTrigger(t Trigger) Trigger {
	if t == nil {
		return Edge{Type: EdgeUp}
	}
	t.validate()
	return t
}

// WithPriority returns a copy of m evaluated at priority p. Lower runs first.
func (m Matcher) WithPriority(p int) Matcher {
	m.priority = p
	return m.identify()
}

func (m Matcher) identify() Matcher {
	var b strings.Builder
	switch m.kind {
	case kindKey, kindButton:
		b.WriteString(m.stateKey)
	case kindDrag:
		b.WriteString(m.stateKey)
		b.WriteString("_" + m.dir.String())
		b.WriteString("|precision:" + strconv.FormatFloat(m.precision, 'g', -1, 64))
	}
	if m.trigger != nil {
		b.WriteString("|" + m.trigger.signature())
	}
	b.WriteString("|p" + strconv.Itoa(m.priority))
	m.id = b.String()
	return m
}

// ID returns the stable identity of the matcher.
func (m Matcher) ID() string {
	return m.id
}

// Priority returns the dispatch priority. Lower values are evaluated first.
func (m Matcher) Priority() int {
	return m.priority
}

// Trigger returns the configured trigger, nil for a drag without repeat.
func (m Matcher) Trigger() Trigger {
	return m.trigger
}

// Matches reports whether ev is an event this matcher cares about. It does not
// consult or change any dispatcher state.
func (m Matcher) Matches(ev Event) bool {
	switch e := ev.(type) {
	case KeyEvent:
		if m.kind != kindKey || e.Repeat {
			return false
		}
		return strings.ToLower(e.Key) == m.key || strings.ToLower(e.Code) == m.key
	case PointerEvent:
		switch m.kind {
		case kindButton:
			return e.Device == m.device && e.Button == m.button && e.Action != PointerMove
		case kindDrag:
			return e.Device == m.device
		}
	}
	return false
}

func (m Matcher) String() string {
	return m.id
}
