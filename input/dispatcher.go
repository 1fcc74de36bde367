package input

import (
	"log/slog"
	"slices"
	"time"

	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/geom"
)

type entry struct {
	matcher Matcher
	seq     int
}

// Dispatcher evaluates registered matchers against raw events in priority
// order and fires the callbacks linked to their bindings. All timers it starts
// belong to one clock.Group, so Clear cancels every pending repeat at once.
type Dispatcher struct {
	clock  *clock.Clock
	timers *clock.Group
	logger *slog.Logger

	entries   map[string]*entry
	nextSeq   int
	sorted    []*entry
	sortValid bool

	bindings  map[string][]string
	callbacks map[string]func()

	holds     map[string]time.Duration
	running   map[string]clock.Timer
	blacklist map[string]bool
	gestures  [deviceCount]GestureTracker

	// generation changes on Clear so an in-flight dispatch pass can tell that
	// the state it was iterating has been torn down.
	generation uint64
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for binding and lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a dispatcher whose timers run on clk.
func NewDispatcher(clk *clock.Clock, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		clock:  clk,
		timers: clk.NewGroup(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.reset()
	return d
}

func (d *Dispatcher) reset() {
	d.entries = make(map[string]*entry)
	d.sorted = nil
	d.sortValid = false
	d.bindings = make(map[string][]string)
	d.callbacks = make(map[string]func())
	d.holds = make(map[string]time.Duration)
	d.running = make(map[string]clock.Timer)
	d.blacklist = make(map[string]bool)
	for i := range d.gestures {
		d.gestures[i].Release()
	}
}

// Handle processes one raw event. Matchers are evaluated in ascending priority,
// ties in registration order. A panicking callback is not recovered.
func (d *Dispatcher) Handle(ev Event) {
	pe, isPointer := ev.(PointerEvent)
	if isPointer {
		g := d.gesture(pe.Device)
		switch pe.Action {
		case PointerDown:
			g.Press(pe.Pos)
		case PointerMove, PointerUp:
			g.Move(pe.Pos)
		}
	}

	gen := d.generation
	var released []string

	for _, e := range d.byPriority() {
		if d.generation != gen {
			return
		}
		m := e.matcher
		if len(d.bindings[m.id]) == 0 || !m.Matches(ev) {
			continue
		}

		switch m.kind {
		case kindKey:
			ke := ev.(KeyEvent)
			if d.handleButton(m, ke.Action == KeyDown, nil) {
				released = append(released, m.stateKey)
			}
		case kindButton:
			if pe.Action == PointerDown {
				d.handleButton(m, true, d.gesture(pe.Device))
			} else if d.handleButton(m, false, d.gesture(pe.Device)) {
				released = append(released, m.stateKey)
			}
		case kindDrag:
			d.handleDrag(m, pe)
		}
	}

	if d.generation != gen {
		return
	}

	// The black-list is lifted only after every matcher saw the release, so a
	// discrete up binding cannot fire after a repeat regardless of bind order.
	for _, key := range released {
		delete(d.blacklist, key)
	}

	if isPointer && pe.Action == PointerUp {
		d.gesture(pe.Device).Release()
	}
}

// handleButton runs the edge/hold/repeat machine for keys and pointer buttons.
// g is nil for keys. It reports whether the event was a release.
func (d *Dispatcher) handleButton(m Matcher, down bool, g *GestureTracker) bool {
	consumed := g != nil && g.Consumed()

	if down {
		if consumed {
			return false
		}
		switch t := m.trigger.(type) {
		case Edge:
			if t.onDown() && !d.blacklist[m.stateKey] {
				d.fire(m.id)
			}
		case Hold:
			d.holds[m.id] = d.clock.Now()
		case Repeat:
			if !d.blacklist[m.stateKey] {
				d.arm(m, t, g)
			}
		}
		return false
	}

	d.disarm(m.id)
	switch t := m.trigger.(type) {
	case Edge:
		if t.onUp() && !consumed && !d.blacklist[m.stateKey] {
			d.fire(m.id)
		}
	case Hold:
		if start, ok := d.holds[m.id]; ok {
			delete(d.holds, m.id)
			if !consumed && d.clock.Now()-start >= t.Threshold {
				d.fire(m.id)
			}
		}
	}
	return true
}

// arm schedules the delay timer of a Repeat trigger. When it fires the binding
// fires once, an interval timer takes over, and the state key is black-listed
// so the matching release does not also fire a discrete action.
func (d *Dispatcher) arm(m Matcher, t Repeat, g *GestureTracker) {
	d.disarm(m.id)
	id, key := m.id, m.stateKey
	d.running[id] = d.timers.After(t.delay(), func() {
		delete(d.running, id)
		d.blacklist[key] = true
		if g != nil {
			if g.Consumed() {
				return
			}
			g.Consume()
		}
		d.running[id] = d.timers.Every(t.Interval, func() { d.fire(id) })
		d.fire(id)
	})
}

func (d *Dispatcher) disarm(id string) {
	if t, ok := d.running[id]; ok {
		d.timers.Stop(t)
		delete(d.running, id)
	}
}

// handleDrag runs the WaitingForDrag -> Claimed machine. The first direction
// that classifies the movement claims the whole gesture until release.
func (d *Dispatcher) handleDrag(m Matcher, ev PointerEvent) {
	g := d.gesture(m.device)

	switch ev.Action {
	case PointerMove:
		if !g.Pressed() || !m.dir.Classify(g.Delta(), m.precision) {
			return
		}
		if !g.Claim(m.dir) {
			return
		}
		if t, ok := m.trigger.(Repeat); ok {
			id := m.id
			d.disarm(id)
			d.running[id] = d.timers.After(t.delay(), func() {
				d.running[id] = d.timers.Every(t.Interval, func() { d.fire(id) })
				d.fire(id)
			})
		}
		d.fire(m.id)
	case PointerUp:
		d.disarm(m.id)
	}
}

func (d *Dispatcher) byPriority() []*entry {
	if d.sortValid {
		return d.sorted
	}

	sorted := make([]*entry, 0, len(d.entries))
	for _, e := range d.entries {
		sorted = append(sorted, e)
	}
	slices.SortFunc(sorted, func(a, b *entry) int {
		if a.matcher.priority != b.matcher.priority {
			return a.matcher.priority - b.matcher.priority
		}
		return a.seq - b.seq
	})

	d.sorted = sorted
	d.sortValid = true
	return sorted
}

func (d *Dispatcher) gesture(device Device) *GestureTracker {
	if device < 0 || device >= deviceCount {
		panic("input: unknown pointer device")
	}
	return &d.gestures[device]
}

// MousePosition returns the last known mouse position.
func (d *Dispatcher) MousePosition() geom.Vec {
	return d.gestures[Mouse].Position()
}

// TouchPosition returns the current touch position while a finger is down.
func (d *Dispatcher) TouchPosition() (geom.Vec, bool) {
	g := &d.gestures[Touch]
	return g.Position(), g.Pressed()
}
