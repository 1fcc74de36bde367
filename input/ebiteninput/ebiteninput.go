// Package ebiteninput turns ebiten's polled input state into the raw event
// stream consumed by input.Dispatcher.
package ebiteninput

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/gridarcade/geom"
	"github.com/plus3/gridarcade/input"
)

// Device is the subset of ebiten's polling API the Poller reads once per tick.
type Device interface {
	AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key
	AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key
	IsMouseButtonJustPressed(b ebiten.MouseButton) bool
	IsMouseButtonJustReleased(b ebiten.MouseButton) bool
	CursorPosition() (x, y int)
	AppendJustPressedTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	IsTouchJustReleased(id ebiten.TouchID) bool
	TouchPosition(id ebiten.TouchID) (x, y int)
}

// Handler receives raw events. *input.Dispatcher implements it.
type Handler interface {
	Handle(ev input.Event)
}

type ebitenDevice struct{}

// Ebiten returns the Device backed by the running ebiten game.
func Ebiten() Device {
	return ebitenDevice{}
}

func (ebitenDevice) AppendJustPressedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustPressedKeys(keys)
}

func (ebitenDevice) AppendJustReleasedKeys(keys []ebiten.Key) []ebiten.Key {
	return inpututil.AppendJustReleasedKeys(keys)
}

func (ebitenDevice) IsMouseButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenDevice) IsMouseButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (ebitenDevice) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenDevice) AppendJustPressedTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return inpututil.AppendJustPressedTouchIDs(ids)
}

func (ebitenDevice) IsTouchJustReleased(id ebiten.TouchID) bool {
	return inpututil.IsTouchJustReleased(id)
}

func (ebitenDevice) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

// ebiten numbers right before middle, browsers the other way round.
var mouseButtons = []struct {
	button ebiten.MouseButton
	index  int
}{
	{ebiten.MouseButtonLeft, 0},
	{ebiten.MouseButtonMiddle, 1},
	{ebiten.MouseButtonRight, 2},
}

// Poller converts per-tick device state into events. Within one Poll the order
// is fixed: key releases, key presses, mouse presses, mouse move, mouse
// releases, then the primary touch press followed by its move or release.
type Poller struct {
	device Device
	scale  func(x, y int) geom.Vec

	keys    []ebiten.Key
	touches []ebiten.TouchID

	cursor      geom.Vec
	cursorKnown bool

	touchID  ebiten.TouchID
	touching bool
	touchPos geom.Vec
}

// NewPoller reads from d. Pointer coordinates are passed through unscaled.
func NewPoller(d Device) *Poller {
	return &Poller{
		device: d,
		scale:  geom.V,
	}
}

// WithCellSize maps pixel coordinates onto grid cells of size px.
func (p *Poller) WithCellSize(px int) *Poller {
	if px <= 0 {
		panic("ebiteninput: cell size must be positive")
	}
	p.scale = func(x, y int) geom.Vec {
		return geom.V(x/px, y/px)
	}
	return p
}

// Poll emits every event observed since the previous call to h.
func (p *Poller) Poll(h Handler) {
	p.keys = p.device.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		h.Handle(KeyEvent(k, input.KeyUp))
	}
	p.keys = p.device.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		h.Handle(KeyEvent(k, input.KeyDown))
	}

	p.pollMouse(h)
	p.pollTouch(h)
}

func (p *Poller) pollMouse(h Handler) {
	pos := p.scale(p.device.CursorPosition())

	for _, mb := range mouseButtons {
		if p.device.IsMouseButtonJustPressed(mb.button) {
			h.Handle(input.PointerEvent{Action: input.PointerDown, Device: input.Mouse, Button: mb.index, Pos: pos})
		}
	}

	if p.cursorKnown && !pos.Equal(p.cursor) {
		h.Handle(input.PointerEvent{Action: input.PointerMove, Device: input.Mouse, Pos: pos})
	}
	p.cursor, p.cursorKnown = pos, true

	for _, mb := range mouseButtons {
		if p.device.IsMouseButtonJustReleased(mb.button) {
			h.Handle(input.PointerEvent{Action: input.PointerUp, Device: input.Mouse, Button: mb.index, Pos: pos})
		}
	}
}

// pollTouch follows only the first finger down; others are ignored until it lifts.
func (p *Poller) pollTouch(h Handler) {
	if !p.touching {
		p.touches = p.device.AppendJustPressedTouchIDs(p.touches[:0])
		if len(p.touches) == 0 {
			return
		}
		p.touchID, p.touching = p.touches[0], true
		p.touchPos = p.scale(p.device.TouchPosition(p.touchID))
		h.Handle(input.PointerEvent{Action: input.PointerDown, Device: input.Touch, Pos: p.touchPos})
	}

	if p.device.IsTouchJustReleased(p.touchID) {
		p.touching = false
		h.Handle(input.PointerEvent{Action: input.PointerUp, Device: input.Touch, Pos: p.touchPos})
		return
	}

	if pos := p.scale(p.device.TouchPosition(p.touchID)); !pos.Equal(p.touchPos) {
		p.touchPos = pos
		h.Handle(input.PointerEvent{Action: input.PointerMove, Device: input.Touch, Pos: pos})
	}
}

// KeyEvent names an ebiten key the way a browser would: letters get Key "a"
// and Code "KeyA", digits Key "1" and Code "Digit1", the space bar Key " "
// and Code "Space". Other keys share ebiten's name for both.
func KeyEvent(k ebiten.Key, action input.KeyAction) input.KeyEvent {
	name := k.String()
	ev := input.KeyEvent{Action: action, Key: name, Code: name}

	switch {
	case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
		ev.Key = strings.ToLower(name)
		ev.Code = "Key" + name
	case len(name) == 6 && strings.HasPrefix(name, "Digit"):
		ev.Key = name[5:]
	case name == "Space":
		ev.Key = " "
	}
	return ev
}
