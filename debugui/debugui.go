// Package debugui draws Dear ImGui windows that show the live state of the
// running session: frame times, clock timers, input bindings and colliders.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gridarcade/arcade"
)

// Source yields the session to inspect. *arcade.Runner implements it; the
// session changes whenever a new game starts.
type Source interface {
	Session() *arcade.Session
}

// InputState tracks whether ImGui is consuming mouse or keyboard input, in
// which case the game should not see it.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders every debug window for one Source.
type Overlay struct {
	source Source
	state  InputState

	performance *PerformanceWindow
	input       *InputWindow
	colliders   *CollidersWindow
}

// NewOverlay creates the overlay keeping historyFrames frame times.
func NewOverlay(source Source, historyFrames int) *Overlay {
	return &Overlay{
		source:      source,
		performance: NewPerformanceWindow(historyFrames),
		input:       &InputWindow{},
		colliders:   &CollidersWindow{},
	}
}

// Render draws all windows. It must run between the backend's BeginFrame and
// EndFrame.
func (o *Overlay) Render(deltaTime float32) {
	io := imgui.CurrentIO()
	o.state.WantCaptureMouse = io.WantCaptureMouse()
	o.state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	s := o.source.Session()
	o.performance.Render(s, deltaTime)
	if s == nil {
		return
	}
	o.input.Render(s)
	o.colliders.Render(s)
}

// InputState returns the capture state observed by the last Render.
func (o *Overlay) InputState() InputState {
	return o.state
}

// FrameTimer measures wall time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

// NewFrameTimer starts timing from now.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds since the previous call.
func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
