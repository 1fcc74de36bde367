// Package ebiten connects the debug overlay to the Ebiten game loop through
// the Dear ImGui Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/gridarcade/debugui"
)

// ImguiBackend is the cimgui Ebiten backend with helpers for drawing an Overlay.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The ini file is disabled
// so window layout is not persisted between runs.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: b}
}

// Frame renders one overlay frame between BeginFrame and EndFrame.
func (b *ImguiBackend) Frame(o *debugui.Overlay, deltaTime float32) {
	b.BeginFrame()
	o.Render(deltaTime)
	b.EndFrame()
}

// DrawOver paints the overlay on top of screen.
func (b *ImguiBackend) DrawOver(screen *ebiten.Image) {
	b.Draw(screen)
}
