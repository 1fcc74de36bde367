package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/debugui"
	debugui_ebiten "github.com/plus3/gridarcade/debugui/ebiten"
	"github.com/plus3/gridarcade/geom"
	"github.com/plus3/gridarcade/input/ebiteninput"
)

const holdToQuit = 1500 * time.Millisecond

var background = color.RGBA{0x10, 0x10, 0x18, 0xff}

// Game implements ebiten.Game around an arcade.Runner.
type Game struct {
	runner *arcade.Runner
	grid   *arcade.Grid
	poller *ebiteninput.Poller
	shell  *shell

	shown string

	imgui      *debugui_ebiten.ImguiBackend
	overlay    *debugui.Overlay
	frameTimer *debugui.FrameTimer
}

func (g *Game) Update() error {
	if g.imgui != nil {
		g.imgui.Frame(g.overlay, g.frameTimer.GetDeltaTime())
	}

	if g.overlay == nil || !g.overlay.InputState().WantCaptureKeyboard {
		g.poller.Poll(g.shell)
	}
	if g.shell.quit {
		return ebiten.Termination
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	g.shell.Advance(dt)
	g.runner.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	cell := float32(g.runner.Config().CellSize)
	scale := float32(1)
	if p, ok := g.runner.Game().(interface{ Pulse() float64 }); ok {
		scale = float32(p.Pulse())
	}
	size := cell * scale
	g.grid.Each(func(p geom.Vec, c color.Color) {
		x := float32(p.X)*cell + (cell-size)/2
		y := float32(p.Y)*cell + (cell-size)/2
		vector.DrawFilledRect(screen, x, y, size, size, c, false)
	})

	if title := g.title(); title != g.shown {
		ebiten.SetWindowTitle(title)
		g.shown = title
	}

	if g.imgui != nil {
		g.imgui.DrawOver(screen)
	}
}

// title is the HUD line: the score while playing, the controls on the menu.
func (g *Game) title() string {
	game := g.runner.Game()
	if s, ok := game.(interface{ Score() int }); ok {
		return fmt.Sprintf("Grid Arcade - %s - score %d", game.Name(), s.Score())
	}
	return "Grid Arcade - 1: tetris, 2: snake, m: menu, hold q: quit"
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.runner.Config().ScreenSize()
}
