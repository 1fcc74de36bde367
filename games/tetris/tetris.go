// Package tetris is the falling-block game: a piece collider falls onto a
// field collider, complete rows are cleared and scored.
package tetris

import (
	"time"

	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/geom"
	"github.com/plus3/gridarcade/input"
	"github.com/plus3/gridarcade/physics"
)

const (
	Name = "tetris"

	// BaseInterval is the gravity period at speed 0.
	BaseInterval = 500 * time.Millisecond
	// SwipeRepeat is the period of a held sideways swipe.
	SwipeRepeat = 200 * time.Millisecond
)

// Game holds the state of one tetris round.
type Game struct {
	bag *Bag

	session *arcade.Session
	canvas  arcade.Canvas
	piece   *physics.Collider
	field   *physics.Collider
	current Figure

	gravity clock.Timer
	score   int
	lines   int
	paused  bool
	over    bool
}

// New creates a game dealing figures seeded from cfg.Seed.
func New(cfg arcade.Config) *Game {
	return &Game{bag: NewBag(cfg.Seed)}
}

// Factory registers tetris in an arcade.Catalog.
func Factory(cfg arcade.Config) arcade.Game {
	return New(cfg)
}

func (g *Game) Name() string {
	return Name
}

// Begin binds the controls, spawns the first figure and starts gravity.
func (g *Game) Begin(s *arcade.Session, c arcade.Canvas) error {
	g.session, g.canvas = s, c
	g.piece = s.Physics().Collider("piece")
	g.field = s.Physics().Collider("field")

	swipe := input.RepeatWhileHeld(SwipeRepeat, SwipeRepeat)
	s.Input().
		Bind(input.Key("ArrowLeft", nil), "left").
		Bind(input.Key("a", nil), "left").
		Bind(input.Swipe(input.Left, swipe), "left").
		Bind(input.Key("ArrowRight", nil), "right").
		Bind(input.Key("d", nil), "right").
		Bind(input.Swipe(input.Right, swipe), "right").
		Bind(input.Key("ArrowDown", nil), "down").
		Bind(input.Key("s", nil), "down").
		Bind(input.Swipe(input.Down), "down").
		Bind(input.Key("ArrowUp", nil), "rotate").
		Bind(input.Key("w", nil), "rotate").
		Bind(input.Tap(nil), "rotate").
		Bind(input.Key("Escape", nil), "pause").
		Link("left", func() { g.Move(geom.V(-1, 0)) }).
		Link("right", func() { g.Move(geom.V(1, 0)) }).
		Link("down", func() { g.SoftDrop() }).
		Link("rotate", func() { g.Rotate() }).
		Link("pause", g.TogglePause)

	g.spawn()
	g.schedule()
	return nil
}

// End stops gravity. The session cancels everything else.
func (g *Game) End() {
	if g.session != nil {
		g.session.Timers().Stop(g.gravity)
	}
	g.over = true
}

func (g *Game) active() bool {
	return g.session != nil && !g.paused && !g.over
}

func (g *Game) bounds() physics.Bounds {
	return g.session.Physics().Bounds()
}

// Interval is the current gravity period, 500ms/(1+speed).
func (g *Game) Interval() time.Duration {
	return BaseInterval / time.Duration(1+g.Speed())
}

func (g *Game) schedule() {
	g.gravity = g.session.Timers().After(g.Interval(), g.tick)
}

func (g *Game) tick() {
	if g.over {
		return
	}
	if !g.paused && !g.step(geom.V(0, 1)) {
		g.freeze()
	}
	if !g.over {
		g.schedule()
	}
}

func (g *Game) spawn() {
	g.current = g.bag.Next()
	g.place()
}

// place puts the current figure above the middle of the field.
func (g *Game) place() {
	b := g.bounds()
	g.piece.
		SetAngle(0).
		SetCenter(g.current.Center).
		SetMap(g.current.Cells).
		SetPosition(geom.V(b.Width/2, -g.current.Height()))

	if g.piece.Collides(g.field) {
		g.gameOver()
		return
	}
	g.render()
}

// step moves the piece by d, reverting when it leaves the field sideways or
// through the bottom, or overlaps frozen cells.
func (g *Game) step(d geom.Vec) bool {
	from := g.piece.Position()
	g.piece.SetPosition(from.Add(d))
	if g.blocked() {
		g.piece.SetPosition(from)
		return false
	}
	g.render()
	return true
}

func (g *Game) blocked() bool {
	return g.piece.CollidesEdge(physics.Bottom, physics.Left, physics.Right) || g.piece.Collides(g.field)
}

// Move shifts the piece sideways. It reports whether the piece moved.
func (g *Game) Move(d geom.Vec) bool {
	if !g.active() {
		return false
	}
	return g.step(d)
}

// SoftDrop moves the piece one row down for one point, freezing it when it
// cannot fall further.
func (g *Game) SoftDrop() bool {
	if !g.active() {
		return false
	}
	if g.step(geom.V(0, 1)) {
		g.score++
		return true
	}
	g.freeze()
	return false
}

// Rotate turns the piece 90 degrees clockwise. A rotation into the field or
// through the bottom is reverted; one through a side wall is kicked back
// inside, and reverted if the kicked piece overlaps the field.
func (g *Game) Rotate() bool {
	if !g.active() || !g.current.Rotatable {
		return false
	}

	angle, pos := g.piece.Angle(), g.piece.Position()
	g.piece.SetAngle(angle + 90)
	if g.piece.Collides(g.field) || g.piece.CollidesEdge(physics.Bottom) {
		g.piece.SetAngle(angle)
		return false
	}

	kickWalls(g.piece)
	if g.piece.Collides(g.field) {
		g.piece.SetAngle(angle).SetPosition(pos)
		return false
	}
	g.render()
	return true
}

// kickWalls pushes c right while it pokes through the left wall, then left
// while it pokes through the right wall.
func kickWalls(c *physics.Collider) {
	for c.CollidesEdge(physics.Left) {
		c.SetPosition(c.Position().Add(geom.V(1, 0)))
	}
	for c.CollidesEdge(physics.Right) {
		c.SetPosition(c.Position().Add(geom.V(-1, 0)))
	}
}

func (g *Game) freeze() {
	g.field.Add(g.piece)
	rows := ClearRows(g.field, g.bounds())
	if rows > 0 {
		g.lines += rows
		g.score += rows * 2 * g.bounds().Width
		g.session.Logger().Debug("rows cleared", "rows", rows, "score", g.score)
	}

	for _, c := range g.field.WorldMap() {
		if c.Y < 0 {
			g.gameOver()
			return
		}
	}
	g.spawn()
}

func (g *Game) gameOver() {
	g.over = true
	g.session.Timers().Stop(g.gravity)
	g.render()
	g.session.Logger().Info("game over", "score", g.score, "lines", g.lines)
}

// ClearRows removes every row of field whose columns 0..b.Width are all
// filled, shifting the rows above it down. Rows are processed top to bottom.
// The field's local map is rebuilt from the resulting world cells. It returns
// the number of rows cleared.
func ClearRows(field *physics.Collider, b physics.Bounds) int {
	cells := append([]geom.Vec(nil), field.WorldMap()...)
	filled := make(map[int]int)
	for _, c := range cells {
		if c.X >= 0 && c.X <= b.Width {
			filled[c.Y]++
		}
	}

	top := b.Height
	for _, c := range cells {
		top = min(top, c.Y)
	}

	cleared := 0
	for y := top; y <= b.Height; y++ {
		if filled[y] < b.Width+1 {
			continue
		}
		cleared++

		kept := cells[:0]
		for _, c := range cells {
			switch {
			case c.Y == y:
				continue
			case c.Y < y:
				c.Y++
			}
			kept = append(kept, c)
		}
		cells = kept

		for row := y; row > top; row-- {
			filled[row] = filled[row-1]
		}
		filled[top] = 0
	}

	if cleared > 0 {
		field.SetWorldMap(cells)
	}
	return cleared
}

func (g *Game) render() {
	if g.canvas == nil {
		return
	}
	if grid, ok := g.canvas.(interface{ Clear() }); ok {
		grid.Clear()
	}
	for _, c := range g.field.WorldMap() {
		g.canvas.Paint(c, FieldColor)
	}
	if !g.over {
		for _, c := range g.piece.WorldMap() {
			g.canvas.Paint(c, g.current.Color)
		}
	}
}

// TogglePause stops or resumes gravity and input handling.
func (g *Game) TogglePause() {
	if g.over {
		return
	}
	g.paused = !g.paused
	g.session.Logger().Debug("pause", "paused", g.paused)
}

// Paused reports whether gravity and input are paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Over reports whether the game topped out or was ended.
func (g *Game) Over() bool {
	return g.over
}

// Score is the points earned from soft drops and cleared rows.
func (g *Game) Score() int {
	return g.score
}

// Lines returns the number of rows cleared.
func (g *Game) Lines() int {
	return g.lines
}

// Speed grows by one every 1000 points.
func (g *Game) Speed() int {
	return g.score / 1000
}

// Current returns the falling figure.
func (g *Game) Current() Figure {
	return g.current
}

// Piece returns the collider of the falling figure.
func (g *Game) Piece() *physics.Collider {
	return g.piece
}

// Field returns the collider holding every frozen cell.
func (g *Game) Field() *physics.Collider {
	return g.field
}
