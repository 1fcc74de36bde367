// Package snake is the classic snake game on a wrap-around field.
package snake

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/geom"
	"github.com/plus3/gridarcade/input"
	"github.com/plus3/gridarcade/physics"
)

const (
	Name = "snake"

	// Tick is the time the snake takes to move one cell.
	Tick = 300 * time.Millisecond
	// Length is the body length at the start of a round.
	Length = 5
)

var (
	BodyColor  = color.RGBA{0x00, 0x80, 0x00, 0xff}
	AppleColor = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

var steps = map[input.Direction]geom.Vec{
	input.Up:    geom.V(0, -1),
	input.Down:  geom.V(0, 1),
	input.Left:  geom.V(-1, 0),
	input.Right: geom.V(1, 0),
}

var opposite = map[input.Direction]input.Direction{
	input.Up:    input.Down,
	input.Down:  input.Up,
	input.Left:  input.Right,
	input.Right: input.Left,
}

// Game holds the state of one snake round.
type Game struct {
	rng *rand.Rand

	session *arcade.Session
	canvas  arcade.Canvas
	snake   *physics.Collider
	apple   *physics.Collider

	body    []geom.Vec // head first
	heading input.Direction
	next    input.Direction
	ticker  clock.Timer
	eaten   int
	paused  bool
	over    bool
}

// New creates a game placing apples from cfg.Seed.
func New(cfg arcade.Config) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Game{rng: rand.New(rand.NewPCG(seed, ^seed))}
}

// Factory registers snake in an arcade.Catalog.
func Factory(cfg arcade.Config) arcade.Game {
	return New(cfg)
}

func (g *Game) Name() string {
	return Name
}

// Begin places a vertical body in the middle of the field heading up, binds
// the controls and starts moving.
func (g *Game) Begin(s *arcade.Session, c arcade.Canvas) error {
	g.session, g.canvas = s, c
	g.snake = s.Physics().Collider("snake")
	g.apple = s.Physics().Collider("apple")

	b := s.Physics().Bounds()
	center := geom.V((b.Width+1)/2, (b.Height+1)/2)
	g.body = g.body[:0]
	for i := -Length / 2; i <= Length/2; i++ {
		g.body = append(g.body, center.Add(geom.V(0, i)))
	}
	g.heading, g.next = input.Up, input.Up
	g.snake.SetMap(g.body)

	down := input.Edge{Type: input.EdgeDown}
	in := s.Input()
	for _, k := range []struct {
		dir  input.Direction
		keys []string
	}{
		{input.Up, []string{"ArrowUp", "KeyW"}},
		{input.Down, []string{"ArrowDown", "KeyS"}},
		{input.Left, []string{"ArrowLeft", "KeyA"}},
		{input.Right, []string{"ArrowRight", "KeyD"}},
	} {
		name, dir := k.dir.String(), k.dir
		for _, key := range k.keys {
			in.Bind(input.Key(key, down), name)
		}
		in.Bind(input.Swipe(dir), name)
		in.Link(name, func() { g.Turn(dir) })
	}
	in.Bind(input.Key("Space", down), "pause").
		Bind(input.MouseButton(0, nil), "pause").
		Link("pause", g.TogglePause)

	g.ticker = s.Timers().Every(Tick, g.Step)
	g.placeApple()
	g.render()
	return nil
}

// End stops the snake. The session cancels everything else.
func (g *Game) End() {
	if g.session != nil {
		g.session.Timers().Stop(g.ticker)
	}
	g.over = true
}

// Turn changes the heading on the next step. Turning back onto the body is
// ignored.
func (g *Game) Turn(dir input.Direction) {
	if g.paused || g.over || opposite[g.heading] == dir {
		return
	}
	g.next = dir
}

// Step moves the head one cell, wrapping at the field edges. Eating the
// apple grows the body by one and places a new apple.
func (g *Game) Step() {
	if g.paused || g.over {
		return
	}

	b := g.session.Physics().Bounds()
	head := wrap(g.body[0].Add(steps[g.next]), b)
	g.heading = g.next

	if g.apple.Contains(head) {
		g.body = append([]geom.Vec{head}, g.body...)
		g.eaten++
		g.snake.SetMap(g.body)
		g.placeApple()
	} else {
		copy(g.body[1:], g.body[:len(g.body)-1])
		g.body[0] = head
		g.snake.SetMap(g.body)
	}
	g.render()
}

func wrap(p geom.Vec, b physics.Bounds) geom.Vec {
	switch {
	case p.X < 0:
		p.X = b.Width
	case p.X > b.Width:
		p.X = 0
	case p.Y < 0:
		p.Y = b.Height
	case p.Y > b.Height:
		p.Y = 0
	}
	return p
}

// placeApple drops the apple on a random cell the snake does not cover. A
// snake filling the whole field ends the round.
func (g *Game) placeApple() {
	b := g.session.Physics().Bounds()
	free := make([]geom.Vec, 0, (b.Width+1)*(b.Height+1))
	for y := 0; y <= b.Height; y++ {
		for x := 0; x <= b.Width; x++ {
			if p := geom.V(x, y); !g.snake.Contains(p) {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.apple.SetMap(nil)
		g.over = true
		g.session.Timers().Stop(g.ticker)
		g.session.Logger().Info("field filled", "length", len(g.body))
		return
	}
	g.apple.SetMap([]geom.Vec{free[g.rng.IntN(len(free))]})
}

func (g *Game) render() {
	if grid, ok := g.canvas.(interface{ Clear() }); ok {
		grid.Clear()
	}
	for _, p := range g.body {
		g.canvas.Paint(p, BodyColor)
	}
	for _, p := range g.apple.WorldMap() {
		g.canvas.Paint(p, AppleColor)
	}
}

// TogglePause stops or resumes the snake.
func (g *Game) TogglePause() {
	if g.over {
		return
	}
	g.paused = !g.paused
}

// Paused reports whether the snake is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Over reports whether the round has ended.
func (g *Game) Over() bool {
	return g.over
}

// Body returns a copy of the body cells, head first.
func (g *Game) Body() []geom.Vec {
	return append([]geom.Vec(nil), g.body...)
}

// Heading is the direction of the last step.
func (g *Game) Heading() input.Direction {
	return g.heading
}

// Apple returns the apple cell.
func (g *Game) Apple() (geom.Vec, bool) {
	cells := g.apple.WorldMap()
	if len(cells) == 0 {
		return geom.Vec{}, false
	}
	return cells[0], true
}

// Score is the number of apples eaten.
func (g *Game) Score() int {
	return g.eaten
}
