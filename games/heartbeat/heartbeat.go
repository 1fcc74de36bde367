// Package heartbeat is the menu animation: a pixel heart whose outline beats,
// right side first, and a scale pulse for renderers that want to zoom it.
package heartbeat

import (
	"image/color"
	"time"

	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/geom"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	Name = "heartbeat"

	// PulseScale is the scale the pulse jumps to on each beat.
	PulseScale = 1.15
)

// Timings at speed 1.
const (
	Cycle      = 2000 * time.Millisecond
	OtherSide  = 700 * time.Millisecond
	BeatLength = 400 * time.Millisecond
)

var Red = color.RGBA{0xff, 0x00, 0x00, 0xff}

// Game animates the heart until it is ended.
type Game struct {
	speed float64

	session *arcade.Session
	canvas  arcade.Canvas
	center  geom.Vec

	beats int
	tween *gween.Tween
	pulse float32
}

// New creates the animation running at cfg.Speed.
func New(cfg arcade.Config) *Game {
	speed := cfg.Speed
	if speed <= 0 {
		speed = 1
	}
	return &Game{speed: speed, pulse: 1}
}

// Factory registers heartbeat in an arcade.Catalog.
func Factory(cfg arcade.Config) arcade.Game {
	return New(cfg)
}

func (g *Game) Name() string {
	return Name
}

func (g *Game) scaled(d time.Duration) time.Duration {
	return time.Duration(float64(d) / g.speed)
}

// Begin paints the heart and starts beating immediately.
func (g *Game) Begin(s *arcade.Session, c arcade.Canvas) error {
	g.session, g.canvas = s, c
	b := s.Physics().Bounds()
	g.center = geom.V((b.Width+1)/2, (b.Height+1)/2)

	for _, p := range Heart(g.center) {
		c.Paint(p, Red)
	}

	g.beat()
	s.Timers().Every(g.scaled(Cycle), g.beat)
	return nil
}

// End is a no-op; the session cancels the beat timers.
func (g *Game) End() {}

func (g *Game) beat() {
	g.beats++
	g.side(true)
	g.session.Timers().After(g.scaled(OtherSide), func() { g.side(false) })

	g.pulse = PulseScale
	g.tween = gween.New(PulseScale, 1, float32(g.scaled(BeatLength).Seconds()), ease.OutQuad)
}

// side paints one half of the beat and erases it again after BeatLength.
func (g *Game) side(right bool) {
	cells := Beat(g.center, right)
	for _, p := range cells {
		g.canvas.Paint(p, Red)
	}
	g.session.Timers().After(g.scaled(BeatLength), func() {
		for _, p := range cells {
			g.canvas.Erase(p)
		}
	})
}

// Update advances the pulse.
func (g *Game) Update(dt time.Duration) {
	if g.tween == nil {
		return
	}
	val, finished := g.tween.Update(float32(dt.Seconds()))
	g.pulse = val
	if finished {
		g.tween = nil
		g.pulse = 1
	}
}

// Pulse is the current scale, PulseScale right after a beat easing back to 1.
func (g *Game) Pulse() float64 {
	return float64(g.pulse)
}

// Beats counts the beats started so far.
func (g *Game) Beats() int {
	return g.beats
}

// Heart returns the cells of the heart centred on c: a triangle pointing
// down at c with two lobes on top.
func Heart(c geom.Vec) []geom.Vec {
	cells := map[geom.Vec]bool{}
	for i := 0; i <= 5; i++ {
		for j := 0; j <= i; j++ {
			cells[c.Add(geom.V(-j, -i))] = true
			cells[c.Add(geom.V(j, -i))] = true
		}
	}
	delete(cells, c.Add(geom.V(-5, -5)))
	delete(cells, c.Add(geom.V(5, -5)))
	for i := 1; i <= 3; i++ {
		cells[c.Add(geom.V(-i, -6))] = true
		cells[c.Add(geom.V(i, -6))] = true
	}

	out := make([]geom.Vec, 0, len(cells))
	for y := c.Y - 6; y <= c.Y; y++ {
		for x := c.X - 5; x <= c.X+5; x++ {
			if p := geom.V(x, y); cells[p] {
				out = append(out, p)
			}
		}
	}
	return out
}

// Beat returns the outline cells around one side of the heart.
func Beat(c geom.Vec, right bool) []geom.Vec {
	sign := -1
	if right {
		sign = 1
	}
	at := func(dx, dy int) geom.Vec {
		return c.Add(geom.V(sign*dx, dy))
	}

	var cells []geom.Vec
	for i := 2; i <= 4; i++ {
		cells = append(cells, at(i, -7))
	}
	for i := 4; i <= 5; i++ {
		cells = append(cells, at(i, -6))
	}
	cells = append(cells, at(5, -5))
	for i := 0; i <= 4; i++ {
		cells = append(cells, at(i+1, -i))
	}
	return cells
}
