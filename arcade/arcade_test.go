package arcade_test

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/plus3/gridarcade/arcade"
	"github.com/plus3/gridarcade/clock"
	"github.com/plus3/gridarcade/geom"
	"github.com/plus3/gridarcade/input"
	"github.com/plus3/gridarcade/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, arcade.DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*arcade.Config)
	}{
		{"columns", func(c *arcade.Config) { c.Columns = 0 }},
		{"rows", func(c *arcade.Config) { c.Rows = -1 }},
		{"cell size", func(c *arcade.Config) { c.CellSize = 0 }},
		{"speed", func(c *arcade.Config) { c.Speed = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := arcade.DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, arcade.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.name)
		})
	}
}

func TestConfigGeometry(t *testing.T) {
	cfg := arcade.DefaultConfig()
	assert.Equal(t, physics.Bounds{Width: 9, Height: 19}, cfg.Bounds())
	w, h := cfg.ScreenSize()
	assert.Equal(t, 240, w)
	assert.Equal(t, 480, h)
}

func TestGrid(t *testing.T) {
	g := arcade.NewGrid(3, 2)
	g.Paint(geom.V(0, 0), color.White)
	g.Paint(geom.V(2, 1), color.Black)
	g.Paint(geom.V(3, 0), color.White)
	g.Paint(geom.V(-1, 0), color.White)
	assert.Equal(t, 2, g.Count())

	c, ok := g.At(geom.V(2, 1))
	assert.True(t, ok)
	assert.Equal(t, color.Black, c)
	_, ok = g.At(geom.V(1, 1))
	assert.False(t, ok)

	var painted []geom.Vec
	g.Each(func(p geom.Vec, _ color.Color) { painted = append(painted, p) })
	assert.Equal(t, []geom.Vec{geom.V(0, 0), geom.V(2, 1)}, painted)

	g.Erase(geom.V(0, 0))
	assert.Equal(t, 1, g.Count())

	g.Resize(2, 3)
	cols, rows := g.Size()
	assert.Equal(t, 2, cols)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 0, g.Count(), "cell outside the new width is dropped")

	g.Paint(geom.V(1, 2), color.White)
	g.Clear()
	assert.Equal(t, 0, g.Count())
}

func TestSessionEndTearsDownEverything(t *testing.T) {
	clk := clock.New()
	s := arcade.NewSession(clk, physics.Size(4, 4), nil)
	assert.NotEmpty(t, s.ID())
	assert.NotEqual(t, s.ID(), arcade.NewSession(clk, physics.Size(4, 4), nil).ID())

	var fired int
	s.Timers().Every(100*time.Millisecond, func() { fired++ })
	s.Input().
		Bind(input.Key("a", input.Repeat{Interval: 50 * time.Millisecond}), "a").
		Link("a", func() { fired++ })
	s.Input().Handle(input.KeyEvent{Key: "a"})
	s.Physics().Collider("piece").SetMap([]geom.Vec{geom.V(0, 0)})

	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, 3, fired)

	s.End()
	assert.True(t, s.Ended())
	assert.Equal(t, 0, clk.Stats().Pending)
	assert.Equal(t, 0, s.Physics().Len())

	clk.Advance(time.Second)
	assert.Equal(t, 3, fired)
	assert.NotPanics(t, s.End)
}

type fakeGame struct {
	name    string
	begun   int
	ended   int
	updated time.Duration
	err     error
}

func (g *fakeGame) Name() string { return g.name }

func (g *fakeGame) Begin(s *arcade.Session, c arcade.Canvas) error {
	g.begun++
	s.Timers().Every(time.Second, func() {})
	c.Paint(geom.V(0, 0), color.White)
	return g.err
}

func (g *fakeGame) End() { g.ended++ }

func (g *fakeGame) Update(dt time.Duration) { g.updated += dt }

func TestRunner(t *testing.T) {
	one, two := &fakeGame{name: "one"}, &fakeGame{name: "two"}
	catalog := arcade.NewCatalog().
		Register("one", func(arcade.Config) arcade.Game { return one }).
		Register("two", func(arcade.Config) arcade.Game { return two })
	assert.Equal(t, []string{"one", "two"}, catalog.Names())
	assert.Panics(t, func() { catalog.Register("one", nil) })

	clk := clock.New()
	grid := arcade.NewGrid(4, 4)
	r, err := arcade.NewRunner(arcade.DefaultConfig(), catalog, clk, grid, nil)
	require.NoError(t, err)

	require.NoError(t, r.Start("one"))
	assert.Same(t, one, r.Game())
	first := r.Session()
	r.Update(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, one.updated)
	assert.Equal(t, 16*time.Millisecond, clk.Now())

	require.NoError(t, r.Start("two"))
	assert.Equal(t, 1, one.ended)
	assert.True(t, first.Ended())
	assert.Equal(t, 1, clk.Stats().Pending, "only the second game's timer is left")

	err = r.Start("three")
	assert.ErrorIs(t, err, arcade.ErrUnknownGame)
	assert.Same(t, two, r.Game(), "an unknown name keeps the current game")

	r.Stop()
	assert.Nil(t, r.Game())
	assert.Equal(t, 0, grid.Count())
	assert.Equal(t, 0, clk.Stats().Pending)
	assert.NotPanics(t, func() { r.Update(time.Second) })
}

func TestRunnerBeginFailure(t *testing.T) {
	boom := errors.New("boom")
	catalog := arcade.NewCatalog().Register("bad", func(arcade.Config) arcade.Game {
		return &fakeGame{name: "bad", err: boom}
	})
	clk := clock.New()
	r, err := arcade.NewRunner(arcade.DefaultConfig(), catalog, clk, arcade.NewGrid(1, 1), nil)
	require.NoError(t, err)

	err = r.Start("bad")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, r.Game())
	assert.Equal(t, 0, clk.Stats().Pending)

	_, err = arcade.NewRunner(arcade.Config{}, catalog, clk, nil, nil)
	assert.ErrorIs(t, err, arcade.ErrInvalidConfig)
}
