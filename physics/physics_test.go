package physics_test

import (
	"fmt"
	"testing"

	"github.com/plus3/gridarcade/geom"
	"github.com/plus3/gridarcade/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bar() []geom.Vec {
	return []geom.Vec{geom.V(0, 0), geom.V(1, 0), geom.V(2, 0), geom.V(3, 0)}
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := physics.NewRegistry(physics.Size(10, 20))
	assert.Equal(t, physics.Bounds{Width: 9, Height: 19}, r.Bounds())
	assert.False(t, r.Has("piece"))

	piece := r.Collider("piece")
	assert.Same(t, piece, r.Collider("piece"))
	assert.Equal(t, "piece", piece.Name())
	r.Collider("field")
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"field", "piece"}, r.Names())

	r.Clear()
	assert.Equal(t, 0, r.Len())
	assert.NotSame(t, piece, r.Collider("piece"))
}

func TestSetMapDeduplicates(t *testing.T) {
	c := physics.NewRegistry(physics.Size(4, 4)).Collider("c")
	c.SetMap([]geom.Vec{geom.V(1, 1), geom.V(0, 0), geom.V(1, 1)})
	assert.Equal(t, []geom.Vec{geom.V(1, 1), geom.V(0, 0)}, c.Map())
}

func TestWorldMapTransform(t *testing.T) {
	c := physics.NewRegistry(physics.Size(10, 10)).Collider("c")
	c.SetMap(bar()).SetPosition(geom.V(2, 3))
	assert.Equal(t, []geom.Vec{geom.V(2, 3), geom.V(3, 3), geom.V(4, 3), geom.V(5, 3)}, c.WorldMap())

	c.SetCenter(geom.V(1, 0)).SetAngle(90)
	assert.Equal(t, []geom.Vec{geom.V(3, 2), geom.V(3, 3), geom.V(3, 4), geom.V(3, 5)}, c.WorldMap())

	c.SetAngle(0)
	assert.Equal(t, geom.V(2, 3), c.WorldMap()[0])
}

func TestCacheInvalidation(t *testing.T) {
	c := physics.NewRegistry(physics.Size(10, 10)).Collider("c")
	c.SetMap([]geom.Vec{geom.V(0, 0)})
	assert.True(t, c.Contains(geom.V(0, 0)))

	c.SetPosition(geom.V(1, 1))
	assert.False(t, c.Contains(geom.V(0, 0)))
	assert.True(t, c.Contains(geom.V(1, 1)))

	c.SetMap([]geom.Vec{geom.V(1, 0)})
	assert.True(t, c.Contains(geom.V(2, 1)))

	c.SetCenter(geom.V(0, 0)).SetAngle(180)
	assert.True(t, c.Contains(geom.V(0, 1)))

	// Same value assignments keep the cache valid.
	world := c.WorldMap()
	c.SetPosition(geom.V(1, 1)).SetAngle(540).SetCenter(geom.V(0, 0))
	assert.Equal(t, world, c.WorldMap())
}

func TestAngleNormalization(t *testing.T) {
	c := physics.NewRegistry(physics.Size(4, 4)).Collider("c")
	for _, tt := range []struct{ in, want float64 }{
		{90, 90}, {360, 0}, {450, 90}, {-90, 270}, {-360, 0}, {720, 0},
	} {
		c.SetAngle(tt.in)
		assert.Equal(t, tt.want, c.Angle(), "angle %v", tt.in)
	}
}

func TestCollidesSymmetryAndSelf(t *testing.T) {
	r := physics.NewRegistry(physics.Size(10, 10))
	a := r.Collider("a").SetMap(bar())
	b := r.Collider("b").SetMap([]geom.Vec{geom.V(0, 0)}).SetPosition(geom.V(3, 1))
	empty := r.Collider("empty")

	assert.True(t, a.Collides(a))
	assert.False(t, empty.Collides(empty))
	assert.False(t, a.Collides(empty))
	assert.False(t, empty.Collides(a))

	for _, y := range []int{-1, 0, 1} {
		b.SetPosition(geom.V(3, y))
		assert.Equal(t, a.Collides(b), b.Collides(a), "y=%d", y)
		assert.Equal(t, y == 0, a.Collides(b), "y=%d", y)
	}
}

func TestCollidesEdge(t *testing.T) {
	r := physics.NewRegistry(physics.Bounds{Width: 3, Height: 5})
	c := r.Collider("c").SetMap([]geom.Vec{geom.V(0, 0)})

	tests := []struct {
		pos   geom.Vec
		edge  physics.Edge
		hit   bool
		inAny bool
	}{
		{geom.V(0, 0), physics.Left, false, false},
		{geom.V(3, 5), physics.Right, false, false},
		{geom.V(-1, 2), physics.Left, true, true},
		{geom.V(4, 2), physics.Right, true, true},
		{geom.V(2, 6), physics.Bottom, true, true},
		{geom.V(2, -1), physics.Top, true, true},
		{geom.V(2, -1), physics.Bottom, false, true},
		{geom.V(-1, 2), physics.Right, false, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.pos, tt.edge), func(t *testing.T) {
			c.SetPosition(tt.pos)
			assert.Equal(t, tt.hit, c.CollidesEdge(tt.edge))
			assert.Equal(t, tt.inAny, c.CollidesEdge())
		})
	}

	assert.True(t, c.SetPosition(geom.V(-1, 9)).CollidesEdge(physics.Top, physics.Left))
	assert.False(t, r.Collider("empty").CollidesEdge())
}

func TestSetWorldMapInvertsTransform(t *testing.T) {
	c := physics.NewRegistry(physics.Size(10, 10)).Collider("c")
	c.SetPosition(geom.V(4, 2)).SetCenter(geom.V(1, 1)).SetAngle(270)

	cells := []geom.Vec{geom.V(4, 4), geom.V(5, 4), geom.V(5, 5), geom.V(5, 5)}
	c.SetWorldMap(cells)
	assert.Len(t, c.Map(), 3)
	assert.ElementsMatch(t, cells[:3], c.WorldMap())
}

func TestAddKeepsWorldCells(t *testing.T) {
	r := physics.NewRegistry(physics.Size(10, 20))
	field := r.Collider("field").SetMap([]geom.Vec{geom.V(0, 19), geom.V(1, 19)})
	piece := r.Collider("piece").
		SetMap(bar()).
		SetCenter(geom.V(0, 2)).
		SetPosition(geom.V(5, 10)).
		SetAngle(90)

	want := append(append([]geom.Vec(nil), field.WorldMap()...), piece.WorldMap()...)
	field.Add(piece)
	assert.ElementsMatch(t, want, field.WorldMap())
	assert.Len(t, piece.Map(), 4, "source is unchanged")

	field.Add(piece)
	assert.Len(t, field.Map(), 6, "merging twice does not duplicate cells")
}

func TestAddIntoTransformedCollider(t *testing.T) {
	r := physics.NewRegistry(physics.Size(10, 10))
	dst := r.Collider("dst").SetPosition(geom.V(2, 2)).SetCenter(geom.V(1, 1)).SetAngle(90)
	src := r.Collider("src").SetMap([]geom.Vec{geom.V(0, 0), geom.V(0, 1)}).SetPosition(geom.V(7, 3))

	dst.Add(src)
	assert.ElementsMatch(t, []geom.Vec{geom.V(7, 3), geom.V(7, 4)}, dst.WorldMap())
}

func TestRemove(t *testing.T) {
	r := physics.NewRegistry(physics.Size(10, 10))
	c := r.Collider("c").SetMap(bar()).SetPosition(geom.V(1, 1)).SetAngle(90)

	c.Remove()
	assert.False(t, r.Has("c"))
	assert.Empty(t, c.Map())
	assert.Equal(t, geom.Vec{}, c.Position())
	assert.Zero(t, c.Angle())
	assert.NotSame(t, c, r.Collider("c"))
}

func TestSnapshot(t *testing.T) {
	r := physics.NewRegistry(physics.Size(10, 10))
	r.Collider("b").SetMap(bar()).SetPosition(geom.V(1, 2))
	r.Collider("a")

	infos := r.Snapshot()
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, physics.ColliderInfo{Name: "b", Position: geom.V(1, 2), Cells: 4}, infos[1])
}

func ExampleCollider_CollidesEdge() {
	r := physics.NewRegistry(physics.Size(4, 4))
	piece := r.Collider("piece").SetMap(bar()).SetPosition(geom.V(1, 0))

	fmt.Println(piece.CollidesEdge(physics.Left))
	fmt.Println(piece.CollidesEdge(physics.Right))
	// Output:
	// false
	// true
}
