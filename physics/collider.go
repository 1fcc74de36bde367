package physics

import (
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/gridarcade/geom"
)

// Edge names one side of the playfield.
type Edge int

const (
	Bottom Edge = iota
	Left
	Top
	Right
)

func (e Edge) String() string {
	switch e {
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	}
	return "unknown"
}

// Collider is a named rigid body made of grid cells. Its world cells are a
// pure function of the local map, position, angle and center, computed lazily
// and cached until one of those changes.
type Collider struct {
	name     string
	registry *Registry

	local    []geom.Vec
	position geom.Vec
	center   geom.Vec
	angle    float64

	world []geom.Vec
	index *intmap.Set[uint64]
	valid bool
}

func newCollider(name string, r *Registry) *Collider {
	return &Collider{name: name, registry: r}
}

// Name returns the registry key of the collider.
func (c *Collider) Name() string {
	return c.name
}

// Map returns a copy of the local cells.
func (c *Collider) Map() []geom.Vec {
	return append([]geom.Vec(nil), c.local...)
}

// SetMap replaces the local cells. Duplicates are dropped, first occurrence wins.
func (c *Collider) SetMap(cells []geom.Vec) *Collider {
	c.local = dedup(cells)
	c.invalidate()
	return c
}

// Position returns the translation applied after rotation.
func (c *Collider) Position() geom.Vec {
	return c.position
}

// SetPosition moves the collider. Setting the current position is a no-op.
func (c *Collider) SetPosition(p geom.Vec) *Collider {
	if !c.position.Equal(p) {
		c.position = p
		c.invalidate()
	}
	return c
}

// Angle returns the rotation in degrees, always in [0, 360).
func (c *Collider) Angle() float64 {
	return c.angle
}

// SetAngle rotates the collider to deg degrees, normalized into [0, 360).
func (c *Collider) SetAngle(deg float64) *Collider {
	deg = normalizeAngle(deg)
	if c.angle != deg {
		c.angle = deg
		c.invalidate()
	}
	return c
}

// Center returns the rotation pivot in local space.
func (c *Collider) Center() geom.Vec {
	return c.center
}

// SetCenter moves the rotation pivot. Setting the current pivot is a no-op.
func (c *Collider) SetCenter(p geom.Vec) *Collider {
	if !c.center.Equal(p) {
		c.center = p
		c.invalidate()
	}
	return c
}

// WorldMap returns the cells in playfield coordinates. The returned slice is
// shared with the cache and must not be modified.
func (c *Collider) WorldMap() []geom.Vec {
	c.ensure()
	return c.world
}

// SetWorldMap replaces the local cells so that, under the current position,
// angle and center, the world cells equal cells.
func (c *Collider) SetWorldMap(cells []geom.Vec) *Collider {
	local := make([]geom.Vec, len(cells))
	for i, w := range cells {
		local[i] = c.toLocal(w)
	}
	return c.SetMap(local)
}

// Collides reports whether any world cell of c is also a world cell of other.
// Empty colliders never collide.
func (c *Collider) Collides(other *Collider) bool {
	if other == nil || len(c.local) == 0 || len(other.local) == 0 {
		return false
	}
	c.ensure()
	other.ensure()

	small, large := c, other
	if len(small.world) > len(large.world) {
		small, large = large, small
	}
	for _, v := range small.world {
		if large.index.Has(v.Key()) {
			return true
		}
	}
	return false
}

// CollidesEdge reports whether any world cell lies beyond one of the given
// edges of the registry bounds. With no edges every side is checked.
func (c *Collider) CollidesEdge(edges ...Edge) bool {
	b := c.bounds()
	bottom, left, top, right := len(edges) == 0, len(edges) == 0, len(edges) == 0, len(edges) == 0
	for _, e := range edges {
		switch e {
		case Bottom:
			bottom = true
		case Left:
			left = true
		case Top:
			top = true
		case Right:
			right = true
		}
	}

	for _, v := range c.WorldMap() {
		if (bottom && v.Y > b.Height) || (top && v.Y < 0) || (left && v.X < 0) || (right && v.X > b.Width) {
			return true
		}
	}
	return false
}

// Contains reports whether p is one of the world cells.
func (c *Collider) Contains(p geom.Vec) bool {
	if len(c.local) == 0 {
		return false
	}
	c.ensure()
	return c.index.Has(p.Key())
}

// Add merges the world cells of other into c, expressed in c's local space so
// that they keep their playfield position. other is left unchanged.
func (c *Collider) Add(other *Collider) *Collider {
	if other == nil || other == c || len(other.local) == 0 {
		return c
	}
	merged := append([]geom.Vec(nil), c.local...)
	for _, w := range other.WorldMap() {
		merged = append(merged, c.toLocal(w))
	}
	return c.SetMap(merged)
}

// Remove resets the collider and deletes it from its registry.
func (c *Collider) Remove() {
	c.position = geom.Vec{}
	c.center = geom.Vec{}
	c.angle = 0
	c.local = nil
	c.invalidate()
	if c.registry != nil {
		c.registry.remove(c)
	}
}

func (c *Collider) toLocal(w geom.Vec) geom.Vec {
	return w.Sub(c.position).Rotate(-c.angle, c.center)
}

func (c *Collider) bounds() Bounds {
	if c.registry == nil {
		return Bounds{}
	}
	return c.registry.bounds
}

func (c *Collider) invalidate() {
	c.valid = false
	c.world = nil
	c.index = nil
}

func (c *Collider) ensure() {
	if c.valid {
		return
	}

	index := intmap.NewSet[uint64](len(c.local))
	world := make([]geom.Vec, 0, len(c.local))
	for _, v := range c.local {
		w := v.Rotate(c.angle, c.center).Add(c.position)
		if index.Has(w.Key()) {
			continue
		}
		index.Add(w.Key())
		world = append(world, w)
	}

	c.world = world
	c.index = index
	c.valid = true
}

func dedup(cells []geom.Vec) []geom.Vec {
	seen := intmap.NewSet[uint64](len(cells))
	out := make([]geom.Vec, 0, len(cells))
	for _, v := range cells {
		if seen.Has(v.Key()) {
			continue
		}
		seen.Add(v.Key())
		out = append(out, v)
	}
	return out
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0 and 360 after rounding error both collapse to 0
	if deg == 0 || deg == 360 {
		return 0
	}
	return deg
}
