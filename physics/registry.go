// Package physics models game pieces as named sets of grid cells with a
// position, rotation and pivot, and answers overlap and boundary queries.
package physics

import (
	"sort"

	"github.com/plus3/gridarcade/geom"
)

// Bounds are the inclusive maximum coordinates of the playfield, so a field of
// 10x20 cells has Bounds{Width: 9, Height: 19}.
type Bounds struct {
	Width, Height int
}

// Size returns Bounds covering a cols x rows playfield.
func Size(cols, rows int) Bounds {
	return Bounds{Width: cols - 1, Height: rows - 1}
}

// Contains reports whether p lies inside the bounds.
func (b Bounds) Contains(p geom.Vec) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= b.Width && p.Y <= b.Height
}

// ColliderInfo is a read-only view of one collider.
type ColliderInfo struct {
	Name     string
	Position geom.Vec
	Center   geom.Vec
	Angle    float64
	Cells    int
}

// Registry is the pool of colliders of one game session.
type Registry struct {
	bounds    Bounds
	colliders map[string]*Collider
}

// NewRegistry creates an empty pool for a playfield of the given bounds.
func NewRegistry(bounds Bounds) *Registry {
	return &Registry{
		bounds:    bounds,
		colliders: make(map[string]*Collider),
	}
}

// Collider returns the collider called name, creating an empty one on first use.
func (r *Registry) Collider(name string) *Collider {
	if c, ok := r.colliders[name]; ok {
		return c
	}
	c := newCollider(name, r)
	r.colliders[name] = c
	return c
}

// Has reports whether a collider called name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.colliders[name]
	return ok
}

// Len returns the number of registered colliders.
func (r *Registry) Len() int {
	return len(r.colliders)
}

// Names returns the collider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.colliders))
	for name := range r.colliders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bounds returns the inclusive field bounds used by edge checks.
func (r *Registry) Bounds() Bounds {
	return r.bounds
}

// SetBounds changes the playfield used by edge queries.
func (r *Registry) SetBounds(b Bounds) {
	r.bounds = b
}

// Clear drops every collider. Colliders handed out before Clear are detached
// and no longer reachable by name.
func (r *Registry) Clear() {
	for _, c := range r.colliders {
		c.registry = nil
	}
	r.colliders = make(map[string]*Collider)
}

// Snapshot describes every collider, sorted by name.
func (r *Registry) Snapshot() []ColliderInfo {
	infos := make([]ColliderInfo, 0, len(r.colliders))
	for _, name := range r.Names() {
		c := r.colliders[name]
		infos = append(infos, ColliderInfo{
			Name:     name,
			Position: c.position,
			Center:   c.center,
			Angle:    c.angle,
			Cells:    len(c.WorldMap()),
		})
	}
	return infos
}

func (r *Registry) remove(c *Collider) {
	if r.colliders[c.name] == c {
		delete(r.colliders, c.name)
	}
	c.registry = nil
}
