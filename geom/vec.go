// Package geom provides the integer grid vector shared by the input and physics packages.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a point on the integer grid. Vec values are immutable by convention:
// every operation returns a new Vec and fractional results are rounded.
type Vec struct {
	X, Y int
}

// V creates a Vec from integer coordinates.
func V(x, y int) Vec {
	return Vec{X: x, Y: y}
}

// VF creates a Vec from fractional coordinates, rounding halves up.
func VF(x, y float64) Vec {
	return Vec{X: round(x), Y: round(y)}
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales v by a scalar.
func (v Vec) Mul(s float64) Vec {
	return VF(float64(v.X)*s, float64(v.Y)*s)
}

// MulVec multiplies v by o component-wise.
func (v Vec) MulVec(o Vec) Vec {
	return Vec{X: v.X * o.X, Y: v.Y * o.Y}
}

// Div divides v by o component-wise. An axis divided by zero yields 0.
func (v Vec) Div(o Vec) Vec {
	var x, y float64
	if o.X != 0 {
		x = float64(v.X) / float64(o.X)
	}
	if o.Y != 0 {
		y = float64(v.Y) / float64(o.Y)
	}
	return VF(x, y)
}

// Round returns v unchanged; coordinates are rounded on construction.
func (v Vec) Round() Vec {
	return v
}

// MaxLimit clamps each coordinate of v to at most the matching coordinate of limit.
func (v Vec) MaxLimit(limit Vec) Vec {
	return Vec{X: min(v.X, limit.X), Y: min(v.Y, limit.Y)}
}

// Equal reports whether both coordinates match.
func (v Vec) Equal(o Vec) bool {
	return v.X == o.X && v.Y == o.Y
}

// Negate returns -v.
func (v Vec) Negate() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Rotate turns v by deg degrees around pivot. On the screen grid, where y grows
// downward, a positive angle is a clockwise turn.
func (v Vec) Rotate(deg float64, pivot Vec) Vec {
	if deg == 0 {
		return v
	}

	m := mgl64.Rotate2D(mgl64.DegToRad(deg))
	r := m.Mul2x1(mgl64.Vec2{float64(v.X - pivot.X), float64(v.Y - pivot.Y)})
	return VF(float64(pivot.X)+r[0], float64(pivot.Y)+r[1])
}

// Key packs v into a single integer suitable for hash sets.
func (v Vec) Key() uint64 {
	return uint64(uint32(int32(v.X)))<<32 | uint64(uint32(int32(v.Y)))
}

// FromKey reverses Key.
func FromKey(k uint64) Vec {
	return Vec{X: int(int32(uint32(k >> 32))), Y: int(int32(uint32(k)))}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}
