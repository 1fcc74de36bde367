package tetris

import (
	"image/color"
	"math/rand/v2"

	"github.com/plus3/gridarcade/geom"
)

// Figure is one tetromino in its spawn orientation.
type Figure struct {
	Name      string
	Cells     []geom.Vec
	Center    geom.Vec // rotation pivot, local space
	Rotatable bool
	Color     color.RGBA
}

// Height is the number of rows the figure spans at spawn.
func (f Figure) Height() int {
	h := 0
	for _, c := range f.Cells {
		h = max(h, c.Y+1)
	}
	return h
}

// Figures is the catalog the bag draws from.
var Figures = []Figure{
	{
		Name:      "I",
		Cells:     []geom.Vec{geom.V(0, 0), geom.V(0, 1), geom.V(0, 2), geom.V(0, 3)},
		Center:    geom.V(0, 2),
		Rotatable: true,
		Color:     color.RGBA{0x1b, 0xe1, 0xca, 0xff},
	},
	{
		Name:      "J",
		Cells:     []geom.Vec{geom.V(1, 0), geom.V(1, 1), geom.V(1, 2), geom.V(0, 2)},
		Center:    geom.V(1, 1),
		Rotatable: true,
		Color:     color.RGBA{0xdc, 0x00, 0x85, 0xff},
	},
	{
		Name:      "L",
		Cells:     []geom.Vec{geom.V(0, 0), geom.V(0, 1), geom.V(0, 2), geom.V(1, 2)},
		Center:    geom.V(0, 1),
		Rotatable: true,
		Color:     color.RGBA{0x96, 0x00, 0x1e, 0xff},
	},
	{
		Name:  "O",
		Cells: []geom.Vec{geom.V(0, 0), geom.V(0, 1), geom.V(1, 0), geom.V(1, 1)},
		Color: color.RGBA{0xe7, 0xbb, 0x00, 0xff},
	},
	{
		Name:      "S",
		Cells:     []geom.Vec{geom.V(0, 0), geom.V(1, 0), geom.V(1, 1), geom.V(2, 1)},
		Center:    geom.V(1, 0),
		Rotatable: true,
		Color:     color.RGBA{0x26, 0xda, 0x07, 0xff},
	},
	{
		Name:      "T",
		Cells:     []geom.Vec{geom.V(0, 0), geom.V(1, 0), geom.V(2, 0), geom.V(1, 1)},
		Center:    geom.V(1, 0),
		Rotatable: true,
		Color:     color.RGBA{0xff, 0x44, 0x00, 0xff},
	},
	{
		Name:      "Z",
		Cells:     []geom.Vec{geom.V(1, 0), geom.V(2, 0), geom.V(0, 1), geom.V(1, 1)},
		Center:    geom.V(2, 0),
		Rotatable: true,
		Color:     color.RGBA{0x00, 0x3e, 0xdc, 0xff},
	},
}

// FieldColor paints frozen cells.
var FieldColor = color.RGBA{0x80, 0x80, 0x80, 0xff}

// Bag deals every figure once, in random order, before reshuffling.
type Bag struct {
	rng  *rand.Rand
	left []int
}

// NewBag creates a bag. A zero seed draws one at random.
func NewBag(seed uint64) *Bag {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Bag{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns the next figure.
func (b *Bag) Next() Figure {
	if len(b.left) == 0 {
		b.left = b.rng.Perm(len(Figures))
	}
	i := b.left[0]
	b.left = b.left[1:]
	return Figures[i]
}
