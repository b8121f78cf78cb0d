package quadtree

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is an axis-aligned square region of world space. Boxes are
// never mutated after creation; child boxes are derived with Child.
type BoundingBox struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

// NewBoundingBox returns the square [min,max]x[min,max].
func NewBoundingBox(min, max float32) BoundingBox {
	return BoundingBox{MinX: min, MaxX: max, MinY: min, MaxY: max}
}

// Cx returns the midpoint of the x axis.
func (b BoundingBox) Cx() float32 {
	return (b.MinX + b.MaxX) / 2
}

// Cy returns the midpoint of the y axis.
func (b BoundingBox) Cy() float32 {
	return (b.MinY + b.MaxY) / 2
}

// Length returns the side length of the box.
func (b BoundingBox) Length() float32 {
	return b.MaxX - b.MinX
}

// Contains reports whether p lies within the box, inclusive on both axes.
func (b BoundingBox) Contains(p mgl32.Vec2) bool {
	return p.X() >= b.MinX && p.X() <= b.MaxX &&
		p.Y() >= b.MinY && p.Y() <= b.MaxY
}

// Quadrant returns the quadrant index for a point inside the box.
// Quadrants 0 and 1 are the left and right halves of the top half;
// 2 and 3 are the left and right halves of the bottom half.
func (b BoundingBox) Quadrant(p mgl32.Vec2) int {
	// 0 if left half, 1 if right half.
	x := 0
	if p.X() >= b.Cx() {
		x = 1
	}
	// 0 if top half, 1 if bottom half.
	y := 0
	if p.Y() <= b.Cy() {
		y = 1
	}
	return x + y<<1
}

// Child returns the exact sub-square for quadrant q. The four children
// partition the parent at the midlines with no gap or overlap, so
// Child(Quadrant(p)).Contains(p) holds for any p inside the box.
func (b BoundingBox) Child(q int) BoundingBox {
	switch q {
	case 0:
		return BoundingBox{MinX: b.MinX, MaxX: b.Cx(), MinY: b.Cy(), MaxY: b.MaxY}
	case 1:
		return BoundingBox{MinX: b.Cx(), MaxX: b.MaxX, MinY: b.Cy(), MaxY: b.MaxY}
	case 2:
		return BoundingBox{MinX: b.MinX, MaxX: b.Cx(), MinY: b.MinY, MaxY: b.Cy()}
	case 3:
		return BoundingBox{MinX: b.Cx(), MaxX: b.MaxX, MinY: b.MinY, MaxY: b.Cy()}
	}
	return b
}
