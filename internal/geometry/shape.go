// Package geometry implements the composable 2D region language the
// generation phases use to describe where a biome or fill applies:
// primitives, boolean combinators, and order-independent fill
// operations over a core.BiomeMap.
package geometry

// BoundingBox is an axis-aligned integer box, [XMin,XMax) x [YMin,YMax).
type BoundingBox struct {
	XMin, YMin, XMax, YMax int32
}

// IsEmpty reports whether the box contains no cells.
func (b BoundingBox) IsEmpty() bool {
	return b.XMax <= b.XMin || b.YMax <= b.YMin
}

// Union returns the smallest box containing both boxes. An empty
// operand is ignored.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return b
	}
	return BoundingBox{
		XMin: min32(b.XMin, o.XMin),
		YMin: min32(b.YMin, o.YMin),
		XMax: max32(b.XMax, o.XMax),
		YMax: max32(b.YMax, o.YMax),
	}
}

// Intersect returns the overlapping region of both boxes, possibly
// empty.
func (b BoundingBox) Intersect(o BoundingBox) BoundingBox {
	r := BoundingBox{
		XMin: max32(b.XMin, o.XMin),
		YMin: max32(b.YMin, o.YMin),
		XMax: min32(b.XMax, o.XMax),
		YMax: min32(b.YMax, o.YMax),
	}
	if r.IsEmpty() {
		return BoundingBox{}
	}
	return r
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Shape is any region of the plane that can answer point-containment
// and report a bounding box cheap enough to iterate. Implementations
// must be safe for concurrent read access — fill operations may probe
// Contains from multiple goroutines.
type Shape interface {
	Contains(x, y int32) bool
	BoundingBox() BoundingBox
	TypeName() string
}
