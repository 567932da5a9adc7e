package geometry

// Union is the set of points contained in either operand shape.
type Union struct {
	A, B Shape
}

func (u Union) Contains(x, y int32) bool {
	return u.A.Contains(x, y) || u.B.Contains(x, y)
}

func (u Union) BoundingBox() BoundingBox {
	return u.A.BoundingBox().Union(u.B.BoundingBox())
}

func (u Union) TypeName() string { return "Union" }

// Intersect is the set of points contained in both operand shapes.
type Intersect struct {
	A, B Shape
}

func (i Intersect) Contains(x, y int32) bool {
	return i.A.Contains(x, y) && i.B.Contains(x, y)
}

func (i Intersect) BoundingBox() BoundingBox {
	return i.A.BoundingBox().Intersect(i.B.BoundingBox())
}

func (i Intersect) TypeName() string { return "Intersect" }

// Subtract is the set of points contained in A but not in B.
type Subtract struct {
	A, B Shape
}

func (s Subtract) Contains(x, y int32) bool {
	return s.A.Contains(x, y) && !s.B.Contains(x, y)
}

func (s Subtract) BoundingBox() BoundingBox {
	return s.A.BoundingBox()
}

func (s Subtract) TypeName() string { return "Subtract" }

// CombineUnion returns the union of a and b. Free function mirroring
// the method-style convenience the phases use most: shape =
// geometry.CombineUnion(forest, jungle).
func CombineUnion(a, b Shape) Shape { return Union{A: a, B: b} }

// CombineIntersect returns the intersection of a and b.
func CombineIntersect(a, b Shape) Shape { return Intersect{A: a, B: b} }

// CombineSubtract returns a with b's area removed.
func CombineSubtract(a, b Shape) Shape { return Subtract{A: a, B: b} }
