package geometry

import (
	"testing"

	"worldforge/internal/core"
)

func TestRectContainsHalfOpen(t *testing.T) {
	r := NewRect(2, 2, 5, 5)
	cases := []struct {
		x, y int32
		want bool
	}{
		{2, 2, true},
		{4, 4, true},
		{5, 5, false},
		{1, 2, false},
		{2, 1, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Errorf("Rect.Contains(%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestRectNormalizesCorners(t *testing.T) {
	a := NewRect(5, 5, 2, 2)
	b := NewRect(2, 2, 5, 5)
	if a.BoundingBox() != b.BoundingBox() {
		t.Errorf("corner order should not affect bounding box: %+v vs %+v", a.BoundingBox(), b.BoundingBox())
	}
}

func TestEllipseContainsCenterAndExcludesCorners(t *testing.T) {
	e := NewEllipse(10, 10, 5, 3)
	if !e.Contains(10, 10) {
		t.Error("center should be contained")
	}
	if e.Contains(16, 14) {
		t.Error("far corner should not be contained")
	}
}

func TestTrapezoidLerpsWidth(t *testing.T) {
	tz := NewTrapezoid(10, 0, 10, 1, 5)
	if !tz.Contains(10, 0) {
		t.Error("center at top should be contained (narrow end)")
	}
	if tz.Contains(13, 0) {
		t.Error("point far from narrow top should be excluded")
	}
	if !tz.Contains(13, 9) {
		t.Error("point within wide bottom should be contained")
	}
}

func TestColumnIsOnePixelWide(t *testing.T) {
	c := NewColumn(7, 0, 10)
	if !c.Contains(7, 5) {
		t.Error("expected column to contain its own x at mid-height")
	}
	if c.Contains(8, 5) {
		t.Error("column should not contain neighboring x")
	}
}

func TestUnionIntersectSubtract(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 15, 15)

	u := Union{A: a, B: b}
	if !u.Contains(2, 2) || !u.Contains(12, 12) {
		t.Error("union should contain points unique to either operand")
	}

	i := Intersect{A: a, B: b}
	if !i.Contains(7, 7) {
		t.Error("intersect should contain the overlap")
	}
	if i.Contains(2, 2) {
		t.Error("intersect should not contain a point unique to A")
	}

	s := Subtract{A: a, B: b}
	if !s.Contains(2, 2) {
		t.Error("subtract should keep points only in A")
	}
	if s.Contains(7, 7) {
		t.Error("subtract should remove the overlap")
	}
}

func TestFillBiomeOrderIndependent(t *testing.T) {
	shape := NewEllipse(25, 25, 20, 20)

	serial := core.NewBiomeMap(50, 50)
	FillBiome(serial, shape, 3, 1<<30) // threshold above area forces serial path

	parallel := core.NewBiomeMap(50, 50)
	FillBiome(parallel, shape, 3, 1) // threshold of 1 forces parallel path

	for y := int32(0); y < 50; y++ {
		for x := int32(0); x < 50; x++ {
			if serial.Get(x, y) != parallel.Get(x, y) {
				t.Fatalf("serial/parallel fill mismatch at (%d,%d): %d vs %d", x, y, serial.Get(x, y), parallel.Get(x, y))
			}
		}
	}
}

func TestFillBiomeIfRespectsFilter(t *testing.T) {
	m := core.NewBiomeMap(10, 10)
	FillBiome(m, NewRect(0, 0, 10, 5), 1, 1<<30)

	FillBiomeIf(m, NewRect(0, 0, 10, 10), 2, 1<<30, func(current uint8) bool {
		return current == core.BiomeUnassigned
	})

	if m.Get(0, 0) != 1 {
		t.Error("pre-filled cell should not be overwritten by fill_biome_if")
	}
	if m.Get(0, 7) != 2 {
		t.Error("unassigned cell should be filled by fill_biome_if")
	}
}

func TestShapeAllMatch(t *testing.T) {
	m := core.NewBiomeMap(20, 20)
	shape := NewRect(2, 2, 8, 8)

	if !ShapeAllMatch(m, shape, 1<<30, func(current uint8) bool { return current == core.BiomeUnassigned }) {
		t.Error("fresh map should match all-unassigned predicate")
	}

	m.Set(4, 4, 9)
	if ShapeAllMatch(m, shape, 1<<30, func(current uint8) bool { return current == core.BiomeUnassigned }) {
		t.Error("expected mismatch after writing a non-unassigned cell inside the shape")
	}
}
