package geometry

import "fmt"

// ShapeKind enumerates the built-in primitive shapes, for debug
// registries (cmd/worldgen -list-shapes) that want to enumerate what
// is available without reflecting over the Shape interface.
type ShapeKind int

const (
	KindRect ShapeKind = iota
	KindEllipse
	KindTrapezoid
	KindColumn
)

// AllShapeKinds lists every built-in primitive kind.
func AllShapeKinds() []ShapeKind {
	return []ShapeKind{KindRect, KindEllipse, KindTrapezoid, KindColumn}
}

// DisplayName returns a human-facing name for a shape kind.
func (k ShapeKind) DisplayName() string {
	switch k {
	case KindRect:
		return "Rectangle"
	case KindEllipse:
		return "Ellipse"
	case KindTrapezoid:
		return "Trapezoid"
	case KindColumn:
		return "Column"
	default:
		return "Unknown"
	}
}

// MathDescription returns a one-line description of a shape kind's
// containment rule, for debug output only.
func (k ShapeKind) MathDescription() string {
	switch k {
	case KindRect:
		return "x0<=x<x1, y0<=y<y1"
	case KindEllipse:
		return "((x-cx)/rx)^2 + ((y-cy)/ry)^2 <= 1"
	case KindTrapezoid:
		return "yTop<=y<yBottom, |x-cx| <= lerp(topHalfWidth, botHalfWidth, t)"
	case KindColumn:
		return "x == column_x, yTop<=y<yBottom"
	default:
		return ""
	}
}

// ShapeParams is a tagged record of the parameters a primitive shape
// (or a composite of them) was constructed with, kept only for the
// per-sub-step debug shape log — never consulted by Contains/BoundingBox.
type ShapeParams struct {
	Kind string // "Rect", "Ellipse", "Trapezoid", "Column", "Composite"

	// Rect
	X0, Y0, X1, Y1 int32

	// Ellipse
	CX, CY, RX, RY float64

	// Trapezoid
	YTop, YBottom              int32
	TopHalfWidth, BotHalfWidth float64

	// Column
	ColumnX int32

	// Composite (Union/Intersect/Subtract) — free-text only, debug-only.
	CompositeDescription string
}

// ParamsFromRect builds a ShapeParams record for a Rect.
func ParamsFromRect(r Rect) ShapeParams {
	bb := r.BoundingBox()
	return ShapeParams{Kind: "Rect", X0: bb.XMin, Y0: bb.YMin, X1: bb.XMax, Y1: bb.YMax}
}

// ParamsFromEllipse builds a ShapeParams record for an Ellipse.
func ParamsFromEllipse(e Ellipse) ShapeParams {
	return ShapeParams{Kind: "Ellipse", CX: e.cx, CY: e.cy, RX: e.rx, RY: e.ry}
}

// ParamsFromTrapezoid builds a ShapeParams record for a Trapezoid.
func ParamsFromTrapezoid(t Trapezoid) ShapeParams {
	return ShapeParams{
		Kind: "Trapezoid", CX: t.cx, YTop: t.yTop, YBottom: t.yBottom,
		TopHalfWidth: t.topHalfWidth, BotHalfWidth: t.botHalfWidth,
	}
}

// ParamsFromColumn builds a ShapeParams record for a Column.
func ParamsFromColumn(c Column) ShapeParams {
	return ShapeParams{Kind: "Column", ColumnX: c.x, YTop: c.yTop, YBottom: c.yBottom}
}

// ParamsComposite builds a ShapeParams record describing a combinator
// application. The description format ("<TypeA> <op> <TypeB>") is
// debug-only and not part of any stable contract.
func ParamsComposite(a, b Shape, op string) ShapeParams {
	return ShapeParams{
		Kind:                  "Composite",
		CompositeDescription: fmt.Sprintf("%s %s %s", a.TypeName(), op, b.TypeName()),
	}
}

// KindLabel returns the tagged variant name ("Rect", "Ellipse",
// "Trapezoid", "Column" or "Composite"), which is the primitive's
// TypeName rather than ShapeKind's DisplayName.
func (p ShapeParams) KindLabel() string { return p.Kind }

// ShapeRecord is one entry of a sub-step's shape log: a human label, a
// bounding box for quick visualization, a preview color, and the
// params used to build the shape.
type ShapeRecord struct {
	Label  string
	BBox   BoundingBox
	Color  [4]uint8
	Params ShapeParams
}

// NewShapeRecord builds a ShapeRecord.
func NewShapeRecord(label string, shape Shape, color [4]uint8, params ShapeParams) ShapeRecord {
	return ShapeRecord{Label: label, BBox: shape.BoundingBox(), Color: color, Params: params}
}
