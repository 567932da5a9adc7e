package geometry

import "math"

// Rect is an axis-aligned rectangle, inclusive of [x0,x1) x [y0,y1).
// NewRect normalizes its corners so x0<=x1 and y0<=y1 regardless of the
// order the caller supplies them in.
type Rect struct {
	x0, y0, x1, y1 int32
}

// NewRect builds a Rect from two opposite corners, normalizing order.
func NewRect(xa, ya, xb, yb int32) Rect {
	x0, x1 := xa, xb
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := ya, yb
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{x0: x0, y0: y0, x1: x1, y1: y1}
}

// RectFromCenter builds a Rect of the given width/height centered on
// (cx, cy).
func RectFromCenter(cx, cy, width, height int32) Rect {
	hw, hh := width/2, height/2
	return NewRect(cx-hw, cy-hh, cx-hw+width, cy-hh+height)
}

func (r Rect) Contains(x, y int32) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

func (r Rect) BoundingBox() BoundingBox {
	return BoundingBox{XMin: r.x0, YMin: r.y0, XMax: r.x1, YMax: r.y1}
}

func (r Rect) TypeName() string { return "Rect" }

// Ellipse is an axis-aligned ellipse defined by center and radii.
type Ellipse struct {
	cx, cy float64
	rx, ry float64
}

// NewEllipse builds an Ellipse from a center point and radii.
func NewEllipse(cx, cy, rx, ry float64) Ellipse {
	return Ellipse{cx: cx, cy: cy, rx: rx, ry: ry}
}

func (e Ellipse) Contains(x, y int32) bool {
	if e.rx == 0 || e.ry == 0 {
		return false
	}
	dx := (float64(x) + 0.5 - e.cx) / e.rx
	dy := (float64(y) + 0.5 - e.cy) / e.ry
	return dx*dx+dy*dy <= 1.0
}

func (e Ellipse) BoundingBox() BoundingBox {
	return BoundingBox{
		XMin: int32(math.Floor(e.cx - e.rx)),
		YMin: int32(math.Floor(e.cy - e.ry)),
		XMax: int32(math.Ceil(e.cx + e.rx)),
		YMax: int32(math.Ceil(e.cy + e.ry)),
	}
}

func (e Ellipse) TypeName() string { return "Ellipse" }

// Trapezoid is a quadrilateral whose top and bottom edges are
// horizontal and whose left/right edges lerp linearly between a
// (possibly different) half-width at the top and at the bottom.
type Trapezoid struct {
	cx                       float64
	yTop, yBottom            int32
	topHalfWidth, botHalfWidth float64
}

// NewTrapezoid builds a Trapezoid centered on cx, spanning
// [yTop,yBottom), with the given half-widths at the top and bottom
// edges.
func NewTrapezoid(cx float64, yTop, yBottom int32, topHalfWidth, botHalfWidth float64) Trapezoid {
	if yBottom < yTop {
		yTop, yBottom = yBottom, yTop
	}
	return Trapezoid{cx: cx, yTop: yTop, yBottom: yBottom, topHalfWidth: topHalfWidth, botHalfWidth: botHalfWidth}
}

// TrapezoidFromCenter builds a Trapezoid centered vertically on cy with
// total height h.
func TrapezoidFromCenter(cx, cy float64, h int32, topHalfWidth, botHalfWidth float64) Trapezoid {
	half := h / 2
	return NewTrapezoid(cx, int32(cy)-half, int32(cy)-half+h, topHalfWidth, botHalfWidth)
}

func (t Trapezoid) Contains(x, y int32) bool {
	if y < t.yTop || y >= t.yBottom {
		return false
	}
	span := float64(t.yBottom - t.yTop)
	var frac float64
	if span > 0 {
		frac = (float64(y) - float64(t.yTop)) / span
	}
	halfWidth := t.topHalfWidth + (t.botHalfWidth-t.topHalfWidth)*frac
	left := t.cx - halfWidth
	right := t.cx + halfWidth
	fx := float64(x) + 0.5
	return fx >= left && fx < right
}

func (t Trapezoid) BoundingBox() BoundingBox {
	maxHalf := t.topHalfWidth
	if t.botHalfWidth > maxHalf {
		maxHalf = t.botHalfWidth
	}
	return BoundingBox{
		XMin: int32(math.Floor(t.cx - maxHalf)),
		YMin: t.yTop,
		XMax: int32(math.Ceil(t.cx + maxHalf)),
		YMax: t.yBottom,
	}
}

func (t Trapezoid) TypeName() string { return "Trapezoid" }

// Column is a single-pixel-wide vertical strip, [yTop,yBottom) at x.
type Column struct {
	x              int32
	yTop, yBottom  int32
}

// NewColumn builds a Column at x spanning [yTop,yBottom).
func NewColumn(x, yTop, yBottom int32) Column {
	if yBottom < yTop {
		yTop, yBottom = yBottom, yTop
	}
	return Column{x: x, yTop: yTop, yBottom: yBottom}
}

func (c Column) Contains(x, y int32) bool {
	return x == c.x && y >= c.yTop && y < c.yBottom
}

func (c Column) BoundingBox() BoundingBox {
	return BoundingBox{XMin: c.x, YMin: c.yTop, XMax: c.x + 1, YMax: c.yBottom}
}

func (c Column) TypeName() string { return "Column" }
