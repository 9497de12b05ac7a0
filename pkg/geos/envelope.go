package geos

import "math"

// Envelope is an axis-aligned bounding rectangle.
//
// A null envelope (no points, used for empty geometries) is represented with
// inverted bounds and answers false to every intersection test.
type Envelope struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NullEnvelope returns the envelope of nothing. Expanding it by a point
// yields that point's envelope.
func NullEnvelope() Envelope {
	return Envelope{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// NewEnvelope returns the envelope spanning the two corner points.
func NewEnvelope(x1, y1, x2, y2 float64) Envelope {
	return Envelope{
		MinX: math.Min(x1, x2), MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2), MaxY: math.Max(y1, y2),
	}
}

// IsNull reports whether the envelope covers no points.
func (e Envelope) IsNull() bool {
	return e.MinX > e.MaxX
}

// ExpandedToInclude returns the envelope grown to cover the point (x, y).
func (e Envelope) ExpandedToInclude(x, y float64) Envelope {
	return Envelope{
		MinX: math.Min(e.MinX, x), MinY: math.Min(e.MinY, y),
		MaxX: math.Max(e.MaxX, x), MaxY: math.Max(e.MaxY, y),
	}
}

// Union returns the smallest envelope covering both e and o.
func (e Envelope) Union(o Envelope) Envelope {
	if e.IsNull() {
		return o
	}
	if o.IsNull() {
		return e
	}
	return Envelope{
		MinX: math.Min(e.MinX, o.MinX), MinY: math.Min(e.MinY, o.MinY),
		MaxX: math.Max(e.MaxX, o.MaxX), MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

// Intersects reports whether the two envelopes share at least one point.
// Touching edges count as intersecting. A null envelope intersects nothing.
func (e Envelope) Intersects(o Envelope) bool {
	if e.IsNull() || o.IsNull() {
		return false
	}
	return e.MinX <= o.MaxX && e.MaxX >= o.MinX &&
		e.MinY <= o.MaxY && e.MaxY >= o.MinY
}

// Contains reports whether the point (x, y) lies inside or on the envelope.
func (e Envelope) Contains(x, y float64) bool {
	if e.IsNull() {
		return false
	}
	return x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
}

// Distance returns the minimum distance between the two envelopes, 0 if they
// intersect. It is a lower bound on the distance between any geometries the
// envelopes cover, which is what makes it usable for branch-and-bound
// pruning in the STR-tree.
func (e Envelope) Distance(o Envelope) float64 {
	if e.Intersects(o) {
		return 0
	}
	var dx, dy float64
	if e.MaxX < o.MinX {
		dx = o.MinX - e.MaxX
	} else if e.MinX > o.MaxX {
		dx = e.MinX - o.MaxX
	}
	if e.MaxY < o.MinY {
		dy = o.MinY - e.MaxY
	} else if e.MinY > o.MaxY {
		dy = e.MinY - o.MaxY
	}
	return math.Hypot(dx, dy)
}

// CenterX returns the X coordinate of the envelope center.
func (e Envelope) CenterX() float64 {
	return (e.MinX + e.MaxX) / 2
}

// CenterY returns the Y coordinate of the envelope center.
func (e Envelope) CenterY() float64 {
	return (e.MinY + e.MaxY) / 2
}
