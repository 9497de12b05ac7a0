package geos

import "math"

// Error is a kernel-level failure, e.g. a distance computation over an
// unsupported operand.
type Error string

func (e Error) Error() string { return string(e) }

// Distance returns the minimum planar distance between two geometries.
//
// Surfaces count as their full interior: a geometry overlapping a polygon is
// at distance 0. Circular arcs are measured through their control points.
// Empty operands are an error, matching GEOSDistance behavior.
func Distance(a, b Geometry) (float64, error) {
	if a == nil || a.IsEmpty() || b == nil || b.IsEmpty() {
		return 0, Error("distance: empty geometry operand")
	}

	var sa, sb distShapes
	decompose(a, &sa)
	decompose(b, &sb)

	// Interior overlap: any vertex of one operand strictly inside a surface
	// of the other. Boundary crossings are caught by the segment distances
	// below, so vertices are a sufficient witness set.
	if containsAnyVertex(sa.surfaces, &sb) || containsAnyVertex(sb.surfaces, &sa) {
		return 0, nil
	}

	best := math.Inf(1)

	for _, p := range sa.points {
		for _, q := range sb.points {
			best = math.Min(best, math.Hypot(p[0]-q[0], p[1]-q[1]))
		}
		for _, c := range sb.chains {
			best = math.Min(best, distPointChain(p, c))
		}
	}
	for _, c := range sa.chains {
		for _, q := range sb.points {
			best = math.Min(best, distPointChain(q, c))
		}
		for _, d := range sb.chains {
			best = math.Min(best, distChainChain(c, d))
		}
	}

	return best, nil
}

type xy = [2]float64

// distShapes is a geometry flattened into distance primitives: lone points,
// polyline vertex chains (rings included) and surfaces for containment tests.
type distShapes struct {
	points   []xy
	chains   [][]xy
	surfaces []distSurface
}

type distSurface struct {
	shell []xy
	holes [][]xy
}

func decompose(g Geometry, s *distShapes) {
	if g == nil || g.IsEmpty() {
		return
	}
	switch gg := g.(type) {
	case *Point:
		s.points = append(s.points, xy{gg.X(), gg.Y()})
	case *LineString:
		s.chains = append(s.chains, seqXY(gg.CoordSeq()))
	case *LinearRing:
		s.chains = append(s.chains, seqXY(gg.CoordSeq()))
	case *CircularString:
		s.chains = append(s.chains, seqXY(gg.CoordSeq()))
	case *Polygon:
		surf := distSurface{shell: seqXY(gg.ExteriorRing().CoordSeq())}
		s.chains = append(s.chains, surf.shell)
		for _, ring := range gg.InteriorRings() {
			hole := seqXY(ring.CoordSeq())
			surf.holes = append(surf.holes, hole)
			s.chains = append(s.chains, hole)
		}
		s.surfaces = append(s.surfaces, surf)
	case *CurvePolygon:
		surf := distSurface{shell: curveXY(gg.ExteriorRing())}
		s.chains = append(s.chains, surf.shell)
		for _, ring := range gg.InteriorRings() {
			hole := curveXY(ring)
			surf.holes = append(surf.holes, hole)
			s.chains = append(s.chains, hole)
		}
		s.surfaces = append(s.surfaces, surf)
	case *MultiPoint:
		for _, p := range gg.Points() {
			decompose(p, s)
		}
	case *MultiLineString:
		for _, l := range gg.Lines() {
			decompose(l, s)
		}
	case *MultiPolygon:
		for _, p := range gg.Polygons() {
			decompose(p, s)
		}
	case *GeometryCollection:
		for _, c := range gg.Geometries() {
			decompose(c, s)
		}
	case *CompoundCurve:
		for _, seg := range gg.Segments() {
			decompose(seg, s)
		}
	case *MultiCurve:
		for _, c := range gg.Curves() {
			decompose(c, s)
		}
	case *MultiSurface:
		for _, srf := range gg.Surfaces() {
			decompose(srf, s)
		}
	}
}

func seqXY(cs *CoordSeq) []xy {
	if cs == nil {
		return nil
	}
	pts := make([]xy, cs.Size())
	for i := range pts {
		pts[i] = xy{cs.X(i), cs.Y(i)}
	}
	return pts
}

// curveXY flattens a ring curve (linear ring, circular string or compound
// curve) into one closed vertex chain.
func curveXY(g Geometry) []xy {
	var s distShapes
	decompose(g, &s)
	var pts []xy
	for _, c := range s.chains {
		pts = append(pts, c...)
	}
	return pts
}

func containsAnyVertex(surfaces []distSurface, other *distShapes) bool {
	test := func(p xy) bool {
		for _, surf := range surfaces {
			if surf.contains(p) {
				return true
			}
		}
		return false
	}
	for _, p := range other.points {
		if test(p) {
			return true
		}
	}
	for _, c := range other.chains {
		for _, p := range c {
			if test(p) {
				return true
			}
		}
	}
	return false
}

func (s distSurface) contains(p xy) bool {
	if !pointInRing(p, s.shell) {
		return false
	}
	for _, hole := range s.holes {
		if pointInRing(p, hole) {
			return false
		}
	}
	return true
}

// pointInRing is an even-odd ray cast. Points exactly on the boundary may
// land on either side; that is fine here because boundary points are at
// segment distance 0 anyway.
func pointInRing(p xy, ring []xy) bool {
	inside := false
	n := len(ring)
	if n < 3 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[j]
		if (a[1] > p[1]) != (b[1] > p[1]) {
			xCross := (b[0]-a[0])*(p[1]-a[1])/(b[1]-a[1]) + a[0]
			if p[0] < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func distPointChain(p xy, chain []xy) float64 {
	if len(chain) == 1 {
		return math.Hypot(p[0]-chain[0][0], p[1]-chain[0][1])
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(chain); i++ {
		best = math.Min(best, distPointSeg(p, chain[i], chain[i+1]))
	}
	return best
}

func distChainChain(a, b []xy) float64 {
	if len(a) == 1 {
		return distPointChain(a[0], b)
	}
	if len(b) == 1 {
		return distPointChain(b[0], a)
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			best = math.Min(best, distSegSeg(a[i], a[i+1], b[j], b[j+1]))
			if best == 0 {
				return 0
			}
		}
	}
	return best
}

func distPointSeg(p, a, b xy) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p[0]-a[0], p[1]-a[1])
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx, cy := a[0]+t*dx, a[1]+t*dy
	return math.Hypot(p[0]-cx, p[1]-cy)
}

func distSegSeg(a1, a2, b1, b2 xy) float64 {
	if segmentsIntersect(a1, a2, b1, b2) {
		return 0
	}
	return math.Min(
		math.Min(distPointSeg(a1, b1, b2), distPointSeg(a2, b1, b2)),
		math.Min(distPointSeg(b1, a1, a2), distPointSeg(b2, a1, a2)),
	)
}

func segmentsIntersect(a1, a2, b1, b2 xy) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	// Collinear touching is covered by the endpoint distances returning 0.
	return false
}

func cross(o, a, b xy) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}
