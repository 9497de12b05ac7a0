package geos

// Equal reports whether two geometries are structurally identical: same kind,
// same nesting, same dimensionality and bit-identical ordinates. It is an
// exact comparison, not a geometric equivalence test (no ring rotation, no
// tolerance).
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	if a.IsEmpty() || b.IsEmpty() {
		return a.IsEmpty() == b.IsEmpty()
	}

	switch ga := a.(type) {
	case *Point:
		return seqEqual(ga.CoordSeq(), b.(*Point).CoordSeq())
	case *LineString:
		return seqEqual(ga.CoordSeq(), b.(*LineString).CoordSeq())
	case *LinearRing:
		return seqEqual(ga.CoordSeq(), b.(*LinearRing).CoordSeq())
	case *CircularString:
		return seqEqual(ga.CoordSeq(), b.(*CircularString).CoordSeq())
	case *Polygon:
		gb := b.(*Polygon)
		if ga.NumInteriorRings() != gb.NumInteriorRings() {
			return false
		}
		if !Equal(ga.ExteriorRing(), gb.ExteriorRing()) {
			return false
		}
		for i, ring := range ga.InteriorRings() {
			if !Equal(ring, gb.InteriorRings()[i]) {
				return false
			}
		}
		return true
	case *MultiPoint:
		gb := b.(*MultiPoint)
		if len(ga.Points()) != len(gb.Points()) {
			return false
		}
		for i, p := range ga.Points() {
			if !Equal(p, gb.Points()[i]) {
				return false
			}
		}
		return true
	case *MultiLineString:
		gb := b.(*MultiLineString)
		if len(ga.Lines()) != len(gb.Lines()) {
			return false
		}
		for i, l := range ga.Lines() {
			if !Equal(l, gb.Lines()[i]) {
				return false
			}
		}
		return true
	case *MultiPolygon:
		gb := b.(*MultiPolygon)
		if len(ga.Polygons()) != len(gb.Polygons()) {
			return false
		}
		for i, p := range ga.Polygons() {
			if !Equal(p, gb.Polygons()[i]) {
				return false
			}
		}
		return true
	case *GeometryCollection:
		return geomsEqual(ga.Geometries(), b.(*GeometryCollection).Geometries())
	case *CompoundCurve:
		return geomsEqual(ga.Segments(), b.(*CompoundCurve).Segments())
	case *CurvePolygon:
		return geomsEqual(ga.rings, b.(*CurvePolygon).rings)
	case *MultiCurve:
		return geomsEqual(ga.Curves(), b.(*MultiCurve).Curves())
	case *MultiSurface:
		return geomsEqual(ga.Surfaces(), b.(*MultiSurface).Surfaces())
	}
	return false
}

func geomsEqual(a, b []Geometry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func seqEqual(a, b *CoordSeq) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Size() != b.Size() || a.HasZ() != b.HasZ() || a.HasM() != b.HasM() {
		return false
	}
	for i, v := range a.Data() {
		if b.Data()[i] != v {
			return false
		}
	}
	return true
}
