package codec

import "github.com/beetlebugorg/geowire/pkg/geos"

// Decoder turns decode-direction buffers into kernel geometry trees.
//
// Decoding is two host calls. DecodeCoordSequences walks the integer region
// and allocates one kernel coordinate sequence per curve or ring, publishing
// the handles so the host can bulk-write ordinates straight into
// kernel-owned storage. DecodeGeometries then walks the region again and
// assembles the geometry tree, consuming those sequences.
type Decoder struct {
	Handles *HandleTable

	// Allowed reports whether the active profile accepts a type tag and its
	// measure flag. nil accepts everything.
	Allowed func(t geos.GeomType, hasM bool) bool
}

// SequenceRef pairs a coordinate-sequence handle with the sequence it names,
// in the order the sequences were discovered. The host writes ordinates
// through Seq.Data() before calling DecodeGeometries.
type SequenceRef struct {
	Handle uint32
	Seq    *geos.CoordSeq
}

// DecodeCoordSequences runs the decode pre-pass.
//
// For every curve or ring in the integer region it reads the declared point
// count, allocates a sequence of that size and the header's dimensionality,
// overwrites the count word with the sequence handle, and appends the handle
// to the sequence region. Point and MultiPoint coordinates are not
// sequence-backed; they stay in the float region.
//
// The integer cursor must land exactly on dLength and the sequence region
// must be filled exactly; anything else is a malformed buffer.
func (d *Decoder) DecodeCoordSequences(buf *Buffer) ([]SequenceRef, error) {
	dLength, sLength, err := readPrologue(buf)
	if err != nil {
		return nil, err
	}
	D, err := newWordRegion(buf, "integer", headerWords, dLength)
	if err != nil {
		return nil, err
	}
	S, err := newWordRegion(buf, "sequence", headerWords+dLength, sLength)
	if err != nil {
		return nil, err
	}

	var refs []SequenceRef
	for !D.done() {
		if err := d.walkCoords(D, S, &refs, 0); err != nil {
			return nil, err
		}
	}
	if !S.done() {
		return nil, &ErrMalformedBuffer{Region: "sequence", Offset: S.cur,
			Reason: "sequence region longer than sequences discovered"}
	}
	return refs, nil
}

// walkCoords mirrors the assembly pass over one geometry, allocating the
// sequences it will consume.
func (d *Decoder) walkCoords(D, S *wordRegion, refs *[]SequenceRef, depth int) error {
	w, err := D.next()
	if err != nil {
		return err
	}
	t, isEmpty, hasZ, hasM, err := d.checkHeader(w, depth)
	if err != nil {
		return err
	}
	if isEmpty {
		return nil
	}

	switch t {
	case geos.TypePoint:
		// Coordinates live in the float region, no sequence.
		return nil

	case geos.TypeLineString, geos.TypeCircularString, geos.TypeLinearRing:
		return d.allocSequence(D, S, refs, hasZ, hasM)

	case geos.TypePolygon, geos.TypeMultiLineString:
		n, err := D.next()
		if err != nil {
			return err
		}
		for i := uint32(0); i < n; i++ {
			if err := d.allocSequence(D, S, refs, hasZ, hasM); err != nil {
				return err
			}
		}
		return nil

	case geos.TypeMultiPoint:
		// Skip the point count; coordinates live in the float region.
		_, err := D.next()
		return err

	case geos.TypeMultiPolygon:
		np, err := D.next()
		if err != nil {
			return err
		}
		for j := uint32(0); j < np; j++ {
			nr, err := D.next()
			if err != nil {
				return err
			}
			for i := uint32(0); i < nr; i++ {
				if err := d.allocSequence(D, S, refs, hasZ, hasM); err != nil {
					return err
				}
			}
		}
		return nil

	case geos.TypeGeometryCollection, geos.TypeCompoundCurve, geos.TypeCurvePolygon,
		geos.TypeMultiCurve, geos.TypeMultiSurface:
		n, err := D.next()
		if err != nil {
			return err
		}
		for i := uint32(0); i < n; i++ {
			if err := d.walkCoords(D, S, refs, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return &ErrUnsupportedGeometry{Tag: uint32(t), Reason: "unknown type tag"}
}

// allocSequence reads a point count, allocates the sequence, swaps the count
// word for the handle and records it in the sequence region.
func (d *Decoder) allocSequence(D, S *wordRegion, refs *[]SequenceRef, hasZ, hasM bool) error {
	pts, err := D.next()
	if err != nil {
		return err
	}
	cs := geos.NewCoordSeq(int(pts), hasZ, hasM)
	h := d.Handles.Register(cs)
	D.overwriteLast(h)
	if err := S.put(h); err != nil {
		return err
	}
	*refs = append(*refs, SequenceRef{Handle: h, Seq: cs})
	return nil
}

// DecodeGeometries runs the assembly pass.
//
// The integer region is consumed a second time; each geometry header is
// dispatched by type tag and the resulting geometry handle is written back
// into the integer region, slot by slot, in the order the top-level
// geometries appeared. Sequence handles placed by the pre-pass are consumed
// (and released) as their owning geometries are built.
func (d *Decoder) DecodeGeometries(buf *Buffer) error {
	dLength, sLength, err := readPrologue(buf)
	if err != nil {
		return err
	}
	D, err := newWordRegion(buf, "integer", headerWords, dLength)
	if err != nil {
		return err
	}
	fStart := FloatRegionStart(dLength, sLength)
	fLen := buf.Len()/2 - fStart
	if fLen < 0 {
		fLen = 0
	}
	F, err := newFloatRegion(buf, fStart, fLen)
	if err != nil {
		return err
	}

	for o := 0; !D.done(); o++ {
		g, err := d.decodeGeom(D, F, 0)
		if err != nil {
			return err
		}
		if err := buf.SetWord(headerWords+o, d.Handles.Register(g)); err != nil {
			return err
		}
	}
	return nil
}

// decodeGeom assembles one geometry starting at the current integer cursor.
func (d *Decoder) decodeGeom(D *wordRegion, F *floatRegion, depth int) (geos.Geometry, error) {
	w, err := D.next()
	if err != nil {
		return nil, err
	}
	t, isEmpty, hasZ, hasM, err := d.checkHeader(w, depth)
	if err != nil {
		return nil, err
	}
	if isEmpty {
		return emptyGeom(t), nil
	}

	switch t {
	case geos.TypePoint:
		return d.decodePoint(F, hasZ, hasM)

	case geos.TypeLineString:
		cs, err := d.takeSequence(D)
		if err != nil {
			return nil, err
		}
		return geos.NewLineString(cs), nil

	case geos.TypeCircularString:
		cs, err := d.takeSequence(D)
		if err != nil {
			return nil, err
		}
		return geos.NewCircularString(cs), nil

	case geos.TypeLinearRing:
		// Only reachable nested inside curve geometries; checkHeader rejects
		// the standalone case.
		cs, err := d.takeSequence(D)
		if err != nil {
			return nil, err
		}
		return geos.NewLinearRing(cs), nil

	case geos.TypePolygon:
		return d.decodePolygon(D)

	case geos.TypeMultiPoint:
		n, err := D.next()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return geos.NewMultiPoint(nil), nil
		}
		points := make([]*geos.Point, n)
		for i := range points {
			// MultiPoint members carry no headers; dimensionality comes from
			// the parent.
			if points[i], err = d.decodePoint(F, hasZ, hasM); err != nil {
				return nil, err
			}
		}
		return geos.NewMultiPoint(points), nil

	case geos.TypeMultiLineString:
		n, err := D.next()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return geos.NewMultiLineString(nil), nil
		}
		lines := make([]*geos.LineString, n)
		for i := range lines {
			cs, err := d.takeSequence(D)
			if err != nil {
				return nil, err
			}
			lines[i] = geos.NewLineString(cs)
		}
		return geos.NewMultiLineString(lines), nil

	case geos.TypeMultiPolygon:
		n, err := D.next()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return geos.NewMultiPolygon(nil), nil
		}
		polygons := make([]*geos.Polygon, n)
		for i := range polygons {
			p, err := d.decodePolygon(D)
			if err != nil {
				return nil, err
			}
			polygons[i] = p
		}
		return geos.NewMultiPolygon(polygons), nil

	case geos.TypeCompoundCurve:
		n, err := D.next()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return geos.NewCompoundCurve(nil), nil
		}
		segments := make([]geos.Geometry, n)
		for i := range segments {
			if segments[i], err = d.decodeGeom(D, F, depth+1); err != nil {
				return nil, err
			}
		}
		return geos.NewCompoundCurve(segments), nil

	case geos.TypeCurvePolygon:
		n, err := D.next()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return geos.NewEmptyCurvePolygon(), nil
		}
		rings := make([]geos.Geometry, n)
		for i := range rings {
			if rings[i], err = d.decodeGeom(D, F, depth+1); err != nil {
				return nil, err
			}
		}
		return geos.NewCurvePolygon(rings[0], rings[1:]), nil

	case geos.TypeGeometryCollection, geos.TypeMultiCurve, geos.TypeMultiSurface:
		n, err := D.next()
		if err != nil {
			return nil, err
		}
		children := make([]geos.Geometry, n)
		for i := range children {
			if children[i], err = d.decodeGeom(D, F, depth+1); err != nil {
				return nil, err
			}
		}
		switch t {
		case geos.TypeMultiCurve:
			return geos.NewMultiCurve(children), nil
		case geos.TypeMultiSurface:
			return geos.NewMultiSurface(children), nil
		default:
			return geos.NewGeometryCollection(children), nil
		}
	}
	return nil, &ErrUnsupportedGeometry{Tag: uint32(t), Reason: "unknown type tag"}
}

// decodePolygon assembles a polygon whose header has already been consumed.
// MultiPolygon members share this path; they carry no individual headers.
func (d *Decoder) decodePolygon(D *wordRegion) (*geos.Polygon, error) {
	n, err := D.next()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return geos.NewEmptyPolygon(), nil
	}
	rings := make([]*geos.LinearRing, n)
	for i := range rings {
		cs, err := d.takeSequence(D)
		if err != nil {
			return nil, err
		}
		rings[i] = geos.NewLinearRing(cs)
	}
	return geos.NewPolygon(rings[0], rings[1:]), nil
}

// decodePoint reads one point's ordinates straight from the float region.
func (d *Decoder) decodePoint(F *floatRegion, hasZ, hasM bool) (*geos.Point, error) {
	cs := geos.NewCoordSeq(1, hasZ, hasM)
	data := cs.Data()
	for i := 0; i < ordinates(hasZ, hasM); i++ {
		v, err := F.next()
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return geos.NewPoint(cs), nil
}

// takeSequence consumes a sequence handle placed by the pre-pass. Ownership
// moves into the geometry being built, so the handle is released here.
func (d *Decoder) takeSequence(D *wordRegion) (*geos.CoordSeq, error) {
	h, err := D.next()
	if err != nil {
		return nil, err
	}
	cs, err := d.Handles.Sequence(h)
	if err != nil {
		return nil, err
	}
	if err := d.Handles.Release(h); err != nil {
		return nil, err
	}
	return cs, nil
}

// checkHeader validates a header word against the known tags, the standalone
// LinearRing rule and the active profile.
func (d *Decoder) checkHeader(w uint32, depth int) (geos.GeomType, bool, bool, bool, error) {
	tag, isEmpty, hasZ, hasM := unpackHeader(w)
	if tag > uint32(geos.TypeMultiSurface) {
		return 0, false, false, false, &ErrUnsupportedGeometry{Tag: tag, Reason: "unknown type tag"}
	}
	t := geos.GeomType(tag)
	if t == geos.TypeLinearRing && depth == 0 {
		return 0, false, false, false, &ErrUnsupportedGeometry{Tag: tag,
			Reason: "LinearRing is not a standalone geometry"}
	}
	if d.Allowed != nil && !d.Allowed(t, hasM) {
		return 0, false, false, false, &ErrUnsupportedGeometry{Tag: tag,
			Reason: "type not in active profile"}
	}
	return t, isEmpty, hasZ, hasM, nil
}

// emptyGeom builds the typed empty geometry for a header with the isEmpty
// bit set.
func emptyGeom(t geos.GeomType) geos.Geometry {
	switch t {
	case geos.TypePoint:
		return geos.NewEmptyPoint()
	case geos.TypeLineString:
		return geos.NewLineString(nil)
	case geos.TypeLinearRing:
		return geos.NewLinearRing(nil)
	case geos.TypePolygon:
		return geos.NewEmptyPolygon()
	case geos.TypeMultiPoint:
		return geos.NewMultiPoint(nil)
	case geos.TypeMultiLineString:
		return geos.NewMultiLineString(nil)
	case geos.TypeMultiPolygon:
		return geos.NewMultiPolygon(nil)
	case geos.TypeGeometryCollection:
		return geos.NewGeometryCollection(nil)
	case geos.TypeCircularString:
		return geos.NewCircularString(nil)
	case geos.TypeCompoundCurve:
		return geos.NewCompoundCurve(nil)
	case geos.TypeCurvePolygon:
		return geos.NewEmptyCurvePolygon()
	case geos.TypeMultiCurve:
		return geos.NewMultiCurve(nil)
	case geos.TypeMultiSurface:
		return geos.NewMultiSurface(nil)
	}
	return nil
}

// readPrologue reads and sanity-checks the two buffer header words.
func readPrologue(buf *Buffer) (dLength, sLength int, err error) {
	d, err := buf.Word(0)
	if err != nil {
		return 0, 0, err
	}
	s, err := buf.Word(1)
	if err != nil {
		return 0, 0, err
	}
	if headerWords+int(d)+int(s) > buf.Len() {
		return 0, 0, &ErrMalformedBuffer{Region: "header", Offset: 0,
			Reason: "declared region lengths exceed buffer"}
	}
	return int(d), int(s), nil
}
