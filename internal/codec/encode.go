package codec

import "github.com/beetlebugorg/geowire/pkg/geos"

// Encoder serializes kernel geometry trees into the flat buffer format.
//
// The input buffer's prologue is [reserved][count][handle...][capacity]: slot
// 0 is overwritten with the handle of a freshly allocated output buffer (or 0
// when the encoder wrote in place), slot 1 with the float region's index
// inside whichever buffer was chosen, and capacity declares how many words
// after the handle array the encoder may reuse.
//
// Sizing and writing are the same recursive walk over the geometry tree fed
// into two different sinks, so the measured sizes cannot drift from the
// written output.
type Encoder struct {
	Handles *HandleTable

	// Allowed reports whether the active profile accepts a type tag and its
	// measure flag. nil accepts everything.
	Allowed func(t geos.GeomType, hasM bool) bool

	// MaxOutputWords caps the size of a freshly allocated output buffer.
	// 0 means no limit.
	MaxOutputWords int
}

// EncodeGeometries serializes the geometries named by the handle array in
// buf. The output integer region carries, per geometry, a header word,
// counts, and (length, sequence handle) pairs for every sequence-backed
// curve; Point and MultiPoint ordinates are bulk-copied into the float
// region. Sequence handles written to the output must be released by the
// caller after it has copied the ordinates out; so must the output buffer
// handle when one was allocated.
func (e *Encoder) EncodeGeometries(buf *Buffer) error {
	count, err := buf.Word(1)
	if err != nil {
		return err
	}
	n := int(count)
	if headerWords+n+1 > buf.Len() {
		return &ErrMalformedBuffer{Region: "header", Offset: 1,
			Reason: "geometry handle array exceeds buffer"}
	}
	geoms := make([]geos.Geometry, n)
	for i := range geoms {
		h, err := buf.Word(headerWords + i)
		if err != nil {
			return err
		}
		if geoms[i], err = e.Handles.Geometry(h); err != nil {
			return err
		}
	}
	avail, err := buf.Word(headerWords + n)
	if err != nil {
		return err
	}
	out := headerWords + n // word offset where in-place output starts
	if out+int(avail) > buf.Len() {
		return &ErrMalformedBuffer{Region: "header", Offset: out,
			Reason: "declared spare capacity exceeds buffer"}
	}

	// Measuring pass.
	var ms measureSink
	for _, g := range geoms {
		if err := e.walkGeom(g, &ms); err != nil {
			return err
		}
	}

	// Buffer selection. The in-place layout needs a padding word whenever
	// the integer region ends on an odd word, to keep floats 8-byte aligned.
	pad := (out + ms.words) % 2
	var B *wordRegion
	var F *floatRegion
	if ms.words+pad+2*ms.floats > int(avail) {
		bAligned := ms.words + ms.words%2
		total := bAligned + 2*ms.floats
		if e.MaxOutputWords > 0 && total > e.MaxOutputWords {
			return &ErrAllocation{Words: total, Limit: e.MaxOutputWords}
		}
		fresh := NewBuffer(total)
		if err := buf.SetWord(0, e.Handles.Register(fresh)); err != nil {
			return err
		}
		if err := buf.SetWord(1, uint32(bAligned/2)); err != nil {
			return err
		}
		if B, err = newWordRegion(fresh, "integer", 0, ms.words); err != nil {
			return err
		}
		if F, err = newFloatRegion(fresh, bAligned/2, ms.floats); err != nil {
			return err
		}
	} else {
		if err := buf.SetWord(0, 0); err != nil {
			return err
		}
		fStart := (out + ms.words + 1) / 2
		if err := buf.SetWord(1, uint32(fStart)); err != nil {
			return err
		}
		if B, err = newWordRegion(buf, "integer", out, ms.words); err != nil {
			return err
		}
		if F, err = newFloatRegion(buf, fStart, ms.floats); err != nil {
			return err
		}
	}

	// Writing pass.
	ws := writeSink{handles: e.Handles, b: B, f: F}
	for _, g := range geoms {
		if err := e.walkGeom(g, &ws); err != nil {
			return err
		}
	}
	if !B.done() || F.cur != F.length {
		return &ErrMalformedBuffer{Region: "integer", Offset: B.cur,
			Reason: "measuring and writing passes disagree"}
	}
	return nil
}

// encodeSink receives the serialized form of a geometry walk. measureSink
// counts, writeSink emits; both see the identical call sequence.
type encodeSink interface {
	// word emits one integer-region word (header or count).
	word(v uint32) error
	// sequence emits a (length, handle) pair for a sequence-backed curve.
	sequence(cs *geos.CoordSeq) error
	// coords emits point ordinates into the float region.
	coords(data []float64) error
}

type measureSink struct {
	words  int
	floats int
}

func (s *measureSink) word(uint32) error             { s.words++; return nil }
func (s *measureSink) sequence(*geos.CoordSeq) error { s.words += 2; return nil }
func (s *measureSink) coords(data []float64) error   { s.floats += len(data); return nil }

type writeSink struct {
	handles *HandleTable
	b       *wordRegion
	f       *floatRegion
}

func (s *writeSink) word(v uint32) error {
	return s.b.put(v)
}

func (s *writeSink) sequence(cs *geos.CoordSeq) error {
	if err := s.b.put(uint32(cs.Size())); err != nil {
		return err
	}
	return s.b.put(s.handles.Register(cs))
}

func (s *writeSink) coords(data []float64) error {
	for _, v := range data {
		if err := s.f.put(v); err != nil {
			return err
		}
	}
	return nil
}

// walkGeom drives one geometry through a sink. Empty geometries emit only
// their header word.
func (e *Encoder) walkGeom(g geos.Geometry, s encodeSink) error {
	if e.Allowed != nil && !e.Allowed(g.Type(), g.HasM()) {
		return &ErrUnsupportedGeometry{Tag: uint32(g.Type()), Reason: "type not in active profile"}
	}
	if err := s.word(packHeader(g.Type(), g.IsEmpty(), g.HasZ(), g.HasM())); err != nil {
		return err
	}
	if g.IsEmpty() {
		return nil
	}

	switch gg := g.(type) {
	case *geos.Point:
		return s.coords(gg.CoordSeq().Data())

	case *geos.LineString:
		return s.sequence(gg.CoordSeq())

	case *geos.LinearRing:
		return s.sequence(gg.CoordSeq())

	case *geos.CircularString:
		return s.sequence(gg.CoordSeq())

	case *geos.Polygon:
		if err := s.word(uint32(gg.NumInteriorRings() + 1)); err != nil {
			return err
		}
		if err := s.sequence(gg.ExteriorRing().CoordSeq()); err != nil {
			return err
		}
		for _, ring := range gg.InteriorRings() {
			if err := s.sequence(ring.CoordSeq()); err != nil {
				return err
			}
		}
		return nil

	case *geos.MultiPoint:
		if err := s.word(uint32(len(gg.Points()))); err != nil {
			return err
		}
		dim := ordinates(gg.HasZ(), gg.HasM())
		for _, p := range gg.Points() {
			if p.IsEmpty() || p.CoordSeq().Dim() != dim {
				return &ErrUnsupportedGeometry{Tag: uint32(geos.TypeMultiPoint),
					Reason: "MultiPoint members must share dimensionality"}
			}
			if err := s.coords(p.CoordSeq().Data()); err != nil {
				return err
			}
		}
		return nil

	case *geos.MultiLineString:
		if err := s.word(uint32(len(gg.Lines()))); err != nil {
			return err
		}
		for _, l := range gg.Lines() {
			if err := s.sequence(l.CoordSeq()); err != nil {
				return err
			}
		}
		return nil

	case *geos.MultiPolygon:
		if err := s.word(uint32(len(gg.Polygons()))); err != nil {
			return err
		}
		for _, p := range gg.Polygons() {
			if err := s.word(uint32(p.NumInteriorRings() + 1)); err != nil {
				return err
			}
			if err := s.sequence(p.ExteriorRing().CoordSeq()); err != nil {
				return err
			}
			for _, ring := range p.InteriorRings() {
				if err := s.sequence(ring.CoordSeq()); err != nil {
					return err
				}
			}
		}
		return nil

	case *geos.GeometryCollection:
		if err := s.word(uint32(len(gg.Geometries()))); err != nil {
			return err
		}
		for _, child := range gg.Geometries() {
			if err := e.walkGeom(child, s); err != nil {
				return err
			}
		}
		return nil

	case *geos.CompoundCurve:
		if err := s.word(uint32(len(gg.Segments()))); err != nil {
			return err
		}
		for _, seg := range gg.Segments() {
			if err := e.walkGeom(seg, s); err != nil {
				return err
			}
		}
		return nil

	case *geos.CurvePolygon:
		if err := s.word(uint32(len(gg.InteriorRings()) + 1)); err != nil {
			return err
		}
		if err := e.walkGeom(gg.ExteriorRing(), s); err != nil {
			return err
		}
		for _, ring := range gg.InteriorRings() {
			if err := e.walkGeom(ring, s); err != nil {
				return err
			}
		}
		return nil

	case *geos.MultiCurve:
		if err := s.word(uint32(len(gg.Curves()))); err != nil {
			return err
		}
		for _, c := range gg.Curves() {
			if err := e.walkGeom(c, s); err != nil {
				return err
			}
		}
		return nil

	case *geos.MultiSurface:
		if err := s.word(uint32(len(gg.Surfaces()))); err != nil {
			return err
		}
		for _, srf := range gg.Surfaces() {
			if err := e.walkGeom(srf, s); err != nil {
				return err
			}
		}
		return nil
	}
	return &ErrUnsupportedGeometry{Tag: uint32(g.Type()), Reason: "unknown geometry kind"}
}
