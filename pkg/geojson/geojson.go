// Package geojson converts between kernel geometries and GeoJSON documents.
//
// Only the seven simple-feature kinds have a GeoJSON representation; curve
// kinds and standalone linear rings are rejected with ErrConversion. Z and M
// ordinates map to the third and fourth coordinate positions.
package geojson

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/beetlebugorg/geowire/pkg/geos"
)

// ErrConversion indicates a geometry that cannot cross the GeoJSON boundary
// in the requested direction.
type ErrConversion struct {
	Kind   string
	Reason string
}

func (e *ErrConversion) Error() string {
	return fmt.Sprintf("cannot convert %s: %s", e.Kind, e.Reason)
}

// Encode serializes a kernel geometry as a GeoJSON geometry document.
func Encode(g geos.Geometry) ([]byte, error) {
	t, err := toGeom(g)
	if err != nil {
		return nil, err
	}
	return geojson.Marshal(t)
}

// Decode parses a GeoJSON geometry document into a kernel geometry. The
// returned geometry owns its coordinate storage.
func Decode(data []byte) (geos.Geometry, error) {
	var t geom.T
	if err := geojson.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return fromGeom(t)
}

func layoutOf(g geos.Geometry) geom.Layout {
	switch {
	case g.HasZ() && g.HasM():
		return geom.XYZM
	case g.HasZ():
		return geom.XYZ
	case g.HasM():
		return geom.XYM
	}
	return geom.XY
}

func flagsOf(l geom.Layout) (hasZ, hasM bool, err error) {
	switch l {
	case geom.XY:
		return false, false, nil
	case geom.XYZ:
		return true, false, nil
	case geom.XYM:
		return false, true, nil
	case geom.XYZM:
		return true, true, nil
	}
	return false, false, &ErrConversion{Kind: "geometry",
		Reason: fmt.Sprintf("unsupported coordinate layout %v", l)}
}

func toGeom(g geos.Geometry) (geom.T, error) {
	l := layoutOf(g)
	switch gg := g.(type) {
	case *geos.Point:
		if gg.IsEmpty() {
			// GeoJSON has no empty point.
			return nil, &ErrConversion{Kind: "Point", Reason: "point is empty"}
		}
		return geom.NewPointFlat(l, copyFloats(gg.CoordSeq().Data())), nil

	case *geos.LineString:
		if gg.IsEmpty() {
			return geom.NewLineString(l), nil
		}
		return geom.NewLineStringFlat(l, copyFloats(gg.CoordSeq().Data())), nil

	case *geos.Polygon:
		if gg.IsEmpty() {
			return geom.NewPolygon(l), nil
		}
		flat, ends := flattenRings(gg)
		return geom.NewPolygonFlat(l, flat, ends), nil

	case *geos.MultiPoint:
		var flat []float64
		for _, p := range gg.Points() {
			if p.IsEmpty() {
				return nil, &ErrConversion{Kind: "MultiPoint", Reason: "member point is empty"}
			}
			if p.HasZ() != g.HasZ() || p.HasM() != g.HasM() {
				return nil, &ErrConversion{Kind: "MultiPoint",
					Reason: "members must share dimensionality"}
			}
			flat = append(flat, p.CoordSeq().Data()...)
		}
		return geom.NewMultiPointFlat(l, flat), nil

	case *geos.MultiLineString:
		var flat []float64
		var ends []int
		for _, line := range gg.Lines() {
			flat = append(flat, line.CoordSeq().Data()...)
			ends = append(ends, len(flat))
		}
		return geom.NewMultiLineStringFlat(l, flat, ends), nil

	case *geos.MultiPolygon:
		var flat []float64
		var endss [][]int
		for _, p := range gg.Polygons() {
			pflat, ends := flattenRings(p)
			base := len(flat)
			for i := range ends {
				ends[i] += base
			}
			flat = append(flat, pflat...)
			endss = append(endss, ends)
		}
		return geom.NewMultiPolygonFlat(l, flat, endss), nil

	case *geos.GeometryCollection:
		gc := geom.NewGeometryCollection()
		for _, child := range gg.Geometries() {
			t, err := toGeom(child)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(t); err != nil {
				return nil, err
			}
		}
		return gc, nil
	}
	return nil, &ErrConversion{Kind: g.Type().String(),
		Reason: "no GeoJSON representation"}
}

func fromGeom(t geom.T) (geos.Geometry, error) {
	gc, ok := t.(*geom.GeometryCollection)
	if ok {
		children := make([]geos.Geometry, len(gc.Geoms()))
		for i, child := range gc.Geoms() {
			g, err := fromGeom(child)
			if err != nil {
				return nil, err
			}
			children[i] = g
		}
		return geos.NewGeometryCollection(children), nil
	}

	hasZ, hasM, err := flagsOf(t.Layout())
	if err != nil {
		return nil, err
	}
	switch tt := t.(type) {
	case *geom.Point:
		return geos.NewPoint(newSeq(tt.FlatCoords(), hasZ, hasM)), nil

	case *geom.LineString:
		if len(tt.FlatCoords()) == 0 {
			return geos.NewLineString(nil), nil
		}
		return geos.NewLineString(newSeq(tt.FlatCoords(), hasZ, hasM)), nil

	case *geom.Polygon:
		return rebuildPolygon(tt.FlatCoords(), tt.Ends(), hasZ, hasM), nil

	case *geom.MultiPoint:
		flat := tt.FlatCoords()
		dim := t.Layout().Stride()
		points := make([]*geos.Point, len(flat)/dim)
		for i := range points {
			points[i] = geos.NewPoint(newSeq(flat[i*dim:(i+1)*dim], hasZ, hasM))
		}
		return geos.NewMultiPoint(points), nil

	case *geom.MultiLineString:
		flat := tt.FlatCoords()
		lines := make([]*geos.LineString, len(tt.Ends()))
		start := 0
		for i, end := range tt.Ends() {
			lines[i] = geos.NewLineString(newSeq(flat[start:end], hasZ, hasM))
			start = end
		}
		return geos.NewMultiLineString(lines), nil

	case *geom.MultiPolygon:
		flat := tt.FlatCoords()
		polygons := make([]*geos.Polygon, len(tt.Endss()))
		start := 0
		for i, ends := range tt.Endss() {
			rel := make([]int, len(ends))
			for j, end := range ends {
				rel[j] = end - start
			}
			var sub []float64
			if len(ends) > 0 {
				sub = flat[start:ends[len(ends)-1]]
				start = ends[len(ends)-1]
			}
			polygons[i] = rebuildPolygon(sub, rel, hasZ, hasM)
		}
		return geos.NewMultiPolygon(polygons), nil
	}
	return nil, &ErrConversion{Kind: fmt.Sprintf("%T", t),
		Reason: "no kernel representation"}
}

// flattenRings concatenates a polygon's ring ordinates and records the end
// offset of each ring within the result.
func flattenRings(p *geos.Polygon) ([]float64, []int) {
	var flat []float64
	var ends []int
	flat = append(flat, p.ExteriorRing().CoordSeq().Data()...)
	ends = append(ends, len(flat))
	for _, ring := range p.InteriorRings() {
		flat = append(flat, ring.CoordSeq().Data()...)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

func rebuildPolygon(flat []float64, ends []int, hasZ, hasM bool) *geos.Polygon {
	if len(ends) == 0 {
		return geos.NewEmptyPolygon()
	}
	exterior := geos.NewLinearRing(newSeq(flat[:ends[0]], hasZ, hasM))
	interiors := make([]*geos.LinearRing, len(ends)-1)
	for i := 1; i < len(ends); i++ {
		interiors[i-1] = geos.NewLinearRing(newSeq(flat[ends[i-1]:ends[i]], hasZ, hasM))
	}
	return geos.NewPolygon(exterior, interiors)
}

func newSeq(flat []float64, hasZ, hasM bool) *geos.CoordSeq {
	return geos.NewCoordSeqFromData(copyFloats(flat), hasZ, hasM)
}

func copyFloats(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}
