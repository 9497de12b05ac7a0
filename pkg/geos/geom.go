// Package geos is a pure-Go geometry kernel modeled on the GEOS C API
// surface: typed geometry values backed by flat coordinate sequences, planar
// distance between geometries, and a packed STR-tree spatial index.
//
// The package deliberately stops at data plumbing. It does not validate
// geometric correctness (ring orientation, self-intersection) and performs no
// predicates or transforms beyond envelope math and distance.
package geos

// GeomType identifies a geometry kind. The numeric values are the GEOS type
// tags; they travel in the low four bits of every wire header word, so they
// must never be renumbered.
type GeomType uint8

const (
	TypePoint              GeomType = 0
	TypeLineString         GeomType = 1
	TypeLinearRing         GeomType = 2
	TypePolygon            GeomType = 3
	TypeMultiPoint         GeomType = 4
	TypeMultiLineString    GeomType = 5
	TypeMultiPolygon       GeomType = 6
	TypeGeometryCollection GeomType = 7
	TypeCircularString     GeomType = 8
	TypeCompoundCurve      GeomType = 9
	TypeCurvePolygon       GeomType = 10
	TypeMultiCurve         GeomType = 11
	TypeMultiSurface       GeomType = 12
)

// String returns the WKT-style name of the geometry type.
func (t GeomType) String() string {
	switch t {
	case TypePoint:
		return "Point"
	case TypeLineString:
		return "LineString"
	case TypeLinearRing:
		return "LinearRing"
	case TypePolygon:
		return "Polygon"
	case TypeMultiPoint:
		return "MultiPoint"
	case TypeMultiLineString:
		return "MultiLineString"
	case TypeMultiPolygon:
		return "MultiPolygon"
	case TypeGeometryCollection:
		return "GeometryCollection"
	case TypeCircularString:
		return "CircularString"
	case TypeCompoundCurve:
		return "CompoundCurve"
	case TypeCurvePolygon:
		return "CurvePolygon"
	case TypeMultiCurve:
		return "MultiCurve"
	case TypeMultiSurface:
		return "MultiSurface"
	}
	return "Unknown"
}

// Geometry is the interface satisfied by every geometry kind. Code that needs
// the concrete shape switches on the dynamic type; the thirteen kinds in this
// package are the complete set.
type Geometry interface {
	// Type returns the geometry kind tag.
	Type() GeomType

	// IsEmpty reports whether the geometry carries no coordinate storage.
	IsEmpty() bool

	// HasZ reports whether coordinates carry a Z ordinate. Empty geometries
	// report false.
	HasZ() bool

	// HasM reports whether coordinates carry a measure ordinate. Empty
	// geometries report false.
	HasM() bool

	// Envelope returns the bounding envelope; null for empty geometries.
	Envelope() Envelope
}

// Point is a single coordinate, or the empty point.
type Point struct {
	coords *CoordSeq // one point; nil when empty
}

// NewPoint creates a point from a one-point coordinate sequence. A nil or
// zero-length sequence yields the empty point.
func NewPoint(coords *CoordSeq) *Point {
	if coords == nil || coords.Size() == 0 {
		return &Point{}
	}
	return &Point{coords: coords}
}

// NewEmptyPoint creates the empty point.
func NewEmptyPoint() *Point {
	return &Point{}
}

// NewPointXY creates a 2D point.
func NewPointXY(x, y float64) *Point {
	cs := NewCoordSeq(1, false, false)
	cs.SetXY(0, x, y)
	return &Point{coords: cs}
}

func (g *Point) Type() GeomType { return TypePoint }
func (g *Point) IsEmpty() bool  { return g.coords == nil }

func (g *Point) HasZ() bool {
	return g.coords != nil && g.coords.HasZ()
}

func (g *Point) HasM() bool {
	return g.coords != nil && g.coords.HasM()
}

func (g *Point) Envelope() Envelope {
	if g.coords == nil {
		return NullEnvelope()
	}
	return g.coords.Envelope()
}

// CoordSeq returns the backing sequence, nil for the empty point.
func (g *Point) CoordSeq() *CoordSeq { return g.coords }

// X returns the X ordinate of a non-empty point.
func (g *Point) X() float64 { return g.coords.X(0) }

// Y returns the Y ordinate of a non-empty point.
func (g *Point) Y() float64 { return g.coords.Y(0) }

// LineString is a polyline over a coordinate sequence.
type LineString struct {
	coords *CoordSeq
}

// NewLineString creates a line string over the sequence. A nil or zero-length
// sequence yields the empty line string.
func NewLineString(coords *CoordSeq) *LineString {
	if coords == nil || coords.Size() == 0 {
		return &LineString{}
	}
	return &LineString{coords: coords}
}

func (g *LineString) Type() GeomType { return TypeLineString }
func (g *LineString) IsEmpty() bool  { return g.coords == nil }
func (g *LineString) HasZ() bool     { return g.coords != nil && g.coords.HasZ() }
func (g *LineString) HasM() bool     { return g.coords != nil && g.coords.HasM() }

func (g *LineString) Envelope() Envelope {
	if g.coords == nil {
		return NullEnvelope()
	}
	return g.coords.Envelope()
}

// CoordSeq returns the backing sequence, nil when empty.
func (g *LineString) CoordSeq() *CoordSeq { return g.coords }

// LinearRing is a closed polyline used as a polygon boundary. It is a valid
// component of surfaces but never a standalone wire geometry in the decode
// direction.
type LinearRing struct {
	coords *CoordSeq
}

// NewLinearRing creates a ring over the sequence. A nil or zero-length
// sequence yields the empty ring.
func NewLinearRing(coords *CoordSeq) *LinearRing {
	if coords == nil || coords.Size() == 0 {
		return &LinearRing{}
	}
	return &LinearRing{coords: coords}
}

func (g *LinearRing) Type() GeomType { return TypeLinearRing }
func (g *LinearRing) IsEmpty() bool  { return g.coords == nil }
func (g *LinearRing) HasZ() bool     { return g.coords != nil && g.coords.HasZ() }
func (g *LinearRing) HasM() bool     { return g.coords != nil && g.coords.HasM() }

func (g *LinearRing) Envelope() Envelope {
	if g.coords == nil {
		return NullEnvelope()
	}
	return g.coords.Envelope()
}

// CoordSeq returns the backing sequence, nil when empty.
func (g *LinearRing) CoordSeq() *CoordSeq { return g.coords }

// CircularString is an arc curve; each consecutive coordinate triple defines
// a circular arc through its control points.
type CircularString struct {
	coords *CoordSeq
}

// NewCircularString creates a circular string over the sequence. A nil or
// zero-length sequence yields the empty circular string.
func NewCircularString(coords *CoordSeq) *CircularString {
	if coords == nil || coords.Size() == 0 {
		return &CircularString{}
	}
	return &CircularString{coords: coords}
}

func (g *CircularString) Type() GeomType { return TypeCircularString }
func (g *CircularString) IsEmpty() bool  { return g.coords == nil }
func (g *CircularString) HasZ() bool     { return g.coords != nil && g.coords.HasZ() }
func (g *CircularString) HasM() bool     { return g.coords != nil && g.coords.HasM() }

func (g *CircularString) Envelope() Envelope {
	if g.coords == nil {
		return NullEnvelope()
	}
	return g.coords.Envelope()
}

// CoordSeq returns the backing sequence, nil when empty.
func (g *CircularString) CoordSeq() *CoordSeq { return g.coords }

// Polygon is a surface bounded by linear rings: one exterior ring and zero or
// more interior rings (holes).
type Polygon struct {
	rings []*LinearRing // rings[0] is the exterior
}

// NewPolygon creates a polygon from an exterior ring and interior rings.
func NewPolygon(exterior *LinearRing, interiors []*LinearRing) *Polygon {
	rings := make([]*LinearRing, 0, len(interiors)+1)
	rings = append(rings, exterior)
	rings = append(rings, interiors...)
	return &Polygon{rings: rings}
}

// NewEmptyPolygon creates the empty polygon.
func NewEmptyPolygon() *Polygon {
	return &Polygon{}
}

func (g *Polygon) Type() GeomType { return TypePolygon }
func (g *Polygon) IsEmpty() bool  { return len(g.rings) == 0 }

func (g *Polygon) HasZ() bool {
	return len(g.rings) > 0 && g.rings[0].HasZ()
}

func (g *Polygon) HasM() bool {
	return len(g.rings) > 0 && g.rings[0].HasM()
}

func (g *Polygon) Envelope() Envelope {
	if len(g.rings) == 0 {
		return NullEnvelope()
	}
	return g.rings[0].Envelope()
}

// ExteriorRing returns the shell, nil for the empty polygon.
func (g *Polygon) ExteriorRing() *LinearRing {
	if len(g.rings) == 0 {
		return nil
	}
	return g.rings[0]
}

// InteriorRings returns the holes.
func (g *Polygon) InteriorRings() []*LinearRing {
	if len(g.rings) == 0 {
		return nil
	}
	return g.rings[1:]
}

// NumInteriorRings returns the hole count.
func (g *Polygon) NumInteriorRings() int {
	if len(g.rings) == 0 {
		return 0
	}
	return len(g.rings) - 1
}

// MultiPoint is a collection of points.
type MultiPoint struct {
	points []*Point
}

// NewMultiPoint creates a multipoint from the given points. An empty slice
// yields the empty multipoint.
func NewMultiPoint(points []*Point) *MultiPoint {
	return &MultiPoint{points: points}
}

func (g *MultiPoint) Type() GeomType { return TypeMultiPoint }
func (g *MultiPoint) IsEmpty() bool  { return len(g.points) == 0 }

func (g *MultiPoint) HasZ() bool {
	return len(g.points) > 0 && g.points[0].HasZ()
}

func (g *MultiPoint) HasM() bool {
	return len(g.points) > 0 && g.points[0].HasM()
}

func (g *MultiPoint) Envelope() Envelope {
	env := NullEnvelope()
	for _, p := range g.points {
		env = env.Union(p.Envelope())
	}
	return env
}

// Points returns the member points.
func (g *MultiPoint) Points() []*Point { return g.points }

// MultiLineString is a collection of line strings.
type MultiLineString struct {
	lines []*LineString
}

// NewMultiLineString creates a multilinestring. An empty slice yields the
// empty collection.
func NewMultiLineString(lines []*LineString) *MultiLineString {
	return &MultiLineString{lines: lines}
}

func (g *MultiLineString) Type() GeomType { return TypeMultiLineString }
func (g *MultiLineString) IsEmpty() bool  { return len(g.lines) == 0 }

func (g *MultiLineString) HasZ() bool {
	return len(g.lines) > 0 && g.lines[0].HasZ()
}

func (g *MultiLineString) HasM() bool {
	return len(g.lines) > 0 && g.lines[0].HasM()
}

func (g *MultiLineString) Envelope() Envelope {
	env := NullEnvelope()
	for _, l := range g.lines {
		env = env.Union(l.Envelope())
	}
	return env
}

// Lines returns the member line strings.
func (g *MultiLineString) Lines() []*LineString { return g.lines }

// MultiPolygon is a collection of polygons.
type MultiPolygon struct {
	polygons []*Polygon
}

// NewMultiPolygon creates a multipolygon. An empty slice yields the empty
// collection.
func NewMultiPolygon(polygons []*Polygon) *MultiPolygon {
	return &MultiPolygon{polygons: polygons}
}

func (g *MultiPolygon) Type() GeomType { return TypeMultiPolygon }
func (g *MultiPolygon) IsEmpty() bool  { return len(g.polygons) == 0 }

func (g *MultiPolygon) HasZ() bool {
	return len(g.polygons) > 0 && g.polygons[0].HasZ()
}

func (g *MultiPolygon) HasM() bool {
	return len(g.polygons) > 0 && g.polygons[0].HasM()
}

func (g *MultiPolygon) Envelope() Envelope {
	env := NullEnvelope()
	for _, p := range g.polygons {
		env = env.Union(p.Envelope())
	}
	return env
}

// Polygons returns the member polygons.
func (g *MultiPolygon) Polygons() []*Polygon { return g.polygons }

// GeometryCollection is a heterogeneous collection of geometries.
type GeometryCollection struct {
	geoms []Geometry
}

// NewGeometryCollection creates a collection. An empty slice yields the empty
// collection.
func NewGeometryCollection(geoms []Geometry) *GeometryCollection {
	return &GeometryCollection{geoms: geoms}
}

func (g *GeometryCollection) Type() GeomType { return TypeGeometryCollection }
func (g *GeometryCollection) IsEmpty() bool  { return len(g.geoms) == 0 }

func (g *GeometryCollection) HasZ() bool {
	return len(g.geoms) > 0 && g.geoms[0].HasZ()
}

func (g *GeometryCollection) HasM() bool {
	return len(g.geoms) > 0 && g.geoms[0].HasM()
}

func (g *GeometryCollection) Envelope() Envelope {
	env := NullEnvelope()
	for _, c := range g.geoms {
		env = env.Union(c.Envelope())
	}
	return env
}

// Geometries returns the member geometries.
func (g *GeometryCollection) Geometries() []Geometry { return g.geoms }

// CompoundCurve is a continuous curve stitched from LineString and
// CircularString segments.
type CompoundCurve struct {
	segments []Geometry
}

// NewCompoundCurve creates a compound curve from its segments. An empty slice
// yields the empty curve.
func NewCompoundCurve(segments []Geometry) *CompoundCurve {
	return &CompoundCurve{segments: segments}
}

func (g *CompoundCurve) Type() GeomType { return TypeCompoundCurve }
func (g *CompoundCurve) IsEmpty() bool  { return len(g.segments) == 0 }

func (g *CompoundCurve) HasZ() bool {
	return len(g.segments) > 0 && g.segments[0].HasZ()
}

func (g *CompoundCurve) HasM() bool {
	return len(g.segments) > 0 && g.segments[0].HasM()
}

func (g *CompoundCurve) Envelope() Envelope {
	env := NullEnvelope()
	for _, s := range g.segments {
		env = env.Union(s.Envelope())
	}
	return env
}

// Segments returns the member curve segments.
func (g *CompoundCurve) Segments() []Geometry { return g.segments }

// CurvePolygon is a surface bounded by arbitrary curve rings (linear rings,
// circular strings or compound curves).
type CurvePolygon struct {
	rings []Geometry // rings[0] is the exterior
}

// NewCurvePolygon creates a curve polygon from an exterior ring and interior
// rings.
func NewCurvePolygon(exterior Geometry, interiors []Geometry) *CurvePolygon {
	rings := make([]Geometry, 0, len(interiors)+1)
	rings = append(rings, exterior)
	rings = append(rings, interiors...)
	return &CurvePolygon{rings: rings}
}

// NewEmptyCurvePolygon creates the empty curve polygon.
func NewEmptyCurvePolygon() *CurvePolygon {
	return &CurvePolygon{}
}

func (g *CurvePolygon) Type() GeomType { return TypeCurvePolygon }
func (g *CurvePolygon) IsEmpty() bool  { return len(g.rings) == 0 }

func (g *CurvePolygon) HasZ() bool {
	return len(g.rings) > 0 && g.rings[0].HasZ()
}

func (g *CurvePolygon) HasM() bool {
	return len(g.rings) > 0 && g.rings[0].HasM()
}

func (g *CurvePolygon) Envelope() Envelope {
	if len(g.rings) == 0 {
		return NullEnvelope()
	}
	return g.rings[0].Envelope()
}

// ExteriorRing returns the shell curve, nil when empty.
func (g *CurvePolygon) ExteriorRing() Geometry {
	if len(g.rings) == 0 {
		return nil
	}
	return g.rings[0]
}

// InteriorRings returns the hole curves.
func (g *CurvePolygon) InteriorRings() []Geometry {
	if len(g.rings) == 0 {
		return nil
	}
	return g.rings[1:]
}

// MultiCurve is a collection of curves (line strings, circular strings or
// compound curves).
type MultiCurve struct {
	curves []Geometry
}

// NewMultiCurve creates a multicurve. An empty slice yields the empty
// collection.
func NewMultiCurve(curves []Geometry) *MultiCurve {
	return &MultiCurve{curves: curves}
}

func (g *MultiCurve) Type() GeomType { return TypeMultiCurve }
func (g *MultiCurve) IsEmpty() bool  { return len(g.curves) == 0 }

func (g *MultiCurve) HasZ() bool {
	return len(g.curves) > 0 && g.curves[0].HasZ()
}

func (g *MultiCurve) HasM() bool {
	return len(g.curves) > 0 && g.curves[0].HasM()
}

func (g *MultiCurve) Envelope() Envelope {
	env := NullEnvelope()
	for _, c := range g.curves {
		env = env.Union(c.Envelope())
	}
	return env
}

// Curves returns the member curves.
func (g *MultiCurve) Curves() []Geometry { return g.curves }

// MultiSurface is a collection of surfaces (polygons or curve polygons).
type MultiSurface struct {
	surfaces []Geometry
}

// NewMultiSurface creates a multisurface. An empty slice yields the empty
// collection.
func NewMultiSurface(surfaces []Geometry) *MultiSurface {
	return &MultiSurface{surfaces: surfaces}
}

func (g *MultiSurface) Type() GeomType { return TypeMultiSurface }
func (g *MultiSurface) IsEmpty() bool  { return len(g.surfaces) == 0 }

func (g *MultiSurface) HasZ() bool {
	return len(g.surfaces) > 0 && g.surfaces[0].HasZ()
}

func (g *MultiSurface) HasM() bool {
	return len(g.surfaces) > 0 && g.surfaces[0].HasM()
}

func (g *MultiSurface) Envelope() Envelope {
	env := NullEnvelope()
	for _, s := range g.surfaces {
		env = env.Union(s.Envelope())
	}
	return env
}

// Surfaces returns the member surfaces.
func (g *MultiSurface) Surfaces() []Geometry { return g.surfaces }
