package geos

// CoordSeq is an ordered array of same-dimensionality coordinates backing a
// curve or point geometry.
//
// Storage is row-major: all ordinates of a point are contiguous, in XY, XYZ,
// XYM or XYZM order depending on the hasZ/hasM flags. The length is fixed at
// allocation and never changes. Data exposes the raw backing storage so
// callers can bulk-copy ordinates without going through per-point setters -
// the codec relies on this to move coordinates across the buffer boundary in
// a single copy.
type CoordSeq struct {
	data []float64
	size int
	hasZ bool
	hasM bool
}

// NewCoordSeq allocates a coordinate sequence of size points with the given
// dimensionality flags. All ordinates start at zero.
func NewCoordSeq(size int, hasZ, hasM bool) *CoordSeq {
	dim := 2
	if hasZ {
		dim++
	}
	if hasM {
		dim++
	}
	return &CoordSeq{
		data: make([]float64, size*dim),
		size: size,
		hasZ: hasZ,
		hasM: hasM,
	}
}

// NewCoordSeqFromData wraps existing row-major ordinate data. The data length
// must be a multiple of the dimensionality implied by hasZ/hasM; the point
// count is derived from it.
func NewCoordSeqFromData(data []float64, hasZ, hasM bool) *CoordSeq {
	dim := 2
	if hasZ {
		dim++
	}
	if hasM {
		dim++
	}
	return &CoordSeq{
		data: data,
		size: len(data) / dim,
		hasZ: hasZ,
		hasM: hasM,
	}
}

// Size returns the number of points in the sequence.
func (s *CoordSeq) Size() int {
	return s.size
}

// Dim returns the number of ordinates per point (2, 3 or 4).
func (s *CoordSeq) Dim() int {
	dim := 2
	if s.hasZ {
		dim++
	}
	if s.hasM {
		dim++
	}
	return dim
}

// HasZ reports whether each point carries a Z ordinate.
func (s *CoordSeq) HasZ() bool {
	return s.hasZ
}

// HasM reports whether each point carries a measure ordinate.
func (s *CoordSeq) HasM() bool {
	return s.hasM
}

// Data returns the raw backing storage. The slice aliases the sequence's
// memory; writes through it are visible to the owning geometry.
func (s *CoordSeq) Data() []float64 {
	return s.data
}

// X returns the X ordinate of point i.
func (s *CoordSeq) X(i int) float64 {
	return s.data[i*s.Dim()]
}

// Y returns the Y ordinate of point i.
func (s *CoordSeq) Y(i int) float64 {
	return s.data[i*s.Dim()+1]
}

// SetXY sets the X and Y ordinates of point i, leaving any Z/M ordinates
// untouched.
func (s *CoordSeq) SetXY(i int, x, y float64) {
	dim := s.Dim()
	s.data[i*dim] = x
	s.data[i*dim+1] = y
}

// Envelope returns the bounding envelope of all points in the sequence.
func (s *CoordSeq) Envelope() Envelope {
	env := NullEnvelope()
	dim := s.Dim()
	for i := 0; i < s.size; i++ {
		env = env.ExpandedToInclude(s.data[i*dim], s.data[i*dim+1])
	}
	return env
}
