package geowire

import "github.com/beetlebugorg/geowire/pkg/geos"

// Profile selects which geometry kinds and dimensionalities the codec
// accepts. The wire format is identical under every profile; a profile only
// narrows what decodes and encodes without error.
type Profile int

const (
	// ProfileExtended accepts all thirteen type tags and Z and M ordinates.
	ProfileExtended Profile = iota

	// ProfileSimple accepts the seven simple-feature kinds (Point through
	// GeometryCollection) with XY or XYZ coordinates. Curve kinds and
	// measure ordinates are rejected with ErrUnsupportedGeometry.
	ProfileSimple
)

// String returns the profile name.
func (p Profile) String() string {
	switch p {
	case ProfileExtended:
		return "Extended"
	case ProfileSimple:
		return "Simple"
	}
	return "Unknown"
}

// Supports reports whether the profile accepts the geometry kind with the
// given measure flag. LinearRing is accepted here because it occurs inside
// surfaces; its standalone use is rejected by the decoder regardless of
// profile.
func (p Profile) Supports(t geos.GeomType, hasM bool) bool {
	if p != ProfileSimple {
		return true
	}
	if hasM {
		return false
	}
	return t <= geos.TypeGeometryCollection
}

// Options configures a Codec.
type Options struct {
	// Profile narrows the accepted geometry kinds. Default is
	// ProfileExtended.
	Profile Profile

	// NodeCapacity is the spatial index fanout used by BuildIndex when the
	// caller passes 0. Default is geos.DefaultNodeCapacity.
	NodeCapacity int

	// MaxOutputWords caps the size of encoder-allocated output buffers, in
	// 32-bit words. 0 means no limit. Exceeding the cap fails with
	// ErrAllocation instead of allocating.
	MaxOutputWords int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Profile:        ProfileExtended,
		NodeCapacity:   geos.DefaultNodeCapacity,
		MaxOutputWords: 0,
	}
}
