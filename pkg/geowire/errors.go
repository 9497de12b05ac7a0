package geowire

import (
	"fmt"

	"github.com/beetlebugorg/geowire/internal/codec"
)

// The codec error kinds, re-exported so callers can match them with
// errors.As without reaching into internal packages.
type (
	// ErrMalformedBuffer indicates region lengths that do not match the
	// buffer contents.
	ErrMalformedBuffer = codec.ErrMalformedBuffer

	// ErrUnsupportedGeometry indicates an unknown type tag, a tag outside
	// the active profile, or a standalone LinearRing.
	ErrUnsupportedGeometry = codec.ErrUnsupportedGeometry

	// ErrInvalidHandle indicates an unknown, released or wrongly typed
	// handle.
	ErrInvalidHandle = codec.ErrInvalidHandle

	// ErrAllocation indicates the encoder refused to allocate an output
	// buffer larger than the configured limit.
	ErrAllocation = codec.ErrAllocation
)

// ErrDistanceComputation indicates the geometry kernel failed to compute the
// distance between the query geometry and a stored geometry. The query that
// produced it is aborted; no partial results are returned.
type ErrDistanceComputation struct {
	Index int // position of the stored geometry, or -1 for the query itself
	Err   error
}

func (e *ErrDistanceComputation) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("distance computation failed for query geometry: %v", e.Err)
	}
	return fmt.Sprintf("distance computation failed for stored geometry %d: %v", e.Index, e.Err)
}

func (e *ErrDistanceComputation) Unwrap() error {
	return e.Err
}
