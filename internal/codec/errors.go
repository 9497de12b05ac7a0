package codec

import "fmt"

// ErrMalformedBuffer indicates a buffer whose declared region lengths do not
// match its contents: a cursor ran past a region, a region does not fit the
// allocation, or the walk did not consume the integer region exactly.
type ErrMalformedBuffer struct {
	Region string // "header", "integer", "sequence" or "float"
	Offset int    // word (or float) offset within the region
	Reason string
}

func (e *ErrMalformedBuffer) Error() string {
	return fmt.Sprintf("malformed buffer: %s region, offset %d: %s",
		e.Region, e.Offset, e.Reason)
}

// ErrUnsupportedGeometry indicates an unknown type tag, a tag outside the
// active profile, or a tag that is never valid at its position (a standalone
// LinearRing).
type ErrUnsupportedGeometry struct {
	Tag    uint32
	Reason string
}

func (e *ErrUnsupportedGeometry) Error() string {
	return fmt.Sprintf("unsupported geometry: tag %d: %s", e.Tag, e.Reason)
}

// ErrInvalidHandle indicates a handle that is unknown, already released, or
// refers to an object of the wrong kind.
type ErrInvalidHandle struct {
	Handle uint32
	Want   string // expected object kind
}

func (e *ErrInvalidHandle) Error() string {
	if e.Want != "" {
		return fmt.Sprintf("invalid handle %d: not a %s", e.Handle, e.Want)
	}
	return fmt.Sprintf("invalid handle %d", e.Handle)
}

// ErrAllocation indicates the encoder refused to allocate an output buffer
// larger than the configured limit.
type ErrAllocation struct {
	Words int // requested size in 32-bit words
	Limit int
}

func (e *ErrAllocation) Error() string {
	return fmt.Sprintf("output buffer allocation of %d words exceeds limit of %d words",
		e.Words, e.Limit)
}
