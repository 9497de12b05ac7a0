package codec

import "github.com/beetlebugorg/geowire/pkg/geos"

// Header word bit layout, identical in both codec directions:
//
//	bits 0-3  geometry type tag (geos.GeomType numeric value)
//	bit  4    isEmpty
//	bit  5    hasZ
//	bit  6    hasM
//
// The layout is part of the wire contract with the host and must stay
// bit-identical between encoder and decoder.
const (
	typeTagMask = 0xf
	flagEmpty   = 1 << 4
	flagZ       = 1 << 5
	flagM       = 1 << 6
)

// headerWords is the fixed buffer prologue: dLength and sLength (decode
// direction), or the reserved output slot and count (encode direction).
const headerWords = 2

// packHeader builds a header word from its four components.
func packHeader(t geos.GeomType, isEmpty, hasZ, hasM bool) uint32 {
	w := uint32(t) & typeTagMask
	if isEmpty {
		w |= flagEmpty
	}
	if hasZ {
		w |= flagZ
	}
	if hasM {
		w |= flagM
	}
	return w
}

// unpackHeader splits a header word. The tag is returned raw; callers
// validate it against the known types and the active profile.
func unpackHeader(w uint32) (tag uint32, isEmpty, hasZ, hasM bool) {
	return w & typeTagMask, w&flagEmpty != 0, w&flagZ != 0, w&flagM != 0
}

// ordinates returns the per-point ordinate count implied by the flags:
// XY=2, XYZ or XYM=3, XYZM=4.
func ordinates(hasZ, hasM bool) int {
	n := 2
	if hasZ {
		n++
	}
	if hasM {
		n++
	}
	return n
}

// FloatRegionStart returns the float index (8-byte units) of the float
// region for a decode-direction buffer with the given region lengths. The
// two header words plus the integer and sequence regions are rounded up to
// the next 8-byte boundary:
//
//	(dLength + sLength + 2 + 1) / 2
//
// This arithmetic is shared with the host; a one-word disagreement would
// shear every float read, so it must never change independently.
func FloatRegionStart(dLength, sLength int) int {
	return (dLength + sLength + headerWords + 1) / 2
}
