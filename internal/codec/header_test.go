package codec

import (
	"testing"

	"github.com/beetlebugorg/geowire/pkg/geos"
)

func TestHeaderPackUnpack(t *testing.T) {
	tests := []struct {
		name    string
		typ     geos.GeomType
		isEmpty bool
		hasZ    bool
		hasM    bool
		want    uint32
	}{
		{"plain point", geos.TypePoint, false, false, false, 0x0},
		{"empty point", geos.TypePoint, true, false, false, 0x10},
		{"line with Z", geos.TypeLineString, false, true, false, 0x21},
		{"line with M", geos.TypeLineString, false, false, true, 0x41},
		{"polygon XYZM", geos.TypePolygon, false, true, true, 0x63},
		{"multisurface all flags", geos.TypeMultiSurface, true, true, true, 0x7c},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := packHeader(tt.typ, tt.isEmpty, tt.hasZ, tt.hasM)
			if w != tt.want {
				t.Errorf("packHeader = %#x, want %#x", w, tt.want)
			}
			tag, isEmpty, hasZ, hasM := unpackHeader(w)
			if tag != uint32(tt.typ) || isEmpty != tt.isEmpty || hasZ != tt.hasZ || hasM != tt.hasM {
				t.Errorf("unpackHeader(%#x) = (%d,%v,%v,%v), want (%d,%v,%v,%v)",
					w, tag, isEmpty, hasZ, hasM, uint32(tt.typ), tt.isEmpty, tt.hasZ, tt.hasM)
			}
		})
	}
}

func TestOrdinates(t *testing.T) {
	if n := ordinates(false, false); n != 2 {
		t.Errorf("XY should have 2 ordinates, got %d", n)
	}
	if n := ordinates(true, false); n != 3 {
		t.Errorf("XYZ should have 3 ordinates, got %d", n)
	}
	if n := ordinates(false, true); n != 3 {
		t.Errorf("XYM should have 3 ordinates, got %d", n)
	}
	if n := ordinates(true, true); n != 4 {
		t.Errorf("XYZM should have 4 ordinates, got %d", n)
	}
}

func TestFloatRegionStart(t *testing.T) {
	tests := []struct {
		dLength, sLength, want int
	}{
		{0, 0, 1},  // 2 header words round up to float index 1
		{1, 0, 2},  // 3 words round up to 4
		{2, 0, 2},  // 4 words, already aligned
		{3, 2, 4},  // 7 words round up to 8
		{10, 4, 8}, // 16 words, already aligned
	}
	for _, tt := range tests {
		if got := FloatRegionStart(tt.dLength, tt.sLength); got != tt.want {
			t.Errorf("FloatRegionStart(%d,%d) = %d, want %d", tt.dLength, tt.sLength, got, tt.want)
		}
	}
}
