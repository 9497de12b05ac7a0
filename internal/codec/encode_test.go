package codec

import (
	"errors"
	"testing"

	"github.com/beetlebugorg/geowire/pkg/geos"
)

// buildEncodeBuffer lays out an encode-direction buffer:
// [reserved][count][handles...][capacity word, then spare words].
// The capacity word sits at the start of the spare span, so capacity counts
// it too.
func buildEncodeBuffer(t *testing.T, handles []uint32, capacity int) *Buffer {
	t.Helper()
	n := len(handles)
	buf := NewBuffer(headerWords + n + capacity)
	mustSetWord(t, buf, 1, uint32(n))
	for i, h := range handles {
		mustSetWord(t, buf, headerWords+i, h)
	}
	mustSetWord(t, buf, headerWords+n, uint32(capacity))
	return buf
}

func newTestEncoder() *Encoder {
	return &Encoder{Handles: NewHandleTable()}
}

func TestEncodePointInPlace(t *testing.T) {
	e := newTestEncoder()
	h := e.Handles.Register(geos.NewPointXY(3, 4))

	// A point needs 1 integer word and 2 floats; with the region starting at
	// word 3 no padding is needed, so capacity 5 fits exactly.
	buf := buildEncodeBuffer(t, []uint32{h}, 5)
	if err := e.EncodeGeometries(buf); err != nil {
		t.Fatalf("EncodeGeometries failed: %v", err)
	}

	if w, _ := buf.Word(0); w != 0 {
		t.Errorf("In-place encode should leave slot 0 zero, got %d", w)
	}
	fStart, _ := buf.Word(1)
	if fStart != 2 {
		t.Errorf("Expected float region at index 2, got %d", fStart)
	}
	if w, _ := buf.Word(3); w != packHeader(geos.TypePoint, false, false, false) {
		t.Errorf("Unexpected header word %#x", w)
	}
	x, _ := buf.Float(int(fStart))
	y, _ := buf.Float(int(fStart) + 1)
	if x != 3 || y != 4 {
		t.Errorf("Expected ordinates (3,4), got (%v,%v)", x, y)
	}
}

func TestEncodePointOneWordShort(t *testing.T) {
	e := newTestEncoder()
	h := e.Handles.Register(geos.NewPointXY(3, 4))

	buf := buildEncodeBuffer(t, []uint32{h}, 4)
	if err := e.EncodeGeometries(buf); err != nil {
		t.Fatalf("EncodeGeometries failed: %v", err)
	}

	outHandle, _ := buf.Word(0)
	if outHandle == 0 {
		t.Fatal("Undersized capacity should force a fresh output buffer")
	}
	fresh, err := e.Handles.Buffer(outHandle)
	if err != nil {
		t.Fatalf("Output buffer handle not resolvable: %v", err)
	}
	// 1 integer word aligned to 2, plus 2 floats.
	if fresh.Len() != 6 {
		t.Errorf("Expected 6-word output buffer, got %d", fresh.Len())
	}
	fStart, _ := buf.Word(1)
	if fStart != 1 {
		t.Errorf("Expected float region at index 1, got %d", fStart)
	}
	if w, _ := fresh.Word(0); w != packHeader(geos.TypePoint, false, false, false) {
		t.Errorf("Unexpected header word %#x", w)
	}
	x, _ := fresh.Float(int(fStart))
	y, _ := fresh.Float(int(fStart) + 1)
	if x != 3 || y != 4 {
		t.Errorf("Expected ordinates (3,4), got (%v,%v)", x, y)
	}
}

func TestEncodePolygonPaddingWord(t *testing.T) {
	// A one-ring polygon is 4 integer words starting at word 3, so the float
	// alignment costs one padding word even though there are no floats.
	ring := geos.NewLinearRing(geos.NewCoordSeqFromData(
		[]float64{0, 0, 1, 0, 1, 1, 0, 0}, false, false))
	poly := geos.NewPolygon(ring, nil)

	t.Run("fits with padding", func(t *testing.T) {
		e := newTestEncoder()
		h := e.Handles.Register(poly)
		buf := buildEncodeBuffer(t, []uint32{h}, 5)
		if err := e.EncodeGeometries(buf); err != nil {
			t.Fatalf("EncodeGeometries failed: %v", err)
		}
		if w, _ := buf.Word(0); w != 0 {
			t.Errorf("Expected in-place encode, got output handle %d", w)
		}
	})

	t.Run("padding word pushes to fresh buffer", func(t *testing.T) {
		e := newTestEncoder()
		h := e.Handles.Register(poly)
		buf := buildEncodeBuffer(t, []uint32{h}, 4)
		if err := e.EncodeGeometries(buf); err != nil {
			t.Fatalf("EncodeGeometries failed: %v", err)
		}
		w, _ := buf.Word(0)
		if w == 0 {
			t.Fatal("Capacity without the padding word should force a fresh buffer")
		}
		fresh, err := e.Handles.Buffer(w)
		if err != nil {
			t.Fatalf("Output buffer handle not resolvable: %v", err)
		}
		if fresh.Len() != 4 {
			t.Errorf("Expected 4-word output buffer, got %d", fresh.Len())
		}
	})
}

func TestEncodeLineStringSequenceHandle(t *testing.T) {
	e := newTestEncoder()
	data := []float64{0, 0, 1, 1, 2, 0}
	line := geos.NewLineString(geos.NewCoordSeqFromData(data, false, false))
	h := e.Handles.Register(line)

	buf := buildEncodeBuffer(t, []uint32{h}, 4)
	if err := e.EncodeGeometries(buf); err != nil {
		t.Fatalf("EncodeGeometries failed: %v", err)
	}
	if w, _ := buf.Word(0); w != 0 {
		t.Fatalf("Expected in-place encode")
	}

	// Output: [header][size][sequence handle] at words 3..5.
	if w, _ := buf.Word(3); w != packHeader(geos.TypeLineString, false, false, false) {
		t.Errorf("Unexpected header word %#x", w)
	}
	if w, _ := buf.Word(4); w != 3 {
		t.Errorf("Expected point count 3, got %d", w)
	}
	seqHandle, _ := buf.Word(5)
	cs, err := e.Handles.Sequence(seqHandle)
	if err != nil {
		t.Fatalf("Sequence handle not resolvable: %v", err)
	}
	for i, v := range cs.Data() {
		if v != data[i] {
			t.Errorf("Ordinate %d: expected %v, got %v", i, data[i], v)
		}
	}
	if err := e.Handles.Release(seqHandle); err != nil {
		t.Errorf("Release failed: %v", err)
	}
}

func TestEncodeEmptyGeometryIsOneWord(t *testing.T) {
	e := newTestEncoder()
	h := e.Handles.Register(geos.NewMultiPolygon(nil))

	// One header word and no floats fits the minimum capacity of one spare
	// word.
	buf := buildEncodeBuffer(t, []uint32{h}, 1)
	if err := e.EncodeGeometries(buf); err != nil {
		t.Fatalf("EncodeGeometries failed: %v", err)
	}
	if w, _ := buf.Word(0); w != 0 {
		t.Errorf("Expected in-place encode, got output handle %d", w)
	}
	want := packHeader(geos.TypeMultiPolygon, true, false, false)
	if w, _ := buf.Word(3); w != want {
		t.Errorf("Expected lone header word %#x, got %#x", want, w)
	}
	if e.Handles.Len() != 1 {
		t.Errorf("Empty geometry should register no sequences, live handles = %d", e.Handles.Len())
	}
}

func TestEncodeAllocationLimit(t *testing.T) {
	e := newTestEncoder()
	e.MaxOutputWords = 3
	ring := geos.NewLinearRing(geos.NewCoordSeqFromData(
		[]float64{0, 0, 1, 0, 1, 1, 0, 0}, false, false))
	h := e.Handles.Register(geos.NewPolygon(ring, nil))

	buf := buildEncodeBuffer(t, []uint32{h}, 1)
	var alloc *ErrAllocation
	if err := e.EncodeGeometries(buf); !errors.As(err, &alloc) {
		t.Fatalf("Expected ErrAllocation, got %v", err)
	}
	if alloc.Words != 4 || alloc.Limit != 3 {
		t.Errorf("Unexpected allocation error: %+v", alloc)
	}
}

func TestEncodeMultiPointMixedDimensions(t *testing.T) {
	e := newTestEncoder()
	mp := geos.NewMultiPoint([]*geos.Point{
		geos.NewPointXY(1, 2),
		geos.NewPoint(geos.NewCoordSeqFromData([]float64{3, 4, 5}, true, false)),
	})
	h := e.Handles.Register(mp)

	buf := buildEncodeBuffer(t, []uint32{h}, 1)
	var unsupported *ErrUnsupportedGeometry
	if err := e.EncodeGeometries(buf); !errors.As(err, &unsupported) {
		t.Errorf("Mixed-dimensionality MultiPoint should be rejected, got %v", err)
	}
}

func TestEncodeProfileRejection(t *testing.T) {
	e := newTestEncoder()
	e.Allowed = func(t geos.GeomType, hasM bool) bool {
		return t <= geos.TypeGeometryCollection && !hasM
	}
	h := e.Handles.Register(geos.NewCircularString(geos.NewCoordSeqFromData(
		[]float64{0, 0, 1, 1, 2, 0}, false, false)))

	buf := buildEncodeBuffer(t, []uint32{h}, 1)
	var unsupported *ErrUnsupportedGeometry
	if err := e.EncodeGeometries(buf); !errors.As(err, &unsupported) {
		t.Errorf("Curve type should be rejected, got %v", err)
	}
}

func TestEncodeInvalidHandle(t *testing.T) {
	e := newTestEncoder()
	buf := buildEncodeBuffer(t, []uint32{42}, 1)
	var invalid *ErrInvalidHandle
	if err := e.EncodeGeometries(buf); !errors.As(err, &invalid) {
		t.Errorf("Expected ErrInvalidHandle, got %v", err)
	}
}

func TestEncodeDeclaredCapacityExceedsBuffer(t *testing.T) {
	e := newTestEncoder()
	h := e.Handles.Register(geos.NewPointXY(1, 2))
	buf := buildEncodeBuffer(t, []uint32{h}, 2)
	mustSetWord(t, buf, 3, 100) // lie about the spare capacity

	var malformed *ErrMalformedBuffer
	if err := e.EncodeGeometries(buf); !errors.As(err, &malformed) {
		t.Errorf("Expected ErrMalformedBuffer, got %v", err)
	}
}
