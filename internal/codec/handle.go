package codec

import "github.com/beetlebugorg/geowire/pkg/geos"

// HandleTable maps opaque uint32 handles to kernel objects. Handles are what
// cross the buffer boundary in place of pointers: the decode passes write
// sequence and geometry handles into the integer region, and the encoder
// registers its output buffer here when it has to allocate one.
//
// Handle 0 is never issued, so a zero word can always mean "none".
//
// Objects stay alive until released. Releasing is explicit and exactly once;
// the second release of a handle is an error. The one ownership transfer
// across the boundary is the encoder's freshly allocated output buffer: the
// caller that receives its handle must release it when done.
type HandleTable struct {
	next uint32
	objs map[uint32]any
}

// NewHandleTable creates an empty table.
func NewHandleTable() *HandleTable {
	return &HandleTable{next: 1, objs: make(map[uint32]any)}
}

// Register stores obj and returns its new handle.
func (t *HandleTable) Register(obj any) uint32 {
	h := t.next
	t.next++
	t.objs[h] = obj
	return h
}

// Sequence resolves h to a coordinate sequence.
func (t *HandleTable) Sequence(h uint32) (*geos.CoordSeq, error) {
	if cs, ok := t.objs[h].(*geos.CoordSeq); ok {
		return cs, nil
	}
	return nil, &ErrInvalidHandle{Handle: h, Want: "coordinate sequence"}
}

// Geometry resolves h to a geometry.
func (t *HandleTable) Geometry(h uint32) (geos.Geometry, error) {
	if g, ok := t.objs[h].(geos.Geometry); ok {
		return g, nil
	}
	return nil, &ErrInvalidHandle{Handle: h, Want: "geometry"}
}

// Buffer resolves h to an output buffer.
func (t *HandleTable) Buffer(h uint32) (*Buffer, error) {
	if b, ok := t.objs[h].(*Buffer); ok {
		return b, nil
	}
	return nil, &ErrInvalidHandle{Handle: h, Want: "buffer"}
}

// Get resolves h to whatever object it names. Callers that know the kind
// they expect use the typed resolvers instead.
func (t *HandleTable) Get(h uint32) (any, error) {
	if obj, ok := t.objs[h]; ok {
		return obj, nil
	}
	return nil, &ErrInvalidHandle{Handle: h}
}

// Release forgets h. The object itself is reclaimed by the garbage collector
// once nothing else references it.
func (t *HandleTable) Release(h uint32) error {
	if _, ok := t.objs[h]; !ok {
		return &ErrInvalidHandle{Handle: h}
	}
	delete(t.objs, h)
	return nil
}

// Len returns the number of live handles. Useful for leak checks in tests.
func (t *HandleTable) Len() int {
	return len(t.objs)
}
