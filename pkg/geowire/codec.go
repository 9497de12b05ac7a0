// Package geowire provides the public API for the flat-buffer geometry codec
// and its spatial index queries.
//
// A Codec moves geometry between two representations: a flat buffer of 32-bit
// words and packed float64 ordinates on one side, and kernel geometry objects
// named by opaque uint32 handles on the other. Decoding is a two-pass
// protocol (DecodeCoordSequences, then DecodeGeometries) so the host can bulk
// write ordinates straight into kernel-owned storage between the passes;
// encoding is a single EncodeGeometries call that writes in place when the
// caller's buffer has room and allocates otherwise.
//
// Example round trip from the host's point of view:
//
//	c := geowire.New()
//	refs, err := c.DecodeCoordSequences(buf)
//	// ... host copies ordinates into each ref.Seq ...
//	err = c.DecodeGeometries(buf)
//	// buf now leads with one geometry handle per input geometry
//
// BuildIndex, QueryIndex, NearestOne and NearestAll run spatial queries over
// decoded geometries without further buffer traffic.
package geowire

import (
	"github.com/beetlebugorg/geowire/internal/codec"
	"github.com/beetlebugorg/geowire/pkg/geos"
)

// Buffer is the shared flat buffer the codec reads and writes. See the
// package documentation for the region layout.
type Buffer = codec.Buffer

// SequenceRef pairs a coordinate-sequence handle with its sequence, in
// pre-pass discovery order.
type SequenceRef = codec.SequenceRef

// NewBuffer allocates a zeroed buffer of n 32-bit words.
func NewBuffer(n int) *Buffer {
	return codec.NewBuffer(n)
}

// WrapBuffer creates a buffer over an existing word slice without copying.
func WrapBuffer(words []uint32) *Buffer {
	return codec.Wrap(words)
}

// Codec is the boundary between flat buffers and kernel geometry. It owns
// the handle table that maps the opaque integers in buffers to kernel
// objects, so all operations that exchange handles must go through the same
// Codec.
//
// A Codec is not safe for concurrent use; every operation runs to completion
// before returning and there is no internal locking.
type Codec struct {
	handles *codec.HandleTable
	dec     codec.Decoder
	enc     codec.Encoder
	opts    Options
}

// New creates a codec with DefaultOptions.
func New() *Codec {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a codec with the given options.
func NewWithOptions(opts Options) *Codec {
	if opts.NodeCapacity < 2 {
		opts.NodeCapacity = geos.DefaultNodeCapacity
	}
	handles := codec.NewHandleTable()
	allowed := opts.Profile.Supports
	return &Codec{
		handles: handles,
		dec:     codec.Decoder{Handles: handles, Allowed: allowed},
		enc:     codec.Encoder{Handles: handles, Allowed: allowed, MaxOutputWords: opts.MaxOutputWords},
		opts:    opts,
	}
}

// DecodeCoordSequences runs the decode pre-pass: one coordinate sequence is
// allocated per curve or ring described in the buffer, its handle replaces
// the point-count word in place and is appended to the sequence region. The
// returned refs let the host bulk-write ordinates into kernel-owned storage
// before calling DecodeGeometries.
func (c *Codec) DecodeCoordSequences(buf *Buffer) ([]SequenceRef, error) {
	return c.dec.DecodeCoordSequences(buf)
}

// DecodeGeometries runs the decode assembly pass, overwriting the integer
// region's leading slots with one geometry handle per top-level geometry.
// Sequence handles from the pre-pass are consumed and released; the
// resulting geometry handles stay live until Release.
func (c *Codec) DecodeGeometries(buf *Buffer) error {
	return c.dec.DecodeGeometries(buf)
}

// EncodeGeometries serializes the geometries whose handles lead the buffer.
// On return, buffer slot 0 holds the handle of a freshly allocated output
// buffer (0 if the encoder wrote into the caller's spare capacity) and slot
// 1 the float region's index within the chosen buffer.
//
// A fresh output buffer is an owned resource: the caller must Release its
// handle exactly once, or it stays referenced for the life of the Codec.
// Sequence handles written into the output must likewise be released after
// their ordinates are copied out.
func (c *Codec) EncodeGeometries(buf *Buffer) error {
	return c.enc.EncodeGeometries(buf)
}

// RegisterGeometry stores a kernel geometry and returns its handle. This is
// the host-side entry for geometries that did not come out of a decode.
func (c *Codec) RegisterGeometry(g geos.Geometry) uint32 {
	return c.handles.Register(g)
}

// Geometry resolves a geometry handle.
func (c *Codec) Geometry(h uint32) (geos.Geometry, error) {
	return c.handles.Geometry(h)
}

// SequenceData resolves a sequence handle to its raw backing storage. The
// slice aliases kernel memory: writes through it land in the owning
// geometry.
func (c *Codec) SequenceData(h uint32) ([]float64, error) {
	cs, err := c.handles.Sequence(h)
	if err != nil {
		return nil, err
	}
	return cs.Data(), nil
}

// OutputBuffer resolves an encoder-allocated output buffer handle.
func (c *Codec) OutputBuffer(h uint32) (*Buffer, error) {
	return c.handles.Buffer(h)
}

// Release frees a handle. Releasing a handle twice is an error.
func (c *Codec) Release(h uint32) error {
	return c.handles.Release(h)
}

// LiveHandles returns the number of live handles; useful for leak checks.
func (c *Codec) LiveHandles() int {
	return c.handles.Len()
}

// BuildIndex bulk-loads a spatial index over the geometries named by the
// handles and returns the index's own handle. The indexed geometries must
// stay registered for the life of the index; the index stores positions into
// the handle slice, never the geometries themselves. nodeCapacity 0 uses the
// codec's configured default.
func (c *Codec) BuildIndex(geomHandles []uint32, nodeCapacity int) (uint32, error) {
	geoms := make([]geos.Geometry, len(geomHandles))
	for i, h := range geomHandles {
		g, err := c.handles.Geometry(h)
		if err != nil {
			return 0, err
		}
		geoms[i] = g
	}
	if nodeCapacity < 2 {
		nodeCapacity = c.opts.NodeCapacity
	}
	return c.handles.Register(BuildIndex(geoms, nodeCapacity)), nil
}

// QueryIndex returns the positions of stored geometries whose bounding boxes
// may interact with the query geometry.
func (c *Codec) QueryIndex(indexHandle, queryHandle uint32) ([]uint32, error) {
	ix, err := c.index(indexHandle)
	if err != nil {
		return nil, err
	}
	query, err := c.handles.Geometry(queryHandle)
	if err != nil {
		return nil, err
	}
	return toUint32(ix.Query(query)), nil
}

// NearestOne returns the position of the stored geometry nearest to the
// query geometry and the number of geometries tied at that distance.
// matches is 0 for an empty index.
func (c *Codec) NearestOne(indexHandle, queryHandle uint32) (pos uint32, matches int, err error) {
	ix, err := c.index(indexHandle)
	if err != nil {
		return 0, 0, err
	}
	query, err := c.handles.Geometry(queryHandle)
	if err != nil {
		return 0, 0, err
	}
	p, n, found, err := ix.NearestOne(query)
	if err != nil || !found {
		return 0, 0, err
	}
	return uint32(p), n, nil
}

// NearestAll returns the positions of every stored geometry tied at the
// minimum distance to the query geometry.
func (c *Codec) NearestAll(indexHandle, queryHandle uint32) ([]uint32, error) {
	ix, err := c.index(indexHandle)
	if err != nil {
		return nil, err
	}
	query, err := c.handles.Geometry(queryHandle)
	if err != nil {
		return nil, err
	}
	matches, err := ix.NearestAll(query)
	if err != nil {
		return nil, err
	}
	return toUint32(matches), nil
}

// DestroyIndex releases an index handle. The indexed geometries are not
// touched; they belong to the caller.
func (c *Codec) DestroyIndex(indexHandle uint32) error {
	if _, err := c.index(indexHandle); err != nil {
		return err
	}
	return c.handles.Release(indexHandle)
}

func (c *Codec) index(h uint32) (*Index, error) {
	g, err := c.handles.Get(h)
	if err != nil {
		return nil, err
	}
	ix, ok := g.(*Index)
	if !ok {
		return nil, &ErrInvalidHandle{Handle: h, Want: "spatial index"}
	}
	return ix, nil
}

func toUint32(xs []int) []uint32 {
	out := make([]uint32, len(xs))
	for i, x := range xs {
		out[i] = uint32(x)
	}
	return out
}
