// Package codec implements the flat-buffer wire format shared with the host:
// the region layout, the header word, and the two codec directions between
// buffers and kernel geometry trees.
//
// A buffer is a single contiguous array of 32-bit words. The decode direction
// lays it out as
//
//	[dLength][sLength][ D: dLength words ][ S: sLength words ][ F: floats ]
//
// where D carries geometry headers and counts, S receives coordinate-sequence
// handles during the decode pre-pass, and F is packed 64-bit floats starting
// at the first 8-byte-aligned word after S. The encode direction replaces D/S
// with a (count, handles, capacity) prologue; see Encoder.
package codec

import "math"

// Buffer is a bounds-checked word array with float access at 8-byte-aligned
// positions. Floats occupy two consecutive words, low word first.
type Buffer struct {
	words []uint32
}

// NewBuffer allocates a zeroed buffer of n words.
func NewBuffer(n int) *Buffer {
	return &Buffer{words: make([]uint32, n)}
}

// Wrap creates a buffer over an existing word slice without copying.
func Wrap(words []uint32) *Buffer {
	return &Buffer{words: words}
}

// Len returns the buffer size in words.
func (b *Buffer) Len() int {
	return len(b.words)
}

// Words returns the backing word slice.
func (b *Buffer) Words() []uint32 {
	return b.words
}

// Word returns the word at index i.
func (b *Buffer) Word(i int) (uint32, error) {
	if i < 0 || i >= len(b.words) {
		return 0, &ErrMalformedBuffer{Region: "integer", Offset: i, Reason: "word read out of bounds"}
	}
	return b.words[i], nil
}

// SetWord stores v at word index i.
func (b *Buffer) SetWord(i int, v uint32) error {
	if i < 0 || i >= len(b.words) {
		return &ErrMalformedBuffer{Region: "integer", Offset: i, Reason: "word write out of bounds"}
	}
	b.words[i] = v
	return nil
}

// Float reads the float at float index fi (word index 2*fi).
func (b *Buffer) Float(fi int) (float64, error) {
	w := 2 * fi
	if fi < 0 || w+1 >= len(b.words) {
		return 0, &ErrMalformedBuffer{Region: "float", Offset: fi, Reason: "float read out of bounds"}
	}
	bits := uint64(b.words[w]) | uint64(b.words[w+1])<<32
	return math.Float64frombits(bits), nil
}

// SetFloat stores v at float index fi (word index 2*fi).
func (b *Buffer) SetFloat(fi int, v float64) error {
	w := 2 * fi
	if fi < 0 || w+1 >= len(b.words) {
		return &ErrMalformedBuffer{Region: "float", Offset: fi, Reason: "float write out of bounds"}
	}
	bits := math.Float64bits(v)
	b.words[w] = uint32(bits)
	b.words[w+1] = uint32(bits >> 32)
	return nil
}

// wordRegion is a cursor over a bounded span of buffer words. All consumption
// goes through next/put so an overrun surfaces as ErrMalformedBuffer instead
// of an out-of-range read.
type wordRegion struct {
	buf    *Buffer
	name   string
	base   int // absolute word index of the region start
	length int // region length in words
	cur    int // next relative index to consume
}

func newWordRegion(buf *Buffer, name string, base, length int) (*wordRegion, error) {
	if base < 0 || length < 0 || base+length > buf.Len() {
		return nil, &ErrMalformedBuffer{Region: name, Offset: 0, Reason: "region does not fit buffer"}
	}
	return &wordRegion{buf: buf, name: name, base: base, length: length}, nil
}

// next consumes and returns the next word.
func (r *wordRegion) next() (uint32, error) {
	if r.cur >= r.length {
		return 0, &ErrMalformedBuffer{Region: r.name, Offset: r.cur, Reason: "read past region end"}
	}
	v := r.buf.words[r.base+r.cur]
	r.cur++
	return v, nil
}

// put writes the next word and advances.
func (r *wordRegion) put(v uint32) error {
	if r.cur >= r.length {
		return &ErrMalformedBuffer{Region: r.name, Offset: r.cur, Reason: "write past region end"}
	}
	r.buf.words[r.base+r.cur] = v
	r.cur++
	return nil
}

// overwriteLast replaces the most recently consumed word in place. Used by
// the decode pre-pass to swap a point count for the handle of the sequence
// allocated from it.
func (r *wordRegion) overwriteLast(v uint32) {
	r.buf.words[r.base+r.cur-1] = v
}

// done reports whether the cursor has consumed the whole region.
func (r *wordRegion) done() bool {
	return r.cur >= r.length
}

// floatRegion is a cursor over the packed float span of a buffer, addressed
// in float units.
type floatRegion struct {
	buf    *Buffer
	base   int // absolute float index of the region start
	length int // region length in floats
	cur    int
}

func newFloatRegion(buf *Buffer, base, length int) (*floatRegion, error) {
	if base < 0 || length < 0 || 2*(base+length) > buf.Len() {
		return nil, &ErrMalformedBuffer{Region: "float", Offset: 0, Reason: "region does not fit buffer"}
	}
	return &floatRegion{buf: buf, base: base, length: length}, nil
}

// next consumes and returns the next float.
func (r *floatRegion) next() (float64, error) {
	if r.cur >= r.length {
		return 0, &ErrMalformedBuffer{Region: "float", Offset: r.cur, Reason: "read past region end"}
	}
	v, err := r.buf.Float(r.base + r.cur)
	if err != nil {
		return 0, err
	}
	r.cur++
	return v, nil
}

// put writes the next float and advances.
func (r *floatRegion) put(v float64) error {
	if r.cur >= r.length {
		return &ErrMalformedBuffer{Region: "float", Offset: r.cur, Reason: "write past region end"}
	}
	if err := r.buf.SetFloat(r.base+r.cur, v); err != nil {
		return err
	}
	r.cur++
	return nil
}
