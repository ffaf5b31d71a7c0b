package fast

import (
	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
)

// buffer.go provides an append-only byte writer used to assemble hash
// preimages (epoch seeds, VRF inputs, report digests).
//
// It is not thread-safe. Each goroutine that scores nodes owns its own Writer
// and calls Reset between nodes so the backing array is reused.

type Writer struct {
	// buf is the accumulating byte slice.
	buf []byte
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Often called with `make([]byte, 0, capacity)` to pre-allocate memory.
func NewWriter(bb []byte) *Writer {
	return &Writer{
		buf: bb,
	}
}

// WriteByte appends a single byte to the buffer.
func (b *Writer) WriteByte(v byte) {
	b.buf = append(b.buf, v)
}

// Write appends a slice of bytes to the buffer.
func (b *Writer) Write(v []byte) {
	b.buf = append(b.buf, v...)
}

// WriteString appends the raw bytes of s, without a length prefix.
func (b *Writer) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteUint64 appends v as 8 big-endian bytes.
func (b *Writer) WriteUint64(v uint64) {
	b.buf = append(b.buf, bigendian.Uint64ToBytes(v)...)
}

// WriteUint32 appends v as 4 big-endian bytes.
func (b *Writer) WriteUint32(v uint32) {
	b.buf = append(b.buf, bigendian.Uint32ToBytes(v)...)
}

// Reset truncates the buffer to zero length, keeping its capacity.
func (b *Writer) Reset() {
	b.buf = b.buf[:0]
}

// Len returns the number of bytes written so far.
func (b *Writer) Len() int {
	return len(b.buf)
}

// Bytes returns the accumulated content of the Writer. The slice aliases the
// internal buffer and is invalidated by the next Reset.
func (b *Writer) Bytes() []byte {
	return b.buf
}
