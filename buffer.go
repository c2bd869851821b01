package vrt

// BufferKind distinguishes an owned, reallocatable buffer from a borrowed,
// read-only view over externally-owned storage. See spec.md §3.7 and §9
// ("Buffer ownership"): the C++ source tracks this with a runtime readOnly
// flag checked by every accessor; here it is a property of [Buffer] checked
// only by mutators, never by getters, so the read path carries no branch.
type BufferKind uint8

const (
	// BufferOwned buffers were allocated by this package and may grow or
	// shrink in place (mutators reslice/reallocate freely).
	BufferOwned BufferKind = iota
	// BufferView buffers reference a slice the caller still owns. All
	// mutators on a packet backed by a BufferView return [ErrReadOnly].
	BufferView
)

// Buffer is the single source of truth backing a [Packet]: every derived
// field is computed on demand from buf. It is deliberately a thin wrapper
// rather than an interface so that field accessors can slice buf directly
// without a dispatch indirection.
type Buffer struct {
	buf  []byte
	kind BufferKind
}

// NewOwnedBuffer returns an owned, zero-filled Buffer of the given length.
func NewOwnedBuffer(length int) Buffer {
	return Buffer{buf: make([]byte, length), kind: BufferOwned}
}

// NewOwnedBufferFrom copies b into a new owned Buffer.
func NewOwnedBufferFrom(b []byte) Buffer {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Buffer{buf: cp, kind: BufferOwned}
}

// NewViewBuffer returns a read-only Buffer over b. The returned Buffer does
// not copy b; callers must not mutate b for the lifetime of the view.
func NewViewBuffer(b []byte) Buffer {
	return Buffer{buf: b, kind: BufferView}
}

// ReadOnly reports whether mutators on this buffer will fail.
func (b Buffer) ReadOnly() bool { return b.kind == BufferView }

// Bytes returns the raw backing slice. Callers must not retain it across a
// mutation, since owned buffers may be reallocated by [Buffer.resize].
func (b Buffer) Bytes() []byte { return b.buf }

func (b Buffer) Len() int { return len(b.buf) }

// resize grows or shrinks an owned buffer to newLen, preserving the
// existing prefix. It panics if called on a read-only buffer; callers must
// check ReadOnly first (mutators do, via [Packet] methods returning
// [ErrReadOnly] instead of calling this directly on a view).
func (b *Buffer) resize(newLen int) {
	if b.kind == BufferView {
		panic("vrt: resize of read-only buffer")
	}
	if newLen <= cap(b.buf) {
		old := len(b.buf)
		b.buf = b.buf[:newLen]
		if newLen > old {
			clear(b.buf[old:newLen])
		}
		return
	}
	grown := make([]byte, newLen)
	copy(grown, b.buf)
	b.buf = grown
}
