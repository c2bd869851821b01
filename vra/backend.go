// Package vra implements the VITA Radio Archive file format (spec.md
// §4.K, §6.1): a 20-octet header, a CRC-32 trailer-by-reference covering
// everything but its own field, and a flat sequence of VRT packets.
package vra

// Backend abstracts the storage a [File] is built on (spec.md §6.1):
// an in-memory buffer for tests, an OS file for production use (see
// [FileBackend]), or anything else satisfying this interface.
type Backend interface {
	// ReadAt reads len(p) bytes starting at off.
	ReadAt(p []byte, off int64) (int, error)
	// WriteAt writes p starting at off, extending the backend if needed.
	WriteAt(p []byte, off int64) (int, error)
	// Length returns the backend's current size in octets.
	Length() (int64, error)
	// Flush persists any buffered writes.
	Flush() error
	// Close releases the backend's resources.
	Close() error
}

// MemBackend is an in-memory [Backend], useful for tests and for
// archives that are assembled before being handed to a real sink.
type MemBackend struct {
	buf []byte
}

// NewMemBackend returns an empty MemBackend.
func NewMemBackend() *MemBackend { return &MemBackend{} }

func (m *MemBackend) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(m.buf)) {
		return 0, errOutOfRange
	}
	n := copy(p, m.buf[off:])
	return n, nil
}

func (m *MemBackend) WriteAt(p []byte, off int64) (int, error) {
	end := off + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[off:end], p)
	return len(p), nil
}

func (m *MemBackend) Length() (int64, error) { return int64(len(m.buf)), nil }

func (m *MemBackend) Flush() error { return nil }

func (m *MemBackend) Close() error { return nil }

// Bytes returns the backend's current contents. The slice aliases m's
// storage.
func (m *MemBackend) Bytes() []byte { return m.buf }
