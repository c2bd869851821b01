package vra

import (
	"encoding/binary"
	"errors"

	vita49 "github.com/soypat/vita49"
)

// Header layout (20 octets), spec.md §4.K:
//
//	0:4   FAW, ASCII "VRAF"
//	4:8   file length in octets, including this header
//	8:12  packet count
//	12:16 reserved (format version, currently 0)
//	16:20 CRC-32 over [0:16) and [20:fileLength), i.e. everything but
//	      this field itself
const (
	faw           uint32 = 0x56524146 // "VRAF"
	headerLength         = 20
	crcFieldStart        = 16
)

var (
	errOutOfRange = errors.New("vra: offset out of range")
	ErrBadFAW     = errors.New("vra: frame alignment word mismatch")
	ErrShort      = errors.New("vra: backend shorter than declared file length")
	ErrCRCInvalid = errors.New("vra: header CRC does not match file contents")
)

// File is a VITA Radio Archive backed by a [Backend]. Mirrors the
// teacher's Frame-over-buf pattern, but over an I/O backend instead of an
// in-memory slice, since archives are expected to outgrow memory.
type File struct {
	b Backend
}

// Create initializes b with an empty, zero-packet archive.
func Create(b Backend) (*File, error) {
	var hdr [headerLength]byte
	binary.BigEndian.PutUint32(hdr[0:4], faw)
	binary.BigEndian.PutUint32(hdr[4:8], headerLength)
	f := &File{b: b}
	if _, err := b.WriteAt(hdr[:], 0); err != nil {
		return nil, err
	}
	f.updateCRC()
	return f, nil
}

// Open wraps an existing archive on b, validating its header.
func Open(b Backend) (*File, error) {
	f := &File{b: b}
	var hdr [headerLength]byte
	if _, err := b.ReadAt(hdr[:], 0); err != nil {
		return nil, err
	}
	if binary.BigEndian.Uint32(hdr[0:4]) != faw {
		return nil, ErrBadFAW
	}
	return f, f.Validate()
}

func (f *File) header() ([headerLength]byte, error) {
	var hdr [headerLength]byte
	_, err := f.b.ReadAt(hdr[:], 0)
	return hdr, err
}

// FileLength returns the header's declared total file length in octets.
func (f *File) FileLength() (int64, error) {
	hdr, err := f.header()
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint32(hdr[4:8])), nil
}

// PacketCount returns the header's declared packet count.
func (f *File) PacketCount() (uint32, error) {
	hdr, err := f.header()
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(hdr[8:12]), nil
}

// CRC returns the header's stored CRC-32.
func (f *File) CRC() (uint32, error) {
	hdr, err := f.header()
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(hdr[16:20]), nil
}

// Validate checks the FAW, that the backend holds at least the declared
// file length, and that the stored CRC matches.
func (f *File) Validate() error {
	hdr, err := f.header()
	if err != nil {
		return err
	}
	if binary.BigEndian.Uint32(hdr[0:4]) != faw {
		return ErrBadFAW
	}
	length := int64(binary.BigEndian.Uint32(hdr[4:8]))
	backendLen, err := f.b.Length()
	if err != nil {
		return err
	}
	if backendLen < length {
		return ErrShort
	}
	want, err := f.computeCRC(length)
	if err != nil {
		return err
	}
	if want != binary.BigEndian.Uint32(hdr[16:20]) {
		return ErrCRCInvalid
	}
	return nil
}

func (f *File) computeCRC(fileLength int64) (uint32, error) {
	hdr, err := f.header()
	if err != nil {
		return 0, err
	}
	rest := make([]byte, fileLength-headerLength)
	if len(rest) > 0 {
		if _, err := f.b.ReadAt(rest, headerLength); err != nil {
			return 0, err
		}
	}
	return vita49.CRC32Two(hdr[:crcFieldStart], rest), nil
}

func (f *File) updateCRC() error {
	length, err := f.FileLength()
	if err != nil {
		return err
	}
	crc, err := f.computeCRC(length)
	if err != nil {
		return err
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], crc)
	_, err = f.b.WriteAt(b[:], crcFieldStart)
	return err
}

// Append writes pkt (a whole, word-aligned VRT packet) at the end of the
// archive, updating the file length, packet count, and CRC.
func (f *File) Append(pkt []byte) error {
	length, err := f.FileLength()
	if err != nil {
		return err
	}
	if _, err := f.b.WriteAt(pkt, length); err != nil {
		return err
	}
	newLength := length + int64(len(pkt))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(newLength))
	if _, err := f.b.WriteAt(lenBuf[:], 4); err != nil {
		return err
	}
	count, err := f.PacketCount()
	if err != nil {
		return err
	}
	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], count+1)
	if _, err := f.b.WriteAt(countBuf[:], 8); err != nil {
		return err
	}
	return f.updateCRC()
}

// Flush persists buffered writes to the backend.
func (f *File) Flush() error { return f.b.Flush() }

// Packets reads each stored packet's raw bytes in order.
func (f *File) Packets(yield func(pkt []byte) error) error {
	length, err := f.FileLength()
	if err != nil {
		return err
	}
	off := int64(headerLength)
	for off < length {
		var szBuf [2]byte
		if _, err := f.b.ReadAt(szBuf[:], off+2); err != nil {
			return err
		}
		words := int(binary.BigEndian.Uint16(szBuf[:]))
		n := words * 4
		if n == 0 || off+int64(n) > length {
			return ErrShort
		}
		pkt := make([]byte, n)
		if _, err := f.b.ReadAt(pkt, off); err != nil {
			return err
		}
		if err := yield(pkt); err != nil {
			return err
		}
		off += int64(n)
	}
	return nil
}

// Equal reports whether f and other hold the same sequence of packets,
// ignoring header metadata (creation-order packet count bookkeeping,
// reserved bytes, CRC) that can legitimately differ between two archives
// capturing the same data at different times. spec.md §9 leaves byte-
// exact vs. content-tolerant comparison as an open question; this
// implementation resolves it as content-tolerant (see DESIGN.md).
func (f *File) Equal(other *File) (bool, error) {
	var a, b [][]byte
	if err := f.Packets(func(p []byte) error {
		a = append(a, append([]byte(nil), p...))
		return nil
	}); err != nil {
		return false, err
	}
	if err := other.Packets(func(p []byte) error {
		b = append(b, append([]byte(nil), p...))
		return nil
	}); err != nil {
		return false, err
	}
	if len(a) != len(b) {
		return false, nil
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false, nil
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false, nil
			}
		}
	}
	return true, nil
}
