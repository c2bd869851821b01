package vrt

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"
)

// Endian-correct read/write of the octet-aligned primitives the rest of
// the packet model builds on. Every multi-byte integer is big-endian on
// the wire regardless of host byte order, matching the teacher's use of
// encoding/binary.BigEndian throughout ethernet/arp/ipv4.

func getU8(buf []byte, off int) uint8 { return buf[off] }

func putU8(buf []byte, off int, v uint8) { buf[off] = v }

func getI8(buf []byte, off int) int8 { return int8(buf[off]) }

func putI8(buf []byte, off int, v int8) { buf[off] = uint8(v) }

func getU16(buf []byte, off int) uint16 {
	return binary.BigEndian.Uint16(buf[off:])
}

func putU16(buf []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(buf[off:], v)
}

func getI16(buf []byte, off int) int16 { return int16(getU16(buf, off)) }

func putI16(buf []byte, off int, v int16) { putU16(buf, off, uint16(v)) }

// getU24 reads the 3 octets at off as a big-endian 24-bit unsigned value.
func getU24(buf []byte, off int) uint32 {
	return uint32(buf[off])<<16 | uint32(buf[off+1])<<8 | uint32(buf[off+2])
}

// putU24 writes the low 24 bits of v at off without touching buf[off+3] or
// any byte before off, so callers can pack a 24-bit field adjacent to other
// header bits within the same 32-bit word (spec.md §4.A).
func putU24(buf []byte, off int, v uint32) {
	buf[off] = byte(v >> 16)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v)
}

func getU32(buf []byte, off int) uint32 {
	return binary.BigEndian.Uint32(buf[off:])
}

func putU32(buf []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(buf[off:], v)
}

func getI32(buf []byte, off int) int32 { return int32(getU32(buf, off)) }

func putI32(buf []byte, off int, v int32) { putU32(buf, off, uint32(v)) }

func getU64(buf []byte, off int) uint64 {
	return binary.BigEndian.Uint64(buf[off:])
}

func putU64(buf []byte, off int, v uint64) {
	binary.BigEndian.PutUint64(buf[off:], v)
}

func getI64(buf []byte, off int) int64 { return int64(getU64(buf, off)) }

func putI64(buf []byte, off int, v int64) { putU64(buf, off, uint64(v)) }

func getF32(buf []byte, off int) float32 {
	return math.Float32frombits(getU32(buf, off))
}

func putF32(buf []byte, off int, v float32) {
	putU32(buf, off, math.Float32bits(v))
}

func getF64(buf []byte, off int) float64 {
	return math.Float64frombits(getU64(buf, off))
}

func putF64(buf []byte, off int, v float64) {
	putU64(buf, off, math.Float64bits(v))
}

// getUUID reads the 16 octets at off as a UUID, big-endian field order
// (spec.md §4.A). uuid.UUID's byte layout is already big-endian/network
// order, so this is a straight copy; using [github.com/google/uuid] instead
// of a bare [16]byte gives callers String()/Parse for free.
func getUUID(buf []byte, off int) uuid.UUID {
	var u uuid.UUID
	copy(u[:], buf[off:off+16])
	return u
}

func putUUID(buf []byte, off int, v uuid.UUID) {
	copy(buf[off:off+16], v[:])
}
