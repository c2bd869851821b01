package vrt

import "hash/crc32"

// crcTable is the reversed CRC-32 polynomial table (0xEDB88320, ANSI/VITA
// 49.1 Appendix A; identical polynomial to Ethernet's IEEE CRC-32) used for
// VRL frame trailers and VRA file headers. Grounded on the teacher's
// ethernet/crc.go, which builds the same table for Ethernet FCS — the VRT
// variant differs only in initial value and the absence of a final XOR (see
// [CRC32]).
var crcTable = crc32.MakeTable(crc32.IEEE)

// CRC32 computes the ANSI/VITA 49.1 CRC-32 of data: the reversed CRC-32
// polynomial with an initial value of zero and no final XOR, equivalent to a
// standard CRC-32 computation except for those two details. Both VRL frames
// and VRA files use this variant; VRA files skip the CRC field's own octets
// by computing over the two surrounding ranges with [CRC32Two].
func CRC32(data []byte) uint32 {
	crc := uint32(0)
	for _, b := range data {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return crc
}

// CRC32Two computes the CRC-32 of the logical concatenation a||b without
// requiring the caller to materialize that concatenation. VRA files need
// this to cover octets [0..16) and [20..fileLength) while skipping the CRC
// field itself at [16..20).
func CRC32Two(a, b []byte) uint32 {
	crc := uint32(0)
	for _, buf := range [2][]byte{a, b} {
		for _, c := range buf {
			crc = crcTable[byte(crc)^c] ^ (crc >> 8)
		}
	}
	return crc
}
