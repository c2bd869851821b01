package vrt

import "math/bits"

// CIF7 attribute multiplication. When CIF7 is enabled, every
// field indicated present in CIF0-3 is repeated once per enabled CIF7
// attribute bit (Current Value, Average Value, Median Value, Standard
// Deviation, and so on), each copy holding that attribute's value for the
// field instead of a single instantaneous value.
//
// spec.md §9 leaves open whether every attribute's copy is the same width
// as the parent field or whether some attributes (e.g. a Standard
// Deviation) are always a fixed 4 octets regardless of the parent's
// width. This implementation resolves it as: every attribute copy is the
// same width as the parent field. See DESIGN.md.
func (p Packet) applyCIF7Multiplier(k cifFieldKey, baseWidth int) int {
	if !p.HasCIF(7) {
		return baseWidth
	}
	n := bits.OnesCount32(p.cifWord(7))
	if n == 0 {
		return baseWidth
	}
	return baseWidth * n
}

// CIF7AttributeCount returns the number of attribute copies each present
// CIF0-3 field carries: 1 if CIF7 is absent or has no attribute bits set,
// otherwise the number of attribute bits enabled in the CIF7 word.
func (p Packet) CIF7AttributeCount() int {
	if !p.HasCIF(7) {
		return 1
	}
	n := bits.OnesCount32(p.cifWord(7))
	if n == 0 {
		return 1
	}
	return n
}
