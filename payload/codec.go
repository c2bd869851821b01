package payload

import (
	"math"

	vita49 "github.com/soypat/vita49"
)

// The packed numeric codec. Items are stored either
// link-efficient (packed with no inter-item padding, [Format.DataItemSize]
// bits each) or processing-efficient (each item padded up to
// [Format.ItemPackingFieldSize] bits, the whole stream word-aligned).
//
// Bits are packed MSB-first within the payload octet stream, matching the
// big-endian convention the rest of this module uses for every other
// wire field.

// ItemBitWidth returns the number of bits each packed item (or, for
// complex formats, each component of an item) occupies on the wire.
func ItemBitWidth(f Format) int {
	if f.ProcessingEfficient() {
		return f.ItemPackingFieldSize()
	}
	return f.DataItemSize()
}

// ComponentsPerItem returns 1 for real formats, 2 for both complex
// representations (cartesian: real, imag; polar: magnitude, angle).
func ComponentsPerItem(f Format) int {
	if f.RealComplex() == Real {
		return 1
	}
	return 2
}

// ItemCount returns how many whole items fit in a payload of the given
// length in octets.
func ItemCount(f Format, payloadOctets int) int {
	width := ItemBitWidth(f) * ComponentsPerItem(f)
	if width == 0 {
		return 0
	}
	return (payloadOctets * 8) / width
}

// BitsNeeded returns the payload length in octets required to hold n
// items of format f, rounded up to a whole octet (link-efficient) or,
// when processing-efficient, additionally up to a 4-octet word.
func BitsNeeded(f Format, n int) int {
	width := ItemBitWidth(f) * ComponentsPerItem(f)
	totalBits := width * n
	octets := (totalBits + 7) / 8
	if f.ProcessingEfficient() {
		octets = (octets + 3) &^ 3
	}
	return octets
}

// readBitsMSB reads width bits (width <= 64) from buf starting at bit
// offset bitOff, counting bit 0 as the MSB of buf[0].
func readBitsMSB(buf []byte, bitOff, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		bit := bitOff + i
		byteIdx := bit / 8
		bitIdx := 7 - uint(bit%8)
		b := (buf[byteIdx] >> bitIdx) & 1
		v = v<<1 | uint64(b)
	}
	return v
}

func writeBitsMSB(buf []byte, bitOff, width int, v uint64) {
	for i := 0; i < width; i++ {
		bit := bitOff + width - 1 - i
		byteIdx := bit / 8
		bitIdx := 7 - uint(bit%8)
		b := byte(v>>uint(i)) & 1
		if b != 0 {
			buf[byteIdx] |= 1 << bitIdx
		} else {
			buf[byteIdx] &^= 1 << bitIdx
		}
	}
}

func signExtend(v uint64, width int) int64 {
	if width >= 64 {
		return int64(v)
	}
	shift := uint(64 - width)
	return int64(v<<shift) >> shift
}

// componentOffset returns the bit offset of item index's componentIdx-th
// component (0 for real/magnitude/real-part, 1 for imag/angle).
func componentOffset(f Format, index, componentIdx int) int {
	width := ItemBitWidth(f)
	n := ComponentsPerItem(f)
	return (index*n + componentIdx) * width
}

// UnpackComponent reads item index's componentIdx-th raw component value
// (sign-extended for signed formats) from buf.
func UnpackComponent(f Format, buf []byte, index, componentIdx int) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	width := f.DataItemSize()
	bitOff := componentOffset(f, index, componentIdx)
	if (bitOff+width+7)/8 > len(buf) {
		return 0, vita49.ErrTooShort
	}
	raw := readBitsMSB(buf, bitOff, width)
	switch f.ItemFormat() {
	case SignedInt, SignedVRT:
		return signExtend(raw, width), nil
	default:
		return int64(raw), nil
	}
}

// PackComponent writes raw into item index's componentIdx-th component.
func PackComponent(f Format, buf []byte, index, componentIdx int, raw int64) error {
	if err := f.Validate(); err != nil {
		return err
	}
	width := f.DataItemSize()
	bitOff := componentOffset(f, index, componentIdx)
	if (bitOff+width+7)/8 > len(buf) {
		return vita49.ErrTooShort
	}
	mask := uint64(1)<<uint(width) - 1
	writeBitsMSB(buf, bitOff, width, uint64(raw)&mask)
	return nil
}

// UnpackReal returns item index's value as a float64, applying the
// format's fixed-point fractional scaling ([Format.DataItemFracSize]) or
// IEEE decoding as appropriate. Only valid for Real formats; use
// [UnpackComplex] otherwise.
func UnpackReal(f Format, buf []byte, index int) (float64, error) {
	if f.RealComplex() != Real {
		return 0, vita49.ErrUnsupportedFormat
	}
	return unpackComponentValue(f, buf, index, 0)
}

// UnpackComplex returns item index's two components as float64s: (real,
// imag) for ComplexCartesian, (magnitude, angle) for ComplexPolar.
func UnpackComplex(f Format, buf []byte, index int) (a, b float64, err error) {
	if f.RealComplex() == Real {
		return 0, 0, vita49.ErrUnsupportedFormat
	}
	a, err = unpackComponentValue(f, buf, index, 0)
	if err != nil {
		return 0, 0, err
	}
	b, err = unpackComponentValue(f, buf, index, 1)
	return a, b, err
}

func unpackComponentValue(f Format, buf []byte, index, componentIdx int) (float64, error) {
	switch f.ItemFormat() {
	case IEEEFloat:
		raw, err := UnpackComponent(f, buf, index, componentIdx)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(uint32(raw))), nil
	case IEEEDouble:
		raw, err := UnpackComponent(f, buf, index, componentIdx)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(uint64(raw)), nil
	case SignedVRT, UnsignedVRT:
		raw, err := UnpackComponent(f, buf, index, componentIdx)
		if err != nil {
			return 0, err
		}
		return vrtFloatToFloat64(raw, f.DataItemFracSize()), nil
	default:
		raw, err := UnpackComponent(f, buf, index, componentIdx)
		if err != nil {
			return 0, err
		}
		return float64(raw) / float64(int64(1)<<uint(f.DataItemFracSize())), nil
	}
}

// PackReal writes v into item index's single component, applying the
// inverse of [UnpackReal]'s scaling/encoding.
func PackReal(f Format, buf []byte, index int, v float64) error {
	if f.RealComplex() != Real {
		return vita49.ErrUnsupportedFormat
	}
	return packComponentValue(f, buf, index, 0, v)
}

// PackComplex is the inverse of [UnpackComplex].
func PackComplex(f Format, buf []byte, index int, a, b float64) error {
	if f.RealComplex() == Real {
		return vita49.ErrUnsupportedFormat
	}
	if err := packComponentValue(f, buf, index, 0, a); err != nil {
		return err
	}
	return packComponentValue(f, buf, index, 1, b)
}

func packComponentValue(f Format, buf []byte, index, componentIdx int, v float64) error {
	switch f.ItemFormat() {
	case IEEEFloat:
		return PackComponent(f, buf, index, componentIdx, int64(math.Float32bits(float32(v))))
	case IEEEDouble:
		return PackComponent(f, buf, index, componentIdx, int64(math.Float64bits(v)))
	case SignedVRT, UnsignedVRT:
		raw, err := float64ToVRTFloat(v, f.DataItemSize(), f.DataItemFracSize(), f.ItemFormat() == SignedVRT)
		if err != nil {
			return err
		}
		return PackComponent(f, buf, index, componentIdx, raw)
	default:
		scale := float64(int64(1) << uint(f.DataItemFracSize()))
		raw := int64(math.Round(v * scale))
		return PackComponent(f, buf, index, componentIdx, raw)
	}
}
