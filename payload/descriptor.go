// Package payload implements the Data Payload Format descriptor and the
// packed numeric codec used to read/write VRT payloads (spec.md §4.B,
// §4.C). It is a sibling of the root vrt package rather than a
// subordinate of it: a descriptor and a codec are useful on their own,
// without a full Packet, the same way the teacher's udp/arp/ipv4
// packages stand apart from its root lneto package.
package payload

import vita49 "github.com/soypat/vita49"

// RealComplexType selects whether a payload's items are real-valued or
// complex, and if complex, which coordinate system.
type RealComplexType uint8

const (
	Real RealComplexType = iota
	ComplexCartesian
	ComplexPolar
	realComplexReserved
)

// DataItemFormat names the numeric representation of one payload item.
// spec.md §9 leaves the exact 5-bit code table unspecified beyond naming
// the families this codec must support; this implementation assigns one
// code per family rather than reproducing the original's full 32-entry
// table of VRT floating-point exponent-width variants (see DESIGN.md).
type DataItemFormat uint8

const (
	SignedInt   DataItemFormat = 0
	UnsignedInt DataItemFormat = 1
	SignedVRT   DataItemFormat = 2 // VRT floating-point, signed
	UnsignedVRT DataItemFormat = 3 // VRT floating-point, unsigned
	IEEEFloat   DataItemFormat = 4 // IEEE-754 binary32
	IEEEDouble  DataItemFormat = 5 // IEEE-754 binary64
)

func (f DataItemFormat) valid() bool { return f <= IEEEDouble }

// Format is the 64-bit Data Payload Format descriptor (spec.md §4.B),
// grounded on original_source/cpp/include/PayloadFormat.h's bit layout:
//
//	hi[31]     ProcessingEfficient (vs. link-efficient)
//	hi[30:29]  RealComplexType
//	hi[28:24]  DataItemFormat
//	hi[23]     isRepeating (vector-size field is a repeat count)
//	hi[22:20]  EventTagSize
//	hi[19:16]  ChannelTagSize
//	hi[15:12]  DataItemFracSize (fractional bits of fixed-point items)
//	hi[11:6]   ItemPackingFieldSize - 1 (bits occupied per packed item)
//	hi[5:0]    DataItemSize - 1 (significant bits per item)
//	lo[31:16]  RepeatCount - 1
//	lo[15:0]   VectorSize - 1
//
// The null descriptor (hi == lo == 0xFFFFFFFF) means "format unspecified".
type Format struct {
	Hi uint32
	Lo uint32
}

// Null is the "format unspecified" sentinel descriptor.
var Null = Format{Hi: 0xFFFFFFFF, Lo: 0xFFFFFFFF}

// IsNull reports whether f is the null/unspecified descriptor.
func (f Format) IsNull() bool { return f == Null }

func (f Format) ProcessingEfficient() bool { return f.Hi&0x80000000 != 0 }
func (f Format) RealComplex() RealComplexType {
	return RealComplexType((f.Hi >> 29) & 0x3)
}
func (f Format) ItemFormat() DataItemFormat { return DataItemFormat((f.Hi >> 24) & 0x1F) }
func (f Format) IsRepeating() bool          { return f.Hi&0x00800000 != 0 }
func (f Format) EventTagSize() int          { return int((f.Hi >> 20) & 0x7) }
func (f Format) ChannelTagSize() int        { return int((f.Hi >> 16) & 0xF) }
func (f Format) DataItemFracSize() int      { return int((f.Hi >> 12) & 0xF) }
func (f Format) ItemPackingFieldSize() int  { return int((f.Hi>>6)&0x3F) + 1 }
func (f Format) DataItemSize() int          { return int(f.Hi&0x3F) + 1 }
func (f Format) RepeatCount() int           { return int(f.Lo>>16) + 1 }
func (f Format) VectorSize() int            { return int(f.Lo&0xFFFF) + 1 }

func withBits(hi uint32, mask uint32, shift uint, v uint32) uint32 {
	return (hi &^ (mask << shift)) | ((v & mask) << shift)
}

func (f Format) WithProcessingEfficient(v bool) Format {
	if v {
		f.Hi |= 0x80000000
	} else {
		f.Hi &^= 0x80000000
	}
	return f
}

func (f Format) WithRealComplex(t RealComplexType) Format {
	f.Hi = withBits(f.Hi, 0x3, 29, uint32(t))
	return f
}

func (f Format) WithItemFormat(df DataItemFormat) Format {
	f.Hi = withBits(f.Hi, 0x1F, 24, uint32(df))
	return f
}

func (f Format) WithIsRepeating(v bool) Format {
	if v {
		f.Hi |= 0x00800000
	} else {
		f.Hi &^= 0x00800000
	}
	return f
}

func (f Format) WithEventTagSize(n int) Format {
	f.Hi = withBits(f.Hi, 0x7, 20, uint32(n))
	return f
}

func (f Format) WithChannelTagSize(n int) Format {
	f.Hi = withBits(f.Hi, 0xF, 16, uint32(n))
	return f
}

func (f Format) WithDataItemFracSize(n int) Format {
	f.Hi = withBits(f.Hi, 0xF, 12, uint32(n))
	return f
}

func (f Format) WithItemPackingFieldSize(bitsWide int) Format {
	f.Hi = withBits(f.Hi, 0x3F, 6, uint32(bitsWide-1))
	return f
}

func (f Format) WithDataItemSize(bitsWide int) Format {
	f.Hi = withBits(f.Hi, 0x3F, 0, uint32(bitsWide-1))
	return f
}

func (f Format) WithRepeatCount(n int) Format {
	f.Lo = (f.Lo & 0x0000FFFF) | uint32(n-1)<<16
	return f
}

func (f Format) WithVectorSize(n int) Format {
	f.Lo = (f.Lo & 0xFFFF0000) | uint32(n-1)&0xFFFF
	return f
}

// Validate reports whether f's fields are internally consistent: item and
// packing widths in [1,64], packing size >= item size, and frac size <=
// item size.
func (f Format) Validate() error {
	if f.IsNull() {
		return nil
	}
	if !f.ItemFormat().valid() {
		return vita49.ErrInvalidEnum
	}
	if f.RealComplex() == realComplexReserved {
		return vita49.ErrInvalidEnum
	}
	if f.DataItemSize() > f.ItemPackingFieldSize() {
		return vita49.ErrInvalidLayout
	}
	if f.DataItemFracSize() > f.DataItemSize() {
		return vita49.ErrInvalidLayout
	}
	return nil
}

func basic(df DataItemFormat, itemBits int) Format {
	return Format{}.WithItemFormat(df).WithDataItemSize(itemBits).
		WithItemPackingFieldSize(itemBits).WithRealComplex(Real).
		WithRepeatCount(1).WithVectorSize(1)
}

// Preset constructors for the common scalar real formats named in
// spec.md §4.B.
func Int4() Format  { return basic(SignedInt, 4) }
func Int8() Format  { return basic(SignedInt, 8) }
func Int16() Format { return basic(SignedInt, 16) }
func Int32() Format { return basic(SignedInt, 32) }
func Int64() Format { return basic(SignedInt, 64) }

func UInt1() Format  { return basic(UnsignedInt, 1) }
func UInt4() Format  { return basic(UnsignedInt, 4) }
func UInt8() Format  { return basic(UnsignedInt, 8) }
func UInt16() Format { return basic(UnsignedInt, 16) }
func UInt32() Format { return basic(UnsignedInt, 32) }
func UInt64() Format { return basic(UnsignedInt, 64) }

func Float32() Format { return basic(IEEEFloat, 32) }
func Float64() Format { return basic(IEEEDouble, 64) }

// AsComplexCartesian returns a copy of f set to complex-cartesian, same
// per-component width (so each item occupies 2x f's current width).
func (f Format) AsComplexCartesian() Format { return f.WithRealComplex(ComplexCartesian) }

// AsComplexPolar returns a copy of f set to complex-polar representation.
func (f Format) AsComplexPolar() Format { return f.WithRealComplex(ComplexPolar) }
