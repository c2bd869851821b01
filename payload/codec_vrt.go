package payload

import vita49 "github.com/soypat/vita49"

// "VRT floating-point" is VITA-49's name for a fixed-point representation
// that saturates instead of wrapping on overflow (original_source's
// PackUnpack.h calls this family out separately from plain two's-
// complement fixed-point specifically for that saturation behavior).
// vrtFloatToFloat64 and float64ToVRTFloat implement that pair.

func vrtFloatToFloat64(raw int64, fracSize int) float64 {
	scale := float64(int64(1) << uint(fracSize))
	return float64(raw) / scale
}

// float64ToVRTFloat converts v to a sized fixed-point raw value, clamping
// (saturating) to the representable range for a width-bit, signed-or-not
// item instead of wrapping, per VRT floating-point semantics.
func float64ToVRTFloat(v float64, width, fracSize int, signed bool) (int64, error) {
	if width <= 0 || width > 64 {
		return 0, vita49.ErrOutOfRange
	}
	scale := float64(int64(1) << uint(fracSize))
	scaled := v * scale
	var lo, hi int64
	if signed {
		hi = int64(1)<<uint(width-1) - 1
		lo = -(int64(1) << uint(width-1))
	} else {
		hi = int64(1)<<uint(width) - 1
		lo = 0
	}
	if scaled > float64(hi) {
		return hi, nil
	}
	if scaled < float64(lo) {
		return lo, nil
	}
	return int64(scaled), nil
}
