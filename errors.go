package vrt

import "errors"

// Sentinel errors. These name the error kinds from spec.md §7; IOError and
// CRCMismatch are produced by the vrl/vra packages, not here.
var (
	ErrReadOnly          = errors.New("vrt: write attempted on read-only packet")
	ErrInvalidLayout     = errors.New("vrt: buffer fails a length/layout invariant")
	ErrInvalidEnum       = errors.New("vrt: unknown packet type, CIF number or payload format code")
	ErrOutOfRange        = errors.New("vrt: setter argument outside allowed range")
	ErrUnsupportedFormat = errors.New("vrt: codec cannot represent this descriptor")
	ErrTooShort          = errors.New("vrt: buffer shorter than required by header fields")
	ErrPacketTooLarge    = errors.New("vrt: resulting packet size exceeds 65535 32-bit words")
	ErrCIF7BadFieldSrc   = errors.New("vrt: CIF7 is not a valid field source, use the cif7Bit parameter")
	ErrNoCIF             = errors.New("vrt: requested CIF word is not enabled")
)

// layoutError wraps ErrInvalidLayout with a human-readable reason, matching
// the teacher's convention of a handful of named sentinels plus a generic
// "reason string" wrapper for validation (see [Packet.Validate]).
type layoutError struct {
	reason string
}

func (e *layoutError) Error() string { return "vrt: invalid layout: " + e.reason }

func (e *layoutError) Unwrap() error { return ErrInvalidLayout }

func errLayout(reason string) error { return &layoutError{reason: reason} }
