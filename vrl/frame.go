// Package vrl implements the VITA Radio Link framing layer (spec.md §4.J):
// a thin wrapper that groups one or more VRT packets into a length- and
// CRC-delimited frame for transport over a byte stream.
package vrl

import (
	"encoding/binary"
	"errors"

	vita49 "github.com/soypat/vita49"
)

// faw is the VRL Frame Alignment Word, the ASCII bytes "VRLP".
const faw uint32 = 0x56524C50

// vend is the trailer value meaning "no CRC, end of frame" (ASCII "VEND"),
// spec.md §4.J.
const vend uint32 = 0x56454E44

const (
	sizeFAW     = 4
	sizeHeader  = 4
	sizeTrailer = 4
	minFrame    = sizeFAW + sizeHeader + sizeTrailer
)

var (
	ErrBadFAW     = errors.New("vrl: frame alignment word mismatch")
	ErrShortFrame = errors.New("vrl: buffer shorter than declared frame size")
	ErrCRCInvalid = errors.New("vrl: trailer CRC does not match frame contents")
	ErrTooLarge   = errors.New("vrl: frame exceeds the 20-bit frame size field")
)

// Frame wraps a byte buffer holding one VRL frame (spec.md §3.6): a 4-byte
// FAW, a 4-byte header (frame count + frame size), zero or more VRT
// packets, and a 4-byte trailer that is either a CRC-32 or the literal
// [vend] marker. Grounded on the teacher's ethernet.Frame/udp.Frame
// pattern: a buf-wrapping value type with ValidateSize-style checking
// left to the caller.
type Frame struct {
	buf []byte
}

// NewFrame wraps buf, which must be at least large enough to hold an
// empty frame (FAW + header + trailer, no packets).
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < minFrame {
		return Frame{}, ErrShortFrame
	}
	return Frame{buf: buf}, nil
}

// RawData returns the frame's backing buffer.
func (f Frame) RawData() []byte { return f.buf }

// ValidFAW reports whether the frame starts with the VRL Frame Alignment Word.
func (f Frame) ValidFAW() bool {
	return binary.BigEndian.Uint32(f.buf[0:4]) == faw
}

// FrameCount returns the header's 12-bit rolling frame counter.
func (f Frame) FrameCount() uint16 {
	return uint16(binary.BigEndian.Uint32(f.buf[4:8]) >> 20)
}

func (f *Frame) SetFrameCount(n uint16) {
	h := binary.BigEndian.Uint32(f.buf[4:8])
	h = (h & 0x000FFFFF) | (uint32(n&0xFFF) << 20)
	binary.BigEndian.PutUint32(f.buf[4:8], h)
}

// FrameSizeWords returns the header's 20-bit frame size, in 32-bit words,
// counting the FAW, header, and packet payload (but not the trailer).
func (f Frame) FrameSizeWords() int {
	return int(binary.BigEndian.Uint32(f.buf[4:8]) & 0x000FFFFF)
}

func (f *Frame) setFrameSizeWords(n int) error {
	if n > 0xFFFFF {
		return ErrTooLarge
	}
	h := binary.BigEndian.Uint32(f.buf[4:8])
	h = (h & 0xFFF00000) | uint32(n)
	binary.BigEndian.PutUint32(f.buf[4:8], h)
	return nil
}

// totalLength returns the frame's full octet length, FAW through trailer.
func (f Frame) totalLength() int { return f.FrameSizeWords()*4 + sizeTrailer }

// PacketsRegion returns the octet range holding the frame's packet
// payload, i.e. everything between the header and the trailer.
func (f Frame) PacketsRegion() []byte {
	end := f.totalLength() - sizeTrailer
	return f.buf[sizeFAW+sizeHeader : end]
}

// HasCRC reports whether the frame's trailer is a computed CRC rather
// than the literal VEND marker.
func (f Frame) HasCRC() bool {
	return binary.BigEndian.Uint32(f.buf[f.totalLength()-sizeTrailer:f.totalLength()]) != vend
}

// CRC returns the trailer's stored CRC-32, valid only if [Frame.HasCRC].
func (f Frame) CRC() uint32 {
	end := f.totalLength()
	return binary.BigEndian.Uint32(f.buf[end-sizeTrailer : end])
}

// Validate checks the FAW, that the buffer is long enough for the
// declared frame size, and, if a CRC trailer is present, that it matches.
func (f Frame) Validate() error {
	if !f.ValidFAW() {
		return ErrBadFAW
	}
	total := f.totalLength()
	if total > len(f.buf) {
		return ErrShortFrame
	}
	if f.HasCRC() {
		want := vita49.CRC32(f.buf[:total-sizeTrailer])
		if want != f.CRC() {
			return ErrCRCInvalid
		}
	}
	return nil
}

// UpdateCRC recomputes and stores the trailer CRC over the frame's
// current contents (FAW through end of packet payload), replacing a VEND
// marker if one was present.
func (f *Frame) UpdateCRC() {
	total := f.totalLength()
	crc := vita49.CRC32(f.buf[:total-sizeTrailer])
	binary.BigEndian.PutUint32(f.buf[total-sizeTrailer:total], crc)
}

// ClearCRC replaces the trailer with the VEND marker, declaring that this
// frame carries no CRC protection.
func (f *Frame) ClearCRC() {
	total := f.totalLength()
	binary.BigEndian.PutUint32(f.buf[total-sizeTrailer:total], vend)
}

// Packets iterates the VRT packets (as raw byte slices, each a whole
// number of 32-bit words per spec.md §3.1) contained in the frame. It
// stops and returns an error if a declared packet size would run past the
// packets region.
func (f Frame) Packets(yield func(pkt []byte) error) error {
	region := f.PacketsRegion()
	off := 0
	for off < len(region) {
		if off+4 > len(region) {
			return ErrShortFrame
		}
		words := int(binary.BigEndian.Uint16(region[off+2 : off+4]))
		n := words * 4
		if n == 0 || off+n > len(region) {
			return ErrShortFrame
		}
		if err := yield(region[off : off+n]); err != nil {
			return err
		}
		off += n
	}
	return nil
}

// Append grows the frame (reallocating its buffer when the caller's buf
// lacks spare capacity) to include pkt as an additional trailing packet,
// refreshing the frame size header and setting the trailer to the VEND
// marker. If allowTruncate is false it fails rather than exceeding
// maxFrameWords; otherwise pkt is truncated to fit. Call [Frame.UpdateCRC]
// afterward to protect the frame with a CRC.
func (f *Frame) Append(pkt []byte, allowTruncate bool, maxFrameWords int) error {
	if len(pkt)%4 != 0 {
		return ErrShortFrame
	}
	oldTotal := f.totalLength()
	newWords := f.FrameSizeWords() + len(pkt)/4
	if maxFrameWords > 0 && newWords+1 > maxFrameWords {
		if !allowTruncate {
			return ErrTooLarge
		}
		room := (maxFrameWords - f.FrameSizeWords() - 1) * 4
		if room <= 0 {
			return ErrTooLarge
		}
		if room < len(pkt) {
			pkt = pkt[:room]
		}
		newWords = f.FrameSizeWords() + len(pkt)/4
	}
	newTotal := newWords*4 + sizeTrailer
	insertAt := oldTotal - sizeTrailer
	if newTotal > cap(f.buf) {
		grown := make([]byte, newTotal)
		copy(grown, f.buf[:insertAt])
		f.buf = grown
	} else {
		f.buf = f.buf[:newTotal]
	}
	copy(f.buf[insertAt:insertAt+len(pkt)], pkt)
	binary.BigEndian.PutUint32(f.buf[newTotal-sizeTrailer:newTotal], vend)
	return f.setFrameSizeWords(newWords)
}
