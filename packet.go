package vrt

import "fmt"

// Packet is the in-memory representation of a single VRT packet (component
// D). It wraps a [Buffer] that is either owned (may grow/shrink on
// mutation) or a read-only view over caller-owned storage; every field is
// computed on demand from that buffer, there is no cached/derived state.
type Packet struct {
	buf Buffer
}

// NewPacket returns an empty owned packet of the given type with a preset
// minimal header: no class ID (except on context types, which always carry
// one), no trailer, TSI/TSF none, stream ID present and zeroed if pt
// requires one, packet count 0. Only PacketTypeUnidentifiedData and
// PacketTypeUnidentifiedExtData omit the stream ID (see
// [PacketType.HasStreamID]), so the smallest packet NewPacket can produce is
// the 4-byte header word alone, for one of those two types; the other data
// types' minimal packet is 8 bytes (header word plus a zeroed stream ID
// word). Context and command packets also carry a zeroed CIF0 word, and
// command packets carry a Packet-Specific Prologue with both IDs present in
// UUID form (zeroed).
func NewPacket(pt PacketType) (Packet, error) {
	if !pt.valid() {
		return Packet{}, ErrInvalidEnum
	}
	length := sizeHeader
	if pt.HasStreamID() {
		length += 4
	}
	if pt.IsContext() {
		length += sizeClassID // spec.md §3.1: context packets always carry a class ID.
	}
	if pt.IsCommand() {
		length += sizePSPBase // CAM word + message ID; the IDs are inserted below.
	}
	if pt.IsContext() || pt.IsCommand() {
		length += sizeCIFWord // CIF0 is always present in the CIF body.
	}
	p := Packet{buf: NewOwnedBuffer(length)}
	buf := p.buf.Bytes()
	buf[0] = byte(pt) << 4
	if pt.IsContext() {
		buf[0] |= 0x08 // C bit forced on for context packets.
	}
	p.setPacketSizeWords(uint32(length / 4))
	if pt.IsCommand() {
		// A freshly constructed command packet carries both 128-bit ID forms
		// present and the ack bit clear (spec.md §4.E invariants).
		if err := p.SetControlleeID(IdentifierUUID, make([]byte, 16)); err != nil {
			return Packet{}, err
		}
		if err := p.SetControllerID(IdentifierUUID, make([]byte, 16)); err != nil {
			return Packet{}, err
		}
	}
	return p, nil
}

// NewPacketView returns a read-only packet over buf. buf is not copied and
// must outlive the returned Packet, which must not itself be mutated; the
// caller should still call [Packet.Validate] before trusting field access
// beyond the minimal 4-byte header-word bounds check performed here.
func NewPacketView(buf []byte) (Packet, error) {
	if len(buf) < sizeHeader {
		return Packet{}, errLayout("buffer shorter than one header word")
	}
	return Packet{buf: NewViewBuffer(buf)}, nil
}

// ParsePacket copies buf into an owned packet and validates it, returning
// the first violation found (spec.md §4.D "Parse and validate").
func ParsePacket(buf []byte) (Packet, error) {
	if len(buf) < sizeHeader {
		return Packet{}, errLayout("buffer shorter than one header word")
	}
	p := Packet{buf: NewOwnedBufferFrom(buf)}
	if err := p.Validate(false, -1); err != nil {
		return Packet{}, err
	}
	return p, nil
}

// ReadOnly reports whether mutators on p will fail with [ErrReadOnly].
func (p Packet) ReadOnly() bool { return p.buf.ReadOnly() }

// RawData returns the packet's backing buffer. The slice aliases p's
// storage and must not be retained across a call to any p mutator.
func (p Packet) RawData() []byte { return p.buf.Bytes() }

// ToBytes returns a freshly allocated copy of the packet's bytes.
func (p Packet) ToBytes() []byte {
	buf := p.buf.Bytes()
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}

//
// Header word (component D, spec.md §3.1).
//
// Byte 0: [type(4)][C(1)][indicator(1)][reserved(2)]
// Byte 1: [TSI(2)][TSF(2)][packet count(4)]
// Bytes 2-3: packet size, 32-bit words, big-endian.
//
// The "indicator" bit (byte0 bit 2, i.e. mask 0x04) is has_trailer for Data
// packet types, tsm for Context packet types, and the command family's Ack
// indicator (clear=Control, set=Acknowledge/QueryAcknowledge) for Command
// packet types.
//

func (p Packet) PacketType() PacketType { return PacketType(p.buf.Bytes()[0] >> 4) }

// SetPacketType changes the packet's type, inserting or removing the
// stream ID field as needed to match the new type's presence rule.
func (p *Packet) SetPacketType(pt PacketType) error {
	if !pt.valid() {
		return ErrInvalidEnum
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	old := p.PacketType()
	if old.HasStreamID() != pt.HasStreamID() {
		if err := p.shiftRegion(sizeHeader, 4, pt.HasStreamID()); err != nil {
			return err
		}
	}
	buf := p.buf.Bytes()
	buf[0] = (buf[0] & 0x0F) | byte(pt)<<4
	return nil
}

func (p Packet) HasClassID() bool { return p.buf.Bytes()[0]&0x08 != 0 }

// SetHasClassID inserts or removes the 8-octet Class ID field, shifting
// everything after it (spec.md §4.D "set_header_option").
func (p *Packet) SetHasClassID(v bool) error {
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	if p.PacketType().IsContext() && !v {
		return errLayout("context packets must carry a class ID (C bit fixed at 1)")
	}
	if p.HasClassID() == v {
		return nil
	}
	if err := p.shiftRegion(p.classIDOffset(), sizeClassID, v); err != nil {
		return err
	}
	buf := p.buf.Bytes()
	if v {
		buf[0] |= 0x08
	} else {
		buf[0] &^= 0x08
	}
	return nil
}

// HasTrailer reports the trailer-included bit. Only meaningful for Data
// packet types; always false otherwise.
func (p Packet) HasTrailer() bool {
	return p.PacketType().IsData() && p.buf.Bytes()[0]&0x04 != 0
}

// SetHasTrailer toggles the trailer bit and grows/shrinks the buffer by 4
// octets at the end (spec.md §4.D "Trailer shift"); discards existing
// trailer contents on removal.
func (p *Packet) SetHasTrailer(v bool) error {
	if !p.PacketType().IsData() {
		return errLayout("only Data packet types carry a trailer")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	if p.HasTrailer() == v {
		return nil
	}
	off := len(p.buf.Bytes())
	if !v {
		off -= sizeTrailer
	}
	if err := p.shiftRegion(off, sizeTrailer, v); err != nil {
		return err
	}
	buf := p.buf.Bytes()
	if v {
		buf[0] |= 0x04
	} else {
		buf[0] &^= 0x04
	}
	return nil
}

// TSM reports the "timestamp mode" context-only indicator bit.
func (p Packet) TSM() bool {
	return p.PacketType().IsContext() && p.buf.Bytes()[0]&0x04 != 0
}

func (p *Packet) SetTSM(v bool) error {
	if !p.PacketType().IsContext() {
		return errLayout("tsm only applies to Context packet types")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	buf := p.buf.Bytes()
	if v {
		buf[0] |= 0x04
	} else {
		buf[0] &^= 0x04
	}
	return nil
}

// ackBit is the command family's request/acknowledge discriminator
// (header byte0 bit 2), see the Ack() accessor in command.go.
func (p Packet) ackBit() bool {
	return p.PacketType().IsCommand() && p.buf.Bytes()[0]&0x04 != 0
}

func (p *Packet) setAckBit(v bool) {
	buf := p.buf.Bytes()
	if v {
		buf[0] |= 0x04
	} else {
		buf[0] &^= 0x04
	}
}

func (p Packet) TSIMode() TSIMode { return TSIMode(p.buf.Bytes()[1] >> 6) }

func (p *Packet) SetTSIMode(m TSIMode) error {
	if !m.valid() {
		return ErrInvalidEnum
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	old := p.TSIMode()
	if (old == TSINone) != (m == TSINone) {
		if err := p.shiftRegion(p.tsiOffset(), sizeTSI, m != TSINone); err != nil {
			return err
		}
	}
	buf := p.buf.Bytes()
	buf[1] = (buf[1] & 0x3F) | byte(m)<<6
	return nil
}

func (p Packet) TSFMode() TSFMode { return TSFMode((p.buf.Bytes()[1] >> 4) & 0x3) }

func (p *Packet) SetTSFMode(m TSFMode) error {
	if !m.valid() {
		return ErrInvalidEnum
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	old := p.TSFMode()
	if (old == TSFNone) != (m == TSFNone) {
		if err := p.shiftRegion(p.tsfOffset(), sizeTSF, m != TSFNone); err != nil {
			return err
		}
	}
	buf := p.buf.Bytes()
	buf[1] = (buf[1] & 0xCF) | byte(m)<<4
	return nil
}

// PacketCount returns the header's 4-bit packet count (mod 16).
func (p Packet) PacketCount() uint8 { return p.buf.Bytes()[1] & 0x0F }

func (p *Packet) SetPacketCount(v uint8) error {
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	buf := p.buf.Bytes()
	buf[1] = (buf[1] & 0xF0) | (v & 0x0F)
	return nil
}

// PacketSizeWords returns the raw header packet-size field (32-bit words).
func (p Packet) PacketSizeWords() uint16 { return getU16(p.buf.Bytes(), 2) }

func (p *Packet) setPacketSizeWords(words uint32) {
	putU16(p.buf.Bytes(), 2, uint16(words))
}

// HasStreamID reports whether this packet's type carries a stream ID.
func (p Packet) HasStreamID() bool { return p.PacketType().HasStreamID() }

func (p Packet) streamIDOffset() int { return sizeHeader }

func (p Packet) classIDOffset() int {
	off := sizeHeader
	if p.HasStreamID() {
		off += 4
	}
	return off
}

func (p Packet) tsiOffset() int {
	off := p.classIDOffset()
	if p.HasClassID() {
		off += sizeClassID
	}
	return off
}

func (p Packet) tsfOffset() int {
	off := p.tsiOffset()
	if p.TSIMode() != TSINone {
		off += sizeTSI
	}
	return off
}

// pspOffset is the offset just past TSI/TSF, i.e. where the command
// family's Packet-Specific Prologue begins (and where the header formally
// ends for every other packet type).
func (p Packet) pspOffset() int {
	off := p.tsfOffset()
	if p.TSFMode() != TSFNone {
		off += sizeTSF
	}
	return off
}

// HeaderLength returns 4 + (class ID?8:0) + (stream ID?4:0) + (TSI?4:0) +
// (TSF?8:0), per spec.md §3.1. It does not include the command family's PSP.
func (p Packet) HeaderLength() int { return p.pspOffset() }

// StreamID returns the stream ID, or Uint32Null if this packet's type has none.
func (p Packet) StreamID() uint32 {
	if !p.HasStreamID() {
		return Uint32Null
	}
	return getU32(p.buf.Bytes(), p.streamIDOffset())
}

func (p *Packet) SetStreamID(v uint32) error {
	if !p.HasStreamID() {
		return errLayout("packet type has no stream ID field")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	putU32(p.buf.Bytes(), p.streamIDOffset(), v)
	return nil
}

// GetClassID returns the class ID and true, or the zero ClassID and false
// if not present.
func (p Packet) GetClassID() (ClassID, bool) {
	if !p.HasClassID() {
		return ClassID{}, false
	}
	return classIDFromBits(getU64(p.buf.Bytes(), p.classIDOffset())), true
}

func (p *Packet) SetClassID(c ClassID) error {
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	if !p.HasClassID() {
		if err := p.SetHasClassID(true); err != nil {
			return err
		}
	}
	putU64(p.buf.Bytes(), p.classIDOffset(), c.bits())
	return nil
}

// TSI returns the integer timestamp seconds and true, or (0, false) if
// TSIMode is None.
func (p Packet) TSI() (uint32, bool) {
	if p.TSIMode() == TSINone {
		return 0, false
	}
	return getU32(p.buf.Bytes(), p.tsiOffset()), true
}

func (p *Packet) SetTSI(v uint32) error {
	if p.TSIMode() == TSINone {
		return errLayout("TSI mode is None")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	putU32(p.buf.Bytes(), p.tsiOffset(), v)
	return nil
}

// TSF returns the fractional timestamp and true, or (0, false) if TSFMode
// is None. Units depend on TSFMode: picoseconds for RealTime, samples for
// SampleCount, an opaque free-running count otherwise (spec.md §3.5).
func (p Packet) TSF() (uint64, bool) {
	if p.TSFMode() == TSFNone {
		return 0, false
	}
	return getU64(p.buf.Bytes(), p.tsfOffset()), true
}

func (p *Packet) SetTSF(v uint64) error {
	if p.TSFMode() == TSFNone {
		return errLayout("TSF mode is None")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	putU64(p.buf.Bytes(), p.tsfOffset(), v)
	return nil
}

//
// Sizing (component D + H).
//

// Length returns the total packet length in octets.
func (p Packet) Length() int { return len(p.buf.Bytes()) }

// TrailerLength returns 4 if a Data-packet trailer is present, else 0.
func (p Packet) TrailerLength() int {
	if p.HasTrailer() {
		return sizeTrailer
	}
	return 0
}

// bodyOffset is where the CIF/payload body begins: past the header for
// every type except Command, where it is past the PSP as well.
func (p Packet) bodyOffset() int {
	off := p.pspOffset()
	if p.PacketType().IsCommand() {
		off += p.pspLength()
	}
	return off
}

// PayloadLength returns the number of octets between the prologue (header
// plus, for command packets, the PSP) and the trailer.
func (p Packet) PayloadLength() int {
	return len(p.buf.Bytes()) - p.bodyOffset() - p.TrailerLength()
}

// Payload returns the packet's payload/CIF-body region.
func (p Packet) Payload() []byte {
	start := p.bodyOffset()
	end := len(p.buf.Bytes()) - p.TrailerLength()
	return p.buf.Bytes()[start:end]
}

// SetPayloadLength truncates or grows the payload to exactly n octets,
// shifting the trailer (if present) to stay at the end of the buffer.
func (p *Packet) SetPayloadLength(n int) error {
	if n < 0 {
		return ErrOutOfRange
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	cur := p.PayloadLength()
	diff := n - cur
	if diff == 0 {
		return nil
	}
	end := len(p.buf.Bytes()) - p.TrailerLength()
	if diff > 0 {
		return p.shiftRegion(end, diff, true)
	}
	return p.shiftRegion(end+diff, -diff, false)
}

// shiftRegion is the shared primitive behind every structural mutation:
// insert or remove width octets at offset, sliding everything after it,
// and refresh the header's packet-size field (spec.md §4.D
// "shift_payload algorithm").
func (p *Packet) shiftRegion(offset, width int, insert bool) error {
	if width == 0 {
		return nil
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	buf := p.buf.Bytes()
	oldLen := len(buf)
	var newLen int
	if insert {
		newLen = oldLen + width
	} else {
		newLen = oldLen - width
	}
	if newLen%4 != 0 {
		return errLayout("shift leaves a non-word-aligned packet length")
	}
	if newLen/4 > maxPacketWords {
		return ErrPacketTooLarge
	}
	if insert {
		tail := append([]byte(nil), buf[offset:oldLen]...)
		p.buf.resize(newLen)
		nb := p.buf.Bytes()
		copy(nb[offset+width:], tail)
		clear(nb[offset : offset+width])
	} else {
		copy(buf[offset:], buf[offset+width:oldLen])
		p.buf.resize(newLen)
	}
	p.setPacketSizeWords(uint32(newLen / 4))
	return nil
}

//
// Validation (spec.md §7).
//

// Validate checks every invariant from spec.md §3.1 and returns the first
// violation found. expectedLength, if >= 0, must match p.Length(). strict
// additionally checks internal consistency of variable-width CIF fields.
func (p Packet) Validate(strict bool, expectedLength int) error {
	buf := p.buf.Bytes()
	if len(buf) < sizeHeader || len(buf)%4 != 0 {
		return errLayout("length is not a positive multiple of 4")
	}
	if !p.PacketType().valid() {
		return ErrInvalidEnum
	}
	if int(p.PacketSizeWords())*4 != len(buf) {
		return errLayout("header packet-size field does not match buffer length")
	}
	if expectedLength >= 0 && expectedLength != len(buf) {
		return errLayout("buffer length does not match caller-supplied expected length")
	}
	if p.PacketType().IsContext() && !p.HasClassID() {
		return errLayout("context packet missing mandatory class ID (C bit)")
	}
	need := p.bodyOffset() + p.TrailerLength()
	if need > len(buf) {
		return errLayout("class ID/TSI/TSF/PSP fields exceed buffer length")
	}
	if p.PacketType().IsCommand() {
		cam := p.ctrlAckSettings()
		if !cam.CE() && !cam.CR() {
			return errLayout("command packet has neither controllee nor controller ID")
		}
	}
	if strict {
		v := NewValidator(true)
		if p.PacketType().IsContext() || p.PacketType().IsCommand() {
			p.validateCIFLayout(v)
		}
		if err := v.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (p Packet) String() string {
	return fmt.Sprintf("vrt.Packet{type=%s len=%d}", p.PacketType(), p.Length())
}
