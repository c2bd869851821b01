package vrt

import "github.com/google/uuid"

// The Command packet family's Packet-Specific Prologue (PSP).
// Layout, immediately after the header (spec.md §3.1, §4.E):
//
//	0:4   Control/Acknowledge Settings (CtrlAckSettings)
//	4:8   Message ID
//	8:..  Controllee ID   (0, 4, or 16 octets, per CE/IE)
//	..:.. Controller ID   (0, 4, or 16 octets, per CR/IR)

// IdentifierFormat selects how a command packet's Controllee/Controller ID
// is encoded.
type IdentifierFormat uint8

const (
	IdentifierNone IdentifierFormat = iota
	Identifier32
	IdentifierUUID
)

// CtrlAckSettings is the 32-bit Control/Acknowledge Settings word. Bit
// assignments follow spec.md §4.E's ordered list of named fields, packed
// from bit 31 down with the two named "reserved" slots kept as literal
// padding and the 10 unnamed low bits reserved (see DESIGN.md: the exact
// bit positions are an implementation decision, spec.md does not fix them).
type CtrlAckSettings uint32

const (
	camCE uint32 = 1 << 31 // Controllee ID enabled (present)
	camIE uint32 = 1 << 30 // Controllee ID format: 0 = 32-bit, 1 = UUID
	camCR uint32 = 1 << 29 // Controller ID enabled (present)
	camIR uint32 = 1 << 28 // Controller ID format: 0 = 32-bit, 1 = UUID
	camP  uint32 = 1 << 27 // Partial action permitted
	camW  uint32 = 1 << 26 // Warnings requested/present
	camE  uint32 = 1 << 25 // Errors requested/present
	camA1 uint32 = 1 << 24
	camA0 uint32 = 1 << 23
	camNK uint32 = 1 << 22 // Not-acknowledge only
	camV  uint32 = 1 << 20 // Req/Ack: Validation
	camX  uint32 = 1 << 19 // Req/Ack: Execution
	camS  uint32 = 1 << 18 // Req/Ack: State/query
	camWA uint32 = 1 << 17 // Ack carries warnings
	camEA uint32 = 1 << 16 // Ack carries errors
	camT2 uint32 = 1 << 14
	camT1 uint32 = 1 << 13
	camT0 uint32 = 1 << 12
	camPA uint32 = 1 << 11 // Partial action occurred
	camSX uint32 = 1 << 10
)

func (c CtrlAckSettings) has(mask uint32) bool { return uint32(c)&mask != 0 }

func (c CtrlAckSettings) with(mask uint32, v bool) CtrlAckSettings {
	if v {
		return CtrlAckSettings(uint32(c) | mask)
	}
	return CtrlAckSettings(uint32(c) &^ mask)
}

func (c CtrlAckSettings) CE() bool       { return c.has(camCE) }
func (c CtrlAckSettings) IE() bool       { return c.has(camIE) }
func (c CtrlAckSettings) CR() bool       { return c.has(camCR) }
func (c CtrlAckSettings) IR() bool       { return c.has(camIR) }
func (c CtrlAckSettings) Partial() bool  { return c.has(camP) }
func (c CtrlAckSettings) Warnings() bool { return c.has(camW) }
func (c CtrlAckSettings) Errors() bool   { return c.has(camE) }
func (c CtrlAckSettings) A1() bool       { return c.has(camA1) }
func (c CtrlAckSettings) A0() bool       { return c.has(camA0) }
func (c CtrlAckSettings) NotAck() bool   { return c.has(camNK) }
func (c CtrlAckSettings) ReqV() bool     { return c.has(camV) }
func (c CtrlAckSettings) ReqX() bool     { return c.has(camX) }
func (c CtrlAckSettings) ReqS() bool     { return c.has(camS) }
func (c CtrlAckSettings) AckWarnings() bool    { return c.has(camWA) }
func (c CtrlAckSettings) AckErrors() bool      { return c.has(camEA) }
func (c CtrlAckSettings) T2() bool             { return c.has(camT2) }
func (c CtrlAckSettings) T1() bool             { return c.has(camT1) }
func (c CtrlAckSettings) T0() bool             { return c.has(camT0) }
func (c CtrlAckSettings) PartialOccurred() bool { return c.has(camPA) }
func (c CtrlAckSettings) SX() bool             { return c.has(camSX) }

func (c CtrlAckSettings) controlleeIDFormat() IdentifierFormat {
	if !c.CE() {
		return IdentifierNone
	}
	if c.IE() {
		return IdentifierUUID
	}
	return Identifier32
}

func (c CtrlAckSettings) controllerIDFormat() IdentifierFormat {
	if !c.CR() {
		return IdentifierNone
	}
	if c.IR() {
		return IdentifierUUID
	}
	return Identifier32
}

func idFormatLen(f IdentifierFormat) int {
	switch f {
	case Identifier32:
		return 4
	case IdentifierUUID:
		return 16
	default:
		return 0
	}
}

func (p Packet) ctrlAckSettings() CtrlAckSettings {
	if !p.PacketType().IsCommand() {
		return 0
	}
	return CtrlAckSettings(getU32(p.buf.Bytes(), p.pspOffset()))
}

func (p *Packet) setCtrlAckSettings(c CtrlAckSettings) {
	putU32(p.buf.Bytes(), p.pspOffset(), uint32(c))
}

// CtrlAckSettings returns the command packet's Control/Acknowledge
// Settings word, or 0 for any other packet type.
func (p Packet) CtrlAckSettings() CtrlAckSettings { return p.ctrlAckSettings() }

// pspLength returns the total size in octets of the Packet-Specific
// Prologue: 0 for non-command packet types.
func (p Packet) pspLength() int {
	if !p.PacketType().IsCommand() {
		return 0
	}
	cam := p.ctrlAckSettings()
	return sizePSPBase + idFormatLen(cam.controlleeIDFormat()) + idFormatLen(cam.controllerIDFormat())
}

func (p Packet) controlleeIDOffset() int { return p.pspOffset() + sizePSPBase }

func (p Packet) controllerIDOffset() int {
	cam := p.ctrlAckSettings()
	return p.controlleeIDOffset() + idFormatLen(cam.controlleeIDFormat())
}

// MessageID returns the command packet's 32-bit message ID.
func (p Packet) MessageID() uint32 {
	if !p.PacketType().IsCommand() {
		return 0
	}
	return getU32(p.buf.Bytes(), p.pspOffset()+4)
}

func (p *Packet) SetMessageID(v uint32) error {
	if !p.PacketType().IsCommand() {
		return errLayout("message ID only applies to Command packet types")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	putU32(p.buf.Bytes(), p.pspOffset()+4, v)
	return nil
}

// Ack reports whether this command packet is an Acknowledge (as opposed to
// a Control/request) packet.
func (p Packet) Ack() bool { return p.ackBit() }

// IsQueryAcknowledge reports whether this is an Acknowledge packet
// responding to a state query (ReqS set) rather than a validate/execute
// request.
func (p Packet) IsQueryAcknowledge() bool {
	return p.Ack() && p.ctrlAckSettings().ReqS()
}

// SetAck flips the command family's Control/Acknowledge discriminator bit.
// Turning it on appends the error-occurrence CIF words (one per CIF word
// present in the warning region) after the warning region's field area;
// turning it off removes the error region.
func (p *Packet) SetAck(v bool) error {
	if !p.PacketType().IsCommand() {
		return errLayout("ack bit only applies to Command packet types")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	if p.ackBit() == v {
		return nil
	}
	off := p.errorRegionOffset()
	if v {
		if err := p.shiftRegion(off, p.errorRegionWordsLength(0), true); err != nil {
			return err
		}
	} else if n := p.Length() - off; n > 0 {
		if err := p.shiftRegion(off, n, false); err != nil {
			return err
		}
	}
	p.setAckBit(v)
	return nil
}

// ControlleeID returns the controllee identifier's format and, when
// present, its raw value octets: 4 for Identifier32, 16 for IdentifierUUID.
// Use [Packet.ControlleeUUID] for a decoded [uuid.UUID] in the latter case.
func (p Packet) ControlleeID() (IdentifierFormat, []byte) {
	return p.identifier(p.ctrlAckSettings().controlleeIDFormat(), p.controlleeIDOffset())
}

func (p Packet) ControllerID() (IdentifierFormat, []byte) {
	return p.identifier(p.ctrlAckSettings().controllerIDFormat(), p.controllerIDOffset())
}

func (p Packet) identifier(f IdentifierFormat, off int) (IdentifierFormat, []byte) {
	n := idFormatLen(f)
	if n == 0 {
		return IdentifierNone, nil
	}
	out := make([]byte, n)
	copy(out, p.buf.Bytes()[off:off+n])
	return f, out
}

// ControlleeUUID returns the controllee ID decoded as a [uuid.UUID], and
// false if the controllee ID is absent or Identifier32-formatted.
func (p Packet) ControlleeUUID() (uuid.UUID, bool) {
	f, raw := p.ControlleeID()
	if f != IdentifierUUID {
		return uuid.UUID{}, false
	}
	return getUUID(raw, 0), true
}

// ControllerUUID is the controller-ID analogue of [Packet.ControlleeUUID].
func (p Packet) ControllerUUID() (uuid.UUID, bool) {
	f, raw := p.ControllerID()
	if f != IdentifierUUID {
		return uuid.UUID{}, false
	}
	return getUUID(raw, 0), true
}

// SetControlleeUUID sets the controllee ID to v, switching its format to
// IdentifierUUID if it wasn't already.
func (p *Packet) SetControlleeUUID(v uuid.UUID) error {
	var buf [16]byte
	putUUID(buf[:], 0, v)
	return p.SetControlleeID(IdentifierUUID, buf[:])
}

// SetControllerUUID is the controller-ID analogue of [Packet.SetControlleeUUID].
func (p *Packet) SetControllerUUID(v uuid.UUID) error {
	var buf [16]byte
	putUUID(buf[:], 0, v)
	return p.SetControllerID(IdentifierUUID, buf[:])
}

// SetControlleeID changes the controllee ID's encoding and value,
// shifting the PSP's remaining octets (Controller ID, then payload) as
// needed. value must have length matching f's width (4 or 16 octets), or
// be nil/empty for [IdentifierNone].
func (p *Packet) SetControlleeID(f IdentifierFormat, value []byte) error {
	return p.setIdentifier(&camCeSlot, f, value)
}

// SetControllerID is the controller-ID analogue of [Packet.SetControlleeID].
func (p *Packet) SetControllerID(f IdentifierFormat, value []byte) error {
	return p.setIdentifier(&camCrSlot, f, value)
}

// idSlot abstracts over the controllee/controller ID's pair of CAM bits so
// setIdentifier can be shared between them.
type idSlot struct {
	enableMask uint32
	formatMask uint32
	offset     func(p *Packet) int
}

var camCeSlot = idSlot{camCE, camIE, (*Packet).controlleeIDOffset}
var camCrSlot = idSlot{camCR, camIR, (*Packet).controllerIDOffset}

func (s *idSlot) offsetOf(p *Packet) int { return s.offset(p) }

func (p *Packet) setIdentifier(slot *idSlot, f IdentifierFormat, value []byte) error {
	if !p.PacketType().IsCommand() {
		return errLayout("identifier fields only apply to Command packet types")
	}
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	want := idFormatLen(f)
	if want != 0 && len(value) != want {
		return ErrOutOfRange
	}
	cam := p.ctrlAckSettings()
	oldLen := idFormatLen(pickFormat(cam, slot))
	off := slot.offsetOf(p)
	if want != oldLen {
		if err := p.shiftRegion(off, abs(want-oldLen), want > oldLen); err != nil {
			return err
		}
	}
	cam = cam.with(slot.enableMask, f != IdentifierNone).with(slot.formatMask, f == IdentifierUUID)
	p.setCtrlAckSettings(cam)
	if want > 0 {
		copy(p.buf.Bytes()[off:off+want], value)
	}
	return nil
}

func pickFormat(cam CtrlAckSettings, slot *idSlot) IdentifierFormat {
	if slot.enableMask == camCE {
		return cam.controlleeIDFormat()
	}
	return cam.controllerIDFormat()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
