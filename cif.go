package vrt

// Context/Command Indicator Field addressing. Context and Command packets
// carry a variable set of CIF words (CIF0 always present, CIF1/CIF2/CIF3/
// CIF7 each optionally present per an enable bit in CIF0's low byte)
// immediately followed by a field-value area holding one
// fixed-or-variable-width slot per field bit that is set in its CIF word.

// cifEnableMask returns the CIF0 bit that enables cifNum's word (1, 2, 3,
// or 7), or 0 for CIF0 itself (always present) and for any other number.
func cifEnableMask(cifNum uint8) uint32 {
	switch cifNum {
	case 1:
		return 1 << 1
	case 2:
		return 1 << 2
	case 3:
		return 1 << 3
	case 7:
		return 1 << 7
	default:
		return 0
	}
}

// cif0Offset returns the offset of the CIF0 word, i.e. the start of the
// CIF region, or -1 if this packet type carries no CIF region at all.
func (p Packet) cif0Offset() int {
	if !p.PacketType().IsContext() && !p.PacketType().IsCommand() {
		return -1
	}
	return p.bodyOffset()
}

func (p Packet) cif0() uint32 {
	off := p.cif0Offset()
	if off < 0 {
		return 0
	}
	return getU32(p.buf.Bytes(), off)
}

// HasCIF reports whether cifNum's word is present in this packet. CIF0 is
// present whenever the packet carries a CIF region at all.
func (p Packet) HasCIF(cifNum uint8) bool {
	if p.cif0Offset() < 0 {
		return false
	}
	if cifNum == 0 {
		return true
	}
	return p.cif0()&cifEnableMask(cifNum) != 0
}

// cifWordOffset returns the offset of cifNum's own word (CIF0..CIF3, or
// CIF7), in the fixed order CIF0, CIF1, CIF2, CIF3, CIF7. It assumes
// cifNum is present; callers must check [Packet.HasCIF] first.
func (p Packet) cifWordOffset(cifNum uint8) int {
	off := p.cif0Offset()
	if cifNum == 0 {
		return off
	}
	off += sizeCIFWord
	for _, n := range []uint8{1, 2, 3} {
		if n == cifNum {
			return off
		}
		if p.HasCIF(n) {
			off += sizeCIFWord
		}
	}
	return off // cifNum == 7
}

// fieldAreaOffset returns the offset where the field-value area begins:
// immediately after the last present CIF word.
func (p Packet) fieldAreaOffset() int {
	off := p.cif0Offset()
	if off < 0 {
		return -1
	}
	off += sizeCIFWord // CIF0
	for _, n := range []uint8{1, 2, 3, 7} {
		if p.HasCIF(n) {
			off += sizeCIFWord
		}
	}
	return off
}

func (p Packet) cifWord(cifNum uint8) uint32 {
	if !p.HasCIF(cifNum) {
		return 0
	}
	return getU32(p.buf.Bytes(), p.cifWordOffset(cifNum))
}

func (p Packet) fieldPresentInWord(cifNum uint8, bit uint8) bool {
	return p.cifWord(cifNum)&(1<<bit) != 0
}

// FieldOffset returns the byte offset of (cifNum, bit)'s value within the
// packet, per the algorithm documented on [Packet.offset].
func (p Packet) FieldOffset(cifNum uint8, bit uint8) (int, error) {
	return p.offset(cifNum, bit)
}

// FieldPresent reports whether the field named by (cifNum, bit) is marked
// present in its CIF word.
func (p Packet) FieldPresent(cifNum uint8, bit uint8) bool {
	if !p.HasCIF(cifNum) {
		return false
	}
	return p.fieldPresentInWord(cifNum, bit)
}

// FieldWidth returns the width in octets that (cifNum, bit) occupies in
// the field area of this specific packet (after applying any CIF7
// multiplier and, for variable-width fields, inspecting the field's own
// content). It returns 0 if the field is not present.
func (p Packet) FieldWidth(cifNum uint8, bit uint8) int {
	k := cifFieldKey{cifNum, bit}
	if !p.FieldPresent(cifNum, bit) {
		return 0
	}
	var base int
	if isVariableWidth(k) {
		base = p.variableFieldWidth(k, p.offsetUnchecked(cifNum, bit))
	} else {
		base = cifFieldWidths[k]
	}
	return p.applyCIF7Multiplier(k, base)
}

// offset implements spec.md §4.F's offset algorithm:
//  1. Confirm cifNum's word is present (else ErrNoCIF).
//  2. Confirm (cifNum, bit) names a known field (else ErrCIF7BadFieldSrc-
//     adjacent ErrInvalidLayout).
//  3. Confirm the field's presence bit is actually set (else ErrNoCIF).
//  4. Start at the field area and walk the canonical field order, adding
//     each preceding present field's effective width.
//  5. Return the accumulated offset.
func (p Packet) offset(cifNum uint8, bit uint8) (int, error) {
	if !p.HasCIF(cifNum) {
		return -1, ErrNoCIF
	}
	k := cifFieldKey{cifNum, bit}
	if _, ok := cifFieldWidths[k]; !ok {
		return -1, errLayout("unknown CIF field")
	}
	if !p.fieldPresentInWord(cifNum, bit) {
		return -1, ErrNoCIF
	}
	return p.offsetUnchecked(cifNum, bit), nil
}

func (p Packet) offsetUnchecked(cifNum uint8, bit uint8) int {
	off := p.fieldAreaOffset()
	target := cifFieldKey{cifNum, bit}
	for _, k := range cifFieldOrder {
		if k == target {
			break
		}
		if !p.fieldPresentInWord(k.cifNum, k.bit) {
			continue
		}
		var w int
		if isVariableWidth(k) {
			w = p.variableFieldWidth(k, off)
		} else {
			w = cifFieldWidths[k]
		}
		off += p.applyCIF7Multiplier(k, w)
	}
	return off
}

// SetFieldPresent inserts or removes newWidth octets for (cifNum, bit) in
// the field area and flips its presence bit, per spec.md §4.F's
// insertion/removal algorithm. newWidth is ignored when clearing a field.
// When setting a fixed-width field it must be 0 or equal the table width
// (mismatches are almost certainly a bug, not a format extension), before
// any CIF7 multiplier is applied; 0 selects the table width.
func (p *Packet) SetFieldPresent(cifNum uint8, bit uint8, present bool, newWidth int) error {
	if p.buf.ReadOnly() {
		return ErrReadOnly
	}
	k := cifFieldKey{cifNum, bit}
	w, known := cifFieldWidths[k]
	if !known {
		return errLayout("unknown CIF field")
	}
	if !p.HasCIF(cifNum) {
		if err := p.setCIFWordPresent(cifNum, true); err != nil {
			return err
		}
	}
	wasPresent := p.fieldPresentInWord(cifNum, bit)
	if wasPresent == present {
		return nil
	}
	off := p.offsetUnchecked(cifNum, bit)
	var width int
	if present {
		if w != 0 && newWidth != 0 && newWidth != w {
			return ErrOutOfRange
		}
		width = newWidth
		if width == 0 {
			width = w
		}
		width = p.applyCIF7Multiplier(k, width)
	} else {
		width = p.FieldWidth(cifNum, bit)
	}
	if err := p.shiftRegion(off, width, present); err != nil {
		return err
	}
	buf := p.buf.Bytes()
	wordOff := p.cifWordOffset(cifNum)
	word := getU32(buf, wordOff)
	if present {
		word |= 1 << bit
	} else {
		word &^= 1 << bit
	}
	putU32(buf, wordOff, word)
	return nil
}

// setCIFWordPresent inserts or removes an entire CIF1/2/3/7 word (CIF0
// always exists on a CIF-bearing packet and cannot be removed this way).
func (p *Packet) setCIFWordPresent(cifNum uint8, present bool) error {
	if cifNum == 0 {
		return nil
	}
	if p.HasCIF(cifNum) == present {
		return nil
	}
	off := p.cif0Offset() + sizeCIFWord
	for _, n := range []uint8{1, 2, 3, 7} {
		if n == cifNum {
			break
		}
		if p.HasCIF(n) {
			off += sizeCIFWord
		}
	}
	if err := p.shiftRegion(off, sizeCIFWord, present); err != nil {
		return err
	}
	buf := p.buf.Bytes()
	cifOff := p.cif0Offset()
	w := getU32(buf, cifOff)
	if present {
		w |= cifEnableMask(cifNum)
	} else {
		w &^= cifEnableMask(cifNum)
	}
	putU32(buf, cifOff, w)
	return nil
}

// variableFieldWidth determines the width, in octets, of a variable-width
// field whose content begins at off.
func (p Packet) variableFieldWidth(k cifFieldKey, off int) int {
	buf := p.buf.Bytes()
	switch k {
	case cifFieldKey{0, CIF0GPSASCII}:
		if off+4 > len(buf) {
			return 4
		}
		n := int(getU32(buf, off+4)) // 32-bit-word count follows the OUI word
		total := 8 + 4*n
		return (total + 3) &^ 3 // padded to a 4-octet boundary
	case cifFieldKey{1, CIF1PointingVector3DStruct},
		cifFieldKey{1, CIF1CIFSArray},
		cifFieldKey{1, CIF1SectorScanStep},
		cifFieldKey{1, CIF1IndexList}:
		return arrayOfRecordsWidth(buf, off)
	case cifFieldKey{0, CIF0ContextAssociationLists}:
		if off+8 > len(buf) {
			return 8
		}
		header := getU64(buf, off)
		sourceCount := int(header>>48) & 0x1FF
		systemCount := int(header>>40) & 0x1FF
		vectorCount := int(getU32(buf, off+4)) & 0xFFFF
		asynchronousChannelCount := int(getU32(buf, off+4)>>16) & 0xFFFF
		tagPresent := header&(1<<31) != 0
		n := 8 + 4*(sourceCount+systemCount+vectorCount+asynchronousChannelCount)
		if tagPresent {
			n += 4 * asynchronousChannelCount
		}
		return n
	default:
		return 0
	}
}

// arrayOfRecordsWidth reads a CIF1 array-of-records field's leading
// record-count word at off and returns its total width, 4*N octets
// (spec.md §3.2).
func arrayOfRecordsWidth(buf []byte, off int) int {
	if off+4 > len(buf) {
		return 4
	}
	n := int(getU32(buf, off))
	return 4 * n
}

// validateCIFLayout runs strict-mode consistency checks: every CIF word
// that is enabled is actually addressable within the buffer, and the
// field area does not run past the end of the payload.
func (p Packet) validateCIFLayout(v *Validator) {
	if p.cif0Offset() < 0 {
		return
	}
	off := p.fieldAreaOffset()
	payloadEnd := len(p.buf.Bytes()) - p.TrailerLength()
	for _, k := range cifFieldOrder {
		if !p.fieldPresentInWord(k.cifNum, k.bit) {
			continue
		}
		var w int
		if isVariableWidth(k) {
			w = p.variableFieldWidth(k, off)
		} else {
			w = cifFieldWidths[k]
		}
		w = p.applyCIF7Multiplier(k, w)
		off += w
	}
	if off > payloadEnd {
		v.AddError(errLayout("CIF field area extends past the payload"))
	}
}
