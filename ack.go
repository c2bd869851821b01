package vrt

// Acknowledge-packet warning/error occurrence fields.
//
// An Acknowledge packet's normal CIF0-3(+7) region (addressed exactly as
// in cif.go) doubles as the "warning occurrence" fields: a bit set there
// flags that the corresponding request field produced a warning. A second,
// structurally identical CIF0-3(+7) region immediately follows it holding
// the "error occurrence" fields, addressed by OR-ing 0x8 into cifNum
// ("cif_num | 0x8 = error occurrence"). Within either region a field's
// value is itself a bitmask: 0x0 means no sub-condition is flagged,
// 0x80000000 flags an unspecified/general condition, and any other bit
// flags a field-specific sub-condition.

const errorRegionBit uint8 = 0x8

func splitAckCIFNum(cifNum uint8) (base uint8, isError bool) {
	return cifNum &^ errorRegionBit, cifNum&errorRegionBit != 0
}

// errorRegionOffset returns the offset where the error-occurrence CIF0
// word begins, i.e. immediately after the warning region's field area.
func (p Packet) errorRegionOffset() int {
	return p.fieldAreaOffset() + p.warningRegionFieldAreaLength()
}

func (p Packet) warningRegionFieldAreaLength() int {
	off := p.fieldAreaOffset()
	end := off
	for _, k := range cifFieldOrder {
		if !p.fieldPresentInWord(k.cifNum, k.bit) {
			continue
		}
		var w int
		if isVariableWidth(k) {
			w = p.variableFieldWidth(k, end)
		} else {
			w = cifFieldWidths[k]
		}
		end += p.applyCIF7Multiplier(k, w)
	}
	return end - off
}

// AckFieldPresent reports whether the warning (cifNum without 0x8) or
// error (cifNum with 0x8 set) occurrence bit for (cifNum, bit) is set.
func (p Packet) AckFieldPresent(cifNum uint8, bit uint8) bool {
	base, isErr := splitAckCIFNum(cifNum)
	if !isErr {
		return p.FieldPresent(base, bit)
	}
	return p.errorFieldPresentInWord(base, bit)
}

func (p Packet) errorFieldPresentInWord(base uint8, bit uint8) bool {
	if !p.Ack() || !p.HasCIF(base) {
		return false
	}
	wordOff := p.errorRegionOffset() + int(p.cifWordIndex(base))*sizeCIFWord
	return getU32(p.buf.Bytes(), wordOff)&(1<<bit) != 0
}

// cifWordIndex returns the 0-based position of cifNum's word among the
// words actually present (CIF0 is always index 0).
func (p Packet) cifWordIndex(cifNum uint8) int {
	if cifNum == 0 {
		return 0
	}
	idx := 1
	for _, n := range []uint8{1, 2, 3} {
		if n == cifNum {
			return idx
		}
		if p.HasCIF(n) {
			idx++
		}
	}
	return idx // cifNum == 7
}

// AckFieldValue returns the warning/error occurrence bitmask stored for
// (cifNum, bit): 0 with [ErrNoCIF] if not present, 0x80000000 for an
// unspecified condition, or a field-specific sub-condition mask otherwise.
func (p Packet) AckFieldValue(cifNum uint8, bit uint8) (uint32, error) {
	base, isErr := splitAckCIFNum(cifNum)
	if !isErr {
		off, err := p.offset(base, bit)
		if err != nil {
			return 0, err
		}
		return getU32(p.buf.Bytes(), off), nil
	}
	if !p.errorFieldPresentInWord(base, bit) {
		return 0, ErrNoCIF
	}
	off := p.errorFieldOffset(base, bit)
	return getU32(p.buf.Bytes(), off), nil
}

func (p Packet) errorFieldOffset(base uint8, bit uint8) int {
	off := p.errorRegionOffset() + p.errorRegionWordsLength(base)
	target := cifFieldKey{base, bit}
	for _, k := range cifFieldOrder {
		if k == target {
			break
		}
		if p.errorFieldPresentInWord(k.cifNum, k.bit) {
			off += 4
		}
	}
	return off
}

func (p Packet) errorRegionWordsLength(base uint8) int {
	n := 1
	for _, c := range []uint8{1, 2, 3} {
		if p.HasCIF(c) {
			n++
		}
	}
	if p.HasCIF(7) {
		n++
	}
	return n * sizeCIFWord
}

// SetAckField sets or clears a warning/error occurrence bit and, when
// setting, its 32-bit value. Error-region fields are always 4 octets. The
// warning region is addressed with the request fields' own widths, so only
// fields whose table width is 4 octets can be set there; any other field
// returns [ErrOutOfRange].
func (p *Packet) SetAckField(cifNum uint8, bit uint8, value uint32) error {
	base, isErr := splitAckCIFNum(cifNum)
	present := value != 0
	if !isErr {
		if err := p.SetFieldPresent(base, bit, present, 4); err != nil {
			return err
		}
		if present {
			off, err := p.offset(base, bit)
			if err != nil {
				return err
			}
			putU32(p.buf.Bytes(), off, value)
		}
		return nil
	}
	return p.setErrorField(base, bit, present, value)
}

func (p *Packet) setErrorField(base uint8, bit uint8, present bool, value uint32) error {
	if !p.Ack() {
		return errLayout("error occurrence fields only apply to Acknowledge packets")
	}
	was := p.errorFieldPresentInWord(base, bit)
	if was == present {
		if present {
			putU32(p.buf.Bytes(), p.errorFieldOffset(base, bit), value)
		}
		return nil
	}
	off := p.errorFieldOffset(base, bit)
	if err := p.shiftRegion(off, 4, present); err != nil {
		return err
	}
	buf := p.buf.Bytes()
	wordOff := p.errorRegionOffset() + int(p.cifWordIndex(base))*sizeCIFWord
	w := getU32(buf, wordOff)
	if present {
		w |= 1 << bit
	} else {
		w &^= 1 << bit
	}
	putU32(buf, wordOff, w)
	if present {
		putU32(buf, p.errorFieldOffset(base, bit), value)
	}
	return nil
}
