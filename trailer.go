package vrt

// The Data packet trailer. A 32-bit word, present only when
// [Packet.HasTrailer] is set:
//
//	bits[31:20]  12 indicator enable bits, MSB = index 0
//	bits[19:8]   12 indicator state bits, MSB = index 0 (paired with enables)
//	bit[7]       Associated Context Packet Count enable
//	bits[6:0]    Associated Context Packet Count value

// TrailerIndicator names the 12 state/event indicator pairs: the first 8
// are standard, the last 4 are user-defined (spec.md §4.H).
type TrailerIndicator uint8

const (
	IndicatorCalibratedTime TrailerIndicator = iota
	IndicatorValidData
	IndicatorReferenceLock
	IndicatorAGCMGC
	IndicatorDetectedSignal
	IndicatorSpectralInversion
	IndicatorOverRange
	IndicatorSampleLoss
	IndicatorUser0
	IndicatorUser1
	IndicatorUser2
	IndicatorUser3
)

func (p Packet) trailerOffset() int {
	if !p.HasTrailer() {
		return -1
	}
	return len(p.buf.Bytes()) - sizeTrailer
}

func (p Packet) trailerWord() uint32 {
	off := p.trailerOffset()
	if off < 0 {
		return 0
	}
	return getU32(p.buf.Bytes(), off)
}

func (p *Packet) setTrailerWord(w uint32) {
	off := p.trailerOffset()
	if off < 0 {
		return
	}
	putU32(p.buf.Bytes(), off, w)
}

// IndicatorEnabled reports whether i's enable bit is set.
func (p Packet) IndicatorEnabled(i TrailerIndicator) bool {
	return p.trailerWord()&(1<<(31-uint(i)))  != 0
}

// Indicator returns i's state bit and true if enabled, or (false, false)
// if the indicator is not enabled (an unenabled indicator has no
// meaningful state, per spec.md §4.H).
func (p Packet) Indicator(i TrailerIndicator) (state bool, enabled bool) {
	enabled = p.IndicatorEnabled(i)
	if !enabled {
		return false, false
	}
	state = p.trailerWord()&(1<<(19-uint(i))) != 0
	return state, true
}

// SetIndicator enables i and sets its state. Enabling the trailer's first
// indicator automatically installs a trailer if one is not already
// present; clearing the last enabled indicator, user bit, and the
// associated-packet-count enable together drops the trailer entirely
// (spec.md §4.H "trailer auto-drop").
func (p *Packet) SetIndicator(i TrailerIndicator, state bool) error {
	if !p.HasTrailer() {
		if err := p.SetHasTrailer(true); err != nil {
			return err
		}
	}
	w := p.trailerWord()
	w |= 1 << (31 - uint(i))
	if state {
		w |= 1 << (19 - uint(i))
	} else {
		w &^= 1 << (19 - uint(i))
	}
	p.setTrailerWord(w)
	return nil
}

// ClearIndicator disables i's enable bit (its state bit is ignored once
// disabled). If this was the trailer's last nonzero bit, the trailer is
// removed.
func (p *Packet) ClearIndicator(i TrailerIndicator) error {
	if !p.HasTrailer() {
		return nil
	}
	w := p.trailerWord()
	w &^= 1 << (31 - uint(i))
	w &^= 1 << (19 - uint(i))
	if w == 0 {
		return p.SetHasTrailer(false)
	}
	p.setTrailerWord(w)
	return nil
}

// AssociatedPacketCount returns the trailer's associated context packet
// count and true, or (0, false) if not enabled.
func (p Packet) AssociatedPacketCount() (uint8, bool) {
	w := p.trailerWord()
	if w&0x80 == 0 {
		return 0, false
	}
	return uint8(w & 0x7F), true
}

// SetAssociatedPacketCount sets the count (0-127) and its enable bit, or
// clears the enable bit when enabled is false. If this leaves the
// trailer entirely zero, the trailer is removed.
func (p *Packet) SetAssociatedPacketCount(count uint8, enabled bool) error {
	if !p.HasTrailer() {
		if !enabled {
			return nil
		}
		if err := p.SetHasTrailer(true); err != nil {
			return err
		}
	}
	w := p.trailerWord()
	w &^= 0xFF
	if enabled {
		w |= 0x80 | uint32(count&0x7F)
	}
	if w == 0 {
		return p.SetHasTrailer(false)
	}
	p.setTrailerWord(w)
	return nil
}

// DataLength returns the number of payload samples implied by the current
// payload length and format: payload octets * 8 divided by the format's
// per-item packing width, then by itemsPerSample (2 to report complex
// pairs as single samples, 1 to report each item individually; spec.md
// §4.H "pairs if complex and scalar = false"). Any remainder represents
// padding bits at the end of the final word and is discarded, rather than
// stored in a dedicated field — see DESIGN.md for why this implementation
// computes padding arithmetically instead of storing an explicit pad-bit
// count.
func (p Packet) DataLength(itemPackingBits int, itemsPerSample int) int {
	if itemPackingBits <= 0 || itemsPerSample <= 0 {
		return 0
	}
	totalBits := p.PayloadLength() * 8
	return totalBits / itemPackingBits / itemsPerSample
}

// SetDataLength resizes the payload to hold exactly n items of the given
// packing width, rounding the resulting octet length up to a multiple of
// 4 (spec.md §4.H).
func (p *Packet) SetDataLength(n int, itemPackingBits int) error {
	if n < 0 || itemPackingBits <= 0 {
		return ErrOutOfRange
	}
	totalBits := n * itemPackingBits
	octets := (totalBits + 7) / 8
	octets = (octets + 3) &^ 3
	return p.SetPayloadLength(octets)
}

// NextTimestamp returns the TSF value one payload's worth of samples
// after the packet's current TSF, assuming sampleRate samples/second and
// a payload holding DataLength(format) items (spec.md §4.H). Only
// meaningful when TSFMode is RealTime (picoseconds) or SampleCount.
func (p Packet) NextTimestamp(sampleRate float64, itemPackingBits int) (uint64, bool) {
	tsf, ok := p.TSF()
	if !ok {
		return 0, false
	}
	n := p.DataLength(itemPackingBits, 1)
	switch p.TSFMode() {
	case TSFSampleCount:
		return tsf + uint64(n), true
	case TSFRealTime:
		if sampleRate <= 0 {
			return tsf, true
		}
		picosPerSample := 1e12 / sampleRate
		return tsf + uint64(float64(n)*picosPerSample), true
	default:
		return tsf, true
	}
}

// LostSamples returns the number of samples lost between an expected TSF
// (computed e.g. via [Packet.NextTimestamp] on the prior packet) and this
// packet's actual TSF, for a RealTime TSF mode expressed in picoseconds.
// The conversion splits the picosecond delta into whole seconds and a
// sub-second remainder, rounding the remainder's sample count to the
// nearest whole sample (spec.md §4.H).
func (p Packet) LostSamples(expectedTSF uint64, sampleRate float64) int64 {
	actual, ok := p.TSF()
	if !ok || sampleRate <= 0 {
		return 0
	}
	if actual <= expectedTSF {
		return 0
	}
	deltaPicos := actual - expectedTSF
	seconds := deltaPicos / 1_000_000_000_000
	remainderPicos := deltaPicos % 1_000_000_000_000
	samplesFromSeconds := float64(seconds) * sampleRate
	samplesFromRemainder := float64(remainderPicos) / 1e12 * sampleRate
	// Round to the nearest whole sample, breaking exact halves up.
	return int64(samplesFromSeconds + samplesFromRemainder + 0.5)
}
