package vrt

import "testing"

func TestSetIndicatorInstallsTrailer(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if p.HasTrailer() {
		t.Fatal("fresh Data packet should have no trailer")
	}
	if err := p.SetIndicator(IndicatorValidData, true); err != nil {
		t.Fatal(err)
	}
	if !p.HasTrailer() {
		t.Fatal("SetIndicator should install a trailer on first use")
	}
	state, enabled := p.Indicator(IndicatorValidData)
	if !enabled || !state {
		t.Fatalf("Indicator() = (%v, %v), want (true, true)", state, enabled)
	}
	if _, enabled := p.Indicator(IndicatorOverRange); enabled {
		t.Fatal("an indicator never set should report not enabled")
	}
}

func TestClearIndicatorDropsEmptyTrailer(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetIndicator(IndicatorOverRange, true); err != nil {
		t.Fatal(err)
	}
	if err := p.ClearIndicator(IndicatorOverRange); err != nil {
		t.Fatal(err)
	}
	if p.HasTrailer() {
		t.Fatal("clearing the only set indicator should drop the trailer entirely")
	}
}

func TestAssociatedPacketCount(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetAssociatedPacketCount(42, true); err != nil {
		t.Fatal(err)
	}
	count, enabled := p.AssociatedPacketCount()
	if !enabled || count != 42 {
		t.Fatalf("AssociatedPacketCount() = (%d, %v), want (42, true)", count, enabled)
	}
	if err := p.SetAssociatedPacketCount(0, false); err != nil {
		t.Fatal(err)
	}
	if p.HasTrailer() {
		t.Fatal("disabling the associated packet count, with no other indicators set, should drop the trailer")
	}
}

func TestDataLengthRoundTrip(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	// 16-bit scalar samples: 1000 samples -> 2000 octets.
	if err := p.SetDataLength(1000, 16); err != nil {
		t.Fatal(err)
	}
	if got := p.PayloadLength(); got != 2000 {
		t.Fatalf("PayloadLength() = %d, want 2000", got)
	}
	if got := p.DataLength(16, 1); got != 1000 {
		t.Fatalf("DataLength() = %d, want 1000", got)
	}
	// Reported as complex pairs, each sample is two 16-bit items.
	if got := p.DataLength(16, 2); got != 500 {
		t.Fatalf("DataLength() complex = %d, want 500", got)
	}
}

func TestDataLengthRoundsUpPayloadToWord(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	// 3 samples of 8 bits = 3 octets, rounds up to 4.
	if err := p.SetDataLength(3, 8); err != nil {
		t.Fatal(err)
	}
	if got := p.PayloadLength(); got != 4 {
		t.Fatalf("PayloadLength() = %d, want 4", got)
	}
}

func TestNextTimestampSampleCount(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSFMode(TSFSampleCount); err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSF(1000); err != nil {
		t.Fatal(err)
	}
	if err := p.SetDataLength(500, 16); err != nil {
		t.Fatal(err)
	}
	next, ok := p.NextTimestamp(0, 16)
	if !ok || next != 1500 {
		t.Fatalf("NextTimestamp() = (%d, %v), want (1500, true)", next, ok)
	}
}

func TestLostSamplesRealTime(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSFMode(TSFRealTime); err != nil {
		t.Fatal(err)
	}
	sampleRate := 1_000_000.0 // 1 Msps
	// 10 lost samples at 1 Msps is 10 microseconds = 10,000,000 picoseconds.
	const expected = 1_000_000_000_000
	if err := p.SetTSF(expected + 10_000_000); err != nil {
		t.Fatal(err)
	}
	if got := p.LostSamples(expected, sampleRate); got != 10 {
		t.Fatalf("LostSamples() = %d, want 10", got)
	}
}

func TestLostSamplesNoLossWhenNotLate(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSFMode(TSFRealTime); err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSF(1000); err != nil {
		t.Fatal(err)
	}
	if got := p.LostSamples(2000, 1_000_000); got != 0 {
		t.Fatalf("LostSamples() = %d, want 0 when actual TSF is not later than expected", got)
	}
}
