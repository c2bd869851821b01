package vrt

import (
	"bytes"
	"testing"
)

func TestNewPacketMinimalUnidentifiedData(t *testing.T) {
	p, err := NewPacket(PacketTypeUnidentifiedData)
	if err != nil {
		t.Fatal(err)
	}
	if p.Length() != 4 {
		t.Fatalf("Length() = %d, want 4", p.Length())
	}
	want := []byte{0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(p.RawData(), want) {
		t.Fatalf("RawData() = % x, want % x", p.RawData(), want)
	}
	if p.HasStreamID() {
		t.Fatal("UnidentifiedData packet must not carry a stream ID")
	}
}

func TestNewPacketDataHasStreamID(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasStreamID() {
		t.Fatal("Data packet must carry a stream ID")
	}
	if p.Length() != 8 {
		t.Fatalf("Length() = %d, want 8", p.Length())
	}
	if p.HeaderLength() != 8 {
		t.Fatalf("HeaderLength() = %d, want 8", p.HeaderLength())
	}
}

func TestNewPacketContextAlwaysHasClassID(t *testing.T) {
	p, err := NewPacket(PacketTypeContext)
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasClassID() {
		t.Fatal("Context packet must carry a class ID")
	}
	if err := p.SetHasClassID(false); err == nil {
		t.Fatal("SetHasClassID(false) should fail on a Context packet")
	}
}

func TestPacketRoundTrip(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetStreamID(0xDEADBEEF); err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSIMode(TSIUTC); err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSI(12345); err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSFMode(TSFRealTime); err != nil {
		t.Fatal(err)
	}
	if err := p.SetTSF(987654321); err != nil {
		t.Fatal(err)
	}
	if err := p.SetHasClassID(true); err != nil {
		t.Fatal(err)
	}
	if err := p.SetClassID(ClassID{OUI: 0x00ABCDEF, InformationCode: 0x1234, PacketCode: 0x5678}); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPayloadLength(16); err != nil {
		t.Fatal(err)
	}
	copy(p.Payload(), []byte("0123456789abcdef"))

	raw := p.ToBytes()
	p2, err := ParsePacket(raw)
	if err != nil {
		t.Fatal(err)
	}
	if p2.StreamID() != 0xDEADBEEF {
		t.Fatalf("StreamID() = %#x", p2.StreamID())
	}
	tsi, ok := p2.TSI()
	if !ok || tsi != 12345 {
		t.Fatalf("TSI() = (%d, %v), want (12345, true)", tsi, ok)
	}
	tsf, ok := p2.TSF()
	if !ok || tsf != 987654321 {
		t.Fatalf("TSF() = (%d, %v), want (987654321, true)", tsf, ok)
	}
	cid, ok := p2.GetClassID()
	if !ok || cid.OUI != 0x00ABCDEF || cid.InformationCode != 0x1234 || cid.PacketCode != 0x5678 {
		t.Fatalf("GetClassID() = %+v, %v", cid, ok)
	}
	if !bytes.Equal(p2.Payload(), []byte("0123456789abcdef")) {
		t.Fatalf("Payload() = %q", p2.Payload())
	}
	if p2.Length() != int(p2.PacketSizeWords())*4 {
		t.Fatal("packet-size header field inconsistent with buffer length")
	}
}

// TestHeaderLengthLaw is spec.md §8's "Header/prologue length law":
// header_length + payload_length + trailer_length == packet_length.
func TestHeaderLengthLaw(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetHasTrailer(true); err != nil {
		t.Fatal(err)
	}
	if err := p.SetPayloadLength(24); err != nil {
		t.Fatal(err)
	}
	if got := p.HeaderLength() + p.PayloadLength() + p.TrailerLength(); got != p.Length() {
		t.Fatalf("header+payload+trailer = %d, want %d", got, p.Length())
	}
}

func TestReadOnlyPacketRejectsMutators(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x00, 0x01}
	p, err := NewPacketView(raw)
	if err != nil {
		t.Fatal(err)
	}
	if !p.ReadOnly() {
		t.Fatal("NewPacketView should produce a read-only packet")
	}
	if err := p.SetPacketType(PacketTypeData); err != ErrReadOnly {
		t.Fatalf("SetPacketType() = %v, want ErrReadOnly", err)
	}
	if err := p.SetPayloadLength(4); err != ErrReadOnly {
		t.Fatalf("SetPayloadLength() = %v, want ErrReadOnly", err)
	}
}

func TestSetPacketTypeShiftsStreamID(t *testing.T) {
	p, err := NewPacket(PacketTypeUnidentifiedData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetPacketType(PacketTypeData); err != nil {
		t.Fatal(err)
	}
	if p.Length() != 8 {
		t.Fatalf("Length() after promoting to Data = %d, want 8", p.Length())
	}
	if err := p.SetPacketType(PacketTypeUnidentifiedData); err != nil {
		t.Fatal(err)
	}
	if p.Length() != 4 {
		t.Fatalf("Length() after demoting to UnidentifiedData = %d, want 4", p.Length())
	}
}

func TestValidateRejectsBadLength(t *testing.T) {
	_, err := ParsePacket([]byte{0x00, 0x00, 0x00, 0x02}) // claims 2 words, only 1 present
	if err == nil {
		t.Fatal("ParsePacket should reject a buffer shorter than its declared packet size")
	}
}

func TestSetPayloadLengthTruncatesAndGrows(t *testing.T) {
	p, err := NewPacket(PacketTypeUnidentifiedData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetPayloadLength(12); err != nil {
		t.Fatal(err)
	}
	if p.PayloadLength() != 12 {
		t.Fatalf("PayloadLength() = %d, want 12", p.PayloadLength())
	}
	if err := p.SetPayloadLength(4); err != nil {
		t.Fatal(err)
	}
	if p.PayloadLength() != 4 {
		t.Fatalf("PayloadLength() = %d, want 4", p.PayloadLength())
	}
}
