package vrl

import (
	"bytes"
	"testing"
)

// goldenFrame is a VRL frame carrying one minimal 4-byte stand-in packet
// (just a header word, declaring its own size as 1 word), with no CRC
// (VEND trailer). The packet iterator only reads this blob's own
// packet_size subfield, so it need not be a fully legal VRT packet.
var goldenFrame = []byte{
	0x56, 0x52, 0x4C, 0x50, // "VRLP"
	0x00, 0x00, 0x00, 0x03, // frame count 0, frame size 3 words
	0x10, 0x60, 0x00, 0x01, // the packet
	0x56, 0x45, 0x4E, 0x44, // "VEND"
}

func TestGoldenFrame(t *testing.T) {
	f, err := NewFrame(append([]byte(nil), goldenFrame...))
	if err != nil {
		t.Fatal(err)
	}
	if !f.ValidFAW() {
		t.Fatal("ValidFAW() = false")
	}
	if f.FrameCount() != 0 {
		t.Fatalf("FrameCount() = %d, want 0", f.FrameCount())
	}
	if f.FrameSizeWords() != 3 {
		t.Fatalf("FrameSizeWords() = %d, want 3", f.FrameSizeWords())
	}
	if f.HasCRC() {
		t.Fatal("HasCRC() = true, want false (VEND trailer)")
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	var packets [][]byte
	err = f.Packets(func(pkt []byte) error {
		packets = append(packets, append([]byte(nil), pkt...))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(packets) != 1 || !bytes.Equal(packets[0], []byte{0x10, 0x60, 0x00, 0x01}) {
		t.Fatalf("Packets() = %v", packets)
	}
}

func TestUpdateCRCRoundTrip(t *testing.T) {
	f, err := NewFrame(append([]byte(nil), goldenFrame...))
	if err != nil {
		t.Fatal(err)
	}
	f.UpdateCRC()
	if !f.HasCRC() {
		t.Fatal("HasCRC() = false after UpdateCRC")
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() after UpdateCRC = %v", err)
	}
	f.RawData()[8] ^= 0xFF // corrupt the packet
	if err := f.Validate(); err == nil {
		t.Fatal("Validate() should fail after corrupting a CRC-protected frame")
	}
}

func TestAppendGrowsFrame(t *testing.T) {
	buf := make([]byte, len(goldenFrame), len(goldenFrame)+64)
	copy(buf, goldenFrame)
	f, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	pkt := []byte{0x10, 0x61, 0x00, 0x01}
	if err := f.Append(pkt, false, 0); err != nil {
		t.Fatal(err)
	}
	if f.FrameSizeWords() != 4 {
		t.Fatalf("FrameSizeWords() = %d, want 4", f.FrameSizeWords())
	}
	var packets [][]byte
	f.Packets(func(p []byte) error {
		packets = append(packets, append([]byte(nil), p...))
		return nil
	})
	if len(packets) != 2 {
		t.Fatalf("Packets() returned %d packets, want 2", len(packets))
	}
}

func TestAppendFailsWithoutTruncation(t *testing.T) {
	buf := make([]byte, len(goldenFrame), len(goldenFrame)+64)
	copy(buf, goldenFrame)
	f, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	pkt := []byte{0x10, 0x61, 0x00, 0x01}
	if err := f.Append(pkt, false, 4); err == nil {
		t.Fatal("Append() should fail: exceeds maxFrameWords without truncation")
	}
}
