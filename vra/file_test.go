package vra

import "testing"

var goldenPacket = []byte{0x10, 0x60, 0x00, 0x01}

func TestCreateAppendValidate(t *testing.T) {
	b := NewMemBackend()
	f, err := Create(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Append(goldenPacket); err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	n, err := f.PacketCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("PacketCount() = %d, want 1", n)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	b := NewMemBackend()
	f, err := Create(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Append(goldenPacket); err != nil {
		t.Fatal(err)
	}
	f2, err := Open(b)
	if err != nil {
		t.Fatal(err)
	}
	var packets [][]byte
	err = f2.Packets(func(p []byte) error {
		packets = append(packets, append([]byte(nil), p...))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1", len(packets))
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	b := NewMemBackend()
	f, err := Create(b)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Append(goldenPacket); err != nil {
		t.Fatal(err)
	}
	b.Bytes()[headerLength] ^= 0xFF
	if err := f.Validate(); err == nil {
		t.Fatal("Validate() should fail after corrupting packet data")
	}
}

func TestEqualIgnoresHeaderMetadata(t *testing.T) {
	b1 := NewMemBackend()
	f1, _ := Create(b1)
	f1.Append(goldenPacket)

	b2 := NewMemBackend()
	f2, _ := Create(b2)
	f2.Append(goldenPacket)
	f2.Append(goldenPacket)

	eq, err := f1.Equal(f2)
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Fatal("Equal() = true for archives with different packet counts")
	}

	b3 := NewMemBackend()
	f3, _ := Create(b3)
	f3.Append(goldenPacket)
	eq, err = f1.Equal(f3)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Fatal("Equal() = false for archives with identical packet sequences")
	}
}
