package vrt

import (
	"bytes"
	"testing"
)

func TestNewCommandPacketDefaultsBothIDsUUID(t *testing.T) {
	p, err := NewPacket(PacketTypeCommand)
	if err != nil {
		t.Fatal(err)
	}
	cam := p.CtrlAckSettings()
	if !cam.CE() || !cam.IE() {
		t.Fatal("controllee ID should default to present and UUID-formatted")
	}
	if !cam.CR() || !cam.IR() {
		t.Fatal("controller ID should default to present and UUID-formatted")
	}
	f, id := p.ControlleeID()
	if f != IdentifierUUID || len(id) != 16 {
		t.Fatalf("ControlleeID() = (%v, len %d), want (IdentifierUUID, 16)", f, len(id))
	}
}

func TestSetControlleeIDResizesPSP(t *testing.T) {
	p, err := NewPacket(PacketTypeCommand)
	if err != nil {
		t.Fatal(err)
	}
	before := p.Length()
	uuidVal := make([]byte, 16)
	for i := range uuidVal {
		uuidVal[i] = byte(i)
	}
	if err := p.SetControlleeID(IdentifierUUID, uuidVal); err != nil {
		t.Fatal(err)
	}
	if p.Length() != before {
		t.Fatalf("swapping UUID for UUID should not resize: before=%d after=%d", before, p.Length())
	}
	f, got := p.ControlleeID()
	if f != IdentifierUUID || !bytes.Equal(got, uuidVal) {
		t.Fatalf("ControlleeID() = (%v, % x)", f, got)
	}

	// Shrinking from UUID (16) to 32-bit (4) removes 12 octets.
	if err := p.SetControlleeID(Identifier32, []byte{0xAA, 0xBB, 0xCC, 0xDD}); err != nil {
		t.Fatal(err)
	}
	if got := p.Length(); got != before-12 {
		t.Fatalf("Length() after shrink = %d, want %d", got, before-12)
	}
	f, val := p.ControlleeID()
	if f != Identifier32 || !bytes.Equal(val, []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Fatalf("ControlleeID() = (%v, % x)", f, val)
	}

	// Dropping it entirely removes the remaining 4 octets.
	if err := p.SetControlleeID(IdentifierNone, nil); err != nil {
		t.Fatal(err)
	}
	if got := p.Length(); got != before-16 {
		t.Fatalf("Length() after drop = %d, want %d", got, before-16)
	}
	if cam := p.CtrlAckSettings(); cam.CE() {
		t.Fatal("CE should be cleared after dropping the controllee ID")
	}
}

func TestSetControlleeIDRejectsWrongLength(t *testing.T) {
	p, err := NewPacket(PacketTypeCommand)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetControlleeID(Identifier32, []byte{0x01, 0x02}); err != ErrOutOfRange {
		t.Fatalf("SetControlleeID with wrong-length value = %v, want ErrOutOfRange", err)
	}
}

func TestAckAndQueryAcknowledgeClassification(t *testing.T) {
	p, err := NewPacket(PacketTypeCommand)
	if err != nil {
		t.Fatal(err)
	}
	if p.Ack() {
		t.Fatal("freshly constructed command packet should default to a Control (non-ack) packet")
	}
	if Classify(p) != BasicControlPacket {
		t.Fatalf("Classify() = %v, want BasicControlPacket", Classify(p))
	}
	if err := p.SetAck(true); err != nil {
		t.Fatal(err)
	}
	if Classify(p) != BasicAcknowledgePacket {
		t.Fatalf("Classify() = %v, want BasicAcknowledgePacket", Classify(p))
	}

	cam := p.CtrlAckSettings().with(camS, true)
	p.setCtrlAckSettings(cam)
	if !p.IsQueryAcknowledge() {
		t.Fatal("IsQueryAcknowledge() should be true once ReqS is set on an Ack packet")
	}
	if Classify(p) != BasicQueryAcknowledgePacket {
		t.Fatalf("Classify() = %v, want BasicQueryAcknowledgePacket", Classify(p))
	}
}

func TestMessageIDOnlyAppliesToCommand(t *testing.T) {
	p, err := NewPacket(PacketTypeData)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetMessageID(42); err == nil {
		t.Fatal("SetMessageID should fail on a non-Command packet type")
	}

	cp, err := NewPacket(PacketTypeCommand)
	if err != nil {
		t.Fatal(err)
	}
	if err := cp.SetMessageID(0xCAFEBABE); err != nil {
		t.Fatal(err)
	}
	if cp.MessageID() != 0xCAFEBABE {
		t.Fatalf("MessageID() = %#x, want 0xCAFEBABE", cp.MessageID())
	}
}

func TestValidateRejectsCommandWithNeitherID(t *testing.T) {
	p, err := NewPacket(PacketTypeCommand)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetControlleeID(IdentifierNone, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.SetControllerID(IdentifierNone, nil); err != nil {
		t.Fatal(err)
	}
	if err := p.Validate(false, -1); err == nil {
		t.Fatal("Validate should reject a command packet with neither controllee nor controller ID")
	}
}
