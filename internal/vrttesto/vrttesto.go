// Package vrttesto generates randomized VRT packets for round-trip
// testing, grounded on the teacher's internal/ltesto.PacketGen: a small
// struct of knobs plus a Random* method per packet shape, instead of a
// generic fuzzer.
package vrttesto

import (
	"encoding/binary"
	"math/rand"

	vita49 "github.com/soypat/vita49"
)

// Gen holds the randomization knobs for generated packets.
type Gen struct {
	StreamID uint32
	ClassID  vita49.ClassID
}

// RandomizeAddrs fills Gen's identifying fields from rng.
func (g *Gen) RandomizeAddrs(rng *rand.Rand) {
	g.StreamID = rng.Uint32()
	g.ClassID = vita49.ClassID{
		OUI:             rng.Uint32() & 0x00FFFFFF,
		InformationCode: uint16(rng.Uint32()),
		PacketCode:      uint16(rng.Uint32()),
	}
}

// RandomDataPacket returns a Data packet with a random TSI/TSF/trailer
// configuration and a random payload of payloadWords 32-bit words.
func (g *Gen) RandomDataPacket(rng *rand.Rand, payloadWords int) (vita49.Packet, error) {
	pt := vita49.PacketTypeData
	if rng.Intn(2) == 0 {
		pt = vita49.PacketTypeUnidentifiedData
	}
	p, err := vita49.NewPacket(pt)
	if err != nil {
		return vita49.Packet{}, err
	}
	if pt.HasStreamID() {
		if err := p.SetStreamID(g.StreamID); err != nil {
			return vita49.Packet{}, err
		}
	}
	if rng.Intn(2) == 0 {
		if err := p.SetHasClassID(true); err != nil {
			return vita49.Packet{}, err
		}
		if err := p.SetClassID(g.ClassID); err != nil {
			return vita49.Packet{}, err
		}
	}
	tsi := vita49.TSIMode(rng.Intn(4))
	if err := p.SetTSIMode(tsi); err != nil {
		return vita49.Packet{}, err
	}
	if tsi != vita49.TSINone {
		if err := p.SetTSI(rng.Uint32()); err != nil {
			return vita49.Packet{}, err
		}
	}
	tsf := vita49.TSFMode(rng.Intn(4))
	if err := p.SetTSFMode(tsf); err != nil {
		return vita49.Packet{}, err
	}
	if tsf != vita49.TSFNone {
		if err := p.SetTSF(rng.Uint64()); err != nil {
			return vita49.Packet{}, err
		}
	}
	if err := p.SetPayloadLength(payloadWords * 4); err != nil {
		return vita49.Packet{}, err
	}
	rng.Read(p.Payload())
	if rng.Intn(2) == 0 {
		if err := p.SetHasTrailer(true); err != nil {
			return vita49.Packet{}, err
		}
		if err := p.SetIndicator(vita49.IndicatorValidData, true); err != nil {
			return vita49.Packet{}, err
		}
	}
	return p, nil
}

// RandomContextPacket returns a Context packet with the class ID set and
// a handful of CIF0 fields populated.
func (g *Gen) RandomContextPacket(rng *rand.Rand) (vita49.Packet, error) {
	p, err := vita49.NewPacket(vita49.PacketTypeContext)
	if err != nil {
		return vita49.Packet{}, err
	}
	if err := p.SetStreamID(g.StreamID); err != nil {
		return vita49.Packet{}, err
	}
	if err := p.SetClassID(g.ClassID); err != nil {
		return vita49.Packet{}, err
	}
	if err := p.SetFieldPresent(0, vita49.CIF0Bandwidth, true, 8); err != nil {
		return vita49.Packet{}, err
	}
	off, err := p.FieldOffset(0, vita49.CIF0Bandwidth)
	if err != nil {
		return vita49.Packet{}, err
	}
	binary.BigEndian.PutUint64(p.RawData()[off:off+8], rng.Uint64())
	return p, nil
}
