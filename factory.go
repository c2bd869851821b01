package vrt

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Packet classification. A BasicPacket is one of the six standard
// personalities every conformant VRT implementation recognizes. The default
// factory classifies ExtData/ExtContext/ExtCommand packets with their base
// family (Data, Context, Command) and returns GenericPacket only for a
// packet type outside the defined set; callers still process a
// GenericPacket using the plain [Packet] accessors.
type BasicKind uint8

const (
	GenericPacket BasicKind = iota
	BasicDataPacket
	BasicContextPacket
	BasicCommandPacket
	BasicControlPacket
	BasicAcknowledgePacket
	BasicQueryAcknowledgePacket
)

func (k BasicKind) String() string {
	switch k {
	case BasicDataPacket:
		return "BasicDataPacket"
	case BasicContextPacket:
		return "BasicContextPacket"
	case BasicCommandPacket:
		return "BasicCommandPacket"
	case BasicControlPacket:
		return "BasicControlPacket"
	case BasicAcknowledgePacket:
		return "BasicAcknowledgePacket"
	case BasicQueryAcknowledgePacket:
		return "BasicQueryAcknowledgePacket"
	default:
		return "GenericPacket"
	}
}

// PacketFactory classifies a parsed packet. Implementations form a chain
// of responsibility: [Classify] tries each registered factory in order
// and uses the first non-generic result.
type PacketFactory interface {
	Classify(p Packet) BasicKind
}

// defaultFactory implements the standard classification rules from
// spec.md §4.I: packet type picks Data/Context/Command, and within
// Command the Ack bit and ReqS further split Control/Acknowledge/
// QueryAcknowledge (see [Packet.Ack], [Packet.IsQueryAcknowledge]).
type defaultFactory struct{}

func (defaultFactory) Classify(p Packet) BasicKind {
	switch {
	case p.PacketType().IsData():
		return BasicDataPacket
	case p.PacketType().IsContext():
		return BasicContextPacket
	case p.PacketType().IsCommand():
		if !p.Ack() {
			return BasicControlPacket
		}
		if p.IsQueryAcknowledge() {
			return BasicQueryAcknowledgePacket
		}
		return BasicAcknowledgePacket
	default:
		return GenericPacket
	}
}

var (
	factoryMu    sync.Mutex
	factoryChain = []PacketFactory{defaultFactory{}}
)

// Classify runs p through the installed factory chain, returning the
// first non-generic classification, or GenericPacket if none applies.
func Classify(p Packet) BasicKind {
	factoryMu.Lock()
	chain := factoryChain
	factoryMu.Unlock()
	for _, f := range chain {
		if k := f.Classify(p); k != GenericPacket {
			return k
		}
	}
	return GenericPacket
}

// RegisterPacketFactory installs f at the front of the classification
// chain, ahead of every previously registered factory including the
// default one, so a caller-supplied factory for a custom class ID always
// gets first refusal. Safe for concurrent use.
func RegisterPacketFactory(f PacketFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factoryChain = append([]PacketFactory{f}, factoryChain...)
	logrus.WithField("chainLength", len(factoryChain)).
		Debug("vrt: packet factory registered")
}

// ResetPacketFactories restores the classification chain to just the
// built-in default, discarding every factory registered via
// [RegisterPacketFactory]. Intended for tests.
func ResetPacketFactories() {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factoryChain = []PacketFactory{defaultFactory{}}
	logrus.Debug("vrt: packet factory chain reset to default")
}
