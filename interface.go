// Package ltcode implements an LT fountain code.
//
// An Encoder turns a byte stream into an endless sequence of packets. Each packet is the XOR
// of a pseudo-randomly chosen set of fixed-size source symbols and carries the generator seed
// that chose them. A Decoder collects packets in any order, recomputes every set from the
// seed, and peels the source symbols out of the received XORs until all are known.
package ltcode

import (
	"github.com/ddritzenhoff/ltcode/internal/fec"
	"github.com/ddritzenhoff/ltcode/internal/protocol"
	"github.com/ddritzenhoff/ltcode/internal/wire"
)

type (
	// A ByteCount is a count of bytes.
	ByteCount = protocol.ByteCount
	// A Seed is a state of the generator that selects the source symbols of a packet.
	Seed = protocol.Seed
	// A Packet is one encoded symbol: the stream length, the symbol size, the seed
	// and Size bytes of XORed symbol data.
	Packet = wire.Packet
	// State is the state of a Decoder.
	State = fec.State
)

const (
	// StateUninitialized means the decoder has not seen a valid packet yet.
	StateUninitialized = fec.StateUninitialized
	// StateActive means the decoder is collecting packets.
	StateActive = fec.StateActive
	// StateComplete means the stream is decoded.
	StateComplete = fec.StateComplete
)

const (
	// DefaultSymbolSize is the symbol size used if Config.SymbolSize is 0.
	DefaultSymbolSize = protocol.DefaultSymbolSize
	// MaxSymbolSize is the largest supported symbol size.
	MaxSymbolSize = protocol.MaxSymbolSize
)

// ReleasePacket returns a packet produced by a PacketStream to the buffer pool.
// The packet must not be used afterwards.
func ReleasePacket(p *Packet) {
	wire.PutPacket(p)
}
