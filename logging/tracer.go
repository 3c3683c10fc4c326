// Package logging defines a tracing interface for LT encoders and decoders.
package logging

import (
	"github.com/ddritzenhoff/ltcode/internal/protocol"
	"github.com/ddritzenhoff/ltcode/internal/wire"
)

type (
	// A ByteCount is a count of bytes.
	ByteCount = protocol.ByteCount
	// A Seed is the generator state a packet is derived from.
	Seed = protocol.Seed
	// A Packet is one encoded symbol.
	Packet = wire.Packet
)

// A DropReason is the reason a packet was dropped.
type DropReason uint8

const (
	// PacketDropMalformed is used when a packet could not be validated.
	PacketDropMalformed DropReason = iota
	// PacketDropStreamMismatch is used when a packet belongs to a different stream.
	PacketDropStreamMismatch
	// PacketDropAfterCompletion is used for packets received after decoding completed.
	PacketDropAfterCompletion
)

func (r DropReason) String() string {
	switch r {
	case PacketDropMalformed:
		return "malformed"
	case PacketDropStreamMismatch:
		return "stream_mismatch"
	case PacketDropAfterCompletion:
		return "after_completion"
	default:
		return "unknown"
	}
}

// A Tracer traces events.
type Tracer interface {
	StartedEncoding(length, size ByteCount, numSymbols int, seed Seed)
	SentPacket(p *Packet)
	StartedDecoding(length, size ByteCount, numSymbols int)
	ReceivedPacket(p *Packet)
	DroppedPacket(p *Packet, reason DropReason, err error)
	UpdatedProgress(resolved, numSymbols int)
	DecodeComplete(packetsReceived int, length ByteCount)
}
