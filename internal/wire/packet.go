package wire

import (
	"errors"
	"fmt"
	"io"

	"github.com/quic-go/quic-go/quicvarint"

	"github.com/ddritzenhoff/ltcode/internal/protocol"
)

// packetType prefixes every binary encoded packet.
const packetType = 0x4c54

var (
	errZeroSymbolSize   = errors.New("symbol size must be positive")
	errInvalidFrameType = errors.New("not an LT packet")
)

// A Packet is one encoded symbol of a stream.
type Packet struct {
	// Length is the byte length of the whole source stream.
	Length protocol.ByteCount
	// Size is the symbol size in bytes.
	Size protocol.ByteCount
	// Seed is the generator state the packet's symbol set is derived from.
	Seed protocol.Seed
	// Data is the XOR of the sampled symbols, exactly Size bytes.
	// Read little-endian it is the packet's data integer.
	Data []byte

	fromPool bool
}

// Validate checks that the packet is well-formed on its own.
func (p *Packet) Validate() error {
	if p.Size == 0 {
		return errZeroSymbolSize
	}
	if p.Size > protocol.MaxSymbolSize {
		return fmt.Errorf("symbol size %d exceeds the maximum of %d", p.Size, protocol.MaxSymbolSize)
	}
	if uint64(p.Seed) >= protocol.LCGModulus {
		return fmt.Errorf("seed %d out of range [0, %d)", p.Seed, protocol.LCGModulus)
	}
	if protocol.ByteCount(len(p.Data)) != p.Size {
		return fmt.Errorf("data is %d bytes, expected %d", len(p.Data), p.Size)
	}
	return nil
}

// ParsePacket reads a binary encoded packet.
func ParsePacket(r quicvarint.Reader) (*Packet, error) {
	typ, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	if typ != packetType {
		return nil, fmt.Errorf("%w: frame type %#x", errInvalidFrameType, typ)
	}
	length, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	size, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, errZeroSymbolSize
	}
	if size > uint64(protocol.MaxSymbolSize) {
		return nil, fmt.Errorf("symbol size %d exceeds the maximum of %d", size, protocol.MaxSymbolSize)
	}
	seed, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	if seed >= protocol.LCGModulus {
		return nil, fmt.Errorf("seed %d out of range [0, %d)", seed, protocol.LCGModulus)
	}

	p := GetPacket(int(size))
	p.Length = protocol.ByteCount(length)
	p.Size = protocol.ByteCount(size)
	p.Seed = protocol.Seed(seed)
	if _, err := io.ReadFull(r, p.Data); err != nil {
		PutPacket(p)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return p, nil
}

// Append appends the binary encoding of the packet.
func (p *Packet) Append(b []byte) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b = quicvarint.Append(b, packetType)
	b = quicvarint.Append(b, uint64(p.Length))
	b = quicvarint.Append(b, uint64(p.Size))
	b = quicvarint.Append(b, uint64(p.Seed))
	b = append(b, p.Data...)
	return b, nil
}

// WireLen is the length of the binary encoding.
func (p *Packet) WireLen() protocol.ByteCount {
	return protocol.ByteCount(quicvarint.Len(packetType)+
		quicvarint.Len(uint64(p.Length))+
		quicvarint.Len(uint64(p.Size))+
		quicvarint.Len(uint64(p.Seed))) +
		protocol.ByteCount(len(p.Data))
}
