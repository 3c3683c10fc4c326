package wire

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ddritzenhoff/ltcode/internal/protocol"
	"github.com/ddritzenhoff/ltcode/internal/utils"
)

var errMissingField = errors.New("missing field")

// fromFields builds a packet from the four scalar fields of the self-describing encodings,
// where data is carried as an integer.
func fromFields(length, size, seed uint64, data *big.Int) (*Packet, error) {
	if size == 0 {
		return nil, errZeroSymbolSize
	}
	if size > uint64(protocol.MaxSymbolSize) {
		return nil, fmt.Errorf("symbol size %d exceeds the maximum of %d", size, protocol.MaxSymbolSize)
	}
	if seed >= protocol.LCGModulus {
		return nil, fmt.Errorf("seed %d out of range [0, %d)", seed, protocol.LCGModulus)
	}
	buf, err := utils.IntToBytes(data, int(size), protocol.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return &Packet{
		Length: protocol.ByteCount(length),
		Size:   protocol.ByteCount(size),
		Seed:   protocol.Seed(seed),
		Data:   buf,
	}, nil
}

// dataInt returns the packet's data integer.
func (p *Packet) dataInt() *big.Int {
	return utils.BytesToInt(p.Data, protocol.LittleEndian)
}
