package fec

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ddritzenhoff/ltcode/internal/protocol"
)

// splitSymbols cuts data into size-byte symbols. The last symbol is zero-extended to the full
// size; the true length travels in every packet so the receiver can cut it again.
//
// A symbol buffer is the raw source bytes. Read little-endian it is the integer the encoder
// XORs and puts on the wire; read big-endian it is the integer the decoder resolves, so XORing
// buffers directly is bit-identical to both views.
func splitSymbols(data []byte, size int) [][]byte {
	symbols := make([][]byte, 0, protocol.NumSymbols(protocol.ByteCount(len(data)), protocol.ByteCount(size)))
	for offset := 0; offset < len(data); offset += size {
		symbol := make([]byte, size)
		copy(symbol, data[offset:min(offset+size, len(data))])
		symbols = append(symbols, symbol)
	}
	return symbols
}

// assembleSymbols concatenates the resolved symbols in index order and cuts the last one down
// to length mod size bytes. Buffers already are the big-endian bytes of the resolved integers.
func assembleSymbols(eliminated map[protocol.SymbolIndex][]byte, numSymbols int, length protocol.ByteCount, size int) ([]byte, error) {
	// Get and sort the keys.
	indices := maps.Keys(eliminated)
	slices.Sort(indices)
	if len(indices) < numSymbols {
		return nil, fmt.Errorf("only %d of %d symbols resolved", len(indices), numSymbols)
	}

	out := make([]byte, 0, int(length))
	for i, idx := range indices[:numSymbols] {
		if idx != i {
			return nil, fmt.Errorf("symbol %d missing", i)
		}
		symbol := eliminated[idx]
		if i == numSymbols-1 && int(length)%size != 0 {
			symbol = symbol[:int(length)%size]
		}
		out = append(out, symbol...)
	}
	return out, nil
}
