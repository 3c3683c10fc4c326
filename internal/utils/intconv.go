package utils

import (
	"fmt"
	"math/big"

	"github.com/ddritzenhoff/ltcode/internal/protocol"
)

// BytesToInt interprets b as a non-negative integer in the given byte order.
func BytesToInt(b []byte, order protocol.ByteOrder) *big.Int {
	if order == protocol.BigEndian {
		return new(big.Int).SetBytes(b)
	}
	reversed := make([]byte, len(b))
	for i, c := range b {
		reversed[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(reversed)
}

// IntToBytes writes v into exactly width bytes in the given byte order, zero-padding as needed.
// It fails if v is negative or does not fit.
func IntToBytes(v *big.Int, width int, order protocol.ByteOrder) ([]byte, error) {
	if width < 0 {
		return nil, fmt.Errorf("width must be non-negative, got %d", width)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("cannot encode negative integer %s", v)
	}
	if (v.BitLen()+7)/8 > width {
		return nil, fmt.Errorf("integer of %d bits does not fit into %d bytes", v.BitLen(), width)
	}
	b := make([]byte, width)
	v.FillBytes(b)
	if order == protocol.LittleEndian {
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
	}
	return b, nil
}
