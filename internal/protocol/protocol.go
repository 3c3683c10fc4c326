package protocol

// ByteCount is a count of bytes.
type ByteCount uint64

// Seed is a state of the Lehmer generator that drives symbol selection.
// A packet carries the state the generator was in right before its degree was drawn.
type Seed uint32

// SymbolIndex identifies a source symbol within a stream, 0..K-1.
type SymbolIndex = int

const (
	// LCGMultiplier is the multiplier of the MINSTD generator.
	LCGMultiplier uint64 = 16807
	// LCGModulus is the Mersenne prime 2^31 - 1. Every generator state is below it.
	LCGModulus uint64 = 1<<31 - 1
	// MaxInitialSeed bounds the randomly chosen session seed.
	MaxInitialSeed Seed = 1 << 30
)

const (
	// DefaultSymbolSize is the symbol size used when none is configured.
	DefaultSymbolSize ByteCount = 100
	// MaxSymbolSize is the largest symbol size accepted from the wire.
	MaxSymbolSize ByteCount = 1<<16 - 1
	// MaxNumSymbols bounds the number of symbols of a single stream.
	MaxNumSymbols = 1 << 24
	// DefaultDelta is the failure probability bound of the robust soliton distribution.
	DefaultDelta = 0.5
	// DefaultSpikeScale is the constant c in S = c * ln(K/delta) * sqrt(K).
	DefaultSpikeScale = 0.1
)

// ByteOrder selects how a byte sequence maps onto an integer.
type ByteOrder uint8

const BigEndian ByteOrder = 0
const LittleEndian ByteOrder = 1

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big"
	case LittleEndian:
		return "little"
	default:
		return "unknown"
	}
}

// NumSymbols returns the number of symbols of the given size needed to hold length bytes.
// Counts beyond MaxNumSymbols are reported as MaxNumSymbols+1.
func NumSymbols(length, size ByteCount) int {
	if size == 0 {
		return 0
	}
	n := length / size
	if length%size != 0 {
		n++
	}
	if n > MaxNumSymbols {
		return MaxNumSymbols + 1
	}
	return int(n)
}
