package fec

import (
	"fmt"

	"github.com/ddritzenhoff/ltcode/internal/protocol"
)

// A Sampler turns a generator state into a reproducible set of source symbol indices.
// The encoder keeps one running across packets. The decoder reseeds it for every packet
// from the seed that packet carries.
type Sampler struct {
	state uint64
	k     int
	cdf   []float64
}

// NewSampler creates a sampler over k symbols starting at seed.
func NewSampler(k int, seed protocol.Seed, delta, spikeScale float64) (*Sampler, error) {
	if uint64(seed) >= protocol.LCGModulus {
		return nil, fmt.Errorf("seed %d out of range [0, %d)", seed, protocol.LCGModulus)
	}
	cdf, err := BuildDistribution(k, delta, spikeScale)
	if err != nil {
		return nil, err
	}
	return &Sampler{
		state: uint64(seed),
		k:     k,
		cdf:   cdf,
	}, nil
}

// NextRandom advances the generator and returns the new state.
func (s *Sampler) NextRandom() uint64 {
	s.state = protocol.LCGMultiplier * s.state % protocol.LCGModulus
	return s.state
}

// SampleDegree draws a degree in [1, k].
func (s *Sampler) SampleDegree() int {
	p := float64(s.NextRandom()) / float64(protocol.LCGModulus-1)
	return SampleDegree(s.cdf, p)
}

// Seed returns the current generator state.
func (s *Sampler) Seed() protocol.Seed {
	return protocol.Seed(s.state)
}

// SourceBlocks continues from the current state. It returns the state it started from,
// which is what a packet carries, and the distinct indices in the order they were drawn.
func (s *Sampler) SourceBlocks() (protocol.Seed, []protocol.SymbolIndex) {
	seed := s.Seed()
	degree := s.SampleDegree()

	selected := make(map[protocol.SymbolIndex]struct{}, degree)
	indices := make([]protocol.SymbolIndex, 0, degree)
	for len(indices) < degree {
		idx := protocol.SymbolIndex(s.NextRandom() % uint64(s.k))
		if _, ok := selected[idx]; ok {
			continue
		}
		selected[idx] = struct{}{}
		indices = append(indices, idx)
	}
	return seed, indices
}

// SourceBlocksFrom resets the generator to seed and then behaves like SourceBlocks.
func (s *Sampler) SourceBlocksFrom(seed protocol.Seed) (protocol.Seed, []protocol.SymbolIndex) {
	s.state = uint64(seed)
	return s.SourceBlocks()
}
