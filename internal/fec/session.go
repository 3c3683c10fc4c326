package fec

import (
	"errors"
	"fmt"
	"math"

	"github.com/ddritzenhoff/ltcode/internal/protocol"
	"github.com/ddritzenhoff/ltcode/internal/wire"
)

var (
	// ErrMalformedPacket is returned for packets that cannot be part of the stream.
	// The receiver's state is unchanged.
	ErrMalformedPacket = errors.New("malformed packet")
	// ErrStreamMismatch is returned for well-formed packets that describe a different stream
	// than the one being decoded. It wraps ErrMalformedPacket.
	ErrStreamMismatch = fmt.Errorf("%w: packet belongs to another stream", ErrMalformedPacket)
	// ErrNotInitialized is returned when the decoded data is requested before decoding completed.
	ErrNotInitialized = errors.New("decoder not initialized")
)

// Params are the distribution parameters. Sender and receiver must agree on them.
type Params struct {
	Delta      float64
	SpikeScale float64
}

// DefaultParams returns the parameters used unless configured otherwise.
func DefaultParams() Params {
	return Params{Delta: protocol.DefaultDelta, SpikeScale: protocol.DefaultSpikeScale}
}

// Sender represents sender-side functions.
type Sender interface {
	// NextPacket produces the next packet of the stream. It never runs out.
	NextPacket() *wire.Packet
	NumSymbols() int
}

// Receiver represents receiver-side functions.
type Receiver interface {
	// HandlePacket consumes a packet and reports whether decoding is complete.
	HandlePacket(p *wire.Packet) (bool, error)
	// Progress is the share of resolved symbols in percent.
	Progress() int
	// Data returns the decoded stream once complete.
	Data() ([]byte, error)
	State() State
	NumSymbols() int
	NumResolved() int
}

type sender struct {
	symbols [][]byte
	length  protocol.ByteCount
	size    protocol.ByteCount
	seed    protocol.Seed
	// sampler is nil for an empty stream
	sampler *Sampler
}

var _ Sender = &sender{}

// NewSender splits data into symbols and prepares a stream starting at seed.
func NewSender(data []byte, size protocol.ByteCount, seed protocol.Seed, params Params) (Sender, error) {
	if size == 0 {
		return nil, fmt.Errorf("symbol size must be positive")
	}
	if size > protocol.MaxSymbolSize {
		return nil, fmt.Errorf("symbol size %d exceeds the maximum of %d", size, protocol.MaxSymbolSize)
	}
	if protocol.NumSymbols(protocol.ByteCount(len(data)), size) > protocol.MaxNumSymbols {
		return nil, fmt.Errorf("%d bytes need more than %d symbols, use a larger symbol size", len(data), protocol.MaxNumSymbols)
	}
	s := &sender{
		symbols: splitSymbols(data, int(size)),
		length:  protocol.ByteCount(len(data)),
		size:    size,
		seed:    seed,
	}
	if len(s.symbols) > 0 {
		sampler, err := NewSampler(len(s.symbols), seed, params.Delta, params.SpikeScale)
		if err != nil {
			return nil, err
		}
		s.sampler = sampler
	}
	return s, nil
}

func (s *sender) NextPacket() *wire.Packet {
	p := wire.GetPacket(int(s.size))
	p.Length = s.length
	p.Size = s.size
	if s.sampler == nil {
		p.Seed = s.seed
		return p
	}
	seed, indices := s.sampler.SourceBlocks()
	p.Seed = seed
	for _, idx := range indices {
		xor(p.Data, s.symbols[idx])
	}
	return p
}

func (s *sender) NumSymbols() int { return len(s.symbols) }

// State is the state of a receiver.
type State uint8

const (
	// StateUninitialized means no valid packet was received yet.
	StateUninitialized State = iota
	// StateActive means packets are being collected.
	StateActive
	// StateComplete means every symbol is resolved.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

type receiver struct {
	params Params
	state  State

	length     protocol.ByteCount
	size       protocol.ByteCount
	numSymbols int

	// graph and sampler only exist while active
	graph   *Graph
	sampler *Sampler

	data []byte
}

var _ Receiver = &receiver{}

// NewReceiver creates a receiver. Its stream parameters are taken from the first packet.
func NewReceiver(params Params) Receiver {
	return &receiver{params: params}
}

func (r *receiver) HandlePacket(p *wire.Packet) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedPacket, err)
	}

	switch r.state {
	case StateComplete:
		// late packets don't change anything
		return true, nil
	case StateUninitialized:
		if err := r.initialize(p); err != nil {
			return false, err
		}
	case StateActive:
		if p.Length != r.length || p.Size != r.size {
			return false, fmt.Errorf("%w: %d bytes in %d byte symbols, expected %d bytes in %d byte symbols",
				ErrStreamMismatch, p.Length, p.Size, r.length, r.size)
		}
	}

	if r.numSymbols == 0 {
		return true, r.complete()
	}
	_, indices := r.sampler.SourceBlocksFrom(p.Seed)
	if r.graph.AddConstraint(indices, p.Data) {
		return true, r.complete()
	}
	return false, nil
}

func (r *receiver) initialize(p *wire.Packet) error {
	numSymbols := protocol.NumSymbols(p.Length, p.Size)
	if numSymbols > protocol.MaxNumSymbols {
		return fmt.Errorf("%w: stream of %d bytes needs more than %d symbols", ErrMalformedPacket, p.Length, protocol.MaxNumSymbols)
	}
	if numSymbols > 0 {
		sampler, err := NewSampler(numSymbols, p.Seed, r.params.Delta, r.params.SpikeScale)
		if err != nil {
			return err
		}
		r.sampler = sampler
		r.graph = NewGraph(numSymbols)
	}
	r.length = p.Length
	r.size = p.Size
	r.numSymbols = numSymbols
	r.state = StateActive
	return nil
}

func (r *receiver) complete() error {
	if r.numSymbols > 0 {
		data, err := assembleSymbols(r.graph.Eliminated(), r.numSymbols, r.length, int(r.size))
		if err != nil {
			return err
		}
		r.data = data
	} else {
		r.data = []byte{}
	}
	// the graph is no longer needed, and must not change anymore
	r.graph = nil
	r.sampler = nil
	r.state = StateComplete
	return nil
}

func (r *receiver) Progress() int {
	switch r.state {
	case StateUninitialized:
		return 0
	case StateComplete:
		return 100
	}
	return int(math.Round(float64(r.graph.NumEliminated()) / float64(r.numSymbols) * 100))
}

func (r *receiver) Data() ([]byte, error) {
	switch r.state {
	case StateUninitialized:
		return nil, fmt.Errorf("%w: no packet received", ErrNotInitialized)
	case StateActive:
		return nil, fmt.Errorf("%w: %d of %d symbols resolved", ErrNotInitialized, r.graph.NumEliminated(), r.numSymbols)
	}
	return r.data, nil
}

func (r *receiver) State() State { return r.state }

func (r *receiver) NumSymbols() int { return r.numSymbols }

func (r *receiver) NumResolved() int {
	switch r.state {
	case StateActive:
		return r.graph.NumEliminated()
	case StateComplete:
		return r.numSymbols
	}
	return 0
}
