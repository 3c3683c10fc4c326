package ltcode

import (
	"log/slog"

	"github.com/ddritzenhoff/ltcode/internal/fec"
	"github.com/ddritzenhoff/ltcode/logging"
)

// An Encoder produces packet streams. Every stream starts at the encoder's seed,
// so encoding the same data twice yields the same packets.
type Encoder struct {
	config *Config
	seed   Seed
}

// NewEncoder creates an encoder. The config may be nil.
func NewEncoder(config *Config) (*Encoder, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	config = populateConfig(config)
	seed := config.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	return &Encoder{config: config, seed: seed}, nil
}

// Seed returns the generator state every stream starts from.
func (e *Encoder) Seed() Seed {
	return e.seed
}

// SymbolSize returns the symbol size of the produced packets.
func (e *Encoder) SymbolSize() ByteCount {
	return e.config.SymbolSize
}

// Encode starts a new packet stream for data. data must not be modified while the
// stream is in use.
func (e *Encoder) Encode(data []byte) (*PacketStream, error) {
	sender, err := fec.NewSender(data, e.config.SymbolSize, e.seed, e.config.params())
	if err != nil {
		return nil, err
	}
	e.config.Logger.Debug("started encoding",
		slog.Int("length", len(data)),
		slog.Uint64("symbol_size", uint64(e.config.SymbolSize)),
		slog.Int("symbols", sender.NumSymbols()),
		slog.Uint64("seed", uint64(e.seed)),
	)
	if e.config.Tracer != nil {
		e.config.Tracer.StartedEncoding(ByteCount(len(data)), e.config.SymbolSize, sender.NumSymbols(), e.seed)
	}
	return &PacketStream{sender: sender, tracer: e.config.Tracer}, nil
}

// A PacketStream is an endless, pull-based sequence of packets.
// It is not safe for concurrent use.
type PacketStream struct {
	sender fec.Sender
	tracer logging.Tracer
	sent   int
}

// Next computes the next packet. Packets may be handed back with ReleasePacket once
// they are no longer needed.
func (s *PacketStream) Next() *Packet {
	p := s.sender.NextPacket()
	s.sent++
	if s.tracer != nil {
		s.tracer.SentPacket(p)
	}
	return p
}

// NumSymbols returns the number of source symbols of the stream.
func (s *PacketStream) NumSymbols() int {
	return s.sender.NumSymbols()
}

// Sent returns the number of packets produced so far.
func (s *PacketStream) Sent() int {
	return s.sent
}
