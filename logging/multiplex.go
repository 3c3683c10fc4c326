package logging

type tracerMultiplexer struct {
	tracers []Tracer
}

var _ Tracer = &tracerMultiplexer{}

// NewMultiplexedTracer creates a new tracer that multiplexes events to multiple tracers.
func NewMultiplexedTracer(tracers ...Tracer) Tracer {
	if len(tracers) == 0 {
		return nil
	}
	if len(tracers) == 1 {
		return tracers[0]
	}
	return &tracerMultiplexer{tracers}
}

func (m *tracerMultiplexer) StartedEncoding(length, size ByteCount, numSymbols int, seed Seed) {
	for _, t := range m.tracers {
		t.StartedEncoding(length, size, numSymbols, seed)
	}
}

func (m *tracerMultiplexer) SentPacket(p *Packet) {
	for _, t := range m.tracers {
		t.SentPacket(p)
	}
}

func (m *tracerMultiplexer) StartedDecoding(length, size ByteCount, numSymbols int) {
	for _, t := range m.tracers {
		t.StartedDecoding(length, size, numSymbols)
	}
}

func (m *tracerMultiplexer) ReceivedPacket(p *Packet) {
	for _, t := range m.tracers {
		t.ReceivedPacket(p)
	}
}

func (m *tracerMultiplexer) DroppedPacket(p *Packet, reason DropReason, err error) {
	for _, t := range m.tracers {
		t.DroppedPacket(p, reason, err)
	}
}

func (m *tracerMultiplexer) UpdatedProgress(resolved, numSymbols int) {
	for _, t := range m.tracers {
		t.UpdatedProgress(resolved, numSymbols)
	}
}

func (m *tracerMultiplexer) DecodeComplete(packetsReceived int, length ByteCount) {
	for _, t := range m.tracers {
		t.DecodeComplete(packetsReceived, length)
	}
}
