package main

import (
	"log/slog"

	"github.com/ddritzenhoff/ltcode/logging"
)

// progressTracer logs decoding progress every step percent.
type progressTracer struct {
	logger *slog.Logger
	step   int
	last   int
}

var _ logging.Tracer = &progressTracer{}

func (t *progressTracer) StartedEncoding(logging.ByteCount, logging.ByteCount, int, logging.Seed) {}
func (t *progressTracer) SentPacket(*logging.Packet)                                             {}
func (t *progressTracer) ReceivedPacket(*logging.Packet)                                         {}
func (t *progressTracer) DroppedPacket(*logging.Packet, logging.DropReason, error)               {}

func (t *progressTracer) StartedDecoding(logging.ByteCount, logging.ByteCount, int) {
	t.last = 0
}

func (t *progressTracer) UpdatedProgress(resolved, numSymbols int) {
	if numSymbols == 0 {
		return
	}
	percent := resolved * 100 / numSymbols
	if percent-t.last < t.step {
		return
	}
	t.last = percent - percent%t.step
	t.logger.Info("decoding progress", slog.Int("percent", t.last), slog.Int("resolved", resolved), slog.Int("symbols", numSymbols))
}

func (t *progressTracer) DecodeComplete(packetsReceived int, length logging.ByteCount) {
	t.logger.Info("decoded", slog.Int("packets", packetsReceived), slog.Uint64("bytes", uint64(length)))
}
