package ltcode

import (
	"errors"
	"log/slog"

	"github.com/ddritzenhoff/ltcode/internal/fec"
	"github.com/ddritzenhoff/ltcode/logging"
)

// A Decoder reassembles a stream from packets of a single Encoder stream.
// Packets can arrive in any order, and any of them may be lost.
// It is not safe for concurrent use.
type Decoder struct {
	receiver fec.Receiver
	logger   *slog.Logger
	tracer   logging.Tracer

	// received counts the packets that were accepted
	received     int
	lastResolved int
}

// NewDecoder creates a decoder. The config may be nil. Only Delta, SpikeScale, Logger and
// Tracer are used.
func NewDecoder(config *Config) (*Decoder, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	config = populateConfig(config)
	return &Decoder{
		receiver: fec.NewReceiver(config.params()),
		logger:   config.Logger,
		tracer:   config.Tracer,
	}, nil
}

// Decode adds a packet and reports whether the stream is complete.
// Malformed packets are rejected with an error wrapping ErrMalformedPacket and leave the
// decoder unchanged. Packets arriving after completion are ignored.
func (d *Decoder) Decode(p *Packet) (bool, error) {
	state := d.receiver.State()
	if state == StateComplete {
		if d.tracer != nil {
			d.tracer.DroppedPacket(p, logging.PacketDropAfterCompletion, nil)
		}
		return true, nil
	}

	done, err := d.receiver.HandlePacket(p)
	if err != nil {
		reason := logging.PacketDropMalformed
		if errors.Is(err, ErrStreamMismatch) {
			reason = logging.PacketDropStreamMismatch
		}
		d.logger.Warn("dropped packet", slog.String("reason", reason.String()), slog.Any("error", err))
		if d.tracer != nil {
			d.tracer.DroppedPacket(p, reason, err)
		}
		return false, err
	}

	d.received++
	if state == StateUninitialized {
		d.logger.Info("started decoding",
			slog.Uint64("length", uint64(p.Length)),
			slog.Uint64("symbol_size", uint64(p.Size)),
			slog.Int("symbols", d.receiver.NumSymbols()),
		)
		if d.tracer != nil {
			d.tracer.StartedDecoding(p.Length, p.Size, d.receiver.NumSymbols())
		}
	}
	if d.tracer != nil {
		d.tracer.ReceivedPacket(p)
	}
	if resolved := d.receiver.NumResolved(); resolved != d.lastResolved {
		d.lastResolved = resolved
		d.logger.Debug("resolved symbols",
			slog.Int("resolved", resolved),
			slog.Int("symbols", d.receiver.NumSymbols()),
			slog.Int("progress", d.receiver.Progress()),
		)
		if d.tracer != nil {
			d.tracer.UpdatedProgress(resolved, d.receiver.NumSymbols())
		}
	}
	if done {
		d.logger.Info("decoding complete",
			slog.Int("packets", d.received),
			slog.Int("symbols", d.receiver.NumSymbols()),
		)
		if d.tracer != nil {
			d.tracer.DecodeComplete(d.received, p.Length)
		}
	}
	return done, nil
}

// Progress returns the share of resolved source symbols in percent, rounded to the nearest integer.
// It never decreases.
func (d *Decoder) Progress() int {
	return d.receiver.Progress()
}

// State returns the state of the decoder.
func (d *Decoder) State() State {
	return d.receiver.State()
}

// NumSymbols returns the number of source symbols of the stream, 0 before the first packet.
func (d *Decoder) NumSymbols() int {
	return d.receiver.NumSymbols()
}

// Received returns the number of accepted packets, including the one that completed the stream.
func (d *Decoder) Received() int {
	return d.received
}

// Result returns the decoded stream. It fails with ErrNotInitialized before decoding is complete.
func (d *Decoder) Result() ([]byte, error) {
	return d.receiver.Data()
}

// ResultString returns the decoded stream as a string.
func (d *Decoder) ResultString() (string, error) {
	data, err := d.Result()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
