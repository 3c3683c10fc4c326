package ltcode

import (
	"errors"

	"github.com/ddritzenhoff/ltcode/internal/fec"
)

var (
	// ErrMalformedPacket is returned by Decode for packets that cannot belong to the stream.
	// The decoder is left unchanged and keeps accepting packets.
	ErrMalformedPacket = fec.ErrMalformedPacket
	// ErrStreamMismatch is returned by Decode for packets of another stream. It wraps ErrMalformedPacket.
	ErrStreamMismatch = fec.ErrStreamMismatch
	// ErrNotInitialized is returned by Result before decoding completed.
	ErrNotInitialized = fec.ErrNotInitialized
	// ErrQueueClosed is returned when adding to a closed PacketQueue.
	ErrQueueClosed = errors.New("packet queue closed")
)
