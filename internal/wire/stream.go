package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// Format selects the encoding of a packet stream.
type Format uint8

const (
	// FormatJSON is one JSON object per line.
	FormatJSON Format = iota
	// FormatCBOR is a CBOR sequence (RFC 8742).
	FormatCBOR
	// FormatBinary is a concatenation of binary packets.
	FormatBinary
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCBOR:
		return "cbor"
	case FormatBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "cbor":
		return FormatCBOR, nil
	case "binary", "bin":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("unknown packet format: %q", s)
	}
}

// maxJSONLineLen fits a packet of protocol.MaxSymbolSize bytes, whose data integer needs
// about 2.41 decimal digits per byte.
const maxJSONLineLen = 1 << 18

// A PacketWriter writes packets to a stream in one format.
type PacketWriter struct {
	format Format
	w      *bufio.Writer
	cbor   *cbor.Encoder
	buf    []byte
}

// NewPacketWriter creates a writer. Flush must be called when done.
func NewPacketWriter(w io.Writer, format Format) *PacketWriter {
	pw := &PacketWriter{format: format, w: bufio.NewWriter(w)}
	if format == FormatCBOR {
		pw.cbor = newCBOREncoder(pw.w)
	}
	return pw
}

// WritePacket writes a single packet.
func (pw *PacketWriter) WritePacket(p *Packet) error {
	switch pw.format {
	case FormatJSON:
		b, err := MarshalJSON(p)
		if err != nil {
			return err
		}
		if _, err := pw.w.Write(b); err != nil {
			return err
		}
		return pw.w.WriteByte('\n')
	case FormatCBOR:
		if err := p.Validate(); err != nil {
			return err
		}
		return pw.cbor.Encode(toCBOR(p))
	case FormatBinary:
		var err error
		pw.buf, err = p.Append(pw.buf[:0])
		if err != nil {
			return err
		}
		_, err = pw.w.Write(pw.buf)
		return err
	default:
		return fmt.Errorf("unknown packet format: %d", pw.format)
	}
}

// Flush writes buffered data to the underlying writer.
func (pw *PacketWriter) Flush() error {
	return pw.w.Flush()
}

// A PacketReader reads packets from a stream in one format.
type PacketReader struct {
	format  Format
	r       *bufio.Reader
	scanner *bufio.Scanner
	cbor    *cbor.Decoder
}

// NewPacketReader creates a reader.
func NewPacketReader(r io.Reader, format Format) *PacketReader {
	pr := &PacketReader{format: format, r: bufio.NewReader(r)}
	switch format {
	case FormatJSON:
		pr.scanner = bufio.NewScanner(pr.r)
		pr.scanner.Buffer(make([]byte, 0, 4096), maxJSONLineLen)
	case FormatCBOR:
		pr.cbor = newCBORDecoder(pr.r)
	}
	return pr
}

// ReadPacket returns the next packet, or io.EOF at the end of the stream.
// A malformed packet yields an error that is not io.EOF; for JSON streams, reading may continue
// with the next line.
func (pr *PacketReader) ReadPacket() (*Packet, error) {
	switch pr.format {
	case FormatJSON:
		for pr.scanner.Scan() {
			line := pr.scanner.Bytes()
			if len(strings.TrimSpace(string(line))) == 0 {
				continue
			}
			return UnmarshalJSON(line)
		}
		if err := pr.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	case FormatCBOR:
		var c cborPacket
		if err := pr.cbor.Decode(&c); err != nil {
			return nil, err
		}
		return c.packet()
	case FormatBinary:
		if _, err := pr.r.Peek(1); errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		p, err := ParsePacket(pr.r)
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return p, err
	default:
		return nil, fmt.Errorf("unknown packet format: %d", pr.format)
	}
}
