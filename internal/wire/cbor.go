package wire

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// cborPacket is the CBOR form of a packet, a map with the same keys as the JSON form.
// data is an unsigned integer, or a bignum once it exceeds 64 bits.
type cborPacket struct {
	Length *uint64  `cbor:"length"`
	Size   *uint64  `cbor:"size"`
	Seed   *uint64  `cbor:"seed"`
	Data   *big.Int `cbor:"data"`
}

// encMode uses Core Deterministic Encoding: the same packet always encodes to the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

func toCBOR(p *Packet) *cborPacket {
	length, size, seed := uint64(p.Length), uint64(p.Size), uint64(p.Seed)
	return &cborPacket{Length: &length, Size: &size, Seed: &seed, Data: p.dataInt()}
}

func (c *cborPacket) packet() (*Packet, error) {
	var missing []string
	if c.Length == nil {
		missing = append(missing, "length")
	}
	if c.Size == nil {
		missing = append(missing, "size")
	}
	if c.Seed == nil {
		missing = append(missing, "seed")
	}
	if c.Data == nil {
		missing = append(missing, "data")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", errMissingField, missing)
	}
	return fromFields(*c.Length, *c.Size, *c.Seed, c.Data)
}

// MarshalCBOR encodes the packet as a CBOR map.
func MarshalCBOR(p *Packet) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return encMode.Marshal(toCBOR(p))
}

// UnmarshalCBOR decodes a CBOR map into a packet.
func UnmarshalCBOR(b []byte) (*Packet, error) {
	var c cborPacket
	if err := decMode.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return c.packet()
}

func newCBOREncoder(w io.Writer) *cbor.Encoder { return encMode.NewEncoder(w) }

func newCBORDecoder(r io.Reader) *cbor.Decoder { return decMode.NewDecoder(r) }
