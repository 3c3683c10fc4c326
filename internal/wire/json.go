package wire

import (
	"fmt"
	"math/big"

	"github.com/francoispqt/gojay"
)

const (
	seenLength uint8 = 1 << iota
	seenSize
	seenSeed
	seenData

	seenAll = seenLength | seenSize | seenSeed | seenData
)

// jsonPacket is the JSON form of a packet:
//
//	{"length":13,"size":10,"seed":1126542223,"data":"4311810305"}
//
// data is a decimal string since it does not fit into a JSON number for most symbol sizes.
type jsonPacket struct {
	p *Packet

	length, size, seed uint64
	data               string
	seen               uint8
}

var (
	_ gojay.MarshalerJSONObject   = &jsonPacket{}
	_ gojay.UnmarshalerJSONObject = &jsonPacket{}
)

func (j *jsonPacket) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Uint64Key("length", uint64(j.p.Length))
	enc.Uint64Key("size", uint64(j.p.Size))
	enc.Uint64Key("seed", uint64(j.p.Seed))
	enc.StringKey("data", j.p.dataInt().String())
}

func (j *jsonPacket) IsNil() bool { return j.p == nil }

func (j *jsonPacket) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "length":
		j.seen |= seenLength
		return dec.Uint64(&j.length)
	case "size":
		j.seen |= seenSize
		return dec.Uint64(&j.size)
	case "seed":
		j.seen |= seenSeed
		return dec.Uint64(&j.seed)
	case "data":
		j.seen |= seenData
		return dec.String(&j.data)
	}
	return nil
}

func (j *jsonPacket) NKeys() int { return 0 }

func (j *jsonPacket) packet() (*Packet, error) {
	if j.seen != seenAll {
		return nil, fmt.Errorf("%w: %s", errMissingField, missingFields(j.seen))
	}
	data, ok := new(big.Int).SetString(j.data, 10)
	if !ok {
		return nil, fmt.Errorf("data %q is not a decimal integer", j.data)
	}
	return fromFields(j.length, j.size, j.seed, data)
}

// MarshalJSON encodes the packet as a JSON object.
func MarshalJSON(p *Packet) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return gojay.MarshalJSONObject(&jsonPacket{p: p})
}

// UnmarshalJSON decodes a JSON object into a packet.
func UnmarshalJSON(b []byte) (*Packet, error) {
	j := &jsonPacket{}
	if err := gojay.UnmarshalJSONObject(b, j); err != nil {
		return nil, err
	}
	return j.packet()
}

func missingFields(seen uint8) string {
	var missing string
	for _, f := range []struct {
		bit  uint8
		name string
	}{
		{seenLength, "length"},
		{seenSize, "size"},
		{seenSeed, "seed"},
		{seenData, "data"},
	} {
		if seen&f.bit != 0 {
			continue
		}
		if missing != "" {
			missing += ", "
		}
		missing += f.name
	}
	return missing
}
