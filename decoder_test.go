package ltcode

import (
	"bytes"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	mocklogging "github.com/ddritzenhoff/ltcode/internal/mocks/logging"
	"github.com/ddritzenhoff/ltcode/internal/wire"
	"github.com/ddritzenhoff/ltcode/logging"
)

var _ = Describe("Decoder", func() {
	encode := func(data []byte, config *Config) *PacketStream {
		enc, err := NewEncoder(config)
		Expect(err).ToNot(HaveOccurred())
		str, err := enc.Encode(data)
		Expect(err).ToNot(HaveOccurred())
		return str
	}

	newDecoder := func(config *Config) *Decoder {
		dec, err := NewDecoder(config)
		Expect(err).ToNot(HaveOccurred())
		return dec
	}

	// decodeAll feeds packets until the decoder is done
	decodeAll := func(dec *Decoder, str *PacketStream, limit int) {
		for i := 0; i < limit; i++ {
			done, err := dec.Decode(str.Next())
			Expect(err).ToNot(HaveOccurred())
			if done {
				return
			}
		}
		Fail("decoding did not complete")
	}

	It("decodes a single symbol stream from one packet", func() {
		str := encode([]byte("hi"), &Config{SymbolSize: 16})
		dec := newDecoder(nil)
		Expect(dec.State()).To(Equal(StateUninitialized))
		done, err := dec.Decode(str.Next())
		Expect(err).ToNot(HaveOccurred())
		Expect(done).To(BeTrue())
		Expect(dec.ResultString()).To(Equal("hi"))
		Expect(dec.Progress()).To(Equal(100))
	})

	It("decodes a three symbol stream", func() {
		str := encode([]byte("abc"), &Config{SymbolSize: 1, Seed: 42})
		dec := newDecoder(nil)
		for i, expectDone := range []bool{false, false, false, true} {
			done, err := dec.Decode(str.Next())
			Expect(err).ToNot(HaveOccurred())
			Expect(done).To(Equal(expectDone), "packet %d", i)
		}
		Expect(dec.Received()).To(Equal(4))
		Expect(dec.ResultString()).To(Equal("abc"))
	})

	It("truncates the last symbol", func() {
		str := encode([]byte("abcdefghij"), &Config{SymbolSize: 3, Seed: 7})
		dec := newDecoder(nil)
		decodeAll(dec, str, 100)
		Expect(dec.NumSymbols()).To(Equal(4))
		res, err := dec.Result()
		Expect(err).ToNot(HaveOccurred())
		Expect(res).To(HaveLen(10))
		Expect(string(res)).To(Equal("abcdefghij"))
	})

	It("decodes large streams with packet loss", func() {
		data := make([]byte, 50000)
		rand.Read(data)
		str := encode(data, &Config{SymbolSize: 100})
		dec := newDecoder(nil)
		var done bool
		for !done {
			p := str.Next()
			if rand.Intn(4) == 0 {
				ReleasePacket(p)
				continue
			}
			var err error
			done, err = dec.Decode(p)
			Expect(err).ToNot(HaveOccurred())
			ReleasePacket(p)
			Expect(str.Sent()).To(BeNumerically("<", 20000))
		}
		Expect(dec.Result()).To(Equal(data))
	})

	It("decodes packets in any order", func() {
		data := bytes.Repeat([]byte("Hello, World! "), 50)
		str := encode(data, &Config{SymbolSize: 20, Seed: 99})
		packets := make([]*Packet, 400)
		for i := range packets {
			packets[i] = str.Next()
		}
		rand.Shuffle(len(packets), func(i, j int) { packets[i], packets[j] = packets[j], packets[i] })
		dec := newDecoder(nil)
		var done bool
		for _, p := range packets {
			var err error
			done, err = dec.Decode(p)
			Expect(err).ToNot(HaveOccurred())
			if done {
				break
			}
		}
		Expect(done).To(BeTrue())
		Expect(dec.Result()).To(Equal(data))
	})

	It("decodes packets that went through the JSON codec", func() {
		data := []byte("The quick brown fox jumps over the lazy dog")
		str := encode(data, &Config{SymbolSize: 5, Seed: 1234})
		dec := newDecoder(nil)
		for i := 0; i < 1000; i++ {
			b, err := wire.MarshalJSON(str.Next())
			Expect(err).ToNot(HaveOccurred())
			p, err := wire.UnmarshalJSON(b)
			Expect(err).ToNot(HaveOccurred())
			done, err := dec.Decode(p)
			Expect(err).ToNot(HaveOccurred())
			if done {
				break
			}
		}
		Expect(dec.ResultString()).To(Equal(string(data)))
	})

	It("reports progress that never decreases", func() {
		str := encode(make([]byte, 3000), &Config{SymbolSize: 10})
		dec := newDecoder(nil)
		Expect(dec.Progress()).To(BeZero())
		last := 0
		for dec.State() != StateComplete {
			_, err := dec.Decode(str.Next())
			Expect(err).ToNot(HaveOccurred())
			Expect(dec.Progress()).To(BeNumerically(">=", last))
			last = dec.Progress()
		}
		Expect(last).To(Equal(100))
	})

	It("refuses to return a result before completion", func() {
		dec := newDecoder(nil)
		_, err := dec.Result()
		Expect(err).To(MatchError(ErrNotInitialized))
		_, err = dec.ResultString()
		Expect(err).To(MatchError(ErrNotInitialized))
	})

	It("rejects malformed packets without changing state", func() {
		dec := newDecoder(nil)
		done, err := dec.Decode(&Packet{Length: 3, Size: 0, Seed: 1})
		Expect(err).To(MatchError(ErrMalformedPacket))
		Expect(done).To(BeFalse())
		Expect(dec.State()).To(Equal(StateUninitialized))
		Expect(dec.Received()).To(BeZero())
	})

	It("rejects packets of another stream", func() {
		str := encode([]byte("abcdefghij"), &Config{SymbolSize: 3, Seed: 7})
		other := encode([]byte("abcdefghijk"), &Config{SymbolSize: 3, Seed: 7})
		dec := newDecoder(nil)
		_, err := dec.Decode(str.Next())
		Expect(err).ToNot(HaveOccurred())
		_, err = dec.Decode(other.Next())
		Expect(err).To(MatchError(ErrStreamMismatch))
		Expect(err).To(MatchError(ErrMalformedPacket))
		decodeAll(dec, str, 100)
		Expect(dec.ResultString()).To(Equal("abcdefghij"))
	})

	It("ignores packets after completion", func() {
		str := encode([]byte("abc"), &Config{SymbolSize: 3})
		dec := newDecoder(nil)
		decodeAll(dec, str, 1)
		done, err := dec.Decode(&Packet{Length: 1, Size: 0})
		Expect(err).ToNot(HaveOccurred())
		Expect(done).To(BeTrue())
		Expect(dec.Received()).To(Equal(1))
		Expect(dec.ResultString()).To(Equal("abc"))
	})

	It("decodes an empty stream", func() {
		str := encode(nil, &Config{SymbolSize: 3})
		dec := newDecoder(nil)
		done, err := dec.Decode(str.Next())
		Expect(err).ToNot(HaveOccurred())
		Expect(done).To(BeTrue())
		Expect(dec.Result()).To(BeEmpty())
	})

	It("traces", func() {
		tracer := mocklogging.NewMockTracer(mockCtrl)
		str := encode([]byte("abc"), &Config{SymbolSize: 1, Seed: 42})
		dec := newDecoder(&Config{Tracer: tracer})

		gomock.InOrder(
			tracer.EXPECT().StartedDecoding(ByteCount(3), ByteCount(1), 3),
			tracer.EXPECT().ReceivedPacket(gomock.Any()),
			tracer.EXPECT().UpdatedProgress(1, 3),
			tracer.EXPECT().ReceivedPacket(gomock.Any()).Times(3),
			tracer.EXPECT().UpdatedProgress(3, 3),
			tracer.EXPECT().DecodeComplete(4, ByteCount(3)),
			tracer.EXPECT().DroppedPacket(gomock.Any(), logging.PacketDropAfterCompletion, nil),
		)
		for i := 0; i < 5; i++ {
			_, err := dec.Decode(str.Next())
			Expect(err).ToNot(HaveOccurred())
		}
	})

	It("traces dropped packets", func() {
		tracer := mocklogging.NewMockTracer(mockCtrl)
		dec := newDecoder(&Config{Tracer: tracer})
		p := &Packet{Length: 3, Size: 2, Seed: 1, Data: []byte{1}}
		tracer.EXPECT().DroppedPacket(p, logging.PacketDropMalformed, gomock.Any())
		_, err := dec.Decode(p)
		Expect(err).To(MatchError(ErrMalformedPacket))
	})
})
