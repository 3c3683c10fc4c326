package ltcode

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	mocklogging "github.com/ddritzenhoff/ltcode/internal/mocks/logging"
	"github.com/ddritzenhoff/ltcode/internal/protocol"
)

var _ = Describe("Encoder", func() {
	It("rejects invalid configs", func() {
		_, err := NewEncoder(&Config{Delta: 2})
		Expect(err).To(MatchError(ContainSubstring("invalid delta")))
	})

	It("uses the default symbol size", func() {
		enc, err := NewEncoder(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.SymbolSize()).To(Equal(ByteCount(100)))
		str, err := enc.Encode(make([]byte, 250))
		Expect(err).ToNot(HaveOccurred())
		Expect(str.NumSymbols()).To(Equal(3))
		p := str.Next()
		Expect(p.Size).To(Equal(ByteCount(100)))
		Expect(p.Length).To(Equal(ByteCount(250)))
		Expect(p.Data).To(HaveLen(100))
	})

	It("chooses a random seed once", func() {
		enc, err := NewEncoder(&Config{SymbolSize: 4})
		Expect(err).ToNot(HaveOccurred())
		Expect(enc.Seed()).To(And(BeNumerically(">=", 1), BeNumerically("<", protocol.MaxInitialSeed)))
		str, err := enc.Encode([]byte("some data"))
		Expect(err).ToNot(HaveOccurred())
		Expect(str.Next().Seed).To(Equal(enc.Seed()))
	})

	It("produces the packets of a three symbol stream", func() {
		enc, err := NewEncoder(&Config{SymbolSize: 1, Seed: 42})
		Expect(err).ToNot(HaveOccurred())
		str, err := enc.Encode([]byte("abc"))
		Expect(err).ToNot(HaveOccurred())
		expected := []*Packet{
			{Length: 3, Size: 1, Seed: 42, Data: []byte{'b'}},
			{Length: 3, Size: 1, Seed: 1126542223, Data: []byte{'a' ^ 'c'}},
			{Length: 3, Size: 1, Seed: 421520601, Data: []byte{'a' ^ 'b' ^ 'c'}},
			{Length: 3, Size: 1, Seed: 526968160, Data: []byte{'c'}},
		}
		for _, e := range expected {
			p := str.Next()
			Expect(p.Length).To(Equal(e.Length))
			Expect(p.Size).To(Equal(e.Size))
			Expect(p.Seed).To(Equal(e.Seed))
			Expect(p.Data).To(Equal(e.Data))
		}
		Expect(str.Sent()).To(Equal(4))
	})

	It("restarts every stream from the seed", func() {
		data := bytes.Repeat([]byte("Hello, World! "), 100)
		enc, err := NewEncoder(&Config{SymbolSize: 10})
		Expect(err).ToNot(HaveOccurred())
		str1, err := enc.Encode(data)
		Expect(err).ToNot(HaveOccurred())
		str2, err := enc.Encode(data)
		Expect(err).ToNot(HaveOccurred())
		for i := 0; i < 100; i++ {
			p1 := str1.Next()
			p2 := str2.Next()
			Expect(p2.Seed).To(Equal(p1.Seed))
			Expect(p2.Data).To(Equal(p1.Data))
			ReleasePacket(p1)
			ReleasePacket(p2)
		}
	})

	It("traces", func() {
		tracer := mocklogging.NewMockTracer(mockCtrl)
		enc, err := NewEncoder(&Config{SymbolSize: 3, Seed: 7, Tracer: tracer})
		Expect(err).ToNot(HaveOccurred())
		tracer.EXPECT().StartedEncoding(ByteCount(10), ByteCount(3), 4, Seed(7))
		str, err := enc.Encode([]byte("abcdefghij"))
		Expect(err).ToNot(HaveOccurred())
		tracer.EXPECT().SentPacket(gomock.Any()).Times(3)
		for i := 0; i < 3; i++ {
			str.Next()
		}
	})

	It("encodes empty data", func() {
		enc, err := NewEncoder(&Config{SymbolSize: 8, Seed: 5})
		Expect(err).ToNot(HaveOccurred())
		str, err := enc.Encode(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(str.NumSymbols()).To(BeZero())
		p := str.Next()
		Expect(p.Length).To(BeZero())
		Expect(p.Data).To(Equal(make([]byte, 8)))
	})
})
