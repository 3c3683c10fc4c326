package ltcode

import (
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	mocklogging "github.com/ddritzenhoff/ltcode/internal/mocks/logging"
	"github.com/ddritzenhoff/ltcode/internal/protocol"
)

var _ = Describe("Config", func() {
	Context("validating", func() {
		It("accepts nil", func() {
			Expect(validateConfig(nil)).To(Succeed())
		})

		It("accepts an empty config", func() {
			Expect(validateConfig(&Config{})).To(Succeed())
		})

		DescribeTable("rejects invalid values",
			func(c *Config, msg string) {
				err := validateConfig(c)
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring(msg))
			},
			Entry("symbol size", &Config{SymbolSize: protocol.MaxSymbolSize + 1}, "invalid symbol size"),
			Entry("seed", &Config{Seed: Seed(protocol.LCGModulus)}, "invalid seed"),
			Entry("negative delta", &Config{Delta: -0.1}, "invalid delta"),
			Entry("delta of one", &Config{Delta: 1}, "invalid delta"),
			Entry("spike scale", &Config{SpikeScale: -1}, "invalid spike scale"),
		)
	})

	Context("populating", func() {
		It("populates nil", func() {
			c := populateConfig(nil)
			Expect(c.SymbolSize).To(Equal(DefaultSymbolSize))
			Expect(c.Seed).To(BeZero())
			Expect(c.Delta).To(Equal(0.5))
			Expect(c.SpikeScale).To(Equal(0.1))
			Expect(c.Logger).ToNot(BeNil())
			Expect(c.Tracer).To(BeNil())
		})

		It("keeps set values", func() {
			tracer := mocklogging.NewMockTracer(mockCtrl)
			logger := slog.Default()
			c := populateConfig(&Config{
				SymbolSize: 7,
				Seed:       42,
				Delta:      0.1,
				SpikeScale: 0.03,
				Logger:     logger,
				Tracer:     tracer,
			})
			Expect(c.SymbolSize).To(Equal(ByteCount(7)))
			Expect(c.Seed).To(Equal(Seed(42)))
			Expect(c.Delta).To(Equal(0.1))
			Expect(c.SpikeScale).To(Equal(0.03))
			Expect(c.Logger).To(Equal(logger))
			Expect(c.Tracer).To(Equal(tracer))
		})

		It("does not modify the original", func() {
			orig := &Config{SymbolSize: 3}
			Expect(populateConfig(orig)).ToNot(BeIdenticalTo(orig))
			Expect(orig.Delta).To(BeZero())
		})
	})

	It("clones", func() {
		c1 := &Config{SymbolSize: 3, Seed: 4}
		c2 := c1.Clone()
		c2.SymbolSize = 5
		Expect(c1.SymbolSize).To(Equal(ByteCount(3)))
		Expect(c2.Seed).To(Equal(Seed(4)))
	})

	It("picks random seeds that the generator can use", func() {
		for i := 0; i < 1000; i++ {
			seed := randomSeed()
			Expect(seed).To(BeNumerically(">=", 1))
			Expect(seed).To(BeNumerically("<", protocol.MaxInitialSeed))
		}
	})
})
