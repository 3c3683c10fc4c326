package ltcode

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"

	"github.com/ddritzenhoff/ltcode/internal/fec"
	"github.com/ddritzenhoff/ltcode/internal/protocol"
	"github.com/ddritzenhoff/ltcode/logging"
)

// Config contains all configuration data needed for an Encoder or a Decoder.
// Encoder and decoder must use the same Delta and SpikeScale.
type Config struct {
	// SymbolSize is the number of bytes per source symbol.
	// If not set, DefaultSymbolSize is used. Only the encoder uses it,
	// the decoder takes the size from the packets.
	SymbolSize ByteCount `yaml:"symbol_size"`
	// Seed is the first generator state of the encoder, in [1, 2^31-1).
	// If not set, a random seed in [1, 2^30) is chosen for every Encoder.
	Seed Seed `yaml:"seed"`
	// Delta bounds the failure probability of the robust soliton distribution, in (0, 1).
	// If not set, a value of 0.5 is used.
	Delta float64 `yaml:"delta"`
	// SpikeScale is the constant c of the robust soliton distribution.
	// If not set, a value of 0.1 is used.
	SpikeScale float64 `yaml:"spike_scale"`
	// Logger receives structured log records. If nil, nothing is logged.
	Logger *slog.Logger `yaml:"-"`
	// Tracer receives encoder and decoder events.
	Tracer logging.Tracer `yaml:"-"`
}

// Clone clones a Config
func (c *Config) Clone() *Config {
	copy := *c
	return &copy
}

func (c *Config) params() fec.Params {
	return fec.Params{Delta: c.Delta, SpikeScale: c.SpikeScale}
}

func validateConfig(config *Config) error {
	if config == nil {
		return nil
	}
	if config.SymbolSize > protocol.MaxSymbolSize {
		return fmt.Errorf("invalid symbol size %d: must not exceed %d", config.SymbolSize, protocol.MaxSymbolSize)
	}
	if uint64(config.Seed) >= protocol.LCGModulus {
		return fmt.Errorf("invalid seed %d: must be smaller than %d", config.Seed, protocol.LCGModulus)
	}
	if config.Delta < 0 || config.Delta >= 1 {
		return fmt.Errorf("invalid delta %v: must be in (0, 1)", config.Delta)
	}
	if config.SpikeScale < 0 {
		return fmt.Errorf("invalid spike scale %v: must be positive", config.SpikeScale)
	}
	return nil
}

// populateConfig populates fields in the Config with default values, if they are not set.
// It may be called with nil.
func populateConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	symbolSize := config.SymbolSize
	if symbolSize == 0 {
		symbolSize = protocol.DefaultSymbolSize
	}
	delta := config.Delta
	if delta == 0 {
		delta = protocol.DefaultDelta
	}
	spikeScale := config.SpikeScale
	if spikeScale == 0 {
		spikeScale = protocol.DefaultSpikeScale
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Config{
		SymbolSize: symbolSize,
		Seed:       config.Seed,
		Delta:      delta,
		SpikeScale: spikeScale,
		Logger:     logger,
		Tracer:     config.Tracer,
	}
}

// randomSeed picks a generator state in [1, 2^30). 0 is a fixed point of the generator.
func randomSeed() Seed {
	return Seed(rand.Int63n(int64(protocol.MaxInitialSeed-1))) + 1
}
