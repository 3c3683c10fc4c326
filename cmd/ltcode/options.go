package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ddritzenhoff/ltcode"
	"github.com/ddritzenhoff/ltcode/internal/wire"
)

// fileConfig is the layout of the --config file.
type fileConfig struct {
	Codec    ltcode.Config  `yaml:"codec"`
	Format   string         `yaml:"format"`
	LogLevel string         `yaml:"log_level"`
	Simulate simulateConfig `yaml:"simulate"`
}

type simulateConfig struct {
	// Loss is the probability that a packet is lost, in [0, 1).
	Loss float64 `yaml:"loss"`
	// Rate limits the packets per second, 0 means unlimited.
	Rate float64 `yaml:"rate"`
	// QueueLen is the number of packets in flight between encoder and decoder.
	QueueLen int `yaml:"queue_len"`
	// MaxPackets aborts the simulation after that many packets.
	MaxPackets int `yaml:"max_packets"`
}

type options struct {
	configFile string
	file       fileConfig

	symbolSize uint64
	seed       uint32
	delta      float64
	spikeScale float64
	format     string
	logLevel   string
}

func addCodecFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVar(&o.configFile, "config", "", "YAML config file")
	fs.Uint64Var(&o.symbolSize, "symbol-size", uint64(ltcode.DefaultSymbolSize), "Bytes per source symbol")
	fs.Uint32Var(&o.seed, "seed", 0, "Initial generator state, 0 picks a random one")
	fs.Float64Var(&o.delta, "delta", 0, "Robust soliton failure probability bound (default 0.5)")
	fs.Float64Var(&o.spikeScale, "spike-scale", 0, "Robust soliton spike constant c (default 0.1)")
	fs.StringVarP(&o.format, "format", "f", wire.FormatJSON.String(), "Packet format: json, cbor or binary")
	fs.StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

// loadFileConfig reads a YAML config. Unknown keys are an error.
func loadFileConfig(r io.Reader) (fileConfig, error) {
	var c fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return fileConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}

// resolve loads the config file and applies the flags that were set explicitly on top of it.
func (o *options) resolve(fs *pflag.FlagSet) error {
	if o.configFile != "" {
		f, err := os.Open(o.configFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if o.file, err = loadFileConfig(f); err != nil {
			return fmt.Errorf("%s: %w", o.configFile, err)
		}
	}
	c := &o.file
	if c.Codec.SymbolSize == 0 || fs.Changed("symbol-size") {
		c.Codec.SymbolSize = ltcode.ByteCount(o.symbolSize)
	}
	if fs.Changed("seed") {
		c.Codec.Seed = ltcode.Seed(o.seed)
	}
	if fs.Changed("delta") {
		c.Codec.Delta = o.delta
	}
	if fs.Changed("spike-scale") {
		c.Codec.SpikeScale = o.spikeScale
	}
	if c.Format == "" || fs.Changed("format") {
		c.Format = o.format
	}
	if c.LogLevel == "" || fs.Changed("log-level") {
		c.LogLevel = o.logLevel
	}
	return nil
}

func (o *options) packetFormat() (wire.Format, error) {
	return wire.ParseFormat(o.file.Format)
}

// codecConfig returns the codec config with a logger writing to w.
func (o *options) codecConfig(w io.Writer) (*ltcode.Config, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.file.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", o.file.LogLevel)
	}
	c := o.file.Codec.Clone()
	c.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return c, nil
}

func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

func createOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
