// Package metrics exports encoder and decoder events as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ddritzenhoff/ltcode/logging"
)

// Config configures the Prometheus tracer.
type Config struct {
	// Namespace is the metrics namespace (default: "ltcode").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus tracer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "ltcode",
		Registry:  prometheus.DefaultRegisterer,
	}
}

type tracer struct {
	streamsEncoded  prometheus.Counter
	packetsSent     prometheus.Counter
	streamsDecoding prometheus.Counter
	packetsReceived prometheus.Counter
	packetsDropped  *prometheus.CounterVec
	resolvedRatio   prometheus.Gauge
	streamsDecoded  prometheus.Counter
	packetsPerKB    prometheus.Histogram
}

var _ logging.Tracer = &tracer{}

// NewTracer creates a tracer that records events as Prometheus metrics.
// The metrics are registered once, so create only one tracer per registry.
func NewTracer(opts ...Option) logging.Tracer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}

	return &tracer{
		streamsEncoded:  counter("streams_encoded_total", "Total number of streams the encoder started"),
		packetsSent:     counter("packets_sent_total", "Total number of packets produced by the encoder"),
		streamsDecoding: counter("streams_started_total", "Total number of streams the decoder started"),
		packetsReceived: counter("packets_received_total", "Total number of packets accepted by the decoder"),
		packetsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "packets_dropped_total",
			Help:        "Total number of packets dropped by the decoder",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),
		resolvedRatio: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "resolved_ratio",
			Help:        "Share of source symbols resolved in the current stream",
			ConstLabels: config.ConstLabels,
		}),
		streamsDecoded: counter("streams_decoded_total", "Total number of streams decoded completely"),
		packetsPerKB: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "packets_per_kilobyte",
			Help:        "Packets needed per kilobyte of decoded data",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(0.25, 2, 12),
		}),
	}
}

func (t *tracer) StartedEncoding(logging.ByteCount, logging.ByteCount, int, logging.Seed) {
	t.streamsEncoded.Inc()
}

func (t *tracer) SentPacket(*logging.Packet) {
	t.packetsSent.Inc()
}

func (t *tracer) StartedDecoding(logging.ByteCount, logging.ByteCount, int) {
	t.streamsDecoding.Inc()
	t.resolvedRatio.Set(0)
}

func (t *tracer) ReceivedPacket(*logging.Packet) {
	t.packetsReceived.Inc()
}

func (t *tracer) DroppedPacket(_ *logging.Packet, reason logging.DropReason, _ error) {
	t.packetsDropped.WithLabelValues(reason.String()).Inc()
}

func (t *tracer) UpdatedProgress(resolved, numSymbols int) {
	if numSymbols == 0 {
		return
	}
	t.resolvedRatio.Set(float64(resolved) / float64(numSymbols))
}

func (t *tracer) DecodeComplete(packetsReceived int, length logging.ByteCount) {
	t.streamsDecoded.Inc()
	t.resolvedRatio.Set(1)
	if length > 0 {
		t.packetsPerKB.Observe(float64(packetsReceived) / (float64(length) / 1024))
	}
}
