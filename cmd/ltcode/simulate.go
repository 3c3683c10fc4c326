package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ddritzenhoff/ltcode"
	"github.com/ddritzenhoff/ltcode/logging"
	"github.com/ddritzenhoff/ltcode/metrics"
)

var errDecoded = errors.New("stream decoded")

func simulateCmd(opts *options) *cobra.Command {
	var (
		input       string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Send data through a lossy channel",
		Long: `Simulate runs an encoder and a decoder connected by a channel that loses
packets at random, and reports how many packets decoding took.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if err := opts.resolve(fs); err != nil {
				return err
			}
			sim := &opts.file.Simulate
			if fs.Changed("loss") || sim.Loss == 0 {
				sim.Loss, _ = fs.GetFloat64("loss")
			}
			if fs.Changed("rate") || sim.Rate == 0 {
				sim.Rate, _ = fs.GetFloat64("rate")
			}
			if fs.Changed("queue-len") || sim.QueueLen == 0 {
				sim.QueueLen, _ = fs.GetInt("queue-len")
			}
			if fs.Changed("max-packets") || sim.MaxPackets == 0 {
				sim.MaxPackets, _ = fs.GetInt("max-packets")
			}
			in, err := openInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()
			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			return runSimulate(cmd.Context(), opts, data, cmd.OutOrStdout(), cmd.ErrOrStderr(), metricsAddr)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input file, - for stdin")
	cmd.Flags().Float64("loss", 0.1, "Probability that a packet is lost")
	cmd.Flags().Float64("rate", 0, "Packets per second, 0 for unlimited")
	cmd.Flags().Int("queue-len", ltcode.DefaultPacketQueueLen, "Packets in flight")
	cmd.Flags().Int("max-packets", 1_000_000, "Give up after this many packets")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	return cmd
}

type simulationResult struct {
	numSymbols int
	sent       int
	lost       int
	received   int
}

func (r simulationResult) String() string {
	overhead := 0.0
	if r.numSymbols > 0 {
		overhead = float64(r.received)/float64(r.numSymbols) - 1
	}
	return fmt.Sprintf("symbols: %d, packets sent: %d, lost: %d, received: %d, overhead: %.1f%%",
		r.numSymbols, r.sent, r.lost, r.received, overhead*100)
}

func runSimulate(ctx context.Context, opts *options, data []byte, out, logOut io.Writer, metricsAddr string) error {
	sim := opts.file.Simulate
	if sim.Loss < 0 || sim.Loss >= 1 {
		return fmt.Errorf("loss must be in [0, 1), got %v", sim.Loss)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	config, err := opts.codecConfig(logOut)
	if err != nil {
		return err
	}

	tracers := []logging.Tracer{&progressTracer{logger: config.Logger, step: 10}}
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		tracers = append(tracers, metrics.NewTracer(metrics.WithRegistry(reg)))
		srv := &http.Server{
			Addr:              metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				config.Logger.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		defer srv.Close()
	}
	config.Tracer = logging.NewMultiplexedTracer(tracers...)

	res, result, err := simulate(ctx, config, sim, data)
	if err != nil {
		return err
	}
	if !bytes.Equal(result, data) {
		return fmt.Errorf("decoded data differs from the input")
	}
	_, err = fmt.Fprintln(out, res)
	return err
}

// simulate encodes data and feeds the packets, minus the lost ones, to a decoder running on
// another goroutine.
func simulate(ctx context.Context, config *ltcode.Config, sim simulateConfig, data []byte) (simulationResult, []byte, error) {
	enc, err := ltcode.NewEncoder(config)
	if err != nil {
		return simulationResult{}, nil, err
	}
	dec, err := ltcode.NewDecoder(config)
	if err != nil {
		return simulationResult{}, nil, err
	}
	str, err := enc.Encode(data)
	if err != nil {
		return simulationResult{}, nil, err
	}

	hasData := make(chan struct{}, 1)
	queue := ltcode.NewPacketQueue(sim.QueueLen, func() {
		select {
		case hasData <- struct{}{}:
		default:
		}
	})
	limit := rate.Inf
	if sim.Rate > 0 {
		limit = rate.Limit(sim.Rate)
	}
	limiter := rate.NewLimiter(limit, 1)
	rng := rand.New(rand.NewSource(int64(enc.Seed())))
	res := simulationResult{numSymbols: str.NumSymbols()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			if sim.MaxPackets > 0 && str.Sent() >= sim.MaxPackets {
				return fmt.Errorf("not decoded after %d packets", str.Sent())
			}
			p := str.Next()
			res.sent++
			if rng.Float64() < sim.Loss {
				res.lost++
				ltcode.ReleasePacket(p)
				continue
			}
			if err := queue.Add(p); err != nil {
				if errors.Is(err, errDecoded) {
					return nil
				}
				return err
			}
		}
	})
	g.Go(func() error {
		defer queue.CloseWithError(nil)
		for {
			p := queue.Peek()
			if p == nil {
				select {
				case <-hasData:
					continue
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			queue.Pop()
			done, err := dec.Decode(p)
			ltcode.ReleasePacket(p)
			if err != nil {
				return err
			}
			if done {
				queue.CloseWithError(errDecoded)
				return nil
			}
		}
	})
	if err := g.Wait(); err != nil {
		return res, nil, err
	}
	res.received = dec.Received()
	result, err := dec.Result()
	return res, result, err
}
