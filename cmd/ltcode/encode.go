package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ddritzenhoff/ltcode"
	"github.com/ddritzenhoff/ltcode/internal/wire"
)

func encodeCmd(opts *options) *cobra.Command {
	var (
		input    string
		output   string
		count    int
		overhead float64
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode data into a packet stream",
		Long: `Encode reads data and writes packets, one per line for JSON.

Unless --count is given, it writes as many packets as there are source
symbols times (1 + overhead), plus a few to cover small streams.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolve(cmd.Flags()); err != nil {
				return err
			}
			in, err := openInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer in.Close()
			out, err := createOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer out.Close()
			return runEncode(opts, in, out, cmd.ErrOrStderr(), count, overhead)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of packets to write")
	cmd.Flags().Float64Var(&overhead, "overhead", 0.5, "Extra packets relative to the number of symbols")

	return cmd
}

// numPackets is the number of packets written when no count is given.
func numPackets(numSymbols int, overhead float64) int {
	return int(float64(numSymbols)*(1+overhead)) + 10
}

func runEncode(opts *options, in io.Reader, out, logOut io.Writer, count int, overhead float64) error {
	if count < 0 || overhead < 0 {
		return fmt.Errorf("count and overhead must not be negative")
	}
	format, err := opts.packetFormat()
	if err != nil {
		return err
	}
	config, err := opts.codecConfig(logOut)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	enc, err := ltcode.NewEncoder(config)
	if err != nil {
		return err
	}
	str, err := enc.Encode(data)
	if err != nil {
		return err
	}
	if count == 0 {
		count = numPackets(str.NumSymbols(), overhead)
	}

	w := wire.NewPacketWriter(out, format)
	for i := 0; i < count; i++ {
		p := str.Next()
		if err := w.WritePacket(p); err != nil {
			return err
		}
		ltcode.ReleasePacket(p)
	}
	return w.Flush()
}
