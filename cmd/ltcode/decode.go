package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ddritzenhoff/ltcode"
	"github.com/ddritzenhoff/ltcode/internal/wire"
)

func decodeCmd(opts *options) *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a packet stream",
		Long: `Decode reads packets until the data is restored and writes it out.
Packets that cannot be parsed or belong to another stream are skipped.`,
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
			return runDecode(opts, in, out, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Packet file, - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file, - for stdout")

	return cmd
}

func runDecode(opts *options, in io.Reader, out, logOut io.Writer) error {
	format, err := opts.packetFormat()
	if err != nil {
		return err
	}
	config, err := opts.codecConfig(logOut)
	if err != nil {
		return err
	}
	dec, err := ltcode.NewDecoder(config)
	if err != nil {
		return err
	}

	r := wire.NewPacketReader(in, format)
	for {
		p, err := r.ReadPacket()
		if err == io.EOF {
			return fmt.Errorf("stream ended after %d packets with %d%% of the data decoded", dec.Received(), dec.Progress())
		}
		if err != nil {
			// JSON is line based, so a broken line doesn't affect the next one
			if format != wire.FormatJSON {
				return err
			}
			config.Logger.Warn("skipping unreadable packet", slog.Any("error", err))
			continue
		}
		done, err := dec.Decode(p)
		wire.PutPacket(p)
		if err != nil {
			if errors.Is(err, ltcode.ErrMalformedPacket) {
				continue
			}
			return err
		}
		if done {
			break
		}
	}

	data, err := dec.Result()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
