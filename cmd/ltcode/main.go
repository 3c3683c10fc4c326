// Command ltcode encodes files into LT packet streams and decodes them again.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "ltcode",
		Short: "Rateless erasure coding with LT codes",
		Long: `ltcode splits data into fixed-size symbols and produces an endless stream of
packets, each the XOR of a pseudo-randomly chosen set of symbols. Any large
enough subset of the packets, in any order, restores the data.

Examples:
  ltcode encode --symbol-size 64 --count 200 -i file.txt -o packets.jsonl
  ltcode decode -i packets.jsonl -o file.txt
  ltcode simulate --loss 0.3 -i file.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addCodecFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		encodeCmd(opts),
		decodeCmd(opts),
		simulateCmd(opts),
	)
	return cmd
}
