package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/oy3o/recsplit"
)

// Config holds the flag values shared by subcommands.
type Config struct {
	Kind    string
	Out     string
	Verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		config   Config
		registry *recsplit.Registry
	)

	rootCmd := &cobra.Command{
		Use:   "recsplit",
		Short: "Split byte streams into fixed-size records",
		Long: `Split raw byte buffers into a leading remainder and the whole
fixed-size records that follow it, or encode records into such a buffer.

Examples:
  recsplit split --kind point capture.bin
  cat chunk.bin | recsplit split --kind beat
  recsplit encode --kind point 0,1.5,0,0.01 0,1.6,0,0.01 > stroke.bin
  recsplit kinds`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
			if config.Verbose {
				logger = level.NewFilter(logger, level.AllowDebug())
			} else {
				logger = level.NewFilter(logger, level.AllowWarn())
			}
			logger = log.With(logger, "ts", log.DefaultTimestampUTC)

			registry = recsplit.NewRegistry(recsplit.WithLogger(logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "Enable debug logging")

	reg := func() *recsplit.Registry { return registry }
	rootCmd.AddCommand(newSplitCmd(&config, reg))
	rootCmd.AddCommand(newEncodeCmd(&config, reg))
	rootCmd.AddCommand(newKindsCmd(reg))
	return rootCmd
}
