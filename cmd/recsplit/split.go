package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/oy3o/recsplit"
)

func newSplitCmd(config *Config, reg func() *recsplit.Registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split a buffer into a remainder and fixed-size records",
		Long: `Read a buffer from a file, or stdin when no file is given, and
print its leading remainder followed by every whole record it holds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(config.Kind)
			if err != nil {
				return err
			}

			var buf []byte
			if len(args) == 1 {
				buf, err = os.ReadFile(args[0])
			} else {
				buf, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			level.Debug(reg().Logger()).Log("msg", "read input", "kind", k.name, "bytes", len(buf))
			return k.split(reg(), buf, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&config.Kind, "kind", "k", "point", "Record kind, one of: point, beat, u32, u64")
	return cmd
}

func newEncodeCmd(config *Config, reg func() *recsplit.Registry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode record...",
		Short: "Encode records into a raw buffer",
		Long: `Encode records given as comma separated fields and write the
resulting bytes to stdout, or to --out.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(config.Kind)
			if err != nil {
				return err
			}

			buf, err := k.encode(reg(), args)
			if err != nil {
				return err
			}
			level.Debug(reg().Logger()).Log("msg", "encoded records", "kind", k.name, "records", len(args), "bytes", len(buf))

			if config.Out != "" {
				if err := os.WriteFile(config.Out, buf, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			_, err = cmd.OutOrStdout().Write(buf)
			return err
		},
	}
	cmd.Flags().StringVarP(&config.Kind, "kind", "k", "point", "Record kind, one of: point, beat, u32, u64")
	cmd.Flags().StringVarP(&config.Out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}
