package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lzww0608/uuid7der"
)

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "uuid2asn1: logger init:", err)
		os.Exit(1)
	}
	return logger
}

// newRootCmd builds the uuid2asn1 command. Output goes to the command's
// out stream so tests can capture it.
func newRootCmd() *cobra.Command {
	var (
		count     int
		hexOut    bool
		timestamp int64
	)

	cmd := &cobra.Command{
		Use:   "uuid2asn1",
		Short: "Generate UUIDv7 identifiers as ASN.1 DER",
		Long: "uuid2asn1 generates UUID version 7 identifiers and writes their\n" +
			"ASN.1 DER encoding to stdout. By default the raw DER bytes are\n" +
			"written; use --hex for a terminal-friendly form.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("invalid --count %d: must be at least 1", count)
			}
			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				var (
					seq uuid7der.Sequence
					err error
				)
				if cmd.Flags().Changed("timestamp") {
					seq, err = uuid7der.NewSequenceWithTime(time.UnixMilli(timestamp))
				} else {
					seq, err = uuid7der.NewSequence()
				}
				if err != nil {
					return err
				}
				der, err := seq.MarshalDER()
				if err != nil {
					return err
				}
				if hexOut {
					if _, err := fmt.Fprintf(out, "%x\n", der); err != nil {
						return err
					}
					continue
				}
				if _, err := out.Write(der); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of identifiers to generate")
	cmd.Flags().BoolVar(&hexOut, "hex", false, "Hex-encode output, one identifier per line")
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "Unix millisecond timestamp to embed instead of the wall clock")
	return cmd
}

func main() {
	logger := newLogger()
	defer logger.Sync()

	if err := newRootCmd().Execute(); err != nil {
		logger.Error("uuid2asn1 failed", zap.Error(err))
		os.Exit(1)
	}
}
