package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/subtitle"
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp [value]",
	Short: "Convert between delays, milliseconds and SRT timestamps",
	Long: `Read a delay or SRT timestamp and print it as milliseconds, as an SRT
timestamp, and in human form.

Accepted input: plain milliseconds ("-1500"), colon durations ("1:30.5"), or
SRT timestamps ("00:01:30,500").

Examples:
  subshift timestamp 1:30.5
  subshift timestamp 00:01:30,500
  subshift timestamp -- -61000 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runTimestamp,
}

func init() {
	rootCmd.AddCommand(timestampCmd)
	timestampCmd.Flags().Bool("copy", false, "Copy the SRT timestamp to the clipboard")
}

// timestampMs reads value as an SRT timestamp when it is one, otherwise as a
// freeform delay.
func timestampMs(value string) int64 {
	value = strings.TrimSpace(value)
	if ms, ok := subtitle.ParseCanonical(value); ok {
		return ms
	}
	return subtitle.ParseFreeform(value)
}

func runTimestamp(cmd *cobra.Command, args []string) error {
	ms := timestampMs(args[0])
	canonical := subtitle.FormatCanonical(float64(ms))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ms:        %s\n", subtitle.FormatSignedMs(ms))
	fmt.Fprintf(out, "timestamp: %s\n", canonical)
	if human := subtitle.FormatHuman(ms); human != "" {
		fmt.Fprintf(out, "human:     %s\n", human)
	}

	if copyFlag, _ := cmd.Flags().GetBool("copy"); copyFlag {
		if err := clipboard.WriteAll(canonical); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		logger.Infow("Copied timestamp to clipboard", "timestamp", canonical)
	}
	return nil
}
