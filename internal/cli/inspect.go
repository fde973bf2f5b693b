package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/subtitle"
)

const maxTextWidth = 48

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle_file]",
	Short: "List the cues of an SRT file, optionally as they would be shifted",
	Long: `Print a table of the cues subshift reads from an SRT file.

Blocks that would be dropped (no time line, malformed time line, no text, or
ending before the start of the track after shifting) are counted in the
summary; run with --verbose to see each one.

Examples:
  subshift inspect movie.srt
  subshift inspect movie.srt --delay -2000 --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addShiftFlags(inspectCmd)
	inspectCmd.Flags().Int("limit", 0, "Show at most this many cues (0 for all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	params, err := shiftParams(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	entries, total := subtitle.Shifter{Params: params, OnDrop: logDrop}.Entries(src.Text)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Start", "End", "Duration", "Text"},
		entryRows(entries, limit),
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "%s cues, %s dropped, %s\n",
		humanize.Comma(int64(len(entries))),
		humanize.Comma(int64(total-len(entries))),
		humanize.Bytes(uint64(len(src.Text))),
	)
	return nil
}

func entryRows(entries []subtitle.Entry, limit int) [][]string {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			strconv.Itoa(e.Index),
			subtitle.FormatCanonical(e.Start),
			subtitle.FormatCanonical(e.End),
			strconv.FormatFloat((e.End-e.Start)/1000, 'f', 3, 64) + "s",
			truncateText(strings.Join(e.Lines, " / "), maxTextWidth),
		})
	}
	return rows
}

func truncateText(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
