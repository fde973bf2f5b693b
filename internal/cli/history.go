package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mgpai22/subshift/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently used delays",
	Long: `Show the delays used by recent saves, newest first. Each delay appears
once; using it again moves it to the top.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Bool("clear", false, "Forget all recorded delays")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(cfg.HistoryPath, cfg.HistoryLimit)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared")
		return nil
	}

	entries, err := store.Recent(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No delays recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		used := ""
		if !e.CreatedAt.IsZero() {
			used = humanize.Time(e.CreatedAt)
		}
		rows = append(rows, []string{e.Label(), e.Human(), e.Raw, used})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Delay", "Human", "Input", "Used"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	))
	return nil
}
