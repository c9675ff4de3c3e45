package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mkarlsen/plansum/history"
	"github.com/mkarlsen/plansum/types"
)

var (
	historyDB    string
	historyLimit int
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded summarizer runs",
	Long: `List recent runs recorded with 'summarize --history-db', newest
first, with per-run totals across all accounts.`,
	Example: `  plansum history --db plansum.db            # Last 10 runs
  plansum history --db plansum.db --limit 3  # Last 3 runs`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDB, "db", "plansum.db", "History database path")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Max runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	tw := table.Table{}
	tw.AppendHeader(table.Row{"Recorded", "Accounts", "Add", "Change", "Destroy", "Failed"})
	for _, run := range runs {
		tw.AppendRow(historyRow(run))
	}
	tw.SetStyle(table.StyleLight)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	fmt.Fprintln(os.Stdout, tw.Render())
	return nil
}

// historyRow builds one table row with the run's totals
func historyRow(run history.Run) table.Row {
	rep := types.Report{Rows: run.Rows}
	add, change, destroy := rep.Totals()

	return table.Row{
		run.Timestamp.Format(time.RFC3339),
		len(run.Rows),
		add,
		change,
		destroy,
		rep.FailureCount(),
	}
}
