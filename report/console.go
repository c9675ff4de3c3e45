// Package report renders a summary report for the console and as a
// markdown artifact. Presentation only; counting happens elsewhere.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mkarlsen/plansum/types"
)

var header = table.Row{"Account", "Add", "Change", "Destroy"}

// Render writes the fixed-width summary table to w. Non-zero counts
// are colored: adds green, changes yellow, destroys red. Unreadable
// accounts show dashes instead of counts.
func Render(w io.Writer, r types.Report) {
	tw := table.Table{}
	tw.AppendHeader(header)
	for _, row := range r.Rows {
		tw.AppendRow(consoleRow(row))
	}
	tw.SetStyle(table.StyleLight)
	tw.SetColumnConfigs(countColumns())

	fmt.Fprintln(w, tw.Render())
}

// consoleRow builds one colored table row
func consoleRow(s types.AccountSummary) table.Row {
	if s.Failed() {
		dash := text.FgHiRed.Sprint("-")
		return table.Row{s.Account, dash, dash, dash}
	}

	return table.Row{
		s.Account,
		colorIfNotZero(s.Add, text.FgGreen),
		colorIfNotZero(s.Change, text.FgYellow),
		colorIfNotZero(s.Destroy, text.FgRed),
	}
}

// colorIfNotZero colors a count only when it is worth noticing
func colorIfNotZero(n int, color text.Color) string {
	if n > 0 {
		return color.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func countColumns() []table.ColumnConfig {
	return []table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	}
}
